// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"accounts/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CreateAccountInput defines the data required to create an account.
type CreateAccountInput struct {
	Name     string
	Email    string
	Password string
}

// UpdateAccountInput defines the mutable profile fields of an account.
type UpdateAccountInput struct {
	Name  string
	Email string
}

// ChangePasswordInput defines the data required to replace an account password.
type ChangePasswordInput struct {
	OldPassword        string
	NewPassword        string
	NewPasswordConfirm string
}

// AccountUsecase defines the account management operations.
// Results never carry the password hash.
type AccountUsecase interface {
	// ListAccounts returns every account in store order.
	ListAccounts(ctx context.Context) ([]*entity.AccountView, error)

	// GetAccount returns a single account or ErrAccountNotFound.
	GetAccount(ctx context.Context, id uuid.UUID) (*entity.AccountView, error)

	// CreateAccount hashes the password and stores a new account.
	// Any store rejection is reported as ErrAccountCreationFailed.
	CreateAccount(ctx context.Context, input *CreateAccountInput) (*entity.AccountView, error)

	// UpdateAccount changes name and email. It returns ErrAccountNotFound for an unknown ID
	// and ErrAccountUpdateFailed when the store rejects the change.
	UpdateAccount(ctx context.Context, id uuid.UUID, input *UpdateAccountInput) error

	// DeleteAccount removes an account. It returns ErrAccountNotFound for an unknown ID
	// and ErrAccountDeleteFailed when the store rejects the removal.
	DeleteAccount(ctx context.Context, id uuid.UUID) error

	// IsEmailTaken reports whether an account already uses the email.
	IsEmailTaken(ctx context.Context, email string) (bool, error)

	// ChangePassword verifies the old password and stores a hash of the new one.
	// Checks run in order: existence, old password, confirmation, length.
	ChangePassword(ctx context.Context, id uuid.UUID, input *ChangePasswordInput) error
}
