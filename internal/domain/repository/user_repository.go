// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"accounts/internal/domain/entity"

	"github.com/google/uuid"
)

var (
	// ErrUserNotFound is returned when no account matches the given ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateEmail is returned when the unique email index rejects a write.
	ErrDuplicateEmail = errors.New("email already exists")
)

// UserRepository defines the persistence operations for accounts.
// Every method may fail with a storage fault.
type UserRepository interface {
	// FindAll returns every account in the store's natural order.
	FindAll(ctx context.Context) ([]*entity.Account, error)

	// FindByID retrieves a single account, or ErrUserNotFound.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// Create persists a new account and fills in its ID and timestamps.
	// A duplicate email is rejected by the store.
	Create(ctx context.Context, account *entity.Account) error

	// Update changes the name and email of an account.
	Update(ctx context.Context, id uuid.UUID, name, email string) error

	// Delete removes an account.
	Delete(ctx context.Context, id uuid.UUID) error

	// IsEmailTaken reports whether any account already uses the email.
	IsEmailTaken(ctx context.Context, email string) (bool, error)

	// UpdatePassword overwrites the stored password hash.
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}
