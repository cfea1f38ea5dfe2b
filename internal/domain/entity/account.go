// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Account is a persisted user identity, including its credential hash.
// It must never leave the service layer; callers receive an AccountView instead.
type Account struct {
	ID           uuid.UUID // Unique identifier, generated by the store when empty.
	Name         string    // Display name.
	Email        string    // Unique contact email; uniqueness is enforced by the store.
	PasswordHash string    // Opaque credential material produced by a PasswordHasher.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AccountView is the public projection of an Account.
type AccountView struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// View projects the account to its public representation.
func (a *Account) View() *AccountView {
	if a == nil {
		return nil
	}

	return &AccountView{
		ID:    a.ID,
		Name:  a.Name,
		Email: a.Email,
	}
}
