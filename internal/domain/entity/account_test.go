package entity

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccount_View(t *testing.T) {
	account := &Account{
		ID:           uuid.New(),
		Name:         "Alice",
		Email:        "alice@x.com",
		PasswordHash: "$2a$12$secret",
	}

	view := account.View()

	require.NotNil(t, view)
	assert.Equal(t, account.ID, view.ID)
	assert.Equal(t, "Alice", view.Name)
	assert.Equal(t, "alice@x.com", view.Email)

	body, err := json.Marshal(view)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "secret")
	assert.NotContains(t, string(body), "password")
}

func TestAccount_ViewNil(t *testing.T) {
	var account *Account

	assert.Nil(t, account.View())
}
