package validator

import (
	"strings"
	"testing"

	"accounts/config"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,password"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
}

func TestCustomValidator_Valid(t *testing.T) {
	v := New(nil)

	err := v.Validate(&signupRequest{Email: "a@x.com", Password: "secret1", PasswordConfirm: "secret1"})

	assert.NoError(t, err)
}

func TestCustomValidator_FieldErrors(t *testing.T) {
	v := New(nil)

	err := v.Validate(&signupRequest{Email: "not-an-email", Password: "abc", PasswordConfirm: "abd"})
	require.Error(t, err)

	fields := FieldErrors(err)
	require.Len(t, fields, 3)
	assert.Equal(t, FieldError{Field: "Email", Message: "Invalid email format", Type: "email"}, fields[0])
	assert.Equal(t, FieldError{Field: "Password", Message: "Password length is out of range", Type: "password"}, fields[1])
	assert.Equal(t, FieldError{Field: "PasswordConfirm", Message: "Must match Password", Type: "eqfield"}, fields[2])
}

func TestCustomValidator_PasswordPolicyFromConfig(t *testing.T) {
	v := New(&config.Config{PasswordPolicy: &config.PasswordPolicyConfig{MinLength: 2, MaxLength: 4}})

	assert.NoError(t, v.Validate(&signupRequest{Email: "a@x.com", Password: "ab", PasswordConfirm: "ab"}))
	assert.NoError(t, v.Validate(&signupRequest{Email: "a@x.com", Password: "密码密码", PasswordConfirm: "密码密码"}))
	assert.Error(t, v.Validate(&signupRequest{Email: "a@x.com", Password: "abcde", PasswordConfirm: "abcde"}))
	assert.Error(t, v.Validate(&signupRequest{Email: "a@x.com", Password: strings.Repeat("a", 1), PasswordConfirm: "a"}))
}

func TestFieldErrors_NonValidationError(t *testing.T) {
	assert.Nil(t, FieldErrors(errors.New("boom")))
	assert.Nil(t, FieldErrors(nil))
}
