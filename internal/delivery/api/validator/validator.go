// Package validator adapts go-playground/validator to echo.
package validator

import (
	"unicode/utf8"

	"accounts/config"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

const (
	passwordTag              = "password"
	defaultPasswordMinLength = 6
	defaultPasswordMaxLength = 32
)

// FieldError describes one rejected field in a request body.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// CustomValidator implements echo.Validator.
type CustomValidator struct {
	validate *validator.Validate
}

// New registers the "password" tag, which checks length in characters against passwordPolicy.
func New(cfg *config.Config) *CustomValidator {
	minLength, maxLength := defaultPasswordMinLength, defaultPasswordMaxLength
	if cfg != nil && cfg.PasswordPolicy != nil {
		if cfg.PasswordPolicy.MinLength > 0 {
			minLength = cfg.PasswordPolicy.MinLength
		}
		if cfg.PasswordPolicy.MaxLength > 0 {
			maxLength = cfg.PasswordPolicy.MaxLength
		}
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	_ = validate.RegisterValidation(passwordTag, func(fl validator.FieldLevel) bool {
		length := utf8.RuneCountInString(fl.Field().String())

		return length >= minLength && length <= maxLength
	})

	return &CustomValidator{validate: validate}
}

func (cv *CustomValidator) Validate(i any) error {
	return errors.WithStack(cv.validate.Struct(i))
}

// FieldErrors flattens a validation failure; it returns nil for any other error.
func FieldErrors(err error) []FieldError {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	fields := make([]FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		fields = append(fields, FieldError{
			Field:   fe.Field(),
			Message: fieldMessage(fe),
			Type:    fe.Tag(),
		})
	}

	return fields
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "max":
		return "Value is too long"
	case "eqfield":
		return "Must match " + fe.Param()
	case passwordTag:
		return "Password length is out of range"
	default:
		return "Invalid value"
	}
}
