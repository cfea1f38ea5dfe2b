// Package handler contains the HTTP handlers for the account API.
package handler

import (
	"log/slog"
	"net/http"

	"accounts/internal/delivery/api/response"
	"accounts/internal/delivery/api/validator"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AccountHandlerParams holds dependencies for AccountHandler, injected by Fx.
type AccountHandlerParams struct {
	fx.In

	AccountUC usecase.AccountUsecase
	Logger    *slog.Logger
}

type AccountHandler struct {
	accountUC usecase.AccountUsecase
	logger    *slog.Logger
}

func NewAccountHandler(params AccountHandlerParams) *AccountHandler {
	return &AccountHandler{
		accountUC: params.AccountUC,
		logger:    params.Logger,
	}
}

// CreateAccountRequest is the body of POST /api/v1/accounts.
type CreateAccountRequest struct {
	Name            string `json:"name" validate:"required,max=100"`
	Email           string `json:"email" validate:"required,email,max=255"`
	Password        string `json:"password" validate:"required,password"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
}

// UpdateAccountRequest is the body of PUT /api/v1/accounts/:id.
type UpdateAccountRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Email string `json:"email" validate:"required,email,max=255"`
}

// ChangePasswordRequest is the body of POST /api/v1/accounts/:id/change-password.
// Every field is checked by the use case, after the account lookup.
type ChangePasswordRequest struct {
	OldPassword     string `json:"password_old"`
	NewPassword     string `json:"password_new"`
	PasswordConfirm string `json:"password_confirm"`
}

func (h *AccountHandler) ListAccounts(c echo.Context) error {
	accounts, err := h.accountUC.ListAccounts(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, accounts)
}

func (h *AccountHandler) GetAccount(c echo.Context) error {
	id, err := parseAccountID(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid account ID")
	}

	account, err := h.accountUC.GetAccount(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, account)
}

// CreateAccount rejects an email that is already registered before creating the account.
func (h *AccountHandler) CreateAccount(c echo.Context) error {
	var req CreateAccountRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid account input")
	}

	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	ctx := c.Request().Context()

	taken, err := h.accountUC.IsEmailTaken(ctx, req.Email)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	if taken {
		return response.HandleAppError(c, domainerrors.ErrEmailAlreadyTaken)
	}

	account, err := h.accountUC.CreateAccount(ctx, &usecase.CreateAccountInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, account)
}

func (h *AccountHandler) UpdateAccount(c echo.Context) error {
	id, err := parseAccountID(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid account ID")
	}

	var req UpdateAccountRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid account input")
	}

	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	if err := h.accountUC.UpdateAccount(c.Request().Context(), id, &usecase.UpdateAccountInput{
		Name:  req.Name,
		Email: req.Email,
	}); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Account updated successfully"})
}

func (h *AccountHandler) DeleteAccount(c echo.Context) error {
	id, err := parseAccountID(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid account ID")
	}

	if err := h.accountUC.DeleteAccount(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Account deleted successfully"})
}

func (h *AccountHandler) ChangePassword(c echo.Context) error {
	id, err := parseAccountID(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid account ID")
	}

	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid password input")
	}

	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	if err := h.accountUC.ChangePassword(c.Request().Context(), id, &usecase.ChangePasswordInput{
		OldPassword:        req.OldPassword,
		NewPassword:        req.NewPassword,
		NewPasswordConfirm: req.PasswordConfirm,
	}); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Password changed successfully"})
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}

func parseAccountID(c echo.Context) (uuid.UUID, error) {
	return uuid.Parse(c.Param("id"))
}

func validationFailed(c echo.Context, err error) error {
	return response.BadRequestWithDetails(c,
		domainerrors.ErrValidationFailed.ErrorCode(), domainerrors.ErrValidationFailed.Message(), validator.FieldErrors(err))
}
