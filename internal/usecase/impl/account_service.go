// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"unicode/utf8"

	"accounts/config"
	deliverycontext "accounts/internal/delivery/context"
	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/repository"
	"accounts/internal/domain/service"
	"accounts/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	defaultPasswordMinLength = 6
	defaultPasswordMaxLength = 32
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	userRepo          repository.UserRepository
	hasher            service.PasswordHasher
	passwordMinLength int
	passwordMaxLength int
	logger            *slog.Logger
}

// AccountServiceParams holds dependencies for AccountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	Hasher   service.PasswordHasher
	Config   *config.Config
	Logger   *slog.Logger
}

// NewAccountService is the constructor for accountService.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	minLength, maxLength := defaultPasswordMinLength, defaultPasswordMaxLength
	if params.Config != nil && params.Config.PasswordPolicy != nil {
		if params.Config.PasswordPolicy.MinLength > 0 {
			minLength = params.Config.PasswordPolicy.MinLength
		}
		if params.Config.PasswordPolicy.MaxLength > 0 {
			maxLength = params.Config.PasswordPolicy.MaxLength
		}
	}

	logger := params.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &accountService{
		userRepo:          params.UserRepo,
		hasher:            params.Hasher,
		passwordMinLength: minLength,
		passwordMaxLength: maxLength,
		logger:            logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListAccounts returns every account projected to its public view.
func (srv *accountService) ListAccounts(ctx context.Context) ([]*entity.AccountView, error) {
	accounts, err := srv.userRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list accounts")
	}

	views := make([]*entity.AccountView, 0, len(accounts))
	for _, account := range accounts {
		views = append(views, account.View())
	}

	return views, nil
}

// GetAccount returns the public view of a single account.
func (srv *accountService) GetAccount(ctx context.Context, id uuid.UUID) (*entity.AccountView, error) {
	account, err := srv.findAccount(ctx, id)
	if err != nil {
		return nil, err
	}

	return account.View(), nil
}

// CreateAccount hashes the password and asks the store to persist a new account.
func (srv *accountService) CreateAccount(ctx context.Context, input *usecase.CreateAccountInput) (*entity.AccountView, error) {
	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password for new account", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	account := &entity.Account{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hashedPassword,
	}

	if err := srv.userRepo.Create(ctx, account); err != nil {
		srv.log(ctx).Warn("Store rejected account creation", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.WithStack(domainerrors.ErrAccountCreationFailed)
	}

	srv.log(ctx).Info("Account created", slog.Any("accountID", account.ID))

	return account.View(), nil
}

// UpdateAccount confirms the account exists and then persists the new name and email.
func (srv *accountService) UpdateAccount(ctx context.Context, id uuid.UUID, input *usecase.UpdateAccountInput) error {
	if _, err := srv.findAccount(ctx, id); err != nil {
		return err
	}

	if err := srv.userRepo.Update(ctx, id, input.Name, input.Email); err != nil {
		srv.log(ctx).Warn("Store rejected account update", slog.Any("accountID", id), slog.Any("error", err))

		return errors.WithStack(domainerrors.ErrAccountUpdateFailed)
	}

	return nil
}

// DeleteAccount confirms the account exists and then removes it.
func (srv *accountService) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	if _, err := srv.findAccount(ctx, id); err != nil {
		return err
	}

	if err := srv.userRepo.Delete(ctx, id); err != nil {
		srv.log(ctx).Warn("Store rejected account deletion", slog.Any("accountID", id), slog.Any("error", err))

		return errors.WithStack(domainerrors.ErrAccountDeleteFailed)
	}

	srv.log(ctx).Info("Account deleted", slog.Any("accountID", id))

	return nil
}

// IsEmailTaken passes the uniqueness query through to the store.
func (srv *accountService) IsEmailTaken(ctx context.Context, email string) (bool, error) {
	taken, err := srv.userRepo.IsEmailTaken(ctx, email)
	if err != nil {
		return false, errors.Wrap(err, "failed to check email")
	}

	return taken, nil
}

// ChangePassword replaces the password of an account after verifying the old one.
// The order of the checks below is part of the contract.
func (srv *accountService) ChangePassword(ctx context.Context, id uuid.UUID, input *usecase.ChangePasswordInput) error {
	account, err := srv.findAccount(ctx, id)
	if err != nil {
		return err
	}

	if !srv.hasher.Check(input.OldPassword, account.PasswordHash) {
		srv.log(ctx).Warn("Old password mismatch on password change", slog.Any("accountID", id))

		return errors.WithStack(domainerrors.ErrInvalidCredential)
	}

	if input.NewPassword != input.NewPasswordConfirm {
		return errors.WithStack(domainerrors.ErrPasswordMismatch)
	}

	length := utf8.RuneCountInString(input.NewPassword)
	if length < srv.passwordMinLength || length > srv.passwordMaxLength {
		return errors.Wrapf(domainerrors.ErrInvalidPasswordLength,
			"new password length must be between %d and %d characters", srv.passwordMinLength, srv.passwordMaxLength)
	}

	hashedPassword, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		srv.log(ctx).Error("Failed to hash new password", slog.Any("accountID", id), slog.Any("error", err))

		return errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	if err := srv.userRepo.UpdatePassword(ctx, id, hashedPassword); err != nil {
		return errors.Wrap(err, "failed to update password")
	}

	srv.log(ctx).Info("Password changed", slog.Any("accountID", id))

	return nil
}

// findAccount loads an account and maps a missing record to ErrAccountNotFound.
func (srv *accountService) findAccount(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	account, err := srv.userRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.WithStack(domainerrors.ErrAccountNotFound)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find account")
	}

	return account, nil
}
