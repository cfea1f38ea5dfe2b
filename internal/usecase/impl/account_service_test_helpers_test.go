package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"accounts/config"
	"accounts/internal/domain/entity"
	"accounts/internal/domain/repository"
	mockRepo "accounts/internal/mocks/repository"
	mockSvc "accounts/internal/mocks/service"
	"accounts/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig(minLength, maxLength int) *config.Config {
	return &config.Config{
		Auth: &config.AuthConfig{
			BcryptCost: 4,
		},
		PasswordPolicy: &config.PasswordPolicyConfig{
			MinLength: minLength,
			MaxLength: maxLength,
		},
	}
}

// accountServiceFixtures holds all test dependencies for account service tests.
type accountServiceFixtures struct {
	service  usecase.AccountUsecase
	userRepo *mockRepo.MockUserRepository
	hasher   *mockSvc.MockPasswordHasher
}

func createTestAccountService(t *testing.T) accountServiceFixtures {
	userRepo := mockRepo.NewMockUserRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)

	service := NewAccountService(AccountServiceParams{
		UserRepo: userRepo,
		Hasher:   hasher,
		Config:   newTestConfig(6, 32),
		Logger:   newDiscardLogger(),
	})

	return accountServiceFixtures{
		service:  service,
		userRepo: userRepo,
		hasher:   hasher,
	}
}

// memoryUserRepository is an in-process UserRepository used by scenario tests.
type memoryUserRepository struct {
	mu       sync.Mutex
	order    []uuid.UUID
	accounts map[uuid.UUID]*entity.Account
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{accounts: make(map[uuid.UUID]*entity.Account)}
}

func (r *memoryUserRepository) FindAll(_ context.Context) ([]*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	accounts := make([]*entity.Account, 0, len(r.order))
	for _, id := range r.order {
		copied := *r.accounts[id]
		accounts = append(accounts, &copied)
	}

	return accounts, nil
}

func (r *memoryUserRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *account

	return &copied, nil
}

func (r *memoryUserRepository) Create(_ context.Context, account *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.accounts {
		if existing.Email == account.Email {
			return errors.New("duplicate email")
		}
	}

	account.ID = uuid.New()
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt
	copied := *account
	r.accounts[account.ID] = &copied
	r.order = append(r.order, account.ID)

	return nil
}

func (r *memoryUserRepository) Update(_ context.Context, id uuid.UUID, name, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	account.Name = name
	account.Email = email

	return nil
}

func (r *memoryUserRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.accounts, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)

			break
		}
	}

	return nil
}

func (r *memoryUserRepository) IsEmailTaken(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, account := range r.accounts {
		if account.Email == email {
			return true, nil
		}
	}

	return false, nil
}

func (r *memoryUserRepository) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	account.PasswordHash = passwordHash

	return nil
}
