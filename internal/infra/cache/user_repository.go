package cache

import (
	"context"
	"log/slog"
	"time"

	"accounts/config"
	"accounts/internal/domain/entity"
	"accounts/internal/domain/repository"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

const accountKeyPrefix = "accounts:account:"

// accountRecord is the cached form of an account.
type accountRecord struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserRepositoryParams wraps the database repository registered under the name "accountStore".
type UserRepositoryParams struct {
	fx.In

	Store  repository.UserRepository `name:"accountStore"`
	Client *goredis.Client            `optional:"true"`
	Config *config.Config
	Logger *slog.Logger
}

// NewUserRepository returns the store unchanged when no Redis client is configured.
func NewUserRepository(params UserRepositoryParams) repository.UserRepository {
	if params.Client == nil {
		return params.Store
	}

	ttl := time.Duration(0)
	if params.Config != nil && params.Config.Redis != nil {
		ttl = params.Config.Redis.TTL
	}

	return newCachedUserRepository(params.Store, NewViewCache[accountRecord](params.Client, ttl, params.Logger))
}

// cachedUserRepository serves FindByID from the cache and drops the entry on every write to that account.
type cachedUserRepository struct {
	next  repository.UserRepository
	cache Store[accountRecord]
}

func newCachedUserRepository(next repository.UserRepository, cache Store[accountRecord]) repository.UserRepository {
	return &cachedUserRepository{next: next, cache: cache}
}

func (repo *cachedUserRepository) FindAll(ctx context.Context) ([]*entity.Account, error) {
	return repo.next.FindAll(ctx)
}

func (repo *cachedUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	key := accountKey(id)
	if record, ok := repo.cache.Get(ctx, key); ok {
		return record.toDomain(), nil
	}

	account, err := repo.next.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	repo.cache.Set(ctx, key, newAccountRecord(account))

	return account, nil
}

func (repo *cachedUserRepository) Create(ctx context.Context, account *entity.Account) error {
	return repo.next.Create(ctx, account)
}

func (repo *cachedUserRepository) Update(ctx context.Context, id uuid.UUID, name, email string) error {
	defer repo.cache.Delete(ctx, accountKey(id))

	return repo.next.Update(ctx, id, name, email)
}

func (repo *cachedUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	defer repo.cache.Delete(ctx, accountKey(id))

	return repo.next.Delete(ctx, id)
}

func (repo *cachedUserRepository) IsEmailTaken(ctx context.Context, email string) (bool, error) {
	return repo.next.IsEmailTaken(ctx, email)
}

func (repo *cachedUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	defer repo.cache.Delete(ctx, accountKey(id))

	return repo.next.UpdatePassword(ctx, id, passwordHash)
}

func accountKey(id uuid.UUID) string {
	return accountKeyPrefix + id.String()
}

func newAccountRecord(account *entity.Account) *accountRecord {
	return &accountRecord{
		ID:           account.ID,
		Name:         account.Name,
		Email:        account.Email,
		PasswordHash: account.PasswordHash,
		CreatedAt:    account.CreatedAt,
		UpdatedAt:    account.UpdatedAt,
	}
}

func (r *accountRecord) toDomain() *entity.Account {
	return &entity.Account{
		ID:           r.ID,
		Name:         r.Name,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
