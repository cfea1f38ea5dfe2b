package cache

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

	"github.com/google/uuid"
	"github.com/pkg/errors"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

// memoryStore is an in-process Store used in place of Redis.
type memoryStore[T any] struct {
	mu      sync.Mutex
	entries map[string]T
	deletes []string
}

func newMemoryStore[T any]() *memoryStore[T] {
	return &memoryStore[T]{entries: make(map[string]T)}
}

func (s *memoryStore[T]) Get(_ context.Context, key string) (*T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.entries[key]
	if !ok {
		return nil, false
	}

	return &v, true
}

func (s *memoryStore[T]) Set(_ context.Context, key string, value *T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = *value
}

func (s *memoryStore[T]) Delete(_ context.Context, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	s.deletes = append(s.deletes, key)
}

func newTestAccount() *entity.Account {
	return &entity.Account{
		ID:           uuid.New(),
		Name:         "Alice",
		Email:        "alice@x.com",
		PasswordHash: "hash",
		CreatedAt:    time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		UpdatedAt:    time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestCachedUserRepository_FindByIDReadsThrough(t *testing.T) {
	store := mockRepo.NewMockUserRepository(t)
	cache := newMemoryStore[accountRecord]()
	repo := newCachedUserRepository(store, cache)

	ctx := context.Background()
	account := newTestAccount()

	// Only the first lookup reaches the store.
	store.EXPECT().FindByID(ctx, account.ID).Return(account, nil).Once()

	first, err := repo.FindByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, account, first)

	second, err := repo.FindByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, account, second)
	assert.NotSame(t, first, second)
}

func TestCachedUserRepository_NotFoundIsNotCached(t *testing.T) {
	store := mockRepo.NewMockUserRepository(t)
	cache := newMemoryStore[accountRecord]()
	repo := newCachedUserRepository(store, cache)

	ctx := context.Background()
	id := uuid.New()

	store.EXPECT().FindByID(ctx, id).Return(nil, repository.ErrUserNotFound).Twice()

	for range 2 {
		_, err := repo.FindByID(ctx, id)
		assert.True(t, errors.Is(err, repository.ErrUserNotFound))
	}
	assert.Empty(t, cache.entries)
}

func TestCachedUserRepository_WritesInvalidate(t *testing.T) {
	ctx := context.Background()
	account := newTestAccount()
	key := accountKey(account.ID)

	tests := []struct {
		name  string
		setup func(store *mockRepo.MockUserRepository)
		write func(repo repository.UserRepository) error
	}{
		{
			name: "update",
			setup: func(store *mockRepo.MockUserRepository) {
				store.EXPECT().Update(ctx, account.ID, "B", "b@x.com").Return(nil)
			},
			write: func(repo repository.UserRepository) error { return repo.Update(ctx, account.ID, "B", "b@x.com") },
		},
		{
			name: "delete",
			setup: func(store *mockRepo.MockUserRepository) {
				store.EXPECT().Delete(ctx, account.ID).Return(nil)
			},
			write: func(repo repository.UserRepository) error { return repo.Delete(ctx, account.ID) },
		},
		{
			name: "update password",
			setup: func(store *mockRepo.MockUserRepository) {
				store.EXPECT().UpdatePassword(ctx, account.ID, "new-hash").Return(nil)
			},
			write: func(repo repository.UserRepository) error { return repo.UpdatePassword(ctx, account.ID, "new-hash") },
		},
		{
			name: "failed update",
			setup: func(store *mockRepo.MockUserRepository) {
				store.EXPECT().Update(ctx, account.ID, "B", "b@x.com").Return(errors.New("db down"))
			},
			write: func(repo repository.UserRepository) error { return repo.Update(ctx, account.ID, "B", "b@x.com") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := mockRepo.NewMockUserRepository(t)
			cache := newMemoryStore[accountRecord]()
			cache.Set(ctx, key, newAccountRecord(account))
			repo := newCachedUserRepository(store, cache)

			tt.setup(store)
			_ = tt.write(repo)

			_, ok := cache.Get(ctx, key)
			assert.False(t, ok)
			assert.Equal(t, []string{key}, cache.deletes)
		})
	}
}

func TestCachedUserRepository_PassThrough(t *testing.T) {
	store := mockRepo.NewMockUserRepository(t)
	cache := newMemoryStore[accountRecord]()
	repo := newCachedUserRepository(store, cache)

	ctx := context.Background()
	account := newTestAccount()

	store.EXPECT().FindAll(ctx).Return([]*entity.Account{account}, nil)
	store.EXPECT().Create(ctx, account).Return(nil)
	store.EXPECT().IsEmailTaken(ctx, "alice@x.com").Return(true, nil)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, repo.Create(ctx, account))

	taken, err := repo.IsEmailTaken(ctx, "alice@x.com")
	require.NoError(t, err)
	assert.True(t, taken)

	assert.Empty(t, cache.entries)
}

func TestNewUserRepository_WithoutClientReturnsStore(t *testing.T) {
	store := mockRepo.NewMockUserRepository(t)

	repo := NewUserRepository(UserRepositoryParams{Store: store, Logger: slog.Default()})

	assert.Same(t, store, repo)
}

func TestNewClient_DisabledReturnsNil(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	for _, cfg := range []*config.Config{{}, {Redis: &config.RedisConfig{Enabled: false, Addr: "localhost:6379"}}} {
		client := NewClient(ClientParams{Lifecycle: fxtest.NewLifecycle(t), Config: cfg, Logger: logger})
		assert.Nil(t, client)
	}
}

func TestViewCache_UnreachableRedisDegradesToMiss(t *testing.T) {
	client := goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	cache := NewViewCache[accountRecord](client, time.Minute, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	cache.Set(ctx, "k", newAccountRecord(newTestAccount()))
	_, ok := cache.Get(ctx, "k")
	assert.False(t, ok)
	cache.Delete(ctx, "k")
}
