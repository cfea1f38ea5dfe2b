package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"accounts/internal/errors"

	goredis "github.com/redis/go-redis/v9"
)

// Store is the subset of cache behaviour the repository decorator needs.
type Store[T any] interface {
	Get(ctx context.Context, key string) (*T, bool)
	Set(ctx context.Context, key string, value *T)
	Delete(ctx context.Context, key string)
}

// ViewCache is a JSON-backed Redis cache bound to one value type.
// Failures are logged and treated as misses.
type ViewCache[T any] struct {
	client *goredis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewViewCache[T any](client *goredis.Client, ttl time.Duration, logger *slog.Logger) *ViewCache[T] {
	return &ViewCache[T]{client: client, ttl: ttl, logger: logger}
}

func (c *ViewCache[T]) Get(ctx context.Context, key string) (*T, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			c.logger.WarnContext(ctx, "Cache read failed", slog.String("key", key), slog.Any("error", err))
		}

		return nil, false
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		c.logger.WarnContext(ctx, "Cache entry corrupt", slog.String("key", key), slog.Any("error", err))

		return nil, false
	}

	return &v, true
}

func (c *ViewCache[T]) Set(ctx context.Context, key string, value *T) {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.WarnContext(ctx, "Cache marshal failed", slog.String("key", key), slog.Any("error", err))

		return
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "Cache write failed", slog.String("key", key), slog.Any("error", err))
	}
}

func (c *ViewCache[T]) Delete(ctx context.Context, key string) {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.logger.WarnContext(ctx, "Cache delete failed", slog.String("key", key), slog.Any("error", err))
	}
}
