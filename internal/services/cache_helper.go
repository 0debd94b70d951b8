package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/Sophavisnuka/real-estate-agency/internal/cache"
)

// cached returns the entry under key, or calls load and stores its result.
// Cache failures are logged and never fail the request.
func cached[T any](ctx context.Context, c cache.Cache, key string, ttl time.Duration, load func() (T, error)) (T, error) {
	var out T
	if hit, err := c.Get(ctx, key, &out); err != nil {
		slog.Warn("cache read failed", "key", key, "error", err)
	} else if hit {
		return out, nil
	}

	out, err := load()
	if err != nil {
		return out, err
	}

	if err := c.Set(ctx, key, out, ttl); err != nil {
		slog.Warn("cache write failed", "key", key, "error", err)
	}
	return out, nil
}

func invalidate(ctx context.Context, c cache.Cache, keys ...string) {
	if err := c.Delete(ctx, keys...); err != nil {
		slog.Warn("cache invalidation failed", "keys", keys, "error", err)
	}
}
