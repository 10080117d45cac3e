package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// CachedPresigner memoizes read URLs in Redis for half their lifetime, so a
// cached URL always has at least ttl/2 of validity left when served.
type CachedPresigner struct {
	next   Presigner
	client *redis.Client
	prefix string
}

func NewCachedPresigner(next Presigner, client *redis.Client, prefix string) *CachedPresigner {
	if prefix == "" {
		prefix = "presign"
	}
	return &CachedPresigner{next: next, client: client, prefix: prefix}
}

func (c *CachedPresigner) Presign(ctx context.Context, req PresignRequest) (string, error) {
	if req.Op != OpGetObject {
		return c.next.Presign(ctx, req)
	}

	cacheKey := fmt.Sprintf("%s:%s:%d:%s", c.prefix, req.Op, int64(req.TTL.Seconds()), req.Key)
	cached, err := c.client.Get(ctx, cacheKey).Result()
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, redis.Nil) {
		slog.Warn("presign cache read failed", "key", req.Key, "error", err)
	}

	signed, err := c.next.Presign(ctx, req)
	if err != nil {
		return "", err
	}

	if err := c.client.Set(ctx, cacheKey, signed, req.TTL/2).Err(); err != nil {
		slog.Warn("presign cache write failed", "key", req.Key, "error", err)
	}
	return signed, nil
}

// NewRedisClient connects using a redis:// URL and verifies the connection.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}
