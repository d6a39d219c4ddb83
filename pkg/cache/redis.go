package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache shares cached entries between replicas. Failures degrade to
// cache misses.
type RedisCache struct {
	client *redis.Client
	logger *slog.Logger
	prefix string
	ttl    time.Duration
}

func NewRedisCache(logger *slog.Logger, client *redis.Client, prefix string, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: client,
		logger: logger.With(slog.String("cache", "redis")),
		prefix: prefix,
		ttl:    ttl,
	}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := c.client.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		lookups.WithLabelValues("redis", "miss").Inc()
		return nil, false
	}
	if err != nil {
		lookups.WithLabelValues("redis", "error").Inc()
		c.logger.WarnContext(ctx, "redis get failed", slog.String("key", key), slog.Any("error", err))
		return nil, false
	}
	lookups.WithLabelValues("redis", "hit").Inc()
	return data, true
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte) {
	if err := c.client.Set(ctx, c.key(key), value, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "redis set failed", slog.String("key", key), slog.Any("error", err))
	}
}

func (c *RedisCache) Delete(ctx context.Context, key string) {
	if err := c.client.Del(ctx, c.key(key)).Err(); err != nil {
		c.logger.WarnContext(ctx, "redis delete failed", slog.String("key", key), slog.Any("error", err))
	}
}

// Start verifies the connection so a misconfigured redis fails start-up.
func (c *RedisCache) Start(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) key(key string) string {
	return c.prefix + ":" + key
}
