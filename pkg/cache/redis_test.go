package cache

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { client.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRedisCache(logger, client, "products", time.Minute), mr
}

func TestRedisCache_SetGet(t *testing.T) {
	c, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, c.Start(ctx))

	c.Set(ctx, "hydrating-serum", []byte("payload"))

	got, ok := c.Get(ctx, "hydrating-serum")
	require.True(t, ok)
	assert.Equal(t, []byte("payload"), got)

	assert.True(t, mr.Exists("products:hydrating-serum"))
	assert.Equal(t, time.Minute, mr.TTL("products:hydrating-serum"))
}

func TestRedisCache_Miss(t *testing.T) {
	c, _ := setupTestRedis(t)

	_, ok := c.Get(context.Background(), "missing")
	assert.False(t, ok)
}

func TestRedisCache_Expired(t *testing.T) {
	c, mr := setupTestRedis(t)
	ctx := context.Background()

	c.Set(ctx, "a", []byte("1"))
	mr.FastForward(2 * time.Minute)

	_, ok := c.Get(ctx, "a")
	assert.False(t, ok)
}

func TestRedisCache_Delete(t *testing.T) {
	c, mr := setupTestRedis(t)
	ctx := context.Background()

	c.Set(ctx, "a", []byte("1"))
	c.Delete(ctx, "a")

	assert.False(t, mr.Exists("products:a"))
}

func TestRedisCache_ServerDownIsMiss(t *testing.T) {
	c, mr := setupTestRedis(t)
	ctx := context.Background()

	c.Set(ctx, "a", []byte("1"))
	mr.Close()

	_, ok := c.Get(ctx, "a")
	assert.False(t, ok)
	assert.Error(t, c.Start(ctx))
}
