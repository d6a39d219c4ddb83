package cache

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time          { return f.t }
func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func newTestCache(capacity int, ttl time.Duration) (*LRUCache, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)}
	c := NewLRUCache(capacity, ttl)
	c.now = clock.now
	return c, clock
}

func TestLRUCache(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		actions func(t *testing.T, c *LRUCache, clock *fakeClock)
	}{
		{
			name: "set and get within ttl",
			actions: func(t *testing.T, c *LRUCache, clock *fakeClock) {
				c.Set(ctx, "vitamin-c-serum", []byte("1"))
				clock.advance(59 * time.Second)

				v, ok := c.Get(ctx, "vitamin-c-serum")
				require.True(t, ok)
				assert.Equal(t, []byte("1"), v)
			},
		},
		{
			name: "expired entry is a miss and gets dropped",
			actions: func(t *testing.T, c *LRUCache, clock *fakeClock) {
				c.Set(ctx, "a", []byte("1"))
				clock.advance(time.Minute + time.Second)

				_, ok := c.Get(ctx, "a")
				assert.False(t, ok)
				assert.Equal(t, 0, c.Size())
			},
		},
		{
			name: "least recently used goes first",
			actions: func(t *testing.T, c *LRUCache, _ *fakeClock) {
				c.Set(ctx, "a", []byte("1"))
				c.Set(ctx, "b", []byte("2"))
				c.Get(ctx, "a")
				c.Set(ctx, "c", []byte("3"))

				_, ok := c.Get(ctx, "b")
				assert.False(t, ok)
				_, ok = c.Get(ctx, "a")
				assert.True(t, ok)
				_, ok = c.Get(ctx, "c")
				assert.True(t, ok)
			},
		},
		{
			name: "overwrite refreshes ttl",
			actions: func(t *testing.T, c *LRUCache, clock *fakeClock) {
				c.Set(ctx, "a", []byte("1"))
				clock.advance(40 * time.Second)
				c.Set(ctx, "a", []byte("2"))
				clock.advance(40 * time.Second)

				v, ok := c.Get(ctx, "a")
				require.True(t, ok)
				assert.Equal(t, []byte("2"), v)
				assert.Equal(t, 1, c.Size())
			},
		},
		{
			name: "delete",
			actions: func(t *testing.T, c *LRUCache, _ *fakeClock) {
				c.Set(ctx, "a", []byte("1"))
				c.Delete(ctx, "a")
				c.Delete(ctx, "missing")

				_, ok := c.Get(ctx, "a")
				assert.False(t, ok)
				assert.Equal(t, 0, c.Size())
			},
		},
		{
			name: "purge drops only expired",
			actions: func(t *testing.T, c *LRUCache, clock *fakeClock) {
				c.Set(ctx, "old", []byte("1"))
				clock.advance(30 * time.Second)
				c.Set(ctx, "fresh", []byte("2"))
				clock.advance(31 * time.Second)

				assert.Equal(t, 1, c.purgeExpired())
				_, ok := c.Get(ctx, "fresh")
				assert.True(t, ok)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, clock := newTestCache(2, time.Minute)
			tt.actions(t, c, clock)
		})
	}
}

func TestLRUCache_Metrics(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(1, time.Minute)

	hits := testutil.ToFloat64(lookups.WithLabelValues("memory", "hit"))
	evicted := testutil.ToFloat64(evictions.WithLabelValues("capacity"))

	c.Set(ctx, "a", []byte("1"))
	c.Get(ctx, "a")
	c.Set(ctx, "b", []byte("2"))

	assert.Equal(t, hits+1, testutil.ToFloat64(lookups.WithLabelValues("memory", "hit")))
	assert.Equal(t, evicted+1, testutil.ToFloat64(evictions.WithLabelValues("capacity")))
}

func TestLRUCache_StartStopsWithContext(t *testing.T) {
	c := NewLRUCache(2, time.Millisecond*20)
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, c.Start(ctx))
	c.Set(ctx, "a", []byte("1"))

	assert.Eventually(t, func() bool { return c.Size() == 0 }, time.Second, 10*time.Millisecond)
	cancel()
}
