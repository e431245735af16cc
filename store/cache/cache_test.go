package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSetGetDelete(t *testing.T) {
	c := New(Config{DefaultTTL: time.Minute, CleanupInterval: time.Minute})
	defer c.Close()
	ctx := context.Background()

	_, ok := c.Get(ctx, "missing")
	require.False(t, ok)

	c.Set(ctx, "a", 42)
	v, ok := c.Get(ctx, "a")
	require.True(t, ok)
	require.Equal(t, 42, v)

	c.Delete(ctx, "a")
	_, ok = c.Get(ctx, "a")
	require.False(t, ok)
}

func TestExpiry(t *testing.T) {
	c := New(Config{DefaultTTL: 10 * time.Millisecond, CleanupInterval: time.Minute})
	defer c.Close()
	ctx := context.Background()

	c.Set(ctx, "a", "v")
	time.Sleep(20 * time.Millisecond)

	_, ok := c.Get(ctx, "a")
	require.False(t, ok)
}

func TestMaxItemsEviction(t *testing.T) {
	evicted := make(map[string]any)
	c := New(Config{
		DefaultTTL:      time.Minute,
		CleanupInterval: time.Minute,
		MaxItems:        2,
		OnEviction:      func(key string, value any) { evicted[key] = value },
	})
	defer c.Close()
	ctx := context.Background()

	c.Set(ctx, "a", 1)
	c.Set(ctx, "b", 2)
	c.Set(ctx, "c", 3)

	require.Equal(t, 2, c.Len())
	require.Len(t, evicted, 1)

	// Overwriting an existing key does not evict.
	c.Set(ctx, "c", 4)
	require.Equal(t, 2, c.Len())
	require.Len(t, evicted, 1)
}
