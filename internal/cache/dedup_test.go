package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/north-cloud/lead-engine/internal/cache"
)

func newTestCache(t *testing.T, ttl time.Duration) (*cache.DedupCache, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)

	c, err := cache.NewDedupCache(cache.Config{
		Address: srv.Addr(),
		Timeout: time.Second,
		TTL:     ttl,
	})
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c, srv
}

func TestDedupCacheSeen(t *testing.T) {
	c, _ := newTestCache(t, time.Hour)
	ctx := context.Background()

	seen, err := c.Seen(ctx, "key1")
	require.NoError(t, err)
	assert.False(t, seen)

	require.NoError(t, c.MarkSeen(ctx, "key1"))

	seen, err = c.Seen(ctx, "key1")
	require.NoError(t, err)
	assert.True(t, seen)

	// Other keys stay unseen.
	seen, err = c.Seen(ctx, "key2")
	require.NoError(t, err)
	assert.False(t, seen)
}

func TestDedupCacheTTLExpiry(t *testing.T) {
	c, srv := newTestCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.MarkSeen(ctx, "key1"))
	srv.FastForward(2 * time.Minute)

	seen, err := c.Seen(ctx, "key1")
	require.NoError(t, err)
	assert.False(t, seen)
}

func TestDedupCacheConnectFailure(t *testing.T) {
	_, err := cache.NewDedupCache(cache.Config{
		Address: "127.0.0.1:1",
		Timeout: 100 * time.Millisecond,
	})
	require.Error(t, err)
}
