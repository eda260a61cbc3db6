package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*URLCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewURLCache(client, time.Hour), mr
}

func TestGetMiss(t *testing.T) {
	c, _ := newTestCache(t)

	url, found, err := c.Get(context.Background(), "HELLO")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, "", url)
}

func TestSetGet(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "HELLO", "https://example.com"))
	url, found, err := c.Get(ctx, "HELLO")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "https://example.com", url)

	assert.Equal(t, time.Hour, mr.TTL("url:HELLO"))
}

func TestExpiry(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "HELLO", "https://example.com"))
	mr.FastForward(2 * time.Hour)

	_, found, err := c.Get(ctx, "HELLO")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetError(t *testing.T) {
	c, mr := newTestCache(t)
	mr.Close()

	_, _, err := c.Get(context.Background(), "HELLO")
	assert.Error(t, err)
}
