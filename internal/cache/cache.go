// Package cache keeps resolved short URLs in redis so repeat lookups skip the shard.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "url:"

type URLCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewURLCache(client redis.UniversalClient, ttl time.Duration) *URLCache {
	return &URLCache{
		client: client,
		ttl:    ttl,
	}
}

// NewRedisClient connects to a single redis instance.
func NewRedisClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr})
}

// Get returns the cached URL for urlID. A miss is reported as found == false with a nil error.
func (c *URLCache) Get(ctx context.Context, urlID string) (string, bool, error) {
	url, err := c.client.Get(ctx, keyPrefix+urlID).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return url, true, nil
}

func (c *URLCache) Set(ctx context.Context, urlID, url string) error {
	return c.client.Set(ctx, keyPrefix+urlID, url, c.ttl).Err()
}
