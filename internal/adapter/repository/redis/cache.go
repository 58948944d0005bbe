package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned by Get when nothing is stored under the key.
var ErrCacheMiss = errors.New("cache miss")

// Cache is the Redis-backed usecase.Cache holding serialized schedules.
// Keys live under gocalc:cache:.
type Cache struct {
	client *redis.Client
	ns     string
}

// NewCache creates a Cache on client.
func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client, ns: keyPrefix + "cache:"}
}

func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.client.Get(ctx, c.ns+key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return nil, ErrCacheMiss
	case err != nil:
		return nil, fmt.Errorf("cache get %s: %w", key, err)
	}
	return data, nil
}

func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.ns+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.ns+key).Err()
}
