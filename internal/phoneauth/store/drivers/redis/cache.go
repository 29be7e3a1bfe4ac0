package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/aussiebroadwan/phoneauth/internal/phoneauth/store"
)

// Cache namespaces every key under phoneauth:.
type Cache struct {
	client *goredis.Client
}

func (c *Cache) Get(ctx context.Context, key string) (string, error) {
	v, err := c.client.Get(ctx, keyPrefix+key).Result()
	if err != nil {
		return "", wrap("cache get", err)
	}
	return v, nil
}

func (c *Cache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := c.client.Set(ctx, keyPrefix+key, value, ttl).Err(); err != nil {
		return wrap("cache set", err)
	}
	return nil
}

func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = keyPrefix + k
	}
	if err := c.client.Del(ctx, full...).Err(); err != nil {
		return wrap("cache delete", err)
	}
	return nil
}

var _ store.Cache = (*Cache)(nil)
