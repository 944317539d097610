package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const keySetting = "setting:"

// absentMarker caches "key not set" so an unset setting does not hit the store on every play.
const absentMarker = "\x00absent"

// SettingsCache caches setting values in Redis.
type SettingsCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewSettingsCache returns a new SettingsCache.
func NewSettingsCache(rdb *redis.Client, ttl time.Duration) *SettingsCache {
	return &SettingsCache{rdb: rdb, ttl: ttl}
}

// Get returns the cached value. hit is false on a cache miss; found is false when
// the store was known not to have the key.
func (c *SettingsCache) Get(ctx context.Context, key string) (value string, found, hit bool, err error) {
	v, err := c.rdb.Get(ctx, keySetting+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, false, nil
	}
	if err != nil {
		return "", false, false, err
	}
	if v == absentMarker {
		return "", false, true, nil
	}
	return v, true, true, nil
}

// Set stores the lookup result for key, replacing whatever is cached.
func (c *SettingsCache) Set(ctx context.Context, key, value string, found bool) error {
	return c.rdb.Set(ctx, keySetting+key, encode(value, found), c.ttl).Err()
}

// Fill stores a value read from the store only if nothing is cached yet, so a slow
// reader cannot overwrite a value written by Set after its read. It reports whether
// the value was stored.
func (c *SettingsCache) Fill(ctx context.Context, key, value string, found bool) (bool, error) {
	return c.rdb.SetNX(ctx, keySetting+key, encode(value, found), c.ttl).Result()
}

func encode(value string, found bool) string {
	if !found {
		return absentMarker
	}
	return value
}

// Invalidate drops the cached value for key (cache invalidation on write).
func (c *SettingsCache) Invalidate(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, keySetting+key).Err()
}
