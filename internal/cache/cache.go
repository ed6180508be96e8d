// Package cache keeps recently extracted insights in Redis so repeated
// lookups skip the database.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"brandscope/internal/model"
)

const keyPrefix = "brandscope:insights:"

// DefaultTTL applies when New is given a non-positive ttl.
const DefaultTTL = 60 * time.Minute

// Cache is a read-through cache of BrandInsights keyed by normalized
// store URL.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(rdb *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{rdb: rdb, ttl: ttl}
}

// Key returns the Redis key for a store URL.
func Key(storeURL string) string {
	return keyPrefix + storeURL
}

// Get returns the cached record. A miss is reported as (nil, false, nil).
func (c *Cache) Get(ctx context.Context, storeURL string) (*model.BrandInsights, bool, error) {
	raw, err := c.rdb.Get(ctx, Key(storeURL)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get: %w", err)
	}

	var out model.BrandInsights
	if err := json.Unmarshal(raw, &out); err != nil {
		// A record we cannot decode is as good as missing.
		_ = c.rdb.Del(ctx, Key(storeURL)).Err()
		return nil, false, nil
	}
	return &out, true, nil
}

// Set stores in under its StoreURL with the cache TTL.
func (c *Cache) Set(ctx context.Context, in *model.BrandInsights) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.rdb.Set(ctx, Key(in.StoreURL), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete evicts the record for storeURL. Deleting a missing key is not
// an error.
func (c *Cache) Delete(ctx context.Context, storeURL string) error {
	if err := c.rdb.Del(ctx, Key(storeURL)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}
