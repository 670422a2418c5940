package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"errors"        // Error inspection
	"strconv"       // Version formatting
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Structured logging
)

// catalogVersionKey is bumped on every lamp edit so stale catalog pages are never read
const catalogVersionKey = "catalog:version"

// Cache is a read-through JSON cache on Redis. A nil *Cache or a Cache
// without a client is valid and caches nothing.
type Cache struct {
	rdb *redis.Client // Redis client
	ttl time.Duration // Time to live of every entry
}

// NewCache wraps a Redis client
func NewCache(rdb *redis.Client, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, ttl: ttl}
}

func (c *Cache) enabled() bool {
	return c != nil && c.rdb != nil
}

// Get retrieves a value from Redis and unmarshals it into dest
func (c *Cache) Get(ctx context.Context, key string, dest any) (bool, error) {
	if !c.enabled() {
		return false, nil
	}
	val, err := c.rdb.Get(ctx, key).Result() // Get value from Redis
	if errors.Is(err, redis.Nil) {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	return true, json.Unmarshal([]byte(val), dest) // Unmarshal JSON into dest
}

// Set stores value as JSON with the cache TTL
func (c *Cache) Set(ctx context.Context, key string, value any) error {
	if !c.enabled() {
		return nil
	}
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return err // Return error if marshaling fails
	}
	return c.rdb.Set(ctx, key, b, c.ttl).Err() // Set value in Redis with TTL
}

// CatalogKey namespaces key under the current catalog version
func (c *Cache) CatalogKey(ctx context.Context, key string) string {
	version := "0"
	if c.enabled() {
		v, err := c.rdb.Get(ctx, catalogVersionKey).Result()
		if err == nil {
			version = v
		}
	}
	return "catalog:v" + version + ":" + key
}

// InvalidateCatalog makes every cached catalog entry unreachable
func (c *Cache) InvalidateCatalog(ctx context.Context) {
	if !c.enabled() {
		return
	}
	if err := c.rdb.Incr(ctx, catalogVersionKey).Err(); err != nil {
		logrus.WithField("error", err.Error()).Warn("Failed to invalidate catalog cache")
	}
}

// LampKey is the cache key of one lamp detail
func LampKey(id uint) string {
	return "lamp:" + strconv.FormatUint(uint64(id), 10)
}
