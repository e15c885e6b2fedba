package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache stores entries in process memory with TTL expiry. The
// go-cache janitor sweeps expired entries periodically; between sweeps
// a stale entry simply reads as a miss.
type MemoryCache struct {
	store *gocache.Cache
}

// NewMemoryCache returns a memory cache whose janitor runs every
// cleanupInterval. A ttl of 0 on Set falls back to defaultTTL.
func NewMemoryCache(defaultTTL, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{store: gocache.New(defaultTTL, cleanupInterval)}
}

func (c *MemoryCache) Get(key string) ([]byte, bool) {
	val, found := c.store.Get(key)
	if !found {
		return nil, false
	}
	return val.([]byte), true
}

func (c *MemoryCache) Set(key string, value []byte, ttl time.Duration) error {
	c.store.Set(key, value, ttl)
	return nil
}

func (c *MemoryCache) Delete(key string) error {
	c.store.Delete(key)
	return nil
}

func (c *MemoryCache) Clear() error {
	c.store.Flush()
	return nil
}
