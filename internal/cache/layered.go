package cache

import "time"

// LayeredCache fronts a disk cache with a memory cache. Hits promote
// disk entries into memory so repeated lookups within one run stay
// cheap, while results still survive across CLI runs.
type LayeredCache struct {
	memory Cache
	disk   Cache
}

// NewLayeredCache builds a memory-over-disk cache. memoryTTL bounds
// promoted entries; diskTTL applies to writes that pass a zero TTL.
func NewLayeredCache(memoryTTL time.Duration, diskDir string, diskTTL time.Duration) *LayeredCache {
	return &LayeredCache{
		memory: NewMemoryCache(memoryTTL, 10*time.Minute),
		disk:   NewDiskCache(diskDir, diskTTL),
	}
}

func (c *LayeredCache) Get(key string) ([]byte, bool) {
	if val, found := c.memory.Get(key); found {
		return val, true
	}
	if val, found := c.disk.Get(key); found {
		_ = c.memory.Set(key, val, 0)
		return val, true
	}
	return nil, false
}

// Set writes through to both layers.
func (c *LayeredCache) Set(key string, value []byte, ttl time.Duration) error {
	if err := c.memory.Set(key, value, ttl); err != nil {
		return err
	}
	return c.disk.Set(key, value, ttl)
}

func (c *LayeredCache) Delete(key string) error {
	_ = c.memory.Delete(key)
	return c.disk.Delete(key)
}

func (c *LayeredCache) Clear() error {
	_ = c.memory.Clear()
	return c.disk.Clear()
}
