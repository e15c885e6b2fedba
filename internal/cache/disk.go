package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DiskCache persists entries as JSON files, one per key, so probe
// results survive across CLI runs. It serves as the second layer of
// LayeredCache when a cache directory is configured.
type DiskCache struct {
	dir        string
	defaultTTL time.Duration
}

// NewDiskCache returns a disk cache rooted at dir. The directory is
// created lazily on first write.
func NewDiskCache(dir string, defaultTTL time.Duration) *DiskCache {
	return &DiskCache{dir: dir, defaultTTL: defaultTTL}
}

type diskRecord struct {
	Value   []byte    `json:"value"`
	Expires time.Time `json:"expires"`
}

// Get reads the entry for key. Expired files are removed on read.
func (c *DiskCache) Get(key string) ([]byte, bool) {
	path := c.entryPath(key)

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	var rec diskRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		// Corrupt entry, drop it
		_ = os.Remove(path)
		return nil, false
	}

	if time.Now().After(rec.Expires) {
		_ = os.Remove(path)
		return nil, false
	}
	return rec.Value, true
}

// Set writes the entry for key. The file is written to a temp name
// and renamed so concurrent readers never see a partial record.
func (c *DiskCache) Set(key string, value []byte, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.defaultTTL
	}

	raw, err := json.Marshal(diskRecord{Value: value, Expires: time.Now().Add(ttl)})
	if err != nil {
		return fmt.Errorf("marshal cache record: %w", err)
	}

	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	path := c.entryPath(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write cache file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename cache file: %w", err)
	}
	return nil
}

func (c *DiskCache) Delete(key string) error {
	return os.Remove(c.entryPath(key))
}

func (c *DiskCache) Clear() error {
	return os.RemoveAll(c.dir)
}

func (c *DiskCache) entryPath(key string) string {
	return filepath.Join(c.dir, key+".cache")
}
