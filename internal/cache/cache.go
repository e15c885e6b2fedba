package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is a byte-oriented store with per-entry TTLs. Expired entries
// read as misses.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a stable cache key from a URL. The hash keeps arbitrary
// URLs filesystem-safe for the disk backend; the prefix versions the
// entry format.
func Key(url string) string {
	sum := sha256.Sum256([]byte(url))
	return "citecheck:v1:" + hex.EncodeToString(sum[:])
}
