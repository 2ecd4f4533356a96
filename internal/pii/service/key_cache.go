package service

import (
	"encoding/hex"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// TTLKeyCache implements KeyCache on top of an in-memory cache with
// per-entry expiry and no janitor goroutine: expired entries are ignored at
// read time and reclaimed lazily, never swept.
//
// One instance is shared process-wide across all operations; it is created
// once at startup and never torn down mid-process. Entries for different
// keys are independent; concurrent reads of the same key are safe, and a
// concurrent read and write may observe either the old or new material but
// never a torn value.
type TTLKeyCache struct {
	entries *gocache.Cache
}

// NewKeyCache creates an empty key cache.
func NewKeyCache() *TTLKeyCache {
	// Cleanup interval 0 disables the janitor; expiry is read-time only.
	return &TTLKeyCache{entries: gocache.New(gocache.NoExpiration, 0)}
}

// Get returns cached key material if present and unexpired. Expired entries
// are indistinguishable from absent entries.
func (c *TTLKeyCache) Get(keyID []byte) ([]byte, bool) {
	v, ok := c.entries.Get(hex.EncodeToString(keyID))
	if !ok {
		return nil, false
	}

	material, ok := v.([]byte)
	if !ok {
		return nil, false
	}

	// Copy so callers can never alias or zero the cached material.
	return append([]byte(nil), material...), true
}

// Put inserts or overwrites the entry, expiring ttl from now.
// A non-positive ttl disables caching for the entry: it would be expired
// before any read could observe it.
func (c *TTLKeyCache) Put(keyID, material []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	c.entries.Set(hex.EncodeToString(keyID), append([]byte(nil), material...), ttl)
}
