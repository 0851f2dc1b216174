// ABOUTME: In-memory TTL cache backing attempt sessions and upstream probe results
// ABOUTME: Thread-safe over sync.Map; expired entries are dropped lazily and by a background sweep

package cache

import (
	"log/slog"
	"sync"
	"time"
)

const sweepInterval = time.Minute

type record struct {
	value     interface{}
	expiresAt time.Time
}

// Cache holds values for a bounded time. The zero TTL semantics are "use the
// default given at construction"; per-entry TTLs go through SetWithTTL.
type Cache struct {
	store sync.Map
	ttl   time.Duration
}

func New(ttl time.Duration) *Cache {
	c := &Cache{ttl: ttl}
	go c.sweepLoop()
	return c
}

// Get returns the live value for key. Expired entries read as absent and are
// removed on the way out.
func (c *Cache) Get(key string) (interface{}, bool) {
	val, ok := c.store.Load(key)
	if !ok {
		slog.Debug("Cache miss", "key", key)
		return nil, false
	}

	rec := val.(record)
	if time.Now().After(rec.expiresAt) {
		c.store.Delete(key)
		slog.Debug("Cache expired", "key", key)
		return nil, false
	}

	slog.Debug("Cache hit", "key", key)
	return rec.value, true
}

// Set stores a value with the default TTL.
func (c *Cache) Set(key string, value interface{}) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores a value with a custom TTL.
func (c *Cache) SetWithTTL(key string, value interface{}, ttl time.Duration) {
	c.store.Store(key, record{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	})
	slog.Debug("Cache set", "key", key, "ttl", ttl)
}

// Clear removes one entry immediately.
func (c *Cache) Clear(key string) {
	c.store.Delete(key)
}

// sweepLoop periodically removes expired entries so abandoned attempt
// sessions don't accumulate between reads.
func (c *Cache) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		c.store.Range(func(key, val interface{}) bool {
			if now.After(val.(record).expiresAt) {
				c.store.Delete(key)
			}
			return true
		})
	}
}
