// Package cache provides a small TTL cache for rendered responses.
package cache

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type entry struct {
	value     []byte
	createdAt time.Time
}

// Cache stores computed byte payloads for a fixed short TTL. Concurrent
// lookups for the same key share one computation via singleflight, so a
// burst of identical requests produces a single upstream round trip.
type Cache struct {
	ttl   time.Duration
	group singleflight.Group
	now   func() time.Time

	mu      sync.RWMutex
	entries map[string]entry
}

// New creates a cache with the given TTL.
func New(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

// GetOrCompute returns the cached value for key if it is still fresh,
// otherwise invokes compute, stores its result, and returns it. Errors
// are never cached. The second return value reports a cache hit.
func (c *Cache) GetOrCompute(key string, compute func() ([]byte, error)) ([]byte, bool, error) {
	if value, ok := c.lookup(key); ok {
		return value, true, nil
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		// Another in-flight caller may have populated the entry while
		// we waited on the flight group.
		if value, ok := c.lookup(key); ok {
			return value, nil
		}

		value, err := compute()
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[key] = entry{value: value, createdAt: c.now()}
		c.mu.Unlock()

		return value, nil
	})
	if err != nil {
		return nil, false, err
	}

	return v.([]byte), false, nil
}

func (c *Cache) lookup(key string) ([]byte, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if c.now().Sub(e.createdAt) >= c.ttl {
		// Expired entries are treated as absent and dropped on the
		// next write; never served.
		c.mu.Lock()
		if current, still := c.entries[key]; still && current.createdAt.Equal(e.createdAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false
	}
	return e.value, true
}
