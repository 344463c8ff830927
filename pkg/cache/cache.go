package cache

import (
	"sync"
	"time"
)

type entry struct {
	value     interface{}
	expiresAt time.Time
}

// Cache is an in-process key-value store with per-entry expiry. Expired
// entries are evicted lazily on lookup; there is no size bound or LRU policy.
// Entries do not survive a process restart.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
}

// New creates an empty cache
func New() *Cache {
	return &Cache{
		entries: make(map[string]entry),
	}
}

// Set stores a value under key for the given ttl. A non-positive ttl
// stores nothing.
func (c *Cache) Set(key string, value interface{}, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
}

// Get returns the value stored under key. An entry past its expiry behaves
// identically to a key that was never set.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

// Delete removes an entry regardless of expiry
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Len returns the number of entries currently held, including entries that
// expired but have not been looked up since.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
