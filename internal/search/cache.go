package search

import (
	"sync"
	"time"
)

// DataClass selects the TTL applied to a cached value. TTLs are per data
// class, not global.
type DataClass int

const (
	// ClassSearch caches full search results.
	ClassSearch DataClass = iota
	// ClassMarket caches background market-context data.
	ClassMarket
	// ClassArea caches derived area analyses.
	ClassArea
)

// TTL returns the validity window for the data class.
func (c DataClass) TTL() time.Duration {
	switch c {
	case ClassMarket:
		return 15 * time.Minute
	case ClassArea:
		return 2 * time.Hour
	default:
		return 5 * time.Minute
	}
}

type cacheEntry struct {
	value   interface{}
	expires time.Time
}

// Cache is a TTL-boxed store keyed by canonical filter signature. It is safe
// for concurrent use. Reads never extend expiration.
type Cache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	now     func() time.Time
}

// NewCache creates an empty cache using the real clock.
func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// SetClock overrides the cache clock for tests.
func (c *Cache) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// Get returns the cached value for key if it has not expired.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().After(e.expires) {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

// Set stores a value under key with the TTL of its data class.
func (c *Cache) Set(key string, class DataClass, v interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{value: v, expires: c.now().Add(class.TTL())}
}

// Purge drops every expired entry and returns how many were removed.
func (c *Cache) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for k, e := range c.entries {
		if now.After(e.expires) {
			delete(c.entries, k)
			removed++
		}
	}
	return removed
}

// Len returns the number of entries, including any not yet purged.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
