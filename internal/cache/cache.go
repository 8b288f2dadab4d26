// Package cache provides an in-memory TTL cache for computed response bodies.
package cache

import (
	"sync"
	"time"
)

type entry struct {
	payload    []byte
	insertedAt time.Time
}

// Cache maps query keys to fully marshaled response payloads. Entries expire
// a fixed TTL after insertion; expiry is checked on read rather than swept.
// Concurrent writers for the same key may both compute the payload; the
// result is derived purely from the key, so the redundant write is harmless.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	clock   func() time.Time
}

// New creates a Cache whose entries live for ttl after insertion.
func New(ttl time.Duration) *Cache {
	return &Cache{
		entries: make(map[string]entry),
		ttl:     ttl,
		clock:   time.Now,
	}
}

// Get returns the payload stored under key, or false if the key is absent or
// its entry has expired. Expired entries are removed on read.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if c.clock().Sub(e.insertedAt) > c.ttl {
		c.mu.Lock()
		// Re-check under the write lock: a concurrent Set may have refreshed it.
		if cur, ok := c.entries[key]; ok && c.clock().Sub(cur.insertedAt) > c.ttl {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false
	}

	return e.payload, true
}

// Set stores payload under key, replacing any existing entry.
func (c *Cache) Set(key string, payload []byte) {
	c.mu.Lock()
	c.entries[key] = entry{payload: payload, insertedAt: c.clock()}
	c.mu.Unlock()
}

// InvalidateAll drops every entry immediately.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
}

// Len reports the number of stored entries, including any not yet evicted
// expired ones.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
