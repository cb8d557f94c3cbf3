// Package cache provides a small in-process TTL cache. The catalog service
// owns one instance for aggregated catalog snapshots; it is injected rather
// than process-global so the service stays testable in isolation.
package cache

import (
	"sync"
	"time"
)

type item struct {
	value      interface{}
	expiration int64 // unix nanos
}

// Cache is a concurrency-safe map with per-entry expiry. Concurrent writers
// may race to repopulate the same key; repopulation is idempotent so the
// last write winning is harmless.
type Cache struct {
	mu    sync.RWMutex
	items map[string]item
	ttl   time.Duration
}

// New creates a cache with the given default TTL and starts the background
// janitor that evicts expired entries.
func New(defaultTTL time.Duration) *Cache {
	c := &Cache{
		items: make(map[string]item),
		ttl:   defaultTTL,
	}
	go c.janitor()
	return c
}

// Set stores a value under key with the default TTL.
func (c *Cache) Set(key string, value interface{}) {
	c.SetTTL(key, value, c.ttl)
}

// SetTTL stores a value with an explicit TTL.
func (c *Cache) SetTTL(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = item{
		value:      value,
		expiration: time.Now().Add(ttl).UnixNano(),
	}
}

// Get returns the live value under key, if any.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	it, ok := c.items[key]
	if !ok || time.Now().UnixNano() > it.expiration {
		return nil, false
	}
	return it.value, true
}

// Delete removes one key.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// DeletePrefix removes every key starting with prefix. Used to invalidate
// all catalog snapshots after an admin write.
func (c *Cache) DeletePrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.items {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			delete(c.items, key)
		}
	}
}

// Len returns the number of stored entries, expired or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *Cache) janitor() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		now := time.Now().UnixNano()
		c.mu.Lock()
		for key, it := range c.items {
			if now > it.expiration {
				delete(c.items, key)
			}
		}
		c.mu.Unlock()
	}
}
