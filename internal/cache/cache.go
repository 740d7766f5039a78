// Package cache provides thread-safe generic caching with idle-based pruning.
package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value    V
	lastSeen time.Time
}

type Cache[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]*entry[V]

	now func() time.Time
}

func NewCache[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{
		items: make(map[K]*entry[V]),
		now:   time.Now,
	}
}

// NewCacheWithClock uses now to stamp accesses for Prune.
func NewCacheWithClock[K comparable, V any](now func() time.Time) *Cache[K, V] {
	c := NewCache[K, V]()
	c.now = now
	return c
}

// Get returns the value and refreshes its last access time.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	e.lastSeen = c.now()
	return e.value, true
}

func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = &entry[V]{value: value, lastSeen: c.now()}
}

func (c *Cache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[K]*entry[V])
}

func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Prune drops entries not accessed within maxIdle and returns how many were removed.
func (c *Cache[K, V]) Prune(maxIdle time.Duration) int {
	return c.PruneFunc(maxIdle, nil)
}

// PruneFunc is Prune restricted to idle entries for which evict returns true.
// A nil evict removes every idle entry.
func (c *Cache[K, V]) PruneFunc(maxIdle time.Duration, evict func(V) bool) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	cutoff := c.now().Add(-maxIdle)
	removed := 0
	for k, e := range c.items {
		if e.lastSeen.Before(cutoff) && (evict == nil || evict(e.value)) {
			delete(c.items, k)
			removed++
		}
	}
	return removed
}
