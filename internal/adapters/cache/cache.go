// Package cache provides a bounded in-memory cache for rendered images.
package cache

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/golang/groupcache/lru"
)

const defaultMaxEntries = 256

// Cache stores rendered byte blobs by key.
type Cache interface {
	// Get returns the cached value for key.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Put stores value under key, evicting the least recently used entry when full.
	Put(ctx context.Context, key string, value []byte)

	// Purge drops every entry.
	Purge(ctx context.Context)

	// Len returns the current number of entries.
	Len() int64
}

type inMemoryCache struct {
	mu         sync.Mutex
	lru        *lru.Cache
	maxEntries int
	size       atomic.Int64
	hits       atomic.Int64
	misses     atomic.Int64
}

// NewInMemoryCache creates a cache with configuration options.
func NewInMemoryCache(opts ...Option) Cache {
	c := &inMemoryCache{
		maxEntries: defaultMaxEntries,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.lru = lru.New(c.maxEntries)
	c.lru.OnEvicted = func(lru.Key, interface{}) {
		c.size.Add(-1)
	}
	return c
}

func (c *inMemoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.lru.Get(key)
	if !ok {
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return v.([]byte), true
}

func (c *inMemoryCache) Put(_ context.Context, key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.lru.Get(key); !exists {
		c.size.Add(1)
	}
	c.lru.Add(key, value)
}

func (c *inMemoryCache) Purge(_ context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lru.Clear()
	c.size.Store(0)
}

func (c *inMemoryCache) Len() int64 {
	return c.size.Load()
}

// Stats reports hit and miss counts of a cache created by NewInMemoryCache.
// Other implementations report zero.
func Stats(c Cache) (hits, misses int64) {
	if mc, ok := c.(*inMemoryCache); ok {
		return mc.hits.Load(), mc.misses.Load()
	}
	return 0, 0
}
