package catalog

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Source builds a fresh catalog.
type Source interface {
	Load(ctx context.Context) (*Catalog, error)
}

// Cache holds the most recently loaded catalog for a bounded time.
type Cache struct {
	source Source
	ttl    time.Duration

	mu      sync.RWMutex
	current *Catalog
	built   time.Time
	sf      singleflight.Group
}

// NewCache wraps a source with a TTL cache. A zero TTL reloads on every call.
func NewCache(source Source, ttl time.Duration) *Cache {
	return &Cache{source: source, ttl: ttl}
}

// isExpired must be called with mu held.
func (c *Cache) isExpired() bool {
	if c.current == nil || c.ttl == 0 {
		return true
	}
	return time.Since(c.built) > c.ttl
}

// Get returns the cached catalog, or loads a new one if it doesn't exist or has expired.
// Concurrent misses share a single load, which a cancelled caller does not abort.
func (c *Cache) Get(ctx context.Context) (*Catalog, error) {
	// Fast path: check if cache exists and is fresh
	c.mu.RLock()
	if !c.isExpired() {
		cat := c.current
		c.mu.RUnlock()
		return cat, nil
	}
	c.mu.RUnlock()

	// The shared load outlives any single caller; each caller only stops waiting on its own ctx
	loadCtx := context.WithoutCancel(ctx)
	ch := c.sf.DoChan("catalog", func() (any, error) {
		// Double-check after acquiring singleflight lock
		c.mu.RLock()
		if !c.isExpired() {
			cat := c.current
			c.mu.RUnlock()
			return cat, nil
		}
		c.mu.RUnlock()

		cat, err := c.source.Load(loadCtx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.current = cat
		c.built = time.Now()
		c.mu.Unlock()

		return cat, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Catalog), nil
	}
}

// Invalidate drops the cached catalog so the next Get reloads it.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.current = nil
	c.mu.Unlock()
}
