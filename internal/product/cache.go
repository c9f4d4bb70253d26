package product

import (
	"context"
	"sync"
	"time"

	"hardwarehub-be/internal/metrics"
)

// ListCache stores product list pages keyed by ListQuery.CacheKey.
type ListCache interface {
	Get(ctx context.Context, key string) (*ListResult, bool)
	Set(ctx context.Context, key string, v *ListResult)
	Invalidate(ctx context.Context)
	Stats() metrics.CacheSnapshot
}

type memoryEntry struct {
	value     ListResult
	expiresAt time.Time
}

// MemoryCache is an in-process ListCache with a TTL and an entry cap. When
// full it evicts the oldest inserted key.
type MemoryCache struct {
	mu         sync.Mutex
	entries    map[string]memoryEntry
	order      []string
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
	stats      metrics.CacheStats
}

func NewMemoryCache(ttl time.Duration, maxEntries int) *MemoryCache {
	if maxEntries <= 0 {
		maxEntries = 100
	}
	return &MemoryCache{
		entries:    make(map[string]memoryEntry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) (*ListResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.stats.Misses.Inc()
		return nil, false
	}
	if !c.now().Before(e.expiresAt) {
		c.removeLocked(key)
		c.stats.Misses.Inc()
		return nil, false
	}

	c.stats.Hits.Inc()
	v := e.value
	v.Items = append([]Product(nil), e.value.Items...)
	return &v, true
}

func (c *MemoryCache) Set(_ context.Context, key string, v *ListResult) {
	if v == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; exists {
		c.removeLocked(key)
	}
	for len(c.order) >= c.maxEntries {
		c.removeLocked(c.order[0])
		c.stats.Evictions.Inc()
	}

	stored := *v
	stored.Items = append([]Product(nil), v.Items...)
	c.entries[key] = memoryEntry{value: stored, expiresAt: c.now().Add(c.ttl)}
	c.order = append(c.order, key)
}

func (c *MemoryCache) Invalidate(_ context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]memoryEntry)
	c.order = c.order[:0]
	c.stats.Invalidations.Inc()
}

func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *MemoryCache) Stats() metrics.CacheSnapshot {
	return c.stats.Snapshot()
}

func (c *MemoryCache) removeLocked(key string) {
	delete(c.entries, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}
