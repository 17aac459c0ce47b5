package cache

import (
	"sync"

	"github.com/paystreet/fx/pkg/cache"
	"github.com/paystreet/fx/pkg/domain/fx"
)

// MemoryCache implements cache.RateCache using in-memory storage. Entries
// live until overwritten or cleared; the resolver decides at read time
// whether an entry is still fresh. The key space is bounded by the set of
// currency pairs, so no eviction is needed.
type MemoryCache struct {
	rates map[string]*fx.Rate
	mu    sync.RWMutex
}

// NewMemoryCache creates a new in-memory rate cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{rates: make(map[string]*fx.Rate)}
}

// Get retrieves a rate from the cache, regardless of its age.
func (c *MemoryCache) Get(key string) (*fx.Rate, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.rates[key]
	if !exists {
		return nil, nil
	}
	return entry, nil
}

// Set stores a rate, replacing any existing entry for the key.
func (c *MemoryCache) Set(key string, rate *fx.Rate) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rates[key] = rate
	return nil
}

// Clear removes all entries and returns the prior size.
func (c *MemoryCache) Clear() (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.rates)
	c.rates = make(map[string]*fx.Rate)
	return n, nil
}

var _ cache.RateCache = (*MemoryCache)(nil)
