package marketdata

import (
	"sync"
	"time"

	"github.com/nvannier/folio"
)

type cachedSeries struct {
	series  *folio.PriceSeries
	fetched time.Time
}

// PriceCache is an in-memory cache of fetched price series with a fixed TTL.
// It is an explicit object handed to its users, not a package singleton, so
// tests and callers control its lifetime. Safe for concurrent use.
type PriceCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cachedSeries
	now     func() time.Time // stubbed in tests
}

// NewPriceCache returns an empty cache with the given TTL.
func NewPriceCache(ttl time.Duration) *PriceCache {
	return &PriceCache{
		ttl:     ttl,
		entries: make(map[string]cachedSeries),
		now:     time.Now,
	}
}

// Get returns the cached series for a symbol, or false when the entry is
// missing or expired. Expired entries are evicted on read.
func (c *PriceCache) Get(symbol string) (*folio.PriceSeries, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[symbol]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.fetched) > c.ttl {
		delete(c.entries, symbol)
		return nil, false
	}
	return entry.series, true
}

// Put stores a series for a symbol, restarting its TTL.
func (c *PriceCache) Put(symbol string, series *folio.PriceSeries) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[symbol] = cachedSeries{series: series, fetched: c.now()}
}

// Invalidate drops one symbol from the cache.
func (c *PriceCache) Invalidate(symbol string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, symbol)
}

// Len returns the number of live entries, expired ones included until read.
func (c *PriceCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
