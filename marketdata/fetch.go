package marketdata

import (
	"errors"
	"fmt"
	"sync"

	"github.com/nvannier/folio"
	"github.com/nvannier/folio/date"
)

// Fetcher is the part of Client that FetchAll needs; tests substitute it.
type Fetcher interface {
	Series(symbol string, rng date.Range) (*folio.PriceSeries, error)
}

// FetchAll fetches the series of every symbol concurrently, one goroutine per
// symbol, consulting the cache first and filling it on success.
//
// The result map only holds the symbols that succeeded, and the error joins
// the per-symbol failures: one unreachable symbol must not lose the others.
// Iteration over the result is up to the caller; the map itself is complete
// before FetchAll returns.
func FetchAll(fetcher Fetcher, cache *PriceCache, symbols []string, rng date.Range) (map[string]*folio.PriceSeries, error) {
	results := make(map[string]*folio.PriceSeries, len(symbols))
	errs := make([]error, len(symbols))

	// Resolve every cache hit before spawning any goroutine: the fetch
	// goroutines write the same results map, so no unsynchronized write
	// may happen once the first one is running.
	var misses []int
	for i, symbol := range symbols {
		if cache != nil {
			if series, ok := cache.Get(symbol); ok {
				results[symbol] = series
				continue
			}
		}
		misses = append(misses, i)
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, i := range misses {
		wg.Add(1)
		go func(i int, symbol string) {
			defer wg.Done()
			series, err := fetcher.Series(symbol, rng)
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", symbol, err)
				return
			}
			if cache != nil {
				cache.Put(symbol, series)
			}
			mu.Lock()
			results[symbol] = series
			mu.Unlock()
		}(i, symbols[i])
	}
	wg.Wait()

	return results, errors.Join(errs...)
}
