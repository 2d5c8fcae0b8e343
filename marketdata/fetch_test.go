package marketdata

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nvannier/folio"
	"github.com/nvannier/folio/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFetcher serves canned series and counts calls per symbol.
type fakeFetcher struct {
	series map[string]*folio.PriceSeries
	errs   map[string]error
	delay  time.Duration
	calls  atomic.Int64
}

func (f *fakeFetcher) Series(symbol string, rng date.Range) (*folio.PriceSeries, error) {
	f.calls.Add(1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if err, ok := f.errs[symbol]; ok {
		return nil, err
	}
	return f.series[symbol], nil
}

func TestFetchAll(t *testing.T) {
	fetcher := &fakeFetcher{series: map[string]*folio.PriceSeries{
		"AAA": folio.NewPriceSeries("AAA"),
		"BBB": folio.NewPriceSeries("BBB"),
	}}
	rng := date.Range{From: date.MustParse("2025-01-01"), To: date.MustParse("2025-01-31")}

	results, err := FetchAll(fetcher, nil, []string{"AAA", "BBB"}, rng)
	require.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, "AAA", results["AAA"].Instrument)
	assert.Equal(t, "BBB", results["BBB"].Instrument)
}

func TestFetchAll_PartialFailure(t *testing.T) {
	boom := errors.New("boom")
	fetcher := &fakeFetcher{
		series: map[string]*folio.PriceSeries{"AAA": folio.NewPriceSeries("AAA")},
		errs:   map[string]error{"BBB": boom},
	}
	rng := date.Range{From: date.MustParse("2025-01-01"), To: date.MustParse("2025-01-31")}

	results, err := FetchAll(fetcher, nil, []string{"AAA", "BBB"}, rng)
	require.ErrorIs(t, err, boom)
	assert.Len(t, results, 1, "one failing symbol must not lose the others")
	assert.Contains(t, results, "AAA")
}

// A slow uncached symbol ahead of many cached ones: the cached results must
// all land while the fetch goroutine is still in flight, without the two
// writers touching the results map at the same time.
func TestFetchAll_CacheHitsDuringFetch(t *testing.T) {
	slow := folio.NewPriceSeries("SLOW")
	fetcher := &fakeFetcher{
		series: map[string]*folio.PriceSeries{"SLOW": slow},
		delay:  10 * time.Millisecond,
	}
	cache := NewPriceCache(time.Hour)
	symbols := []string{"SLOW"}
	for _, s := range []string{"A", "B", "C", "D", "E", "F", "G", "H"} {
		cache.Put(s, folio.NewPriceSeries(s))
		symbols = append(symbols, s)
	}
	rng := date.Range{From: date.MustParse("2025-01-01"), To: date.MustParse("2025-01-31")}

	results, err := FetchAll(fetcher, cache, symbols, rng)
	require.NoError(t, err)
	assert.Len(t, results, len(symbols))
	assert.Same(t, slow, results["SLOW"])
	assert.Equal(t, int64(1), fetcher.calls.Load(), "only the uncached symbol must be fetched")
}

func TestFetchAll_UsesCache(t *testing.T) {
	fetcher := &fakeFetcher{series: map[string]*folio.PriceSeries{
		"AAA": folio.NewPriceSeries("AAA"),
	}}
	cache := NewPriceCache(time.Hour)
	rng := date.Range{From: date.MustParse("2025-01-01"), To: date.MustParse("2025-01-31")}

	_, err := FetchAll(fetcher, cache, []string{"AAA"}, rng)
	require.NoError(t, err)
	assert.Equal(t, int64(1), fetcher.calls.Load())

	results, err := FetchAll(fetcher, cache, []string{"AAA"}, rng)
	require.NoError(t, err)
	assert.Equal(t, int64(1), fetcher.calls.Load(), "second fetch must hit the cache")
	assert.Contains(t, results, "AAA")
}
