package marketdata

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/nvannier/folio"
	"github.com/nvannier/folio/date"
)

// Client fetches prices from the Yahoo Finance chart API.
//
// Historical series go through a disk-cached transport with daily expiry, so
// repeated runs within a day never hit the network twice for the same URL.
// Live quotes bypass that cache.
type Client struct {
	baseURL string
	cached  *http.Client
	live    *http.Client
}

// NewClient returns a client against the public Yahoo endpoint.
func NewClient() *Client {
	return &Client{
		baseURL: "https://query1.finance.yahoo.com",
		cached:  daily(),
		live:    new(http.Client),
	}
}

// NewClientFor returns a client against an alternate endpoint, without disk
// caching. Used in tests against an httptest server.
func NewClientFor(baseURL string) *Client {
	c := new(http.Client)
	return &Client{baseURL: baseURL, cached: c, live: c}
}

// yahooChartResp is the shape of the v8 chart payload, reduced to the fields
// we read.
type yahooChartResp struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol         string `json:"symbol"`
				Currency       string `json:"currency"`
				ExchangeName   string `json:"fullExchangeName"`
				InstrumentType string `json:"instrumentType"`
				LongName       string `json:"longName"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error any `json:"error"`
	} `json:"chart"`
}

// Series fetches the daily close series of one symbol over a date range.
// Bars with a zero close (halted or unpriced days) are skipped, so the
// returned series keeps its gaps instead of zero-filling them.
func (c *Client) Series(symbol string, rng date.Range) (*folio.PriceSeries, error) {
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&period1=%d&period2=%d",
		c.baseURL, url.PathEscape(symbol),
		dayUnix(rng.From), dayUnix(rng.To.Add(1)))

	var yc yahooChartResp
	if err := jwget(c.cached, addr, &yc); err != nil {
		return nil, fmt.Errorf("cannot fetch series for %q: %w", symbol, err)
	}
	if len(yc.Chart.Result) == 0 || len(yc.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("no chart data for %q", symbol)
	}

	timestamps := yc.Chart.Result[0].Timestamp
	closes := yc.Chart.Result[0].Indicators.Quote[0].Close

	series := folio.NewPriceSeries(symbol)
	for i, ts := range timestamps {
		if i >= len(closes) || closes[i] == 0 {
			continue
		}
		on := date.New(time.Unix(ts, 0).UTC().Date())
		if err := series.Append(on, closes[i]); err != nil {
			return nil, err
		}
	}
	return series, nil
}

// Info fetches descriptive metadata for one symbol from the chart meta
// payload. Fields the provider omits come back nil; callers fill the gaps
// with Merge.
func (c *Client) Info(symbol string) (FundInfo, error) {
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=1d", c.baseURL, url.PathEscape(symbol))

	var yc yahooChartResp
	if err := jwget(c.cached, addr, &yc); err != nil {
		return FundInfo{}, fmt.Errorf("cannot fetch info for %q: %w", symbol, err)
	}
	if len(yc.Chart.Result) == 0 {
		return FundInfo{}, fmt.Errorf("no info for %q", symbol)
	}

	meta := yc.Chart.Result[0].Meta
	info := FundInfo{Symbol: meta.Symbol}
	if meta.LongName != "" {
		info.Name = &meta.LongName
	}
	if meta.Currency != "" {
		info.Currency = &meta.Currency
	}
	if meta.ExchangeName != "" {
		info.Exchange = &meta.ExchangeName
	}
	if meta.InstrumentType != "" {
		info.Type = &meta.InstrumentType
	}
	return info, nil
}

// Quote fetches the latest traded price of one symbol. The payload is loosely
// shaped across quote types, so the price is extracted by path rather than by
// a full struct.
func (c *Client) Quote(symbol string) (float64, error) {
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=1d", c.baseURL, url.PathEscape(symbol))

	var jobj any
	if err := jwget(c.live, addr, &jobj); err != nil {
		return 0, fmt.Errorf("cannot fetch quote for %q: %w", symbol, err)
	}

	path := "$.chart.result[0].meta.regularMarketPrice"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return 0, fmt.Errorf("no quote for %q: %q %w", symbol, path, err)
	}
	// jsonpath is never clear about whether it returns a list of 1 answer,
	// or a single answer: keep the first one if any.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		return 0, fmt.Errorf("quote for %q is not a number: %v", symbol, jval)
	}
	if val == 0 {
		return 0, fmt.Errorf("empty quote for %q", symbol)
	}
	return val, nil
}

// dayUnix is the unix timestamp of midnight UTC on that day.
func dayUnix(d date.Date) int64 {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC).Unix()
}
