package marketdata

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nvannier/folio/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chartPayload = `{
  "chart": {
    "result": [{
      "timestamp": [1735689600, 1735776000, 1735948800],
      "indicators": {"quote": [{"close": [100.5, 0, 103.25]}]},
      "meta": {
        "regularMarketPrice": 104.1,
        "symbol": "FUND",
        "currency": "USD",
        "fullExchangeName": "NasdaqGS",
        "instrumentType": "ETF"
      }
    }],
    "error": null
  }
}`

func newTestServer(t *testing.T, status int, body string) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return NewClientFor(srv.URL)
}

func TestClient_Series(t *testing.T) {
	client := newTestServer(t, http.StatusOK, chartPayload)

	rng := date.Range{From: date.MustParse("2025-01-01"), To: date.MustParse("2025-01-31")}
	series, err := client.Series("FUND", rng)
	require.NoError(t, err)

	// 1735689600 = 2025-01-01, 1735776000 = 2025-01-02 (zero close, skipped),
	// 1735948800 = 2025-01-04.
	assert.Equal(t, 2, series.Len())
	p, ok := series.Get(date.MustParse("2025-01-01"))
	require.True(t, ok)
	assert.Equal(t, 100.5, p)
	_, ok = series.Get(date.MustParse("2025-01-02"))
	assert.False(t, ok, "zero close must be skipped, not stored")
	p, ok = series.Get(date.MustParse("2025-01-04"))
	require.True(t, ok)
	assert.Equal(t, 103.25, p)
}

func TestClient_Series_NoData(t *testing.T) {
	client := newTestServer(t, http.StatusOK, `{"chart":{"result":[],"error":"Not Found"}}`)

	rng := date.Range{From: date.MustParse("2025-01-01"), To: date.MustParse("2025-01-31")}
	_, err := client.Series("NOPE", rng)
	assert.ErrorContains(t, err, "no chart data")
}

func TestClient_Series_HTTPError(t *testing.T) {
	client := newTestServer(t, http.StatusTooManyRequests, "slow down")

	rng := date.Range{From: date.MustParse("2025-01-01"), To: date.MustParse("2025-01-31")}
	_, err := client.Series("FUND", rng)
	assert.Error(t, err)
}

func TestClient_Info(t *testing.T) {
	client := newTestServer(t, http.StatusOK, chartPayload)

	info, err := client.Info("FUND")
	require.NoError(t, err)
	assert.Equal(t, "FUND", info.Symbol)
	require.NotNil(t, info.Currency)
	assert.Equal(t, "USD", *info.Currency)
	require.NotNil(t, info.Exchange)
	assert.Equal(t, "NasdaqGS", *info.Exchange)
	require.NotNil(t, info.Type)
	assert.Equal(t, "ETF", *info.Type)
	assert.Nil(t, info.Name, "absent longName must stay nil, not empty")

	// The local record fills what the provider omitted.
	name := "My Fund"
	merged := Merge(info, FundInfo{Symbol: "FUND", Name: &name})
	require.NotNil(t, merged.Name)
	assert.Equal(t, "My Fund", *merged.Name)
	assert.Equal(t, "USD", *merged.Currency)
}

func TestClient_Info_NoData(t *testing.T) {
	client := newTestServer(t, http.StatusOK, `{"chart":{"result":[],"error":"Not Found"}}`)

	_, err := client.Info("NOPE")
	assert.ErrorContains(t, err, "no info")
}

func TestClient_Quote(t *testing.T) {
	client := newTestServer(t, http.StatusOK, chartPayload)

	quote, err := client.Quote("FUND")
	require.NoError(t, err)
	assert.Equal(t, 104.1, quote)
}

func TestClient_Quote_Missing(t *testing.T) {
	client := newTestServer(t, http.StatusOK, `{"chart":{"result":[{"meta":{}}]}}`)

	_, err := client.Quote("FUND")
	assert.Error(t, err)
}
