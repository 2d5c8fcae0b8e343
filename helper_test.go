package folio

import (
	"math"
	"testing"

	"github.com/nvannier/folio/date"
	"github.com/shopspring/decimal"
)

func day(str string) date.Date { return date.MustParse(str) }

// newSeries builds a price series from alternating date/price arguments.
func newSeries(t *testing.T, instrument string, points ...any) *PriceSeries {
	t.Helper()
	if len(points)%2 != 0 {
		t.Fatalf("newSeries wants date/price pairs, got %d arguments", len(points))
	}
	s := NewPriceSeries(instrument)
	for i := 0; i < len(points); i += 2 {
		if err := s.Append(day(points[i].(string)), points[i+1].(float64)); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	return s
}

func newPosition(instrument string, shares, cost float64, purchased string) Position {
	return Position{
		Instrument:   instrument,
		Shares:       decimal.NewFromFloat(shares),
		CostBasis:    decimal.NewFromFloat(cost),
		PurchaseDate: day(purchased),
	}
}

func closeTo(a, b, tolerance float64) bool { return math.Abs(a-b) <= tolerance }
