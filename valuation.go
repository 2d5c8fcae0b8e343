package folio

import (
	"github.com/nvannier/folio/date"
)

// ValuationPoint is the portfolio state on one grid date.
type ValuationPoint struct {
	On            date.Date
	TotalValue    float64
	TotalInvested float64
	Cumulative    Percent // chained time-weighted return since the first grid date
}

// ValuationSeries is the daily-chained portfolio valuation, one point per
// grid date. It is regenerated in full whenever positions or a price series
// change; there is no incremental update path.
type ValuationSeries []ValuationPoint

// Valuate computes the portfolio valuation series over the aligned grid.
//
// On each date, a position contributes only from its purchase date onwards
// (ownership gating). The contribution is the cost basis scaled by the ratio
// of the aligned price to the implied purchase price. When no price is
// available yet for an owned position, the contribution falls back to the
// cost basis (neutral, zero P&L): a position must never silently drop out of
// the sum and cause a false valuation cliff.
//
// The cumulative return is chained from daily returns and is exactly 0 at
// the first grid date. A zero previous total yields a 0 daily return rather
// than NaN.
func Valuate(positions []Position, grid *Grid) ValuationSeries {
	return ValuateWithQuotes(positions, grid, nil)
}

// ValuateWithQuotes is Valuate with a freshness override: on the final grid
// date only, a live quote replaces the latest historical bar for instruments
// present in quotes. Earlier points are never altered.
func ValuateWithQuotes(positions []Position, grid *Grid, quotes map[string]float64) ValuationSeries {
	if grid.Len() == 0 {
		return nil
	}

	series := make(ValuationSeries, 0, grid.Len())
	cumulative := 0.0
	prevValue := 0.0

	for i, on := range grid.Days() {
		lastDay := i == grid.Len()-1

		var totalValue, totalInvested float64
		for _, p := range positions {
			if !p.OwnedOn(on) {
				continue
			}
			cost := p.Cost()
			totalInvested += cost

			price, ok := grid.At(p.Instrument, i)
			if lastDay {
				if q, live := quotes[p.Instrument]; live {
					price, ok = q, true
				}
			}
			if !ok {
				// No price yet: neutral fallback, the position is worth
				// what was paid for it.
				totalValue += cost
				continue
			}
			purchase := p.PurchasePrice()
			if purchase == 0 {
				totalValue += cost
				continue
			}
			totalValue += cost * (price / purchase)
		}

		if i == 0 {
			cumulative = 0
		} else {
			daily := 0.0
			if prevValue != 0 {
				daily = totalValue/prevValue - 1
			}
			cumulative = (1+cumulative)*(1+daily) - 1
		}
		prevValue = totalValue

		series = append(series, ValuationPoint{
			On:            on,
			TotalValue:    totalValue,
			TotalInvested: totalInvested,
			Cumulative:    Percent(100 * cumulative),
		})
	}
	return series
}

// Latest returns the most recent valuation point, and false when empty.
func (vs ValuationSeries) Latest() (ValuationPoint, bool) {
	if len(vs) == 0 {
		return ValuationPoint{}, false
	}
	return vs[len(vs)-1], true
}

// DailyReturns returns the simple return between each pair of consecutive
// points. The slice has len(vs)-1 entries; a zero previous value yields 0.
func (vs ValuationSeries) DailyReturns() []float64 {
	if len(vs) < 2 {
		return nil
	}
	returns := make([]float64, 0, len(vs)-1)
	for i := 1; i < len(vs); i++ {
		prev := vs[i-1].TotalValue
		if prev == 0 {
			returns = append(returns, 0)
			continue
		}
		returns = append(returns, vs[i].TotalValue/prev-1)
	}
	return returns
}

// lastIn returns the last valuation point within the range, and false when
// the range holds no point.
func (vs ValuationSeries) lastIn(rng date.Range) (ValuationPoint, bool) {
	var last ValuationPoint
	found := false
	for _, p := range vs {
		if p.On.After(rng.To) {
			break
		}
		if rng.Contains(p.On) {
			last = p
			found = true
		}
	}
	return last, found
}
