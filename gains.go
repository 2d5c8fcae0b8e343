package folio

import (
	"github.com/nvannier/folio/date"
)

// PeriodGain is the money-weighted gain of one calendar period: the change
// in portfolio value that is not explained by new contributions.
type PeriodGain struct {
	Key         string  // period identifier, e.g. "2025-07" or "2025"
	Invested    float64 // cumulative invested through the period end
	EndValue    float64 // last valuation inside the period
	Gain        float64
	GainPercent Percent
}

// PeriodGains slices the valuation series into calendar periods and computes
// the gain of each.
//
// Every period from the earliest purchase date to now is enumerated, even
// when it holds no valuation point, so that "no data" is never mistaken for
// "no gain"; empty periods are then dropped, with their contributions
// carried into the next period that has data.
//
// This is a money-weighted decomposition: it deliberately never reuses the
// chained time-weighted return, since mixing the two produces inconsistent
// totals.
func PeriodGains(vs ValuationSeries, positions []Position, period date.Period, now date.Date) []PeriodGain {
	first, ok := EarliestPurchase(positions)
	if !ok {
		return nil
	}

	var gains []PeriodGain
	prevEnd := 0.0      // periodEndValue of the previous non-empty period
	invested := 0.0     // cumulative contributions through the current period
	pending := 0.0      // contributions from empty periods, attributed to the next period with data
	for rng := date.NewRange(first, period); !rng.From.After(now); rng = rng.Next(period) {
		contributions := pending
		for _, p := range positions {
			if rng.Contains(p.PurchaseDate) {
				contributions += p.Cost()
			}
		}

		end, found := vs.lastIn(rng)
		if !found {
			pending = contributions
			continue
		}
		pending = 0
		invested += contributions

		base := prevEnd + contributions
		gain := end.TotalValue - base
		pct := 0.0
		if base != 0 {
			pct = gain / base * 100
		}
		gains = append(gains, PeriodGain{
			Key:         rng.Identifier(),
			Invested:    invested,
			EndValue:    end.TotalValue,
			Gain:        gain,
			GainPercent: Percent(pct),
		})
		prevEnd = end.TotalValue
	}
	return gains
}

// CumulativePL returns the running sum of period gains: the cumulative
// profit and loss across periods. Its last entry equals the final value
// minus the total contributions.
func CumulativePL(gains []PeriodGain) []float64 {
	pl := make([]float64, len(gains))
	sum := 0.0
	for i, g := range gains {
		sum += g.Gain
		pl[i] = sum
	}
	return pl
}
