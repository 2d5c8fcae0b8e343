package folio

import (
	"math"

	"github.com/nvannier/folio/date"
)

// CashFlow is a dated, signed money movement: negative for capital
// deployed, positive for capital returned or the final valuation.
type CashFlow struct {
	On     date.Date
	Amount float64
}

// XIRRStatus tags the outcome of the solver.
type XIRRStatus int

const (
	// XIRRConverged means Rate holds the annualized internal rate of return.
	XIRRConverged XIRRStatus = iota
	// XIRRNotConverged means neither Newton-Raphson nor the bisection
	// fallback found a root; Rate is meaningless.
	XIRRNotConverged
	// XIRRDegenerate means the inputs cannot define an IRR: fewer than two
	// flows, or all flows of the same sign.
	XIRRDegenerate
)

func (s XIRRStatus) String() string {
	switch s {
	case XIRRConverged:
		return "converged"
	case XIRRNotConverged:
		return "not converged"
	case XIRRDegenerate:
		return "degenerate"
	default:
		return "unknown"
	}
}

// XIRRResult is the tagged outcome of the solver. Rate is only meaningful
// when Status is XIRRConverged.
type XIRRResult struct {
	Rate   Percent
	Status XIRRStatus
}

const (
	xirrGuess     = 0.10
	xirrTolerance = 1e-6
	xirrMaxIter   = 100
	xirrRateLimit = 100 // 10000%, beyond which Newton is considered diverged
)

// XIRR computes the annualized money-weighted rate of return solving
// NPV(r) = Σ amount_i / (1+r)^(days_i/365) = 0, days measured from the
// earliest flow.
//
// Newton-Raphson runs first; when it diverges or its derivative collapses,
// a bisection over [-0.99, 10] takes over. Non-convergence is reported
// explicitly rather than returning the last iterate.
func XIRR(flows []CashFlow) XIRRResult {
	if len(flows) < 2 {
		return XIRRResult{Status: XIRRDegenerate}
	}
	hasNegative, hasPositive := false, false
	for _, f := range flows {
		if f.Amount < 0 {
			hasNegative = true
		}
		if f.Amount > 0 {
			hasPositive = true
		}
	}
	if !hasNegative || !hasPositive {
		return XIRRResult{Status: XIRRDegenerate}
	}

	earliest := flows[0].On
	for _, f := range flows[1:] {
		if f.On.Before(earliest) {
			earliest = f.On
		}
	}
	years := make([]float64, len(flows))
	for i, f := range flows {
		years[i] = float64(f.On.Sub(earliest)) / 365.0
	}

	npv := func(r float64) float64 {
		var sum float64
		for i, f := range flows {
			sum += f.Amount / math.Pow(1+r, years[i])
		}
		return sum
	}
	derivative := func(r float64) float64 {
		var sum float64
		for i, f := range flows {
			if years[i] == 0 {
				continue
			}
			sum -= years[i] * f.Amount / math.Pow(1+r, years[i]+1)
		}
		return sum
	}

	rate := xirrGuess
	for i := 0; i < xirrMaxIter; i++ {
		d := derivative(rate)
		if math.Abs(d) < 1e-12 {
			break // derivative collapsed, Newton cannot proceed
		}
		next := rate - npv(rate)/d
		if math.IsNaN(next) || math.Abs(next) > xirrRateLimit {
			break // runaway divergence
		}
		if math.Abs(next-rate) < xirrTolerance {
			return XIRRResult{Rate: Percent(100 * next), Status: XIRRConverged}
		}
		rate = next
	}

	if r, ok := xirrBisect(npv); ok {
		return XIRRResult{Rate: Percent(100 * r), Status: XIRRConverged}
	}
	return XIRRResult{Status: XIRRNotConverged}
}

// xirrBisect brackets the root over a wide range and bisects. It returns
// false when the NPV does not change sign over the bracket.
func xirrBisect(npv func(float64) float64) (float64, bool) {
	lo, hi := -0.99, 10.0
	flo, fhi := npv(lo), npv(hi)
	if flo*fhi > 0 {
		return 0, false
	}
	for i := 0; i < 200; i++ {
		mid := (lo + hi) / 2
		fmid := npv(mid)
		if math.Abs(fmid) < xirrTolerance || (hi-lo)/2 < xirrTolerance {
			return mid, true
		}
		if flo*fmid < 0 {
			hi = mid
		} else {
			lo, flo = mid, fmid
		}
	}
	return (lo + hi) / 2, true
}
