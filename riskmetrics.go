package folio

import (
	"math"

	"github.com/nvannier/folio/date"
)

// TradingDays is the annualization basis for daily volatility.
const TradingDays = 252

// minOverlap is the number of overlapping observations with the benchmark
// below which Alpha and Beta are withheld rather than reported on noise.
const minOverlap = 30

// Horizon labels, in display order.
var HorizonKeys = []string{"1M", "3M", "6M", "1Y", "YTD", "Total"}

// RiskMetrics holds the per-fund risk and performance statistics.
//
// Sharpe is only meaningful when SharpeDefined is true (zero volatility makes
// it undefined, not infinite). Alpha and Beta are nil when the benchmark
// overlap is too short to estimate them. Horizons only holds the horizons the
// series actually reaches back to; absence means "not enough history", never
// a zero return.
type RiskMetrics struct {
	AnnualizedReturn Percent
	Volatility       Percent
	MaxDrawdown      Percent // positive magnitude of the worst peak-to-trough loss
	Sharpe           float64
	SharpeDefined    bool
	Alpha            *Percent
	Beta             *float64
	Horizons         map[string]Percent
}

// ComputeRiskMetrics derives the risk statistics of one instrument's price
// series. The benchmark is optional; riskFreeRate is annualized, as a
// fraction (0.02 for 2%). Returns false when the series has fewer than two
// observations.
//
// All returns-based statistics use daily log returns between consecutive
// observations; the annualized return is a CAGR over calendar time
// (365.25-day years), so it stays comparable across series with different
// observation densities.
func ComputeRiskMetrics(series *PriceSeries, benchmark *PriceSeries, riskFreeRate float64, now date.Date) (RiskMetrics, bool) {
	points := series.Points()
	if len(points) < 2 {
		return RiskMetrics{}, false
	}

	var m RiskMetrics

	first, last := points[0], points[len(points)-1]
	if first.Price > 0 {
		years := float64(last.On.Sub(first.On)) / 365.25
		if years > 0 {
			cagr := math.Pow(last.Price/first.Price, 1/years) - 1
			m.AnnualizedReturn = Percent(100 * cagr)
		}
	}

	returns := logReturns(points)
	vol := sampleStdev(returns) * math.Sqrt(TradingDays)
	m.Volatility = Percent(100 * vol)

	m.MaxDrawdown = Percent(100 * maxDrawdown(points))

	if vol > 0 {
		m.Sharpe = (float64(m.AnnualizedReturn)/100 - riskFreeRate) / vol
		m.SharpeDefined = true
	}

	if benchmark != nil {
		if alpha, beta, ok := alphaBeta(series, benchmark, riskFreeRate); ok {
			m.Alpha, m.Beta = &alpha, &beta
		}
	}

	m.Horizons = horizonReturns(series, now)
	return m, true
}

// logReturns computes ln(p_i / p_{i-1}) between consecutive observations.
// Pairs with a non-positive price are skipped.
func logReturns(points []PricePoint) []float64 {
	returns := make([]float64, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		prev, cur := points[i-1].Price, points[i].Price
		if prev <= 0 || cur <= 0 {
			continue
		}
		returns = append(returns, math.Log(cur/prev))
	}
	return returns
}

// sampleStdev is the sample (n-1) standard deviation. It returns 0 for fewer
// than two values.
func sampleStdev(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(n)
	var ss float64
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(n-1))
}

// maxDrawdown returns the largest peak-to-trough decline as a positive
// fraction: 0.25 means the series lost a quarter from its running peak.
func maxDrawdown(points []PricePoint) float64 {
	peak := 0.0
	worst := 0.0
	for _, p := range points {
		if p.Price > peak {
			peak = p.Price
		}
		if peak > 0 {
			dd := (peak - p.Price) / peak
			if dd > worst {
				worst = dd
			}
		}
	}
	return worst
}

// alphaBeta estimates CAPM alpha and beta against the benchmark from the log
// returns on overlapping dates. It returns false when fewer than minOverlap
// dates are present in both series, or when the benchmark has no variance.
func alphaBeta(series, benchmark *PriceSeries, riskFreeRate float64) (Percent, float64, bool) {
	fund, bench, overlap := overlappingReturns(series, benchmark)
	if overlap < minOverlap || len(fund) < 2 {
		return 0, 0, false
	}

	fundMean := mean(fund)
	benchMean := mean(bench)
	var cov, benchVar float64
	for i := range fund {
		cov += (fund[i] - fundMean) * (bench[i] - benchMean)
		benchVar += (bench[i] - benchMean) * (bench[i] - benchMean)
	}
	if benchVar == 0 {
		return 0, 0, false
	}
	beta := cov / benchVar

	// Annualize the mean daily log returns, then apply CAPM.
	fundAnnual := fundMean * TradingDays
	benchAnnual := benchMean * TradingDays
	alpha := fundAnnual - (riskFreeRate + beta*(benchAnnual-riskFreeRate))
	return Percent(100 * alpha), beta, true
}

// overlappingReturns computes the pairs of daily log returns on the dates
// both series observed, and the count of those common dates. A return pair
// needs two consecutive common dates.
func overlappingReturns(series, benchmark *PriceSeries) (fund, bench []float64, overlap int) {
	var prevFund, prevBench float64
	havePrev := false
	for on, p := range series.hist.Values() {
		b, ok := benchmark.Get(on)
		if !ok {
			continue
		}
		overlap++
		if havePrev && prevFund > 0 && prevBench > 0 && p > 0 && b > 0 {
			fund = append(fund, math.Log(p/prevFund))
			bench = append(bench, math.Log(b/prevBench))
		}
		prevFund, prevBench = p, b
		havePrev = true
	}
	return fund, bench, overlap
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// horizonReturns computes the simple return from each lookback horizon to
// the latest observation. A horizon whose start date precedes the first
// observation is omitted from the map entirely.
func horizonReturns(series *PriceSeries, now date.Date) map[string]Percent {
	latest, ok := series.Latest()
	if !ok || latest.Price <= 0 {
		return nil
	}
	first, _ := series.First()

	starts := map[string]date.Date{
		"1M":    now.AddMonth(-1),
		"3M":    now.AddMonth(-3),
		"6M":    now.AddMonth(-6),
		"1Y":    now.AddMonth(-12),
		"YTD":   now.StartOf(date.Yearly),
		"Total": first.On,
	}

	horizons := make(map[string]Percent)
	for key, start := range starts {
		if key != "Total" && start.Before(first.On) {
			continue // the series does not reach back that far
		}
		base, ok := series.AsOf(start)
		if !ok || base <= 0 {
			continue
		}
		horizons[key] = Percent(100 * (latest.Price/base - 1))
	}
	return horizons
}
