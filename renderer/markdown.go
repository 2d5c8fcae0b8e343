// Package renderer turns engine results into markdown reports and charts.
// It only formats; every number it prints was computed by the folio package.
package renderer

import (
	"fmt"
	"strings"

	"github.com/nvannier/folio"
)

// ValuationMarkdown renders the valuation report: the headline numbers and
// the tail of the daily series.
func ValuationMarkdown(vs folio.ValuationSeries, currency string, tail int) string {
	var b strings.Builder
	fmt.Fprint(&b, "# Portfolio Valuation\n\n")

	latest, ok := vs.Latest()
	if !ok {
		fmt.Fprint(&b, "No valuation points: no positions or no prices yet.\n")
		return b.String()
	}

	gain := latest.TotalValue - latest.TotalInvested
	fmt.Fprintf(&b, "| **Value on %s** | **%s** |\n", latest.On, folio.M(latest.TotalValue, currency))
	fmt.Fprint(&b, "|:---|---:|\n")
	fmt.Fprintf(&b, "| Invested | %s |\n", folio.M(latest.TotalInvested, currency))
	fmt.Fprintf(&b, "| Gain / Loss | %s |\n", folio.M(gain, currency).SignedString())
	fmt.Fprintf(&b, "| Time-Weighted Return | %s |\n", latest.Cumulative.SignedString())

	if returns := vs.DailyReturns(); len(returns) > 0 {
		best, worst := returns[0], returns[0]
		for _, r := range returns[1:] {
			if r > best {
				best = r
			}
			if r < worst {
				worst = r
			}
		}
		fmt.Fprintf(&b, "| Best Day | %s |\n", folio.Percent(100*best).SignedString())
		fmt.Fprintf(&b, "| Worst Day | %s |\n", folio.Percent(100*worst).SignedString())
	}

	if tail > 0 && len(vs) > 1 {
		fmt.Fprint(&b, "\n## Recent History\n\n")
		fmt.Fprint(&b, "| Date | Value | Cumulative |\n")
		fmt.Fprint(&b, "|:---|---:|---:|\n")
		points := vs
		if len(points) > tail {
			points = points[len(points)-tail:]
		}
		for _, p := range points {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", p.On, folio.M(p.TotalValue, currency), p.Cumulative.SignedString())
		}
	}
	return b.String()
}

// GainsMarkdown renders the period gains report with the cumulative P&L.
func GainsMarkdown(gains []folio.PeriodGain, currency string) string {
	var b strings.Builder
	fmt.Fprint(&b, "# Period Gains\n\n")

	if len(gains) == 0 {
		fmt.Fprint(&b, "No periods with data.\n")
		return b.String()
	}

	fmt.Fprint(&b, "| Period | Invested | End Value | Gain | Gain % | Cumulative P&L |\n")
	fmt.Fprint(&b, "|:---|---:|---:|---:|---:|---:|\n")
	pl := folio.CumulativePL(gains)
	for i, g := range gains {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			g.Key,
			folio.M(g.Invested, currency),
			folio.M(g.EndValue, currency),
			folio.M(g.Gain, currency).SignedString(),
			g.GainPercent.SignedString(),
			folio.M(pl[i], currency).SignedString(),
		)
	}
	return b.String()
}

// XIRRMarkdown renders the money-weighted return, including the explicit
// failure modes: a report that says "could not converge" beats a wrong rate.
func XIRRMarkdown(result folio.XIRRResult, flows []folio.CashFlow, currency string) string {
	var b strings.Builder
	fmt.Fprint(&b, "# Money-Weighted Return (XIRR)\n\n")

	switch result.Status {
	case folio.XIRRConverged:
		fmt.Fprintf(&b, "**Annualized rate: %s**\n", result.Rate.SignedString())
	case folio.XIRRDegenerate:
		fmt.Fprint(&b, "Not enough cash flows to define a rate of return.\n")
	default:
		fmt.Fprint(&b, "The solver did not converge on these cash flows.\n")
	}

	if len(flows) > 0 {
		fmt.Fprint(&b, "\n## Cash Flows\n\n")
		fmt.Fprint(&b, "| Date | Amount |\n")
		fmt.Fprint(&b, "|:---|---:|\n")
		for _, f := range flows {
			fmt.Fprintf(&b, "| %s | %s |\n", f.On, folio.M(f.Amount, currency).SignedString())
		}
	}
	return b.String()
}

// RiskMarkdown renders the per-fund risk metrics. Withheld metrics are
// printed as "n/a" with the reason, never as a zero.
func RiskMarkdown(instrument string, m folio.RiskMetrics, benchmark string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Risk Metrics: %s\n\n", instrument)

	fmt.Fprint(&b, "| Metric | Value |\n")
	fmt.Fprint(&b, "|:---|---:|\n")
	fmt.Fprintf(&b, "| Annualized Return | %s |\n", m.AnnualizedReturn.SignedString())
	fmt.Fprintf(&b, "| Volatility (ann.) | %s |\n", m.Volatility)
	fmt.Fprintf(&b, "| Max Drawdown | %s |\n", m.MaxDrawdown)
	if m.SharpeDefined {
		fmt.Fprintf(&b, "| Sharpe Ratio | %.2f |\n", m.Sharpe)
	} else {
		fmt.Fprint(&b, "| Sharpe Ratio | n/a (zero volatility) |\n")
	}
	if m.Alpha != nil && m.Beta != nil {
		fmt.Fprintf(&b, "| Alpha vs %s | %s |\n", benchmark, m.Alpha.SignedString())
		fmt.Fprintf(&b, "| Beta vs %s | %.2f |\n", benchmark, *m.Beta)
	} else if benchmark != "" {
		fmt.Fprintf(&b, "| Alpha / Beta vs %s | n/a (overlap too short) |\n", benchmark)
	}

	if len(m.Horizons) > 0 {
		fmt.Fprint(&b, "\n## Returns by Horizon\n\n")
		fmt.Fprint(&b, "| Horizon | Return |\n")
		fmt.Fprint(&b, "|:---|---:|\n")
		for _, key := range folio.HorizonKeys {
			r, ok := m.Horizons[key]
			if !ok {
				continue
			}
			fmt.Fprintf(&b, "| %s | %s |\n", key, r.SignedString())
		}
	}
	return b.String()
}
