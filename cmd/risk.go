package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/nvannier/folio"
	"github.com/nvannier/folio/date"
	"github.com/nvannier/folio/marketdata"
	"github.com/nvannier/folio/renderer"
)

// riskCmd holds the flags for the 'risk' subcommand.
type riskCmd struct {
	symbol    string
	benchmark string
}

func (*riskCmd) Name() string     { return "risk" }
func (*riskCmd) Synopsis() string { return "per-fund risk metrics" }
func (*riskCmd) Usage() string {
	return `fol risk [-i <symbol>] [-benchmark <symbol>]

  Computes volatility, drawdown, Sharpe and horizon returns for one held
  instrument (or for each of them). With -benchmark, also alpha and beta.
`
}

func (c *riskCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "i", "", "Instrument to analyze. Defaults to every held instrument.")
	f.StringVar(&c.benchmark, "benchmark", "", "Benchmark symbol for alpha and beta")
}

func (c *riskCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rate, err := riskFreeRate()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	positions, err := loadPositions()
	if err != nil {
		return fail(err)
	}
	first, ok := folio.EarliestPurchase(positions)
	if !ok {
		return fail(errNoValuation)
	}

	symbols := folio.Instruments(positions)
	if c.symbol != "" {
		symbols = []string{c.symbol}
	}

	now := date.Today()
	rng := date.Range{From: first, To: now}
	client := marketdata.NewClient()

	fetch := symbols
	if c.benchmark != "" {
		fetch = append(append([]string{}, symbols...), c.benchmark)
	}
	series, fetchErr := marketdata.FetchAll(client, priceCache, fetch, rng)
	if fetchErr != nil {
		fmt.Fprintf(os.Stderr, "warning, some prices are missing: %v\n", fetchErr)
	}
	benchmark := series[c.benchmark]

	for _, symbol := range symbols {
		s, ok := series[symbol]
		if !ok {
			fmt.Fprintf(os.Stderr, "warning, no prices for %s, skipping\n", symbol)
			continue
		}
		metrics, ok := folio.ComputeRiskMetrics(s, benchmark, rate, now)
		if !ok {
			fmt.Fprintf(os.Stderr, "warning, not enough history for %s, skipping\n", symbol)
			continue
		}
		printMarkdown(renderer.RiskMarkdown(symbol, metrics, c.benchmark))
	}
	return subcommands.ExitSuccess
}
