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

// valuationCmd holds the flags for the 'valuation' subcommand.
type valuationCmd struct {
	live bool
	tail int
}

func (*valuationCmd) Name() string     { return "valuation" }
func (*valuationCmd) Synopsis() string { return "current portfolio value and time-weighted return" }
func (*valuationCmd) Usage() string {
	return `fol valuation [-live] [-tail <n>]

  Computes the daily portfolio valuation and its chained time-weighted
  return. With -live, the latest point uses realtime quotes instead of
  the last close.
`
}

func (c *valuationCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.live, "live", false, "Use realtime quotes for the latest point")
	f.IntVar(&c.tail, "tail", 10, "Number of recent days to list")
}

func (c *valuationCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	now := date.Today()
	positions, err := loadPositions()
	if err != nil {
		return fail(err)
	}
	client := marketdata.NewClient()
	grid, err := fetchGrid(client, positions, now)
	if err != nil {
		return fail(err)
	}

	var quotes map[string]float64
	if c.live {
		quotes = make(map[string]float64)
		for _, instrument := range folio.Instruments(positions) {
			q, err := client.Quote(instrument)
			if err != nil {
				fmt.Fprintf(os.Stderr, "warning, no live quote for %s: %v\n", instrument, err)
				continue
			}
			quotes[instrument] = q
		}
	}

	vs := folio.ValuateWithQuotes(positions, grid, quotes)
	printMarkdown(renderer.ValuationMarkdown(vs, *currency, c.tail))
	return subcommands.ExitSuccess
}
