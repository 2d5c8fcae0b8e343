package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/nvannier/folio"
	"github.com/nvannier/folio/date"
	"github.com/nvannier/folio/renderer"
)

// gainsCmd holds the flags for the 'gains' subcommand.
type gainsCmd struct {
	period string
}

func (*gainsCmd) Name() string     { return "gains" }
func (*gainsCmd) Synopsis() string { return "money-weighted gains per calendar period" }
func (*gainsCmd) Usage() string {
	return `fol gains [-period <period>]

  Breaks the portfolio's profit into calendar periods: the change in value
  of each period that is not explained by new purchases.
`
}

func (c *gainsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "period", date.Monthly.String(), "Period to break gains into (day, week, month, quarter, year)")
}

func (c *gainsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	period, err := date.ParsePeriod(c.period)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing period: %v\n", err)
		return subcommands.ExitUsageError
	}

	now := date.Today()
	positions, vs, err := valuate(now)
	if err != nil {
		return fail(err)
	}

	gains := folio.PeriodGains(vs, positions, period, now)
	printMarkdown(renderer.GainsMarkdown(gains, *currency))
	return subcommands.ExitSuccess
}
