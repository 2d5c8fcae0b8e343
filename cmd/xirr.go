package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
	"github.com/nvannier/folio"
	"github.com/nvannier/folio/date"
	"github.com/nvannier/folio/renderer"
)

// xirrCmd holds the flags for the 'xirr' subcommand.
type xirrCmd struct{}

func (*xirrCmd) Name() string     { return "xirr" }
func (*xirrCmd) Synopsis() string { return "annualized money-weighted return" }
func (*xirrCmd) Usage() string {
	return `fol xirr

  Solves the internal rate of return of the portfolio's cash flows: each
  purchase as an outflow, the current value as the final inflow.
`
}

func (*xirrCmd) SetFlags(_ *flag.FlagSet) {}

func (c *xirrCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	now := date.Today()
	positions, vs, err := valuate(now)
	if err != nil {
		return fail(err)
	}
	latest, ok := vs.Latest()
	if !ok {
		return fail(errNoValuation)
	}

	flows := folio.Flows(positions, now, latest.TotalValue)
	result := folio.XIRR(flows)
	printMarkdown(renderer.XIRRMarkdown(result, flows, *currency))
	return subcommands.ExitSuccess
}
