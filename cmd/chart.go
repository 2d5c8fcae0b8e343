package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/nvannier/folio/date"
	"github.com/nvannier/folio/renderer"
)

// chartCmd holds the flags for the 'chart' subcommand.
type chartCmd struct {
	output string
	title  string
}

func (*chartCmd) Name() string     { return "chart" }
func (*chartCmd) Synopsis() string { return "render the valuation series as a PNG chart" }
func (*chartCmd) Usage() string {
	return `fol chart [-o <file>] [-title <title>]

  Renders the daily portfolio value as a PNG line chart.
`
}

func (c *chartCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "folio.png", "Output PNG file")
	f.StringVar(&c.title, "title", "Portfolio value", "Chart title")
}

func (c *chartCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, vs, err := valuate(date.Today())
	if err != nil {
		return fail(err)
	}

	png, err := renderer.ValuationChart(vs, c.title)
	if err != nil {
		return fail(err)
	}
	if err := os.WriteFile(c.output, png, 0644); err != nil {
		return fail(err)
	}
	fmt.Printf("Wrote %s (%d bytes)\n", c.output, len(png))
	return subcommands.ExitSuccess
}
