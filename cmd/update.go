package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/nvannier/folio"
	"github.com/nvannier/folio/date"
	"github.com/nvannier/folio/marketdata"
)

// updateCmd holds the flags for the 'update' subcommand.
type updateCmd struct{}

func (*updateCmd) Name() string     { return "update" }
func (*updateCmd) Synopsis() string { return "fetch and cache prices for all held instruments" }
func (*updateCmd) Usage() string {
	return `fol update

  Fetches the price history and fund metadata of every held instrument
  from the earliest purchase date, warming the local cache. Reporting
  commands do this on demand; update does it eagerly and reports what
  is reachable.
`
}

func (*updateCmd) SetFlags(_ *flag.FlagSet) {}

func (c *updateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	positions, err := loadPositions()
	if err != nil {
		return fail(err)
	}
	first, ok := folio.EarliestPurchase(positions)
	if !ok {
		fmt.Println("No positions, nothing to update.")
		return subcommands.ExitSuccess
	}
	rng := date.Range{From: first, To: date.Today()}
	client := marketdata.NewClient()

	series, fetchErr := marketdata.FetchAll(client, priceCache, folio.Instruments(positions), rng)
	for _, instrument := range folio.Instruments(positions) {
		s, ok := series[instrument]
		if !ok {
			fmt.Printf("%s: no prices\n", instrument)
			continue
		}
		latest, _ := s.Latest()
		fmt.Printf("%s: %d prices, latest %v on %s\n", describe(client, instrument), s.Len(), latest.Price, latest.On)
	}
	if fetchErr != nil {
		return fail(fetchErr)
	}
	return subcommands.ExitSuccess
}

// describe resolves an instrument's display description: the provider's
// metadata first, the local defaults (symbol, reporting currency) filling
// whatever the provider omits.
func describe(client *marketdata.Client, instrument string) string {
	local := marketdata.FundInfo{Symbol: instrument, Currency: currency}
	info, err := client.Info(instrument)
	if err != nil {
		info = marketdata.FundInfo{}
	}
	merged := marketdata.Merge(info, local)

	desc := merged.Symbol
	if merged.Name != nil {
		desc = fmt.Sprintf("%s (%s)", desc, *merged.Name)
	}
	if merged.Currency != nil {
		desc = fmt.Sprintf("%s [%s]", desc, *merged.Currency)
	}
	return desc
}
