// Package cmd implements the CLI application to track a fund portfolio.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/nvannier/folio"
	"github.com/nvannier/folio/date"
	"github.com/nvannier/folio/marketdata"
	"github.com/nvannier/folio/store"
)

// Commands is the full command set. A main package registers them all and
// executes the user-selected one.
var Commands = []subcommands.Command{
	&addCmd{},
	&listCmd{},
	&deleteCmd{},
	&updateCmd{},
	&valuationCmd{},
	&gainsCmd{},
	&xirrCmd{},
	&riskCmd{},
	&chartCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var dbFile = flag.String("db", envOr("FOLIO_DB", "folio.db"), "Path to the positions database. Defaults to $FOLIO_DB.")
var currency = flag.String("currency", envOr("FOLIO_CURRENCY", "EUR"), "Reporting currency code. Defaults to $FOLIO_CURRENCY.")
var riskFreeFlag = flag.String("risk-free-rate", "", "Annual risk-free rate as a fraction (e.g. 0.02).\n If missing it will read the environment variable FOLIO_RISK_FREE_RATE.")

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// riskFreeRate resolves the flag with its env fallback, defaulting to 0.
func riskFreeRate() (float64, error) {
	raw := *riskFreeFlag
	if raw == "" {
		raw = os.Getenv("FOLIO_RISK_FREE_RATE")
	}
	if raw == "" {
		return 0, nil
	}
	rate, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid risk-free rate %q: %w", raw, err)
	}
	return rate, nil
}

// openStore opens the app positions database.
func openStore() (*store.Store, error) {
	return store.Open(*dbFile)
}

// loadPositions returns all stored positions.
func loadPositions() ([]folio.Position, error) {
	s, err := openStore()
	if err != nil {
		return nil, err
	}
	defer s.Close()
	return s.List()
}

// priceCache is shared across the commands of one run; the heavy lifting is
// done by the disk HTTP cache underneath it anyway.
var priceCache = marketdata.NewPriceCache(15 * time.Minute)

// fetchGrid fetches the price series of every held instrument and aligns
// them from the earliest purchase to now. Partial fetch failures are
// reported on stderr but do not abort: the neutral fallback in the valuation
// covers the holes.
func fetchGrid(client *marketdata.Client, positions []folio.Position, now date.Date) (*folio.Grid, error) {
	first, ok := folio.EarliestPurchase(positions)
	if !ok {
		return nil, fmt.Errorf("no positions: add one with 'add' first")
	}
	rng := date.Range{From: first, To: now}

	series, err := marketdata.FetchAll(client, priceCache, folio.Instruments(positions), rng)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning, some prices are missing: %v\n", err)
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("no prices available for any instrument")
	}
	return folio.Align(series, rng), nil
}

// valuate is the shared pipeline: positions -> grid -> valuation series.
func valuate(now date.Date) ([]folio.Position, folio.ValuationSeries, error) {
	positions, err := loadPositions()
	if err != nil {
		return nil, nil, err
	}
	grid, err := fetchGrid(marketdata.NewClient(), positions, now)
	if err != nil {
		return nil, nil, err
	}
	return positions, folio.Valuate(positions, grid), nil
}

// printMarkdown renders markdown to the terminal. When rendering fails (no
// TTY, exotic TERM) the raw markdown is still printed.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err == nil {
		if out, err := r.Render(md); err == nil {
			fmt.Print(out)
			return
		}
	}
	fmt.Print(md)
}

var errNoValuation = errors.New("no valuation points: no positions or no prices yet")

// fail prints the error and returns the failure status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}
