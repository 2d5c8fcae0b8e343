package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"
	"github.com/nvannier/folio"
	"github.com/nvannier/folio/date"
	"github.com/shopspring/decimal"
)

// addCmd holds the flags for the 'add' subcommand.
type addCmd struct {
	instrument string
	shares     string
	cost       string
	purchased  string
	weight     float64
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record a new position" }
func (*addCmd) Usage() string {
	return `fol add -i <symbol> -n <shares> -c <cost> -d <date> [-w <weight>]

  Records a position: shares of one instrument bought for a total cost on a date.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.instrument, "i", "", "Instrument symbol (as quoted by the price source)")
	f.StringVar(&c.shares, "n", "", "Number of shares bought")
	f.StringVar(&c.cost, "c", "", "Total amount paid, in the reporting currency")
	f.StringVar(&c.purchased, "d", date.Today().String(), "Purchase date")
	f.Float64Var(&c.weight, "w", 0, "Optional target allocation weight, as a fraction")
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	shares, err := decimal.NewFromString(c.shares)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing shares %q: %v\n", c.shares, err)
		return subcommands.ExitUsageError
	}
	cost, err := decimal.NewFromString(c.cost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing cost %q: %v\n", c.cost, err)
		return subcommands.ExitUsageError
	}
	purchased, err := date.Parse(c.purchased)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing purchase date: %v\n", err)
		return subcommands.ExitUsageError
	}

	p := folio.Position{
		Instrument:   c.instrument,
		Shares:       shares,
		CostBasis:    cost,
		PurchaseDate: purchased,
	}
	if c.weight > 0 {
		p.TargetWeight = &c.weight
	}

	s, err := openStore()
	if err != nil {
		return fail(err)
	}
	defer s.Close()

	added, err := s.Add(p)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Added position %d: %s\n", added.ID, added)
	return subcommands.ExitSuccess
}

// listCmd holds the flags for the 'list' subcommand.
type listCmd struct{}

func (*listCmd) Name() string             { return "list" }
func (*listCmd) Synopsis() string         { return "list recorded positions" }
func (*listCmd) Usage() string            { return "fol list\n\n  Lists all recorded positions.\n" }
func (*listCmd) SetFlags(_ *flag.FlagSet) {}

func (c *listCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	positions, err := loadPositions()
	if err != nil {
		return fail(err)
	}
	if len(positions) == 0 {
		fmt.Println("No positions. Add one with 'fol add'.")
		return subcommands.ExitSuccess
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tInstrument\tShares\tCost\tPurchased")
	for _, p := range positions {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			p.ID, p.Instrument, p.Shares, folio.M(p.CostBasis, *currency), p.PurchaseDate)
	}
	w.Flush()
	return subcommands.ExitSuccess
}

// deleteCmd holds the flags for the 'delete' subcommand.
type deleteCmd struct {
	id int64
}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "delete a position by id" }
func (*deleteCmd) Usage() string {
	return "fol delete -id <id>\n\n  Deletes one position. Use 'fol list' to find its id.\n"
}

func (c *deleteCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.id, "id", 0, "Position id to delete")
}

func (c *deleteCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == 0 {
		fmt.Fprintln(os.Stderr, "-id is required")
		return subcommands.ExitUsageError
	}
	s, err := openStore()
	if err != nil {
		return fail(err)
	}
	defer s.Close()

	if err := s.Delete(c.id); err != nil {
		return fail(err)
	}
	fmt.Printf("Deleted position %d\n", c.id)
	return subcommands.ExitSuccess
}
