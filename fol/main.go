package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/nvannier/folio/cmd"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// completion describes the command tree for shell completion. It must stay
// in sync with cmd.Commands, which the completion test checks.
var completion = &complete.Command{
	Flags: map[string]complete.Predictor{
		"db":             predict.Files("*.db"),
		"currency":       predict.Set{"EUR", "USD", "GBP", "CHF"},
		"risk-free-rate": predict.Something,
	},
	Sub: map[string]*complete.Command{
		"add": {Flags: map[string]complete.Predictor{
			"i": predict.Something,
			"n": predict.Something,
			"c": predict.Something,
			"d": predict.Something,
			"w": predict.Something,
		}},
		"list":   {},
		"delete": {Flags: map[string]complete.Predictor{"id": predict.Something}},
		"update": {},
		"valuation": {Flags: map[string]complete.Predictor{
			"live": predict.Nothing,
			"tail": predict.Something,
		}},
		"gains": {Flags: map[string]complete.Predictor{
			"period": predict.Set{"day", "week", "month", "quarter", "year"},
		}},
		"xirr": {},
		"risk": {Flags: map[string]complete.Predictor{
			"i":         predict.Something,
			"benchmark": predict.Something,
		}},
		"chart": {Flags: map[string]complete.Predictor{
			"o":     predict.Files("*.png"),
			"title": predict.Something,
		}},
	},
}

func main() {
	// Handles the shell completion protocol and exits when invoked by it.
	completion.Complete("fol")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
