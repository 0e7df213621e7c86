package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/cartera/renderer"
	"github.com/google/subcommands"
)

type analysisCmd struct{}

func (*analysisCmd) Name() string     { return "analysis" }
func (*analysisCmd) Synopsis() string { return "display the allocation and the correlations" }
func (*analysisCmd) Usage() string {
	return `cartera analysis

  Displays the allocation of the holdings by sector, country and currency, the
  correlation matrix of the tickers with a price history, and the last CCL index value.
`
}

func (c *analysisCmd) SetFlags(f *flag.FlagSet) {}

func (c *analysisCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	snap, err := loadSnapshot(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.Analysis(snap.Analyze(), renderer.Options{}))
	return subcommands.ExitSuccess
}
