package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/cartera/date"
	"github.com/etnz/cartera/renderer"
	"github.com/google/subcommands"
)

type tickerCmd struct {
	page int
	date string
}

func (*tickerCmd) Name() string     { return "ticker" }
func (*tickerCmd) Synopsis() string { return "display the ledger of a ticker" }
func (*tickerCmd) Usage() string {
	return `cartera ticker [-p <page>] [-d <date>] <TICKER>

  Displays the position of a ticker, its transactions with a running P&L, and the
  open lots of its buys.
`
}

func (c *tickerCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.page, "p", 1, "Page of the transactions")
	f.StringVar(&c.date, "d", "0d", "Reference date to count the days held. See the user manual for supported date formats.")
}

func (c *tickerCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: ticker requires exactly one ticker")
		return subcommands.ExitUsageError
	}
	on, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	snap, err := loadSnapshot(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.Ledger(snap.Ledger(f.Arg(0), on), c.page, renderer.Options{}))
	return subcommands.ExitSuccess
}
