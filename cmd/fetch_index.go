package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/cartera/ambito"
	"github.com/etnz/cartera/date"
	"github.com/etnz/cartera/store"
	"github.com/google/subcommands"
)

type fetchIndexCmd struct {
	force bool
}

func (*fetchIndexCmd) Name() string     { return "fetch-index" }
func (*fetchIndexCmd) Synopsis() string { return "download the CCL index history" }
func (*fetchIndexCmd) Usage() string {
	return `cartera fetch-index [-force] [<from> [<to>]]

  Downloads the CCL index history from Ámbito into the ccl.json file of the data
  directory. An existing file is kept unless -force is set.

  <from> defaults to index_from in the configuration, <to> to today.
`
}

func (c *fetchIndexCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.force, "force", false, "Download the index even if the file exists")
}

func (c *fetchIndexCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() > 2 {
		fmt.Fprintln(os.Stderr, "Error: fetch-index accepts at most two dates")
		return subcommands.ExitUsageError
	}
	from, to := cfg.IndexFrom, date.Today()
	if from.IsZero() {
		from = ambito.DefaultFrom
	}
	for i, d := range []*date.Date{&from, &to} {
		if i >= f.NArg() {
			break
		}
		parsed, err := date.Parse(f.Arg(i))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
		*d = parsed
	}

	written, err := refreshIndex(ctx, from, to, c.force)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching the index: %v\n", err)
		return subcommands.ExitFailure
	}
	if !written {
		fmt.Println("Index already downloaded, use -force to download it again.")
	}
	return subcommands.ExitSuccess
}

// refreshIndex downloads the index into the data directory and reports whether it was written.
func refreshIndex(ctx context.Context, from, to date.Date, force bool) (bool, error) {
	s, err := openStore()
	if err != nil {
		return false, err
	}
	path := s.Path(store.IndexFile)
	if !force {
		if _, err := os.Stat(path); err == nil {
			return false, nil
		}
	}
	series, err := ambito.Fetch(ctx, ambito.Daily(), from, to)
	if err != nil {
		return false, err
	}
	return ambito.Write(path, series, force)
}
