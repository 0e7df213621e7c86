package cmd

import (
	"context"
	"flag"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/etnz/cartera"
	"github.com/etnz/cartera/date"
	"github.com/etnz/cartera/renderer"
	"github.com/google/subcommands"
)

// movementsCmd holds the filters of the 'movements' subcommand, named after the web parameters.
type movementsCmd struct {
	rng, from, to string
	ticker, typ   string
	qmin, qmax    string
	pmin, pmax    string
	amin, amax    string
	sort, dir     string
	page          int
}

func (*movementsCmd) Name() string     { return "movements" }
func (*movementsCmd) Synopsis() string { return "display the movements of a range with their P&L" }
func (*movementsCmd) Usage() string {
	return `cartera movements [-range <preset>] [-from <date>] [-to <date>] [-ticker <text>] [-type <type>]
    [-qmin <n>] [-qmax <n>] [-pmin <n>] [-pmax <n>] [-amin <n>] [-amax <n>]
    [-sort <key>] [-dir asc|desc] [-p <page>]

  Displays the realized and unrealized P&L of a range, and the transactions matching
  the filters. Presets are 1w, 1m, 3m, 6m, ytd, 1y, prev-year and all, relative to -to.
  See 'cartera topic movements'.
`
}

func (c *movementsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.rng, "range", "all", "Range preset")
	f.StringVar(&c.from, "from", "", "First day of the range, overrides the preset start")
	f.StringVar(&c.to, "to", "", "Last day of the range (default today)")
	f.StringVar(&c.ticker, "ticker", "", "Keep the tickers or names containing this text")
	f.StringVar(&c.typ, "type", "", "Keep one transaction type: buy, sell or dividend")
	f.StringVar(&c.qmin, "qmin", "", "Minimum quantity")
	f.StringVar(&c.qmax, "qmax", "", "Maximum quantity")
	f.StringVar(&c.pmin, "pmin", "", "Minimum price")
	f.StringVar(&c.pmax, "pmax", "", "Maximum price")
	f.StringVar(&c.amin, "amin", "", "Minimum amount")
	f.StringVar(&c.amax, "amax", "", "Maximum amount")
	f.StringVar(&c.sort, "sort", "date", "Sort key: date, ticker, type, quantity, price or amount")
	f.StringVar(&c.dir, "dir", "desc", "Sort direction: asc or desc")
	f.IntVar(&c.page, "p", 1, "Page of the movements")
}

// values returns the flags as request parameters.
func (c *movementsCmd) values() url.Values {
	v := url.Values{}
	for key, value := range map[string]string{
		"range": c.rng, "from": c.from, "to": c.to,
		"ticker": c.ticker, "type": c.typ,
		"qmin": c.qmin, "qmax": c.qmax,
		"pmin": c.pmin, "pmax": c.pmax,
		"amin": c.amin, "amax": c.amax,
		"sort": c.sort, "dir": c.dir,
	} {
		if value != "" {
			v.Set(key, value)
		}
	}
	v.Set("p", strconv.Itoa(c.page))
	return v
}

func (c *movementsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.typ != "" {
		if _, err := cartera.ParseKind(c.typ); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	q, err := cartera.ParseQuery(c.values(), date.Today())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	snap, err := loadSnapshot(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.Movements(snap.Movements(q), renderer.Options{}))
	return subcommands.ExitSuccess
}

type compareCmd struct {
	ranges string
	to     string
}

func (*compareCmd) Name() string     { return "compare" }
func (*compareCmd) Synopsis() string { return "compare the P&L of several ranges" }
func (*compareCmd) Usage() string {
	return `cartera compare [-range 1m,3m,ytd] [-to <date>]

  Displays the realized, unrealized and total P&L of each range side by side.
`
}

func (c *compareCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ranges, "range", "1m,3m,ytd,1y", "Comma separated range presets")
	f.StringVar(&c.to, "to", "0d", "Last day of every range")
}

// parseRanges returns the labels and the ranges of a comma separated list of presets.
func parseRanges(list string, to date.Date) (labels []string, ranges []date.Range, err error) {
	for name := range strings.SplitSeq(list, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		r, err := date.Preset(name, to)
		if err != nil {
			return nil, nil, err
		}
		labels = append(labels, date.PresetLabel(name))
		ranges = append(ranges, r)
	}
	if len(ranges) == 0 {
		return nil, nil, fmt.Errorf("no range in %q", list)
	}
	return labels, ranges, nil
}

func (c *compareCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	to, err := date.Parse(c.to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	labels, ranges, err := parseRanges(c.ranges, to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	snap, err := loadSnapshot(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.Compare(snap.Compare(labels, ranges), renderer.Options{}))
	return subcommands.ExitSuccess
}
