package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"slices"
	"text/template"

	"github.com/etnz/cartera"
	"github.com/etnz/cartera/date"
	"github.com/etnz/cartera/renderer"
	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
)

// reportTask is a report to publish, it is also the data of the front matter template.
type reportTask struct {
	Report string     // holdings, analysis, ticker or movements
	Name   string     // ticker or period name, empty for the global reports
	Period date.Range // range of the movements, or the publication day
	Page   int
}

// File returns the path of the report, relative to the output directory.
func (t reportTask) File() string {
	switch t.Report {
	case "ticker":
		if t.Page > 1 {
			return path.Join("ticker", fmt.Sprintf("%s-%d.md", t.Name, t.Page))
		}
		return path.Join("ticker", t.Name+".md")
	case "movements":
		if t.Page > 1 {
			return path.Join("movements", t.Name, fmt.Sprintf("%s-%d.md", t.Period.Identifier(), t.Page))
		}
		return path.Join("movements", t.Name, t.Period.Identifier()+".md")
	default:
		return t.Report + ".md"
	}
}

type publishCmd struct {
	outputDir      string
	frontMatterTpl string
}

func (*publishCmd) Name() string { return "publish" }

func (*publishCmd) Synopsis() string { return "generates every report as markdown files" }

func (*publishCmd) Usage() string {
	return `cartera publish [-o <dir>] [-frontmatter <file>]

  Generates the holdings, the analysis, the ledger of every ticker and the movements
  of every month, quarter and year since the first transaction, and saves them to a
  structured directory tree.
`
}

func (c *publishCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.outputDir, "o", "reports", "Root directory for the generated reports")
	f.StringVar(&c.frontMatterTpl, "frontmatter", "", "Path to a Go template file for the report front matter")
}

func (c *publishCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var frontMatterTpl *template.Template
	if c.frontMatterTpl != "" {
		var err error
		frontMatterTpl, err = template.ParseFiles(c.frontMatterTpl)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to parse front matter template: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	snap, err := loadSnapshot(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}

	today := date.Today()
	for _, task := range publishTasks(snap, today) {
		md := renderTask(snap, task, today)

		if frontMatterTpl != nil {
			fm, err := renderFrontMatter(frontMatterTpl, task)
			if err != nil {
				fmt.Fprintf(os.Stderr, "failed to render front matter for %s: %v\n", task.File(), err)
				continue
			}
			md = fm + "\n" + md
		}

		fullPath := filepath.Join(c.outputDir, filepath.FromSlash(task.File()))
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			fmt.Fprintf(os.Stderr, "failed to create output directory for file %s: %v\n", task.File(), err)
			return subcommands.ExitFailure
		}
		if err := os.WriteFile(fullPath, []byte(md), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write file %s: %v\n", task.File(), err)
			return subcommands.ExitFailure
		}
		log.Debug().Str("file", task.File()).Msg("report generated")
	}
	return subcommands.ExitSuccess
}

// publishTasks lists the reports of a snapshot.
func publishTasks(snap *cartera.Snapshot, today date.Date) []reportTask {
	day := date.NewRange(today, today)
	tasks := []reportTask{
		{Report: "holdings", Period: day},
		{Report: "analysis", Period: day},
	}

	for ticker := range snap.Tickers() {
		pages := snap.Ledger(ticker, today).Page(1).Total
		for p := 1; p <= pages; p++ {
			tasks = append(tasks, reportTask{Report: "ticker", Name: ticker, Period: day, Page: p})
		}
	}

	var first date.Date
	for _, tx := range snap.Transactions {
		if first.IsZero() || tx.Date.Before(first) {
			first = tx.Date
		}
	}
	for _, p := range []date.Period{date.Monthly, date.Quarterly, date.Yearly} {
		for _, r := range generatePeriods(first, today, p) {
			pages := snap.Movements(periodQuery(r, 1)).Page().Total
			for page := 1; page <= pages; page++ {
				tasks = append(tasks, reportTask{Report: "movements", Name: p.String(), Period: r, Page: page})
			}
		}
	}
	return tasks
}

// renderTask renders the markdown of a report.
func renderTask(snap *cartera.Snapshot, task reportTask, today date.Date) string {
	opts := renderer.Options{}
	switch task.Report {
	case "holdings":
		return renderer.Holdings(snap.Valuations(), opts)
	case "analysis":
		return renderer.Analysis(snap.Analyze(), opts)
	case "ticker":
		return renderer.Ledger(snap.Ledger(task.Name, today), task.Page, opts)
	case "movements":
		return renderer.Movements(snap.Movements(periodQuery(task.Period, task.Page)), opts)
	default:
		panic(fmt.Sprintf("unknown report %q", task.Report))
	}
}

// periodQuery selects the movements of a period in chronological order.
func periodQuery(r date.Range, page int) cartera.Query {
	q := cartera.NewQuery(r)
	q.Ascending = true
	q.Page = page
	return q
}

// generatePeriods returns the calendar periods between two dates, none when startDate is zero.
func generatePeriods(startDate, endDate date.Date, p date.Period) []date.Range {
	if startDate.IsZero() {
		// no transactions
		return []date.Range{}
	}
	return slices.Collect(date.NewRange(startDate, endDate).Periods(p))
}

func renderFrontMatter(tpl *template.Template, task reportTask) (string, error) {
	var fmBuffer bytes.Buffer
	if err := tpl.Execute(&fmBuffer, task); err != nil {
		return "", err
	}
	return fmBuffer.String(), nil
}
