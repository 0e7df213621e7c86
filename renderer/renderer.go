package renderer

import (
	"fmt"
	"io/fs"
	"maps"
	"net/url"
	"strconv"
	"strings"
	"text/template"

	"github.com/etnz/cartera"
	"github.com/etnz/cartera/date"
	"github.com/shopspring/decimal"
)

// Options holds configuration shared by every report.
type Options struct {
	Links bool // Link tickers and pages to the web routes.
}

type holdingsView struct {
	Options
	Valuations []cartera.Valuation
	Totals     []cartera.CurrencyTotal
}

// Holdings renders the valuation of every holding and the totals per currency.
func Holdings(vs []cartera.Valuation, opts Options) string {
	partials := map[string]string{
		"holdings_totals": "holdings_totals.md",
	}
	return renderTemplate("holdings", "holdings.md", partials, opts, holdingsView{Options: opts, Valuations: vs, Totals: cartera.Totals(vs)})
}

type ledgerView struct {
	Options
	*cartera.Ledger
	Listing cartera.Page[cartera.Row]
}

// Ledger renders the page-th page of a ticker ledger.
func Ledger(l *cartera.Ledger, page int, opts Options) string {
	partials := map[string]string{
		"ledger_position": "ledger_position.md",
		"ledger_rows":     "ledger_rows.md",
		"ledger_lots":     "ledger_lots.md",
	}
	return renderTemplate("ledger", "ledger.md", partials, opts, ledgerView{Options: opts, Ledger: l, Listing: l.Page(page)})
}

type movementsView struct {
	Options
	*cartera.MovementsReport
	Listing cartera.Page[cartera.MovementRow]
}

// Movements renders the summary and the current page of a movements report.
func Movements(r *cartera.MovementsReport, opts Options) string {
	partials := map[string]string{
		"movements_summary": "movements_summary.md",
		"movements_rows":    "movements_rows.md",
	}
	return renderTemplate("movements", "movements.md", partials, opts, movementsView{Options: opts, MovementsReport: r, Listing: r.Page()})
}

// Compare renders the summaries of several ranges side by side.
func Compare(cs []cartera.Comparison, opts Options) string {
	data := struct{ Comparisons []cartera.Comparison }{cs}
	return renderTemplate("compare", "compare.md", nil, opts, data)
}

type analysisView struct {
	Options
	*cartera.Analysis
	Matrix matrix
}

// Analysis renders the allocations, the correlation matrix and the index.
func Analysis(a *cartera.Analysis, opts Options) string {
	partials := map[string]string{
		"analysis_allocation":  "analysis_allocation.md",
		"analysis_correlation": "analysis_correlation.md",
	}
	return renderTemplate("analysis", "analysis.md", partials, opts, analysisView{Options: opts, Analysis: a, Matrix: correlationMatrix(a.Correlations)})
}

// Check renders the problems found in the transactions.
func Check(errs []error, count int, opts Options) string {
	data := struct {
		Errors []error
		Count  int
	}{errs, count}
	return renderTemplate("check", "check.md", nil, opts, data)
}

// funcs returns the template functions for a set of options.
func funcs(opts Options) template.FuncMap {
	return template.FuncMap{
		"ticker": func(ticker string) string {
			if !opts.Links {
				return ticker
			}
			return fmt.Sprintf("[%s](%s)", ticker, TickerPath(ticker))
		},
		"tickerPath": TickerPath,
		"pager": func(path string, q url.Values, number, total int) string {
			return pager(path, q, number, total, opts.Links)
		},
		"cell":     cell,
		"optional": optional,
		"decimal":  func(d decimal.Decimal) string { return d.StringFixed(2) },
		"money":    func(d decimal.Decimal, cur string) string { return cartera.M(d, cur).String() },
		"oneLine":  func(err error) string { return strings.ReplaceAll(err.Error(), "\n", "; ") },
	}
}

// TickerPath returns the web path of a ticker ledger.
func TickerPath(ticker string) string { return "/cartera/" + url.PathEscape(ticker) }

// cell escapes a value for a markdown table cell.
func cell(s string) string { return strings.ReplaceAll(s, "|", `\|`) }

// optional prints an optional number, "-" when undefined.
func optional(d decimal.NullDecimal) string {
	if !d.Valid {
		return "-"
	}
	return d.Decimal.String()
}

// pager prints the position of a page in a listing, with links to its neighbours.
func pager(path string, q url.Values, number, total int, links bool) string {
	if total <= 1 {
		return ""
	}
	link := func(label string, p int) string {
		v := maps.Clone(q)
		if v == nil {
			v = url.Values{}
		}
		v.Set("p", strconv.Itoa(p))
		return fmt.Sprintf("[%s](%s?%s)", label, path, v.Encode())
	}
	var parts []string
	if links && number > 1 {
		parts = append(parts, link("« previous", number-1))
	}
	parts = append(parts, fmt.Sprintf("Page %d of %d", number, total))
	if links && number < total {
		parts = append(parts, link("next »", number+1))
	}
	return strings.Join(parts, " · ") + "\n"
}

// PresetLinks prints the links to the range presets of a listing.
func PresetLinks(path string, q url.Values) string {
	parts := make([]string, 0, len(date.Presets))
	for _, name := range date.Presets {
		v := url.Values{}
		for _, key := range []string{"ticker", "type", "sort", "dir"} {
			if s := q.Get(key); s != "" {
				v.Set(key, s)
			}
		}
		v.Set("range", name)
		parts = append(parts, fmt.Sprintf("[%s](%s?%s)", date.PresetLabel(name), path, v.Encode()))
	}
	return strings.Join(parts, " · ")
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, opts Options, data any) string {
	mainContent, err := fs.ReadFile(templates, "templates/"+mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs(opts)).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, "templates/"+file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
