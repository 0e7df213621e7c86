package renderer

import (
	"errors"
	"net/url"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/etnz/cartera"
	"github.com/etnz/cartera/date"
	"github.com/shopspring/decimal"
)

func day(month, d int) date.Date { return date.New(2025, time.Month(month), d) }

// newSnapshot returns a portfolio with one ticker bought then partially sold.
func newSnapshot() *cartera.Snapshot {
	return &cartera.Snapshot{
		Holdings: []cartera.Holding{
			{Ticker: "AAPL", Name: "Apple Inc.", Quantity: decimal.NewFromInt(6), AvgCost: decimal.NewFromInt(100), Currency: "USD"},
		},
		Prices: map[string]decimal.Decimal{"AAPL": decimal.NewFromInt(130)},
		Transactions: []cartera.Transaction{
			cartera.NewBuy(day(1, 10), "AAPL", 10, 100, 0),
			cartera.NewSell(day(3, 5), "AAPL", 4, 120, 1),
		},
		Metadata: map[string]cartera.MetaEntry{"AAPL": {Sector: "Technology", Country: "US"}},
	}
}

// assertLines fails for every line of want missing in got.
func assertLines(t *testing.T, got string, want ...string) {
	t.Helper()
	for _, line := range want {
		if !strings.Contains(got, line) {
			t.Errorf("missing line %q in:\n%s", line, got)
		}
	}
}

func TestHoldings(t *testing.T) {
	s := newSnapshot()
	got := Holdings(s.Valuations(), Options{})
	assertLines(t, got,
		"# Holdings",
		"| AAPL | Apple Inc. | 6 | $100.00 | $130.00 | $780.00 | +$180.00 | +$79.00 | +$259.00 | +43.17% |",
		"| USD | $780.00 | +$259.00 |",
	)

	linked := Holdings(s.Valuations(), Options{Links: true})
	assertLines(t, linked, "| [AAPL](/cartera/AAPL) | Apple Inc. |")

	if got := Holdings(nil, Options{}); !strings.Contains(got, "No holdings.") {
		t.Errorf("Holdings(nil) = %q, want no holdings", got)
	}
}

func TestLedger(t *testing.T) {
	s := newSnapshot()
	got := Ledger(s.Ledger("AAPL", day(4, 10)), 1, Options{})
	assertLines(t, got,
		"# AAPL · Apple Inc.",
		"| 6 | $100.00 | $130.00 | $780.00 | +$79.00 | +$180.00 | +$259.00 | +43.17% |",
		"| 2025-03-05 | sell | 4 | 120 | $479.00 | +$79.00 | +19.75% |",
		"| 2025-01-10 | buy | 10 | 100 | $1,000.00 | +$300.00 | +30.00% |",
		"| 2025-01-10 | 10 | $100.00 | $1,000.00 | $1,300.00 | +$300.00 | +30.00% | 90 |",
	)
	if strings.Contains(got, "No current price") || strings.Contains(got, "Page") {
		t.Errorf("Ledger() = %s, want a priced ledger on a single page", got)
	}
	// the sell comes first
	if strings.Index(got, "| 2025-03-05 |") > strings.Index(got, "| 2025-01-10 | buy |") {
		t.Errorf("Ledger() rows are not newest first:\n%s", got)
	}
}

func TestLedger_Unknown(t *testing.T) {
	s := newSnapshot()
	got := Ledger(s.Ledger("ZZZ", day(4, 10)), 1, Options{})
	assertLines(t, got, "# ZZZ\n", "_No current price, the position is valued at zero._", "No transactions.", "No lots.")
}

func TestLedger_Pages(t *testing.T) {
	s := newSnapshot()
	for i := 1; i <= 5; i++ {
		s.Transactions = append(s.Transactions, cartera.NewDividend(day(4, i), "AAPL", 1))
	}
	got := Ledger(s.Ledger("AAPL", day(6, 1)), 2, Options{Links: true})
	assertLines(t, got, "[« previous](/cartera/AAPL?p=1) · Page 2 of 2\n", "| 2025-01-10 | buy |")
	if strings.Contains(got, "| 2025-04-05 |") {
		t.Errorf("Ledger() page 2 shows a row of page 1:\n%s", got)
	}
}

func TestMovements(t *testing.T) {
	s := newSnapshot()
	for i := 1; i <= 25; i++ {
		s.Transactions = append(s.Transactions, cartera.NewDividend(day(4, i), "AAPL", 1))
	}
	q := cartera.NewQuery(date.NewRange(day(1, 1), day(12, 31)))
	got := Movements(s.Movements(q), Options{Links: true})
	assertLines(t, got,
		"**2025-01-01 → 2025-12-31**",
		"| USD | +$104.00 | +$180.00 | +$284.00 |",
		"| 2025-04-25 | [AAPL](/cartera/AAPL) | dividend | - | - | $1.00 | +$1.00 |",
		"Page 1 of 2 · [next »](/movimientos?from=2025-01-01&p=2&to=2025-12-31)",
	)

	q.Text = "nothing"
	if got := Movements(s.Movements(q), Options{}); !strings.Contains(got, "No movements.") {
		t.Errorf("Movements() = %s, want no movements", got)
	}
}

func TestCompare(t *testing.T) {
	s := newSnapshot()
	got := Compare(s.Compare(nil, []date.Range{date.NewRange(day(1, 1), day(3, 31))}), Options{})
	assertLines(t, got, "| 2025-Q1 | 2025-01-01 → 2025-03-31 | USD | +$79.00 | +$180.00 | +$259.00 |")
}

func TestAnalysis(t *testing.T) {
	s := newSnapshot()
	got := Analysis(s.Analyze(), Options{})
	assertLines(t, got,
		"## By sector",
		"| Technology | 780.00 | 100.00% |",
		"| **Total** | 780.00 | |",
		"No price history.",
	)

	s.History = map[string][]cartera.HistoryPoint{
		"AAPL": {{Date: day(1, 2), Close: 100}, {Date: day(1, 3), Close: 110}, {Date: day(1, 6), Close: 105}},
	}
	s.Index = &cartera.IndexSeries{Source: "test", Series: []cartera.IndexPoint{{Date: day(3, 31), Value: 1200}}}
	got = Analysis(s.Analyze(), Options{})
	assertLines(t, got, "|  | AAPL |\n", "| AAPL | 1.00 |\n", "1200.00 on 2025-03-31, test.")
}

func TestCheck(t *testing.T) {
	got := Check([]error{errors.New("first\nsecond")}, 3, Options{})
	assertLines(t, got, "1 of 3 transactions have problems:", "- first; second\n")
	if got := Check(nil, 3, Options{}); !strings.Contains(got, "All 3 transactions are valid.") {
		t.Errorf("Check(nil) = %q", got)
	}
}

func TestCorrelationMatrix(t *testing.T) {
	history := map[string][]cartera.HistoryPoint{
		"A": {{Date: day(1, 1), Close: 1}, {Date: day(1, 2), Close: 2}, {Date: day(1, 3), Close: 1}},
		"B": {{Date: day(1, 1), Close: 5}, {Date: day(1, 2), Close: 5}, {Date: day(1, 3), Close: 5}},
	}
	got := correlationMatrix(cartera.CorrelationMatrix(history, []string{"A", "B"}))
	want := matrix{
		Header: []string{"A", "B"},
		Rows: [][]string{
			{"A", "1.00", "N/D"},
			{"B", "N/D", "N/D"},
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("correlationMatrix() = %v, want %v", got, want)
	}
}

func TestPager(t *testing.T) {
	q := url.Values{"ticker": {"A"}}
	want := "[« previous](/x?p=1&ticker=A) · Page 2 of 3 · [next »](/x?p=3&ticker=A)\n"
	if got := pager("/x", q, 2, 3, true); got != want {
		t.Errorf("pager() = %q, want %q", got, want)
	}
	if got := pager("/x", q, 2, 3, false); got != "Page 2 of 3\n" {
		t.Errorf("pager() = %q, want %q", got, "Page 2 of 3\n")
	}
	if got := pager("/x", nil, 1, 1, true); got != "" {
		t.Errorf("pager() of a single page = %q, want empty", got)
	}
	if q.Get("p") != "" {
		t.Errorf("pager() modified its query")
	}
}

func TestPresetLinks(t *testing.T) {
	got := PresetLinks("/movimientos", url.Values{"ticker": {"AAPL"}, "from": {"2025-01-01"}})
	if !strings.HasPrefix(got, "[1 week](/movimientos?range=1w&ticker=AAPL) · ") {
		t.Errorf("PresetLinks() = %q", got)
	}
	if strings.Contains(got, "from=") {
		t.Errorf("PresetLinks() = %q, want the range replaced", got)
	}
}
