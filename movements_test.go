package cartera

import (
	"testing"

	"github.com/etnz/cartera/date"
)

func TestMovements(t *testing.T) {
	s := newSnapshot()
	q := NewQuery(date.NewRange(day(3, 1), day(3, 31)))
	report := s.Movements(q)

	if len(report.Summaries) != 1 {
		t.Fatalf("len(Summaries) = %d, want 1", len(report.Summaries))
	}
	sum := report.Summaries[0]
	if sum.Currency != "USD" {
		t.Errorf("Summaries[0].Currency = %q, want USD", sum.Currency)
	}
	// sell of AAPL (120-100)*4-1 and the GGAL dividend
	assertMoney(t, "Realized", sum.Realized, 94)
	// AAPL (130-100)*6 and GGAL (25-20)*100
	assertMoney(t, "Unrealized", sum.Unrealized, 680)
	assertMoney(t, "Total", sum.Total(), 774)

	if len(report.Rows) != 2 {
		t.Fatalf("len(Rows) = %d, want 2", len(report.Rows))
	}
	// newest first
	if r := report.Rows[0]; r.Ticker != "GGAL" || r.Type != Dividend {
		t.Errorf("Rows[0] = %s %s, want GGAL dividend", r.Ticker, r.Type)
	}
	sell := report.Rows[1]
	assertMoney(t, "sell PnL", sell.PnL, 79)
	if want := Ratio(decimalOf(79.0 / 400)); !sell.Pct.Equal(want) {
		t.Errorf("sell Pct = %v, want %v", sell.Pct, want)
	}
	if sell.Currency != "USD" {
		t.Errorf("sell Currency = %q, want USD", sell.Currency)
	}
	if report.HasIndex {
		t.Errorf("HasIndex = true without an index")
	}
}

func TestMovements_ReplaysUntilEndOfRange(t *testing.T) {
	s := newSnapshot()
	report := s.Movements(NewQuery(date.NewRange(day(1, 1), day(2, 28))))

	sum := report.Summaries[0]
	assertMoney(t, "Realized", sum.Realized, 0)
	// the AAPL sell of March is not replayed: 10 shares are still open
	assertMoney(t, "Unrealized", sum.Unrealized, 300+500)

	for _, r := range report.Rows {
		if r.Ticker == "AAPL" {
			assertMoney(t, "AAPL buy PnL", r.PnL, 300)
		}
	}
}

func TestMovements_Currencies(t *testing.T) {
	s := newSnapshot()
	s.Holdings = append(s.Holdings, Holding{Ticker: "YPF", Name: "YPF", Currency: "ARS"})
	s.Prices["YPF"] = decimalOf(1200)
	s.Transactions = append(s.Transactions, NewBuy(day(3, 10), "YPF", 10, 1000, 0))

	report := s.Movements(NewQuery(date.NewRange(day(1, 1), day(12, 31))))
	if len(report.Summaries) != 2 {
		t.Fatalf("len(Summaries) = %d, want 2", len(report.Summaries))
	}
	ars, usd := report.Summaries[0], report.Summaries[1]
	if ars.Currency != "ARS" || usd.Currency != "USD" {
		t.Fatalf("Summaries currencies = %q, %q, want ARS, USD", ars.Currency, usd.Currency)
	}
	assertMoney(t, "ARS Unrealized", ars.Unrealized, 2000)
	assertMoney(t, "USD Realized", usd.Realized, 94)
}

func TestMovements_Index(t *testing.T) {
	s := newSnapshot()
	s.Index = &IndexSeries{Series: []IndexPoint{
		{Date: day(3, 3), Value: 1100},
		{Date: day(3, 28), Value: 1200},
		{Date: day(4, 2), Value: 1250},
	}}
	report := s.Movements(NewQuery(date.NewRange(day(3, 1), day(3, 31))))
	if !report.HasIndex || report.Index != 1200 {
		t.Errorf("Index = %v, %v, want 1200, true", report.Index, report.HasIndex)
	}
}

func TestMovements_Page(t *testing.T) {
	s := newSnapshot()
	for i := 1; i <= 25; i++ {
		s.Transactions = append(s.Transactions, NewDividend(day(4, i), "KO", 1))
	}
	q := NewQuery(date.NewRange(day(1, 1), day(12, 31)))
	q.Page = 2
	page := s.Movements(q).Page()
	if page.Count != 29 || page.Total != 2 || page.Number != 2 || len(page.Rows) != 9 {
		t.Errorf("Page() = count %d, total %d, number %d, %d rows, want 29, 2, 2, 9 rows",
			page.Count, page.Total, page.Number, len(page.Rows))
	}
}

func TestCompare(t *testing.T) {
	s := newSnapshot()
	ranges := []date.Range{
		date.NewRange(day(1, 1), day(3, 31)),
		date.NewRange(day(3, 1), day(3, 10)),
	}
	got := s.Compare([]string{"", "early march"}, ranges)
	if len(got) != 2 {
		t.Fatalf("len(Compare()) = %d, want 2", len(got))
	}
	if got[0].Label != "2025-Q1" {
		t.Errorf("Compare()[0].Label = %q, want %q", got[0].Label, "2025-Q1")
	}
	if got[1].Label != "early march" {
		t.Errorf("Compare()[1].Label = %q, want %q", got[1].Label, "early march")
	}
	assertMoney(t, "Q1 Realized", got[0].Summaries[0].Realized, 94)
	// only the AAPL sell falls in early march, the dividend is on the 20th
	assertMoney(t, "early march Realized", got[1].Summaries[0].Realized, 79)
	assertMoney(t, "early march Unrealized", got[1].Summaries[0].Unrealized, 680)
}
