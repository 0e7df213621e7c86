package cartera

import "testing"

func TestLedger(t *testing.T) {
	s := newSnapshot()
	l := s.Ledger("AAPL", day(4, 10))

	if l.Name != "Apple Inc." || !l.HasPrice {
		t.Errorf("Ledger() = %q, HasPrice %v, want %q, true", l.Name, l.HasPrice, "Apple Inc.")
	}
	if len(l.Rows) != 2 || l.Rows[0].Type != Sell || l.Rows[1].Type != Buy {
		t.Fatalf("Ledger().Rows = %v, want the sell then the buy", l.Rows)
	}
	if len(l.Lots) != 1 {
		t.Fatalf("len(Ledger().Lots) = %d, want 1", len(l.Lots))
	}
	lot := l.Lots[0]
	if !lot.Quantity.Equal(Q(10)) {
		t.Errorf("lot.Quantity = %v, want 10", lot.Quantity)
	}
	assertMoney(t, "lot.Price", lot.Price, 100)
	assertMoney(t, "lot.Invested", lot.Invested, 1000)
	assertMoney(t, "lot.Value", lot.Value, 1300)
	assertMoney(t, "lot.PnL()", lot.PnL(), 300)
	if want := Ratio(decimalOf(0.3)); !lot.Return().Equal(want) {
		t.Errorf("lot.Return() = %v, want %v", lot.Return(), want)
	}
	if lot.DaysHeld != 90 {
		t.Errorf("lot.DaysHeld = %d, want 90", lot.DaysHeld)
	}
	assertMoney(t, "Total.Invested", l.Total.Invested, 1000)
	assertMoney(t, "Total.PnL()", l.Total.PnL(), 300)

	// the position reflects the sell, the lots do not
	if !l.Position.Quantity.Equal(Q(6)) {
		t.Errorf("Position.Quantity = %v, want 6", l.Position.Quantity)
	}
}

func TestLedger_WithoutTransactions(t *testing.T) {
	s := newSnapshot()
	l := s.Ledger("KO", day(4, 10))
	if l.HasPrice {
		t.Errorf("HasPrice = true, want false")
	}
	if len(l.Rows) != 0 || len(l.Lots) != 0 {
		t.Errorf("Ledger() = %d rows, %d lots, want none", len(l.Rows), len(l.Lots))
	}
	if !l.Position.Quantity.Equal(Q(5)) {
		t.Errorf("Position.Quantity = %v, want the holding's 5", l.Position.Quantity)
	}
	if got := l.Total.Return().String(); got != "0.00%" {
		t.Errorf("Total.Return() = %q, want %q", got, "0.00%")
	}
}

func TestLedger_Page(t *testing.T) {
	s := newSnapshot()
	for i := 1; i <= 5; i++ {
		s.Transactions = append(s.Transactions, NewBuy(day(5, i), "AAPL", 1, 110, 0))
	}
	l := s.Ledger("AAPL", day(6, 1))
	page := l.Page(2)
	if page.Total != 2 || len(page.Rows) != 2 {
		t.Fatalf("Page(2) = %d pages, %d rows, want 2 pages, 2 rows", page.Total, len(page.Rows))
	}
	// the oldest rows come last
	if page.Rows[1].Date != day(1, 10) {
		t.Errorf("Page(2).Rows[1].Date = %v, want %v", page.Rows[1].Date, day(1, 10))
	}
}
