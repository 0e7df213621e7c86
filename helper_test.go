package cartera

import (
	"testing"
	"time"

	"github.com/etnz/cartera/date"
	"github.com/shopspring/decimal"
)

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// day is a helper for test to create a date in 2025.
func day(month, d int) date.Date { return date.New(2025, time.Month(month), d) }

// assertMoney fails if got is not want.
func assertMoney(t *testing.T, name string, got Money, want float64) {
	t.Helper()
	if !got.Decimal().Equal(decimal.NewFromFloat(want)) {
		t.Errorf("%s = %v, want %v", name, got.Decimal(), want)
	}
}

// newSnapshot returns a small portfolio used across tests.
func newSnapshot() *Snapshot {
	return &Snapshot{
		Holdings: []Holding{
			{Ticker: "AAPL", Name: "Apple Inc.", Quantity: decimal.NewFromInt(6), AvgCost: decimal.NewFromInt(100), Currency: "USD"},
			{Ticker: "GGAL", Name: "Grupo Financiero Galicia", Quantity: decimal.NewFromInt(100), AvgCost: decimal.NewFromInt(20), Currency: "USD"},
			{Ticker: "KO", Name: "Coca-Cola", Quantity: decimal.NewFromInt(5), AvgCost: decimal.NewFromInt(50), Currency: "USD"},
		},
		Prices: map[string]decimal.Decimal{
			"AAPL": decimal.NewFromInt(130),
			"GGAL": decimal.NewFromInt(25),
		},
		Transactions: []Transaction{
			NewBuy(day(1, 10), "AAPL", 10, 100, 0),
			NewBuy(day(2, 1), "GGAL", 100, 20, 0),
			NewSell(day(3, 5), "AAPL", 4, 120, 1),
			NewDividend(day(3, 20), "GGAL", 15),
		},
		Metadata: map[string]MetaEntry{
			"AAPL": {Sector: "Technology", Country: "US"},
			"GGAL": {Sector: "Financials", Country: "AR"},
		},
	}
}

// decimalOf is a helper for test to create a decimal from a float.
func decimalOf(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }
