package cartera

import (
	"slices"

	"github.com/etnz/cartera/date"
	"github.com/shopspring/decimal"
)

// Lot is a buy of a ticker valued at the current price.
type Lot struct {
	Date     date.Date
	Quantity Quantity
	Price    Money
	Invested Money // quantity times price plus fees
	Value    Money // quantity at the current price
	DaysHeld int
}

// PnL returns the value minus the investment.
func (l Lot) PnL() Money { return l.Value.Sub(l.Invested) }

// Return returns the PnL relative to the investment, 0 when nothing was invested.
func (l Lot) Return() Percent { return ratioOrZero(l.PnL(), l.Invested) }

// LotTotal sums lots.
type LotTotal struct {
	Quantity Quantity
	Invested Money
	Value    Money
}

func (t LotTotal) PnL() Money      { return t.Value.Sub(t.Invested) }
func (t LotTotal) Return() Percent { return ratioOrZero(t.PnL(), t.Invested) }

// ratioOrZero is m/n, or 0 when n is zero.
func ratioOrZero(m, n Money) Percent {
	if p := m.Ratio(n); p.IsApplicable() {
		return p
	}
	return Ratio(decimal.Zero)
}

// Ledger is the detail of one ticker.
type Ledger struct {
	Ticker   string
	Name     string
	HasPrice bool
	Position Position
	Rows     []Row // newest first
	Lots     []Lot
	Total    LotTotal
}

// Page returns a page of the ledger rows.
func (l *Ledger) Page(page int) Page[Row] { return Paginate(l.Rows, page, LedgerPageSize) }

// Ledger replays a ticker and details its lots as of today.
func (s *Snapshot) Ledger(ticker string, today date.Date) *Ledger {
	_, hasPrice := s.Prices[ticker]
	l := &Ledger{
		Ticker:   ticker,
		Name:     s.Name(ticker),
		HasPrice: hasPrice,
		Position: s.Position(ticker),
	}
	l.Rows = slices.Clone(l.Position.Rows)
	slices.Reverse(l.Rows)

	price := s.Price(ticker)
	cur := price.Currency()
	l.Total = LotTotal{Quantity: Q(0), Invested: M(0, cur), Value: M(0, cur)}
	for _, row := range l.Position.Rows {
		if row.Type != Buy {
			continue
		}
		q := Q(orZero(row.Quantity))
		lot := Lot{
			Date:     row.Date,
			Quantity: q,
			Price:    M(orZero(row.Price), cur),
			Invested: M(row.Amount.Decimal(), cur),
			Value:    price.Mul(q),
			DaysHeld: today.DaysSince(row.Date),
		}
		l.Lots = append(l.Lots, lot)
		l.Total.Quantity = l.Total.Quantity.Add(lot.Quantity)
		l.Total.Invested = l.Total.Invested.Add(lot.Invested)
		l.Total.Value = l.Total.Value.Add(lot.Value)
	}
	return l
}
