package cartera

import (
	"slices"

	"github.com/etnz/cartera/date"
	"github.com/shopspring/decimal"
)

// Row is a transaction with the result of its replay.
type Row struct {
	Transaction
	Index  int     // position of the transaction in the replayed slice
	Amount Money   // cash value of the transaction
	PnL    Money   // mark to market for a buy, realized for a sell or a dividend
	Pct    Percent // PnL relative to its cost base
	Open   Quantity
	Cost   Money // moving average cost after the transaction
}

// MarshalJSON writes the transaction fields followed by the replay results.
func (r Row) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("ticker", r.Ticker)
	w.Append("date", r.Date)
	w.Append("type", r.Type)
	w.Decimal("quantity", r.Quantity)
	w.Decimal("price", r.Price)
	w.Decimal("cash", r.Cash)
	w.Decimal("fees", r.Fees)
	w.Append("amount", r.Amount.Decimal())
	w.Append("pnl", r.PnL.Decimal())
	w.Append("pct", r.Pct)
	return w.MarshalJSON()
}

// Position is the replayed state of a ticker.
type Position struct {
	Ticker     string
	Quantity   Quantity
	AvgCost    Money
	Realized   Money
	Unrealized Money
	Price      Money
	Rows       []Row // in chronological order
}

// Total returns the realized plus unrealized PnL.
func (p Position) Total() Money { return p.Realized.Add(p.Unrealized) }

// MarketValue returns the value of the open quantity at the current price.
func (p Position) MarketValue() Money { return p.Price.Mul(p.Quantity) }

// CostBasis returns the cost of the open quantity.
func (p Position) CostBasis() Money { return p.AvgCost.Mul(p.Quantity) }

// Return returns the total PnL relative to the cost basis, NotApplicable without an open position.
func (p Position) Return() Percent { return p.Total().Ratio(p.CostBasis()) }

// state is the running state of a replay.
type state struct {
	qty, avgCost, realized decimal.Decimal
}

// apply returns the state after tx, with the PnL and percentage of tx, at the current price.
func (s state) apply(tx Transaction, current decimal.Decimal) (next state, pnl decimal.Decimal, pct Percent) {
	next = s
	switch tx.Type {
	case Buy:
		q, p, fees := orZero(tx.Quantity), orZero(tx.Price), orZero(tx.Fees)
		totalCost := s.avgCost.Mul(s.qty).Add(q.Mul(p)).Add(fees)
		next.qty = s.qty.Add(q)
		next.avgCost = decimal.Zero
		if next.qty.IsPositive() {
			next.avgCost = totalCost.Div(next.qty)
		}
		// mark to market on the lot's own price
		pnl = current.Sub(p).Mul(q)
		pct = Ratio(decimal.Zero)
		if !p.IsZero() {
			pct = Ratio(current.Sub(p).Div(p))
		}

	case Sell:
		q, p, fees := orZero(tx.Quantity), orZero(tx.Price), orZero(tx.Fees)
		pnl = p.Sub(s.avgCost).Mul(q).Sub(fees)
		next.realized = s.realized.Add(pnl)
		next.qty = decimal.Max(decimal.Zero, s.qty.Sub(q))
		// selling never changes the average cost of what remains
		pct = Ratio(decimal.Zero)
		if base := s.avgCost.Mul(q); !base.IsZero() {
			pct = Ratio(pnl.Div(base))
		}

	case Dividend:
		pnl = orZero(tx.Cash)
		next.realized = s.realized.Add(pnl)
		pct = NotApplicable
		if base := s.avgCost.Mul(s.qty); !base.IsZero() {
			pct = Ratio(pnl.Div(base))
		}
	}
	return next, pnl, pct
}

// chronological returns the indexes of txs sorted by date, same day transactions keep their order.
func chronological(txs []Transaction) []int {
	order := make([]int, len(txs))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(i, j int) int { return txs[i].Date.Compare(txs[j].Date) })
	return order
}

// Replay folds the transactions of a ticker into its position at the current price.
//
// Buys update the moving average cost, sells realize their PnL against it, and dividends
// are realized as is. The open quantity never goes below zero.
func Replay(ticker string, txs []Transaction, current Money) Position {
	cur := current.Currency()
	var s state
	rows := make([]Row, 0, len(txs))
	for _, i := range chronological(txs) {
		tx := txs[i]
		var pnl decimal.Decimal
		var pct Percent
		s, pnl, pct = s.apply(tx, current.Decimal())
		rows = append(rows, Row{
			Transaction: tx,
			Index:       i,
			Amount:      M(tx.Amount(), cur),
			PnL:         M(pnl, cur),
			Pct:         pct,
			Open:        Q(s.qty),
			Cost:        M(s.avgCost, cur),
		})
	}
	return newPosition(ticker, s, current, rows)
}

// ReplayUntil is Replay ignoring the transactions after a date.
func ReplayUntil(ticker string, txs []Transaction, current Money, on date.Date) Position {
	before := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		if !tx.Date.After(on) {
			before = append(before, tx)
		}
	}
	return Replay(ticker, before, current)
}

// FromHolding returns the position of a holding without transactions.
func FromHolding(h Holding, current Money) Position {
	return newPosition(h.Ticker, state{qty: h.Quantity, avgCost: h.AvgCost}, current, nil)
}

func newPosition(ticker string, s state, current Money, rows []Row) Position {
	cur := current.Currency()
	return Position{
		Ticker:     ticker,
		Quantity:   Q(s.qty),
		AvgCost:    M(s.avgCost, cur),
		Realized:   M(s.realized, cur),
		Unrealized: M(current.Decimal().Sub(s.avgCost).Mul(s.qty), cur),
		Price:      current,
		Rows:       rows,
	}
}
