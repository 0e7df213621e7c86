package cartera

import (
	"cmp"
	"slices"
)

// Valuation is a line of the holdings table.
type Valuation struct {
	Position
	Name     string
	Currency string
}

// Valuations values every holding of the portfolio, in portfolio order.
func (s *Snapshot) Valuations() []Valuation {
	out := make([]Valuation, 0, len(s.Holdings))
	for _, h := range s.Holdings {
		out = append(out, Valuation{
			Position: s.Position(h.Ticker),
			Name:     h.Name,
			Currency: s.Currency(h.Ticker),
		})
	}
	return out
}

// CurrencyTotal sums valuations sharing a currency.
type CurrencyTotal struct {
	Currency    string
	MarketValue Money
	PnL         Money
}

// Totals sums the valuations per currency, sorted by currency.
func Totals(vs []Valuation) []CurrencyTotal {
	var totals []CurrencyTotal
	for _, v := range vs {
		i := slices.IndexFunc(totals, func(t CurrencyTotal) bool { return t.Currency == v.Currency })
		if i < 0 {
			totals = append(totals, CurrencyTotal{Currency: v.Currency, MarketValue: M(0, v.Currency), PnL: M(0, v.Currency)})
			i = len(totals) - 1
		}
		totals[i].MarketValue = totals[i].MarketValue.Add(v.MarketValue())
		totals[i].PnL = totals[i].PnL.Add(v.Total())
	}
	slices.SortFunc(totals, func(a, b CurrencyTotal) int { return cmp.Compare(a.Currency, b.Currency) })
	return totals
}
