package cartera

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// NotAvailable is the group of holdings with no value for a dimension.
const NotAvailable = "N/D"

// GroupKey is a dimension holdings can be grouped by.
type GroupKey string

const (
	GroupSector   GroupKey = "sector"
	GroupCountry  GroupKey = "country"
	GroupCurrency GroupKey = "currency"
)

// GroupKeys lists every dimension, in display order.
var GroupKeys = []GroupKey{GroupSector, GroupCountry, GroupCurrency}

func ParseGroupKey(s string) (GroupKey, error) {
	switch k := GroupKey(strings.ToLower(strings.TrimSpace(s))); k {
	case GroupSector, GroupCountry, GroupCurrency:
		return k, nil
	default:
		return "", fmt.Errorf("unknown group %q, want sector, country or currency", s)
	}
}

// Weight is the share of a group in the portfolio.
type Weight struct {
	Key    string
	Value  decimal.Decimal
	Weight Percent
}

// Allocation is the portfolio split along a dimension.
type Allocation struct {
	Key   GroupKey
	Rows  []Weight // by decreasing weight
	Total decimal.Decimal
}

// AggregateBy groups the value of the holdings along a dimension.
//
// A holding is valued at its current price, zero if unknown. Sector and country come
// from the metadata, the currency from the holding.
func AggregateBy(holdings []Holding, prices map[string]decimal.Decimal, metadata map[string]MetaEntry, key GroupKey) Allocation {
	a := Allocation{Key: key}
	var groups []Weight
	for _, h := range holdings {
		value := prices[h.Ticker].Mul(h.Quantity)
		a.Total = a.Total.Add(value)

		group := groupOf(h, metadata[h.Ticker], key)
		i := slices.IndexFunc(groups, func(w Weight) bool { return w.Key == group })
		if i < 0 {
			groups = append(groups, Weight{Key: group})
			i = len(groups) - 1
		}
		groups[i].Value = groups[i].Value.Add(value)
	}

	for i := range groups {
		groups[i].Weight = Ratio(decimal.Zero)
		if !a.Total.IsZero() {
			groups[i].Weight = Ratio(groups[i].Value.Div(a.Total))
		}
	}
	slices.SortStableFunc(groups, func(x, y Weight) int { return y.Value.Cmp(x.Value) * a.Total.Sign() })
	a.Rows = groups
	return a
}

func groupOf(h Holding, meta MetaEntry, key GroupKey) string {
	var v string
	switch key {
	case GroupSector:
		v = meta.Sector
	case GroupCountry:
		v = meta.Country
	case GroupCurrency:
		v = h.Currency
	}
	if v == "" {
		return NotAvailable
	}
	return v
}
