package cartera

import (
	"cmp"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/etnz/cartera/date"
	"github.com/shopspring/decimal"
)

// SortKey is a column movements can be sorted by.
type SortKey string

const (
	ByDate     SortKey = "date"
	ByTicker   SortKey = "ticker"
	ByType     SortKey = "type"
	ByQuantity SortKey = "quantity"
	ByPrice    SortKey = "price"
	ByAmount   SortKey = "amount"
)

// ParseSortKey returns the sort key named by s, ByDate when unknown.
func ParseSortKey(s string) SortKey {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case ByDate, ByTicker, ByType, ByQuantity, ByPrice, ByAmount:
		return k
	default:
		return ByDate
	}
}

// Query selects and orders movements.
//
// The zero value of every filter means "no filter". Bounds are inclusive.
type Query struct {
	Range      date.Range
	Text       string // matches the ticker or the holding name
	Type       string
	QMin, QMax decimal.NullDecimal
	PMin, PMax decimal.NullDecimal
	AMin, AMax decimal.NullDecimal
	Sort       SortKey
	Ascending  bool
	Page       int
}

// NewQuery returns a query over a date range, newest first.
func NewQuery(r date.Range) Query {
	return Query{Range: date.NewRange(r.From, r.To), Sort: ByDate, Page: 1}
}

// ParseBound parses a numeric bound, accepting a comma as decimal separator.
//
// An empty or unparseable bound is no bound.
func ParseBound(s string) decimal.NullDecimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(strings.Replace(s, ",", ".", 1))
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

// ParseQuery reads a query from request parameters.
//
// Recognized keys are range, from, to, ticker, type, qmin, qmax, pmin, pmax, amin, amax,
// sort, dir and p. A preset range is relative to "to", which defaults to today.
// The returned query is always usable: invalid dates or presets are reported in err
// and replaced by their default.
func ParseQuery(values url.Values, today date.Date) (q Query, err error) {
	to := today
	if s := values.Get("to"); s != "" {
		d, perr := date.Parse(s)
		if perr != nil {
			err = errors.Join(err, fmt.Errorf("invalid to: %w", perr))
		} else {
			to = d
		}
	}
	r, perr := date.Preset(values.Get("range"), to)
	if perr != nil {
		err = errors.Join(err, perr)
		r, _ = date.Preset("all", to)
	}
	if s := values.Get("from"); s != "" {
		d, perr := date.Parse(s)
		if perr != nil {
			err = errors.Join(err, fmt.Errorf("invalid from: %w", perr))
		} else {
			r.From = d
		}
	}

	q = NewQuery(r)
	q.Text = values.Get("ticker")
	q.Type = values.Get("type")
	q.QMin, q.QMax = ParseBound(values.Get("qmin")), ParseBound(values.Get("qmax"))
	q.PMin, q.PMax = ParseBound(values.Get("pmin")), ParseBound(values.Get("pmax"))
	q.AMin, q.AMax = ParseBound(values.Get("amin")), ParseBound(values.Get("amax"))
	q.Sort = ParseSortKey(values.Get("sort"))
	q.Ascending = strings.EqualFold(values.Get("dir"), "asc")
	if p, perr := strconv.Atoi(values.Get("p")); perr == nil && p > 0 {
		q.Page = p
	}
	return q, err
}

// Values returns the request parameters of the query, the inverse of ParseQuery.
func (q Query) Values() url.Values {
	v := url.Values{}
	v.Set("from", q.Range.From.String())
	v.Set("to", q.Range.To.String())
	set := func(key, value string) {
		if value != "" {
			v.Set(key, value)
		}
	}
	bound := func(key string, b decimal.NullDecimal) {
		if b.Valid {
			v.Set(key, b.Decimal.String())
		}
	}
	set("ticker", q.Text)
	set("type", q.Type)
	bound("qmin", q.QMin)
	bound("qmax", q.QMax)
	bound("pmin", q.PMin)
	bound("pmax", q.PMax)
	bound("amin", q.AMin)
	bound("amax", q.AMax)
	if q.Sort != "" && q.Sort != ByDate {
		v.Set("sort", string(q.Sort))
	}
	if q.Ascending {
		v.Set("dir", "asc")
	}
	return v
}

// Movement is a transaction with its amount.
type Movement struct {
	Transaction
	Index  int // position of the transaction in the input slice
	Amount decimal.Decimal
}

// within reports whether a value satisfies optional inclusive bounds.
func within(v decimal.Decimal, lo, hi decimal.NullDecimal) bool {
	if lo.Valid && v.LessThan(lo.Decimal) {
		return false
	}
	if hi.Valid && v.GreaterThan(hi.Decimal) {
		return false
	}
	return true
}

// withinDefined is within for an optional value: an undefined value fails any bound.
func withinDefined(v, lo, hi decimal.NullDecimal) bool {
	if !v.Valid {
		return !lo.Valid && !hi.Valid
	}
	return within(v.Decimal, lo, hi)
}

// FilterAndSort selects the transactions matching q and sorts them.
//
// The text filter is a case insensitive substring of the ticker or of the holding name.
// The type filter is a case insensitive exact match. Quantity and price bounds exclude
// transactions without quantity or price.
func FilterAndSort(txs []Transaction, holdings []Holding, q Query) []Movement {
	names := make(map[string]string, len(holdings))
	for _, h := range holdings {
		names[h.Ticker] = strings.ToLower(h.Name)
	}
	text := strings.ToLower(strings.TrimSpace(q.Text))
	typ := strings.ToLower(strings.TrimSpace(q.Type))
	r := date.NewRange(q.Range.From, q.Range.To)

	rows := make([]Movement, 0, len(txs))
	for i, tx := range txs {
		if !r.Contains(tx.Date) {
			continue
		}
		m := Movement{Transaction: tx, Index: i, Amount: tx.Amount()}
		if text != "" && !strings.Contains(strings.ToLower(tx.Ticker), text) && !strings.Contains(names[tx.Ticker], text) {
			continue
		}
		if typ != "" && strings.ToLower(string(tx.Type)) != typ {
			continue
		}
		if !withinDefined(tx.Quantity, q.QMin, q.QMax) || !withinDefined(tx.Price, q.PMin, q.PMax) {
			continue
		}
		if !within(m.Amount, q.AMin, q.AMax) {
			continue
		}
		rows = append(rows, m)
	}

	compare := movementComparator(q.Sort)
	slices.SortStableFunc(rows, func(a, b Movement) int {
		if q.Ascending {
			return compare(a, b)
		}
		return -compare(a, b)
	})
	return rows
}

func movementComparator(key SortKey) func(a, b Movement) int {
	switch key {
	case ByTicker:
		return func(a, b Movement) int { return cmp.Compare(a.Ticker, b.Ticker) }
	case ByType:
		return func(a, b Movement) int { return cmp.Compare(a.Type, b.Type) }
	case ByQuantity:
		return func(a, b Movement) int { return orZero(a.Quantity).Cmp(orZero(b.Quantity)) }
	case ByPrice:
		return func(a, b Movement) int { return orZero(a.Price).Cmp(orZero(b.Price)) }
	case ByAmount:
		return func(a, b Movement) int { return a.Amount.Cmp(b.Amount) }
	default:
		return func(a, b Movement) int { return a.Date.Compare(b.Date) }
	}
}
