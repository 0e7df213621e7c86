package cartera

import (
	"fmt"

	"github.com/etnz/cartera/date"
	"github.com/etnz/cartera/stats"
)

// Coefficient is a correlation coefficient, possibly not computable.
type Coefficient struct {
	value float64
	valid bool
}

// Value returns the coefficient and whether it could be computed.
func (c Coefficient) Value() (float64, bool) { return c.value, c.valid }

func (c Coefficient) String() string {
	if !c.valid {
		return NotAvailable
	}
	return fmt.Sprintf("%.2f", c.value)
}

// MarshalJSON writes the coefficient, or null when not computable.
func (c Coefficient) MarshalJSON() ([]byte, error) {
	if !c.valid {
		return []byte("null"), nil
	}
	return []byte(fmt.Sprintf("%g", c.value)), nil
}

// Correlation is the correlation of the daily returns of two tickers.
type Correlation struct {
	A, B string
	R    Coefficient
}

// CorrelationMatrix computes the correlation of every pair of tickers, self pairs included.
//
// Only tickers with at least two history points take part. Each pair is correlated over
// the dates where both tickers have a return; with fewer than two such dates, or a
// constant series, the coefficient is not computable.
func CorrelationMatrix(history map[string][]HistoryPoint, tickers []string) []Correlation {
	var keys []string
	returns := make(map[string]*date.History[float64])
	for _, t := range tickers {
		series := history[t]
		if _, done := returns[t]; done || len(series) < 2 {
			continue
		}
		days := make([]date.Date, len(series))
		closes := make([]float64, len(series))
		for i, p := range series {
			days[i], closes[i] = p.Date, p.Close
		}
		returns[t] = stats.Returns(days, closes)
		keys = append(keys, t)
	}

	cells := make([]Correlation, 0, len(keys)*(len(keys)+1)/2)
	for i, a := range keys {
		for _, b := range keys[i:] {
			var xs, ys []float64
			for on, x := range returns[a].Values() {
				if y, ok := returns[b].Get(on); ok {
					xs, ys = append(xs, x), append(ys, y)
				}
			}
			r, ok := stats.Pearson(xs, ys)
			cells = append(cells, Correlation{A: a, B: b, R: Coefficient{value: r, valid: ok}})
		}
	}
	return cells
}
