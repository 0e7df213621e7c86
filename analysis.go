package cartera

import "github.com/etnz/cartera/date"

// Analysis is the allocation and correlation view of the portfolio.
type Analysis struct {
	Allocations  []Allocation
	Correlations []Correlation
	HasHistory   bool // false when there is no history to correlate
	Index        *IndexSeries
	IndexDate    date.Date
	IndexValue   float64
}

// Analyze splits the holdings along every dimension and correlates their history.
func (s *Snapshot) Analyze() *Analysis {
	a := &Analysis{Index: s.Index}
	for _, key := range GroupKeys {
		a.Allocations = append(a.Allocations, AggregateBy(s.Holdings, s.Prices, s.Metadata, key))
	}
	if s.History != nil {
		tickers := make([]string, 0, len(s.Holdings))
		for _, h := range s.Holdings {
			tickers = append(tickers, h.Ticker)
		}
		a.Correlations = CorrelationMatrix(s.History, tickers)
	}
	a.HasHistory = len(a.Correlations) > 0
	if s.Index != nil {
		a.IndexDate, a.IndexValue = s.Index.History().Latest()
	}
	return a
}
