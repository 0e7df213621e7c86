package cartera

import (
	"cmp"
	"slices"

	"github.com/etnz/cartera/date"
)

// MovementRow is a movement with the PnL of its replay.
type MovementRow struct {
	Movement
	Currency string
	PnL      Money
	Pct      Percent
}

// Summary is the PnL of a range, in one currency.
//
// Realized sums the sells and dividends within the range, Unrealized is the open PnL
// at the end of the range valued at the current prices.
type Summary struct {
	Currency   string
	Realized   Money
	Unrealized Money
}

// Total returns the realized plus unrealized PnL.
func (s Summary) Total() Money { return s.Realized.Add(s.Unrealized) }

// MovementsReport is the movements ledger of a range.
type MovementsReport struct {
	Query     Query
	Summaries []Summary // per currency
	Rows      []MovementRow
	Index     float64 // value of the index at the end of the range
	HasIndex  bool
}

// Page returns the page of rows selected by the query.
func (r *MovementsReport) Page() Page[MovementRow] {
	return Paginate(r.Rows, r.Query.Page, MovementsPageSize)
}

// Movements replays the transactions up to the end of the query range and lists the
// movements matching the query with their PnL.
func (s *Snapshot) Movements(q Query) *MovementsReport {
	q.Range = date.NewRange(q.Range.From, q.Range.To)
	summaries, replayed := s.replayUntil(q.Range)

	report := &MovementsReport{Query: q, Summaries: summaries}
	for _, m := range FilterAndSort(s.Transactions, s.Holdings, q) {
		row := replayed[m.Index]
		report.Rows = append(report.Rows, MovementRow{
			Movement: m,
			Currency: s.Currency(m.Ticker),
			PnL:      row.PnL,
			Pct:      row.Pct,
		})
	}
	if s.Index != nil {
		report.Index, report.HasIndex = s.Index.History().ValueAsOf(q.Range.To)
	}
	return report
}

// Summarize returns the PnL summaries of a range.
func (s *Snapshot) Summarize(r date.Range) []Summary {
	summaries, _ := s.replayUntil(date.NewRange(r.From, r.To))
	return summaries
}

// replayUntil replays every ticker up to the end of r. It returns the summaries per
// currency and the replayed rows indexed like s.Transactions.
func (s *Snapshot) replayUntil(r date.Range) ([]Summary, map[int]Row) {
	indexes := make(map[string][]int)
	var tickers []string
	for i, tx := range s.Transactions {
		if tx.Date.After(r.To) {
			continue
		}
		if _, ok := indexes[tx.Ticker]; !ok {
			tickers = append(tickers, tx.Ticker)
		}
		indexes[tx.Ticker] = append(indexes[tx.Ticker], i)
	}

	replayed := make(map[int]Row)
	var summaries []Summary
	for _, ticker := range tickers {
		idx := indexes[ticker]
		txs := make([]Transaction, len(idx))
		for j, i := range idx {
			txs[j] = s.Transactions[i]
		}
		p := Replay(ticker, txs, s.Price(ticker))

		currency := p.Price.Currency()
		k := slices.IndexFunc(summaries, func(x Summary) bool { return x.Currency == currency })
		if k < 0 {
			summaries = append(summaries, Summary{Currency: currency, Realized: M(0, currency), Unrealized: M(0, currency)})
			k = len(summaries) - 1
		}
		for _, row := range p.Rows {
			replayed[idx[row.Index]] = row
			if row.Type != Buy && r.Contains(row.Date) {
				summaries[k].Realized = summaries[k].Realized.Add(row.PnL)
			}
		}
		summaries[k].Unrealized = summaries[k].Unrealized.Add(p.Unrealized)
	}
	slices.SortFunc(summaries, func(a, b Summary) int { return cmp.Compare(a.Currency, b.Currency) })
	return summaries, replayed
}

// Comparison is the summary of several ranges.
type Comparison struct {
	Label     string
	Range     date.Range
	Summaries []Summary
}

// Compare summarizes each range.
func (s *Snapshot) Compare(labels []string, ranges []date.Range) []Comparison {
	out := make([]Comparison, 0, len(ranges))
	for i, r := range ranges {
		c := Comparison{Range: date.NewRange(r.From, r.To), Label: r.Identifier()}
		if i < len(labels) && labels[i] != "" {
			c.Label = labels[i]
		}
		c.Summaries = s.Summarize(c.Range)
		out = append(out, c)
	}
	return out
}
