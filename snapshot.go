package cartera

import (
	"iter"
	"slices"

	"github.com/etnz/cartera/date"
	"github.com/shopspring/decimal"
)

// Holding is a line of the static portfolio snapshot.
//
// Quantity and AvgCost are a baseline, superseded by the replay of the ticker's
// transactions when there are any.
type Holding struct {
	Ticker   string          `json:"ticker"`
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
	AvgCost  decimal.Decimal `json:"avgCost"`
	Currency string          `json:"currency"`
}

// MetaEntry classifies a ticker. Empty fields are not available.
type MetaEntry struct {
	Sector   string `json:"sector,omitempty"`
	Country  string `json:"country,omitempty"`
	Currency string `json:"currency,omitempty"`
}

// HistoryPoint is a daily close.
type HistoryPoint struct {
	Date  date.Date `json:"date"`
	Close float64   `json:"close"`
}

// IndexPoint is a value of an index series.
type IndexPoint struct {
	Date  date.Date `json:"date"`
	Value float64   `json:"value"`
}

// IndexSeries is the snapshot of a downloaded index.
type IndexSeries struct {
	Source    string       `json:"source"`
	UpdatedAt date.Date    `json:"updatedAt"`
	From      date.Date    `json:"from"`
	To        date.Date    `json:"to"`
	Series    []IndexPoint `json:"series"`
}

// History returns the series as a chronological history.
func (s *IndexSeries) History() *date.History[float64] {
	h := new(date.History[float64])
	for _, p := range s.Series {
		h.Append(p.Date, p.Value)
	}
	return h
}

// The files of a data directory.
type (
	PortfolioFile    struct{ Holdings []Holding `json:"holdings"` }
	PricesFile       struct{ Prices map[string]decimal.Decimal `json:"prices"` }
	TransactionsFile struct{ Transactions []Transaction `json:"transactions"` }
	MetadataFile     struct{ Metadata map[string]MetaEntry `json:"metadata"` }
	HistoryFile      struct{ History map[string][]HistoryPoint `json:"history"` }
)

// Snapshot gathers the point in time data every report is computed from.
//
// History and Index are nil when the data is not available.
type Snapshot struct {
	Holdings     []Holding
	Prices       map[string]decimal.Decimal
	Transactions []Transaction
	Metadata     map[string]MetaEntry
	History      map[string][]HistoryPoint
	Index        *IndexSeries
}

// Holding returns the holding of a ticker.
func (s *Snapshot) Holding(ticker string) (Holding, bool) {
	i := slices.IndexFunc(s.Holdings, func(h Holding) bool { return h.Ticker == ticker })
	if i < 0 {
		return Holding{}, false
	}
	return s.Holdings[i], true
}

// Name returns the name of a ticker, or "" if unknown.
func (s *Snapshot) Name(ticker string) string {
	h, _ := s.Holding(ticker)
	return h.Name
}

// Currency returns the currency of a ticker: the holding's, the metadata's or DefaultCurrency.
func (s *Snapshot) Currency(ticker string) string {
	if h, ok := s.Holding(ticker); ok && h.Currency != "" {
		return h.Currency
	}
	if m, ok := s.Metadata[ticker]; ok && m.Currency != "" {
		return m.Currency
	}
	return DefaultCurrency
}

// Price returns the current price of a ticker, zero if unknown.
func (s *Snapshot) Price(ticker string) Money {
	return M(s.Prices[ticker], s.Currency(ticker))
}

// Tickers iterates over the tickers of the transactions, in order of first appearance.
func (s *Snapshot) Tickers() iter.Seq[string] {
	return func(yield func(string) bool) {
		seen := make(map[string]bool)
		for _, tx := range s.Transactions {
			if seen[tx.Ticker] {
				continue
			}
			seen[tx.Ticker] = true
			if !yield(tx.Ticker) {
				return
			}
		}
	}
}

// TransactionsOf returns the transactions of a ticker, in input order.
func (s *Snapshot) TransactionsOf(ticker string) []Transaction {
	var txs []Transaction
	for _, tx := range s.Transactions {
		if tx.Ticker == ticker {
			txs = append(txs, tx)
		}
	}
	return txs
}

// Position replays the transactions of a ticker at the current price.
//
// A ticker without transactions falls back to its holding.
func (s *Snapshot) Position(ticker string) Position {
	txs := s.TransactionsOf(ticker)
	if len(txs) == 0 {
		h, _ := s.Holding(ticker)
		h.Ticker = ticker
		return FromHolding(h, s.Price(ticker))
	}
	return Replay(ticker, txs, s.Price(ticker))
}

// Check returns the problems of every transaction.
func (s *Snapshot) Check() []error {
	var errs []error
	for _, tx := range s.Transactions {
		if err := tx.Check(); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
