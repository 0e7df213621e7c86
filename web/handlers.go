package web

import (
	"net/http"
	"strconv"

	"github.com/etnz/cartera"
	"github.com/etnz/cartera/date"
	"github.com/etnz/cartera/renderer"
	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

var opts = renderer.Options{Links: true}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{"status": "ok"})
}

func (s *Server) handleHoldings(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	s.page(w, "Cartera", renderer.Holdings(snap.Valuations(), opts))
}

func (s *Server) handleTicker(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	ticker := chi.URLParam(r, "ticker")
	page, err := strconv.Atoi(r.URL.Query().Get("p"))
	if err != nil || page < 1 {
		page = 1
	}
	s.page(w, ticker, renderer.Ledger(snap.Ledger(ticker, s.now()), page, opts))
}

// query parses the movements parameters, an invalid range falls back to its default.
func (s *Server) query(r *http.Request) cartera.Query {
	q, err := cartera.ParseQuery(r.URL.Query(), s.now())
	if err != nil {
		s.log.Debug().Err(err).Str("query", r.URL.RawQuery).Msg("Invalid movements query")
	}
	return q
}

func (s *Server) handleMovements(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	report := snap.Movements(s.query(r))
	md := renderer.PresetLinks("/movimientos", r.URL.Query()) + "\n\n" + renderer.Movements(report, opts)
	s.page(w, "Movimientos", md)
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	s.page(w, "Análisis", renderer.Analysis(snap.Analyze(), opts))
}

// MovementJSON is a movement row of the JSON API.
type MovementJSON struct {
	Date     date.Date           `json:"date"`
	Ticker   string              `json:"ticker"`
	Type     cartera.Kind        `json:"type"`
	Quantity decimal.NullDecimal `json:"quantity"`
	Price    decimal.NullDecimal `json:"price"`
	Amount   decimal.Decimal     `json:"amount"`
	Currency string              `json:"currency"`
	PnL      cartera.Money       `json:"pnl"`
	Pct      cartera.Percent     `json:"pct"`
}

// SummaryJSON is the PnL of one currency in the JSON API.
type SummaryJSON struct {
	Currency   string        `json:"currency"`
	Realized   cartera.Money `json:"realized"`
	Unrealized cartera.Money `json:"unrealized"`
	Total      cartera.Money `json:"total"`
}

// MovementsJSON is the response of the movements API.
type MovementsJSON struct {
	From      date.Date      `json:"from"`
	To        date.Date      `json:"to"`
	Page      int            `json:"page"`
	Pages     int            `json:"pages"`
	Count     int            `json:"count"`
	Summaries []SummaryJSON  `json:"summaries"`
	Rows      []MovementJSON `json:"rows"`
}

func (s *Server) handleMovementsAPI(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	report := snap.Movements(s.query(r))
	page := report.Page()

	resp := MovementsJSON{
		From:      report.Query.Range.From,
		To:        report.Query.Range.To,
		Page:      page.Number,
		Pages:     page.Total,
		Count:     page.Count,
		Summaries: make([]SummaryJSON, 0, len(report.Summaries)),
		Rows:      make([]MovementJSON, 0, len(page.Rows)),
	}
	for _, sum := range report.Summaries {
		resp.Summaries = append(resp.Summaries, SummaryJSON{
			Currency:   sum.Currency,
			Realized:   sum.Realized,
			Unrealized: sum.Unrealized,
			Total:      sum.Total(),
		})
	}
	for _, row := range page.Rows {
		resp.Rows = append(resp.Rows, MovementJSON{
			Date:     row.Date,
			Ticker:   row.Ticker,
			Type:     row.Type,
			Quantity: row.Quantity,
			Price:    row.Price,
			Amount:   row.Amount,
			Currency: row.Currency,
			PnL:      row.PnL,
			Pct:      row.Pct,
		})
	}
	s.writeJSON(w, resp)
}

func (s *Server) writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
