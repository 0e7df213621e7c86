// Package store reads the snapshots of a data directory.
//
// A data directory holds one JSON file per snapshot:
//
//	portfolio.json     {"holdings": [...]}
//	prices.json        {"prices": {"AAPL": 130.5}}
//	transactions.json  {"transactions": [...]}
//	metadata.json      {"metadata": {"AAPL": {"sector": "Technology", "country": "US"}}}
//	history.json       {"history": {"AAPL": [{"date": "2025-01-02", "close": 185.6}]}}  (optional)
//	ccl.json           {"source": ..., "series": [{"date": ..., "value": ...}]}       (optional)
//
// Decoded files are kept in a LRU cache keyed by their path, modification time and size,
// so that a file is decoded again only when it changes.
package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/etnz/cartera"
	"github.com/goccy/go-json"
	lru "github.com/hashicorp/golang-lru"
	"github.com/rs/zerolog/log"
)

// Names of the snapshot files.
const (
	PortfolioFile    = "portfolio.json"
	PricesFile       = "prices.json"
	TransactionsFile = "transactions.json"
	MetadataFile     = "metadata.json"
	HistoryFile      = "history.json"
	IndexFile        = "ccl.json"
)

// DefaultCacheSize is the number of decoded files kept in memory.
const DefaultCacheSize = 64

// ErrNoData is returned when a snapshot file does not exist.
var ErrNoData = errors.New("no data")

// Store reads the snapshots of a data directory. It is safe for concurrent use.
type Store struct {
	dir   string
	cache *lru.Cache
}

// New returns a store reading dir with a cache of size decoded files.
func New(dir string, size int) (*Store, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("could not create the snapshot cache: %w", err)
	}
	return &Store{dir: dir, cache: cache}, nil
}

// Dir returns the data directory.
func (s *Store) Dir() string { return s.dir }

// Path returns the path of a snapshot file.
func (s *Store) Path(name string) string { return filepath.Join(s.dir, name) }

// Load reads every snapshot of the data directory.
//
// Holdings, prices, transactions and metadata are mandatory. History and the index
// are left nil when their file does not exist.
func (s *Store) Load(ctx context.Context) (*cartera.Snapshot, error) {
	portfolio, err := read[cartera.PortfolioFile](ctx, s, PortfolioFile)
	if err != nil {
		return nil, err
	}
	prices, err := read[cartera.PricesFile](ctx, s, PricesFile)
	if err != nil {
		return nil, err
	}
	txs, err := read[cartera.TransactionsFile](ctx, s, TransactionsFile)
	if err != nil {
		return nil, err
	}
	meta, err := read[cartera.MetadataFile](ctx, s, MetadataFile)
	if err != nil {
		return nil, err
	}

	snap := &cartera.Snapshot{
		Holdings:     portfolio.Holdings,
		Prices:       prices.Prices,
		Transactions: txs.Transactions,
		Metadata:     meta.Metadata,
	}

	switch history, err := s.History(ctx); {
	case err == nil:
		snap.History = history
	case !errors.Is(err, ErrNoData):
		return nil, err
	}

	switch index, err := s.Index(ctx); {
	case err == nil:
		snap.Index = index
	case !errors.Is(err, ErrNoData):
		return nil, err
	}

	for _, err := range snap.Check() {
		log.Warn().Err(err).Str("file", s.Path(TransactionsFile)).Msg("invalid transaction")
	}
	return snap, nil
}

// History reads the price history, ErrNoData if there is none.
func (s *Store) History(ctx context.Context) (map[string][]cartera.HistoryPoint, error) {
	h, err := read[cartera.HistoryFile](ctx, s, HistoryFile)
	if err != nil {
		return nil, err
	}
	return h.History, nil
}

// Index reads the index snapshot, ErrNoData if there is none.
func (s *Store) Index(ctx context.Context) (*cartera.IndexSeries, error) {
	index, err := read[*cartera.IndexSeries](ctx, s, IndexFile)
	if err != nil {
		return nil, err
	}
	return index, nil
}

// read decodes a snapshot file, from the cache if it has not changed.
//
// Values returned from the cache are shared: callers must not modify them.
func read[T any](ctx context.Context, s *Store, name string) (T, error) {
	var v T
	if err := ctx.Err(); err != nil {
		return v, err
	}
	path := s.Path(name)
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return v, fmt.Errorf("%s: %w", path, ErrNoData)
	}
	if err != nil {
		return v, fmt.Errorf("could not stat %q: %w", path, err)
	}

	key := fmt.Sprintf("%s|%d|%d", path, info.ModTime().UnixNano(), info.Size())
	if cached, ok := s.cache.Get(key); ok {
		if v, ok := cached.(T); ok {
			return v, nil
		}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return v, fmt.Errorf("could not read %q: %w", path, err)
	}
	if err := json.Unmarshal(content, &v); err != nil {
		return v, fmt.Errorf("could not decode %q: %w", path, err)
	}
	s.cache.Add(key, v)
	log.Debug().Str("file", path).Msg("snapshot decoded")
	return v, nil
}
