// Package ambito downloads the CCL index history published by Ámbito.
//
// The service is undocumented and best effort: it fails on long ranges, so the history
// is requested one calendar year at a time, and a failing year is skipped.
package ambito

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/cartera"
	"github.com/etnz/cartera/date"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
)

const (
	// BaseURL is the historical CCL endpoint, followed by /{from}/{to}.
	BaseURL = "https://mercados.ambito.com/dolarrava/cl/historico-general"
	// Source describes the origin of the downloaded series.
	Source = "Ambito - dolarrava/cl historico-general"
)

// DefaultFrom is the first day downloaded when no start is given.
var DefaultFrom = date.New(2010, time.January, 1)

// Fetcher downloads the index from a base URL.
type Fetcher struct {
	Client  *http.Client
	BaseURL string
}

// Fetch downloads the index between from and to from Ámbito.
func Fetch(ctx context.Context, client *http.Client, from, to date.Date) (*cartera.IndexSeries, error) {
	f := &Fetcher{Client: client, BaseURL: BaseURL}
	return f.Fetch(ctx, from, to)
}

// Fetch downloads every calendar year between from and to.
//
// Points after to are dropped. The series is returned in chronological order.
func (f *Fetcher) Fetch(ctx context.Context, from, to date.Date) (*cartera.IndexSeries, error) {
	r := date.NewRange(from, to)
	series := []cartera.IndexPoint{}
	for y := r.From.Year(); y <= r.To.Year(); y++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		year := date.PeriodRange(date.New(y, time.January, 1), date.Yearly)
		points, err := f.fetchRange(ctx, year)
		if err != nil {
			log.Warn().Err(err).Int("year", y).Msg("skipping index year")
			continue
		}
		for _, p := range points {
			if !p.Date.After(r.To) {
				series = append(series, p)
			}
		}
	}
	slices.SortStableFunc(series, func(a, b cartera.IndexPoint) int { return a.Date.Compare(b.Date) })

	return &cartera.IndexSeries{
		Source:    Source,
		UpdatedAt: date.Today(),
		From:      r.From,
		To:        r.To,
		Series:    series,
	}, nil
}

// fetchRange requests a range with ISO dates first, then with dd-mm-yyyy dates.
func (f *Fetcher) fetchRange(ctx context.Context, r date.Range) ([]cartera.IndexPoint, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	urls := []string{
		fmt.Sprintf("%s/%s/%s", f.BaseURL, r.From, r.To),
		fmt.Sprintf("%s/%s/%s", f.BaseURL, r.From.Format("02-01-2006"), r.To.Format("02-01-2006")),
	}
	var errs error
	for _, addr := range urls {
		var data any
		if err := jwget(ctx, client, addr, &data); err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		return parseRows(rows(data)), nil
	}
	return nil, fmt.Errorf("cannot fetch index for %v: %w", r, errs)
}

// rows extracts the rows of a response: its "data" member or the response itself.
func rows(data any) []any {
	if v, err := jsonpath.Get("$.data", data); err == nil {
		if list, ok := v.([]any); ok {
			return list
		}
	}
	list, _ := data.([]any)
	return list
}

// parseRows converts [date, value, ...] rows, skipping a leading header row and the
// rows that cannot be parsed.
func parseRows(rows []any) []cartera.IndexPoint {
	var points []cartera.IndexPoint
	for i, row := range rows {
		cells, ok := row.([]any)
		if !ok || len(cells) < 2 {
			continue
		}
		s, _ := cells[0].(string)
		if i == 0 && s == "Fecha" {
			continue
		}
		day, err := ParseDate(s)
		if err != nil {
			log.Debug().Err(err).Msg("skipping index row")
			continue
		}
		value, ok := ParseNumberAR(cells[1])
		if !ok {
			log.Debug().Str("date", s).Interface("value", cells[1]).Msg("skipping index row")
			continue
		}
		points = append(points, cartera.IndexPoint{Date: day, Value: value})
	}
	return points
}

// ParseNumberAR parses a number in the Argentine format, "1.234,56".
//
// A JSON number is returned as is. ok is false for anything not finite.
func ParseNumberAR(v any) (float64, bool) {
	var f float64
	switch v := v.(type) {
	case float64:
		f = v
	case string:
		s := strings.TrimSpace(v)
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
		var err error
		if f, err = strconv.ParseFloat(s, 64); err != nil {
			return 0, false
		}
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ParseDate parses the dates of the service, dd-mm-yyyy or dd/mm/yyyy, or an ISO date.
func ParseDate(s string) (date.Date, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"02-01-2006", "02/01/2006", "2-1-2006", "2/1/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return date.New(t.Year(), t.Month(), t.Day()), nil
		}
	}
	if t, err := time.Parse("2006-1-2", s); err == nil {
		return date.New(t.Year(), t.Month(), t.Day()), nil
	}
	return date.Date{}, fmt.Errorf("invalid index date %q", s)
}

// Write saves the series to path, unless the file exists and force is false.
//
// It reports whether the file was written.
func Write(path string, series *cartera.IndexSeries, force bool) (bool, error) {
	if !force {
		_, err := os.Stat(path)
		if err == nil {
			log.Info().Str("file", path).Msg("index already exists, use force to download it again")
			return false, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return false, fmt.Errorf("could not stat %q: %w", path, err)
		}
	}
	content, err := json.MarshalIndent(series, "", "  ")
	if err != nil {
		return false, fmt.Errorf("could not encode the index: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, fmt.Errorf("could not create directory for %q: %w", path, err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return false, fmt.Errorf("could not write %q: %w", path, err)
	}
	log.Info().Str("file", path).Int("points", len(series.Series)).Msg("index saved")
	return true, nil
}
