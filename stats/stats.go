// Package stats holds the few statistics the analysis needs.
package stats

import (
	"math"
	"slices"

	"github.com/etnz/cartera/date"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Mean calculates the arithmetic mean of a slice of float64 values
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}

// Variance calculates the sample variance of a slice of float64 values
func Variance(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}
	return stat.Variance(data, nil)
}

// Pearson returns the Pearson correlation coefficient between xs and ys.
//
// ok is false when the coefficient is not defined: slices of different lengths,
// fewer than two points, or a series with no variance.
func Pearson(xs, ys []float64) (r float64, ok bool) {
	if len(xs) != len(ys) || len(xs) < 2 {
		return 0, false
	}
	dx, dy := centered(xs), centered(ys)
	num := floats.Dot(dx, dy)
	den := math.Sqrt(floats.Dot(dx, dx) * floats.Dot(dy, dy))
	if den == 0 || math.IsNaN(den) || math.IsInf(den, 0) {
		return 0, false
	}
	return max(-1, min(1, num/den)), true
}

// centered returns a copy of data minus its mean.
func centered(data []float64) []float64 {
	out := slices.Clone(data)
	floats.AddConst(-Mean(data), out)
	return out
}

// Returns computes the day over day returns of a close series.
//
// Returns are computed in the order of the series, (close[i]-close[i-1])/close[i-1],
// and keyed by the date of close[i]. A zero previous close gives a zero return.
func Returns(days []date.Date, closes []float64) *date.History[float64] {
	h := new(date.History[float64])
	for i := 1; i < len(days) && i < len(closes); i++ {
		prev, cur := closes[i-1], closes[i]
		r := 0.0
		if prev != 0 {
			r = (cur - prev) / prev
		}
		h.Append(days[i], r)
	}
	return h
}
