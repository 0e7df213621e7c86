package date

import (
	"fmt"
	"strings"
	"time"
)

// Epoch is the first day covered by the "all" preset.
var Epoch = New(2010, time.January, 1)

// Presets lists the known preset names, in display order.
var Presets = []string{"1w", "1m", "3m", "6m", "ytd", "1y", "prev-year", "all"}

// presetLabels are the human names of the presets.
var presetLabels = map[string]string{
	"1w":        "1 week",
	"1m":        "1 month",
	"3m":        "3 months",
	"6m":        "6 months",
	"ytd":       "year to date",
	"1y":        "1 year",
	"prev-year": "previous year",
	"all":       "all time",
}

// PresetLabel returns a human name for a preset, or the name itself if unknown.
func PresetLabel(name string) string {
	if l, ok := presetLabels[strings.ToLower(name)]; ok {
		return l
	}
	return name
}

// Preset returns the range named by a preset, relative to today.
//
// Rolling presets count days back from today (a month is 30 days, a year 365),
// "ytd" starts on January 1st, "prev-year" is the whole previous calendar year.
func Preset(name string, today Date) (Range, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "1w":
		return Range{From: today.Add(-7), To: today}, nil
	case "1m":
		return Range{From: today.Add(-30), To: today}, nil
	case "3m":
		return Range{From: today.Add(-90), To: today}, nil
	case "6m":
		return Range{From: today.Add(-180), To: today}, nil
	case "ytd":
		return Range{From: today.StartOf(Yearly), To: today}, nil
	case "1y":
		return Range{From: today.Add(-365), To: today}, nil
	case "prev-year":
		return PeriodRange(New(today.Year()-1, time.January, 1), Yearly), nil
	case "all", "":
		return NewRange(Epoch, today), nil
	default:
		return Range{}, fmt.Errorf("unknown range preset %q, want one of %s", name, strings.Join(Presets, ", "))
	}
}
