package formatter

import (
	"errors"
	"fmt"
	"io"

	"github.com/penwyp/go-step-monitor/internal/core/model"
)

// ErrUnknownFormat is returned by New for an unsupported output format
var ErrUnknownFormat = errors.New("unknown output format")

// Output formats accepted by New
const (
	FormatTable   = "table"
	FormatChart   = "chart"
	FormatJSON    = "json"
	FormatCSV     = "csv"
	FormatSummary = "summary"
)

// Formatter writes a history view, entries newest first
type Formatter interface {
	Format(entries []model.HistoryEntry) error
}

// New returns the formatter for format writing to w. width is the terminal
// width used by the chart; non-positive means the default.
func New(format string, w io.Writer, width int) (Formatter, error) {
	switch format {
	case FormatTable, "":
		return NewTableFormatter(w), nil
	case FormatChart:
		return NewChartFormatter(w, width), nil
	case FormatJSON:
		return NewJSONFormatter(w), nil
	case FormatCSV:
		return NewCSVFormatter(w), nil
	case FormatSummary:
		return NewSummaryFormatter(w), nil
	default:
		return nil, fmt.Errorf("%w: %q (use table, chart, json, csv or summary)", ErrUnknownFormat, format)
	}
}

// Totals aggregates a history view
type Totals struct {
	Days       int
	ActiveDays int // days with at least one step
	Total      int
	Best       model.HistoryEntry
}

// Average returns the mean over active days
func (t Totals) Average() int {
	if t.ActiveDays == 0 {
		return 0
	}
	return t.Total / t.ActiveDays
}

// Summarize computes totals; ties for the best day go to the newest entry
func Summarize(entries []model.HistoryEntry) Totals {
	var t Totals
	for _, e := range entries {
		t.Days++
		t.Total += e.Steps
		if e.Steps > 0 {
			t.ActiveDays++
		}
		if e.Steps > t.Best.Steps {
			t.Best = e
		}
	}
	return t
}
