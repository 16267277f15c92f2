package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/penwyp/go-step-monitor/internal/core/model"
)

// SummaryFormatter prints aggregate figures of a history view
type SummaryFormatter struct {
	w io.Writer
}

// NewSummaryFormatter creates a new instance of SummaryFormatter.
func NewSummaryFormatter(w io.Writer) *SummaryFormatter {
	return &SummaryFormatter{w: w}
}

func (f *SummaryFormatter) Format(entries []model.HistoryEntry) error {
	out := &strings.Builder{}
	fmt.Fprintln(out, strings.Repeat("=", 40))
	fmt.Fprintln(out, "Step History Summary")
	fmt.Fprintln(out, strings.Repeat("=", 40))

	if len(entries) == 0 {
		fmt.Fprintln(out, "No data to summarize")
		fmt.Fprintln(out, strings.Repeat("=", 40))
		_, err := io.WriteString(f.w, out.String())
		return err
	}

	// entries are newest first
	newest, oldest := entries[0].Date, entries[len(entries)-1].Date
	if newest == oldest {
		fmt.Fprintf(out, "Date Range:   %s\n", newest)
	} else {
		fmt.Fprintf(out, "Date Range:   %s to %s\n", oldest, newest)
	}

	totals := Summarize(entries)
	fmt.Fprintf(out, "Days:         %d (%d active)\n", totals.Days, totals.ActiveDays)
	fmt.Fprintf(out, "Total Steps:  %s\n", formatNumber(totals.Total))
	fmt.Fprintf(out, "Average:      %s\n", formatNumber(totals.Average()))
	if totals.Best.Steps > 0 {
		fmt.Fprintf(out, "Best Day:     %s (%s)\n", totals.Best.Date, formatNumber(totals.Best.Steps))
	}
	fmt.Fprintln(out, strings.Repeat("=", 40))

	_, err := io.WriteString(f.w, out.String())
	return err
}
