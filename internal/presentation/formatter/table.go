package formatter

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/penwyp/go-step-monitor/internal/core/constants"
	"github.com/penwyp/go-step-monitor/internal/core/model"
	"github.com/penwyp/go-step-monitor/internal/util"
)

type TableFormatter struct {
	w       io.Writer
	headers []string
}

func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{
		w:       w,
		headers: []string{"Date", "Day", "Steps"},
	}
}

func (f *TableFormatter) Format(entries []model.HistoryEntry) error {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Date, weekday(e.Date), formatNumber(e.Steps)})
	}

	totals := Summarize(entries)
	footer := [][]string{
		{"Total", "", formatNumber(totals.Total)},
		{"Average", "", formatNumber(totals.Average())},
	}

	widths := f.calculateColumnWidths(append(append([][]string{}, rows...), footer...))

	f.printBorder(widths, "top")
	f.printRow(f.headers, widths)
	f.printBorder(widths, "middle")
	for _, row := range rows {
		f.printRow(row, widths)
	}
	f.printBorder(widths, "middle")
	for _, row := range footer {
		f.printRow(row, widths)
	}
	f.printBorder(widths, "bottom")
	return nil
}

// calculateColumnWidths determines the width of each column from its content
func (f *TableFormatter) calculateColumnWidths(rows [][]string) []int {
	widths := make([]int, len(f.headers))
	for i, header := range f.headers {
		widths[i] = util.GetDisplayWidth(header)
	}
	for _, row := range rows {
		for i, value := range row {
			if w := util.GetDisplayWidth(value); w > widths[i] {
				widths[i] = w
			}
		}
	}

	minWidths := []int{10, 3, 8}
	for i, minWidth := range minWidths {
		if widths[i] < minWidth {
			widths[i] = minWidth
		}
	}
	return widths
}

// printBorder prints table borders (top, middle, bottom)
func (f *TableFormatter) printBorder(widths []int, borderType string) {
	var left, middle, right string

	switch borderType {
	case "top":
		left, middle, right = "┌", "┬", "┐"
	case "middle":
		left, middle, right = "├", "┼", "┤"
	case "bottom":
		left, middle, right = "└", "┴", "┘"
	}

	var b strings.Builder
	b.WriteString(left)
	for i, width := range widths {
		b.WriteString(strings.Repeat("─", width+2))
		if i < len(widths)-1 {
			b.WriteString(middle)
		}
	}
	b.WriteString(right)
	fmt.Fprintln(f.w, b.String())
}

// printRow prints a row; the last column is numeric and right-aligned
func (f *TableFormatter) printRow(values []string, widths []int) {
	var b strings.Builder
	b.WriteString("│")
	for i, value := range values {
		if i == len(values)-1 {
			b.WriteString(" " + util.PadLeft(value, widths[i]) + " │")
		} else {
			b.WriteString(" " + util.PadRight(value, widths[i]) + " │")
		}
	}
	fmt.Fprintln(f.w, b.String())
}

// weekday returns the short day name of a date identifier, or "" when the
// date does not parse
func weekday(date string) string {
	t, err := time.Parse(constants.DateLayout, date)
	if err != nil {
		return ""
	}
	return t.Weekday().String()[:3]
}

func formatNumber(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}

	var result []byte
	for i, digit := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, digit)
	}

	return string(result)
}
