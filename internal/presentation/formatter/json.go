package formatter

import (
	"fmt"
	"io"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-step-monitor/internal/core/model"
)

type JSONFormatter struct {
	w io.Writer
}

func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{w: w}
}

type jsonReport struct {
	History []model.HistoryEntry `json:"history"`
	Total   int                  `json:"total"`
	Average int                  `json:"average"`
}

func (f *JSONFormatter) Format(entries []model.HistoryEntry) error {
	if entries == nil {
		entries = []model.HistoryEntry{}
	}
	totals := Summarize(entries)

	data, err := sonic.MarshalIndent(jsonReport{
		History: entries,
		Total:   totals.Total,
		Average: totals.Average(),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	_, err = fmt.Fprintln(f.w, string(data))
	return err
}
