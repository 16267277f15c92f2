package formatter

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/penwyp/go-step-monitor/internal/core/model"
)

type CSVFormatter struct {
	w io.Writer
}

func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{w: w}
}

func (f *CSVFormatter) Format(entries []model.HistoryEntry) error {
	w := csv.NewWriter(f.w)

	if err := w.Write([]string{"Date", "Steps"}); err != nil {
		return err
	}
	for _, e := range entries {
		if err := w.Write([]string{e.Date, strconv.Itoa(e.Steps)}); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
