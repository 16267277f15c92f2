package formatter

import (
	"fmt"
	"io"

	"github.com/penwyp/go-step-monitor/internal/core/constants"
	"github.com/penwyp/go-step-monitor/internal/core/history"
	"github.com/penwyp/go-step-monitor/internal/core/model"
	"github.com/penwyp/go-step-monitor/internal/util"
)

const (
	defaultChartWidth = 74
	minBarWidth       = 10
)

// ChartFormatter draws one horizontal bar per day. Bars share one scale: the
// largest day, capped at constants.ChartStepCap.
type ChartFormatter struct {
	w     io.Writer
	width int
}

func NewChartFormatter(w io.Writer, width int) *ChartFormatter {
	if width <= 0 {
		width = defaultChartWidth
	}
	return &ChartFormatter{w: w, width: width}
}

func (f *ChartFormatter) Format(entries []model.HistoryEntry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(f.w, "No history yet")
		return err
	}

	scale := history.ChartScale(entries, constants.ChartStepCap)

	labelWidth, valueWidth := 0, 0
	for _, e := range entries {
		if w := util.GetDisplayWidth(e.Date); w > labelWidth {
			labelWidth = w
		}
		if w := len(formatNumber(e.Steps)); w > valueWidth {
			valueWidth = w
		}
	}

	// "<date> <bar> <steps>"
	barWidth := f.width - labelWidth - valueWidth - 2
	if barWidth < minBarWidth {
		barWidth = minBarWidth
	}

	for _, e := range entries {
		line := fmt.Sprintf("%s %s %s",
			util.PadRight(e.Date, labelWidth),
			util.CreateBar(e.Steps, scale, barWidth),
			util.PadLeft(formatNumber(e.Steps), valueWidth))
		if _, err := fmt.Fprintln(f.w, line); err != nil {
			return err
		}
	}
	return nil
}
