package layout

import (
	"strings"

	"github.com/penwyp/go-step-monitor/internal/core/constants"
	"github.com/penwyp/go-step-monitor/internal/core/model"
	"github.com/penwyp/go-step-monitor/internal/util"
)

// BaseStrategy provides common functionality for all layout strategies
type BaseStrategy struct {
	sizer *Sizer
}

// GetSizer returns the configured sizer, or the shared one
func (b *BaseStrategy) GetSizer() *Sizer {
	if b.sizer != nil {
		return b.sizer
	}
	return sharedSizer
}

// BoxLine frames content as "│ content   │" within width cells
func (b *BaseStrategy) BoxLine(content string, width int) string {
	inner := width - 4
	if util.GetDisplayWidth(content) > inner {
		content = truncate(content, inner)
	}
	return "│ " + b.GetSizer().PadString(content, inner, true) + " │"
}

// CenterText centers text within the given width
func (b *BaseStrategy) CenterText(text string, width int) string {
	padding := width - util.GetDisplayWidth(text)
	if padding <= 0 {
		return text
	}
	leftPad := padding / 2
	rightPad := padding - leftPad
	return strings.Repeat(" ", leftPad) + text + strings.Repeat(" ", rightPad)
}

// ClockText returns the wall-clock time of the status
func (b *BaseStrategy) ClockText(status model.LiveStatus) string {
	return status.Now.Format(constants.ClockLayout)
}

// SensorText describes the sensor state
func (b *BaseStrategy) SensorText(status model.LiveStatus) string {
	if !status.HasReading() {
		return "waiting for sensor"
	}
	return "last reading " + status.LastReadingAt.Format(constants.ClockLayout)
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return util.Truncate(s, width)
}
