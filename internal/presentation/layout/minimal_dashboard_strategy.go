package layout

import (
	"fmt"
	"io"

	"github.com/penwyp/go-step-monitor/internal/core/model"
	"github.com/penwyp/go-step-monitor/internal/util"
)

// MinimalLayoutStrategy renders the status as a single line
type MinimalLayoutStrategy struct {
	BaseStrategy
}

func (s *MinimalLayoutStrategy) GetName() string {
	return "Minimal Dashboard"
}

func (s *MinimalLayoutStrategy) Render(w io.Writer, status model.LiveStatus) {
	line := fmt.Sprintf("Steps: %d | Session: %d (%s) | Last: %s | %s",
		status.DailySteps,
		status.SessionSteps,
		util.FormatStopwatch(status.SessionElapsed),
		status.Results.Last,
		s.ClockText(status))
	fmt.Fprintln(w, line)
}
