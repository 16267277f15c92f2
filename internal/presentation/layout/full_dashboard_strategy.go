package layout

import (
	"fmt"
	"io"
	"strings"

	"github.com/penwyp/go-step-monitor/internal/core/constants"
	"github.com/penwyp/go-step-monitor/internal/core/model"
	"github.com/penwyp/go-step-monitor/internal/util"
)

const helpLine = "[r] reset session  [h] history  [q] quit"

// FullLayoutStrategy implements the full dashboard layout
type FullLayoutStrategy struct {
	BaseStrategy
}

func (s *FullLayoutStrategy) GetName() string {
	return "Full Dashboard"
}

func (s *FullLayoutStrategy) Render(w io.Writer, status model.LiveStatus) {
	maxWidth := s.GetSizer().GetMaxWidth()
	var lines []string

	lines = append(lines, "╭"+strings.Repeat("─", maxWidth-2)+"╮")
	lines = append(lines, s.header(status, maxWidth))
	lines = append(lines, s.separator(maxWidth))
	lines = append(lines, s.dailySection(status, maxWidth)...)
	lines = append(lines, s.separator(maxWidth))
	lines = append(lines,
		s.BoxLine("Last:      "+status.Results.Last, maxWidth),
		s.BoxLine("Previous:  "+status.Results.Previous, maxWidth))
	lines = append(lines, s.separator(maxWidth))

	footer := "Sensor: " + s.SensorText(status)
	if status.StatusMessage != "" {
		footer = status.StatusMessage
	}
	lines = append(lines, s.BoxLine(footer, maxWidth), s.BoxLine(helpLine, maxWidth))
	lines = append(lines, "╰"+strings.Repeat("─", maxWidth-2)+"╯")

	fmt.Fprint(w, strings.Join(lines, "\n")+"\n")
}

// header puts the title on the left and the clock on the right
func (s *FullLayoutStrategy) header(status model.LiveStatus, maxWidth int) string {
	title := "STEP MONITOR"
	clock := s.ClockText(status)
	gap := maxWidth - 4 - util.GetDisplayWidth(title) - util.GetDisplayWidth(clock)
	if gap < 1 {
		gap = 1
	}
	return "│ " + util.FormatHeaderTitle(title) + strings.Repeat(" ", gap) + clock + " │"
}

func (s *FullLayoutStrategy) separator(maxWidth int) string {
	return "├" + strings.Repeat("─", maxWidth-2) + "┤"
}

func (s *FullLayoutStrategy) dailySection(status model.LiveStatus, maxWidth int) []string {
	daily := fmt.Sprintf("Today:     %d steps", status.DailySteps)
	scale := fmt.Sprintf(" %s/%s", util.FormatNumber(status.DailySteps), util.FormatNumber(constants.ChartStepCap))
	barWidth := maxWidth - 4 - util.GetDisplayWidth(scale)

	session := fmt.Sprintf("Session:   %d steps  %s",
		status.SessionSteps, util.FormatStopwatch(status.SessionElapsed))

	return []string{
		s.BoxLine(daily, maxWidth),
		s.BoxLine(util.CreateBar(status.DailySteps, constants.ChartStepCap, barWidth)+scale, maxWidth),
		s.BoxLine(session, maxWidth),
	}
}
