// Package display draws the live monitor screen.
package display

import (
	"bytes"
	"fmt"
	"io"

	"github.com/penwyp/go-step-monitor/internal/core/model"
	"github.com/penwyp/go-step-monitor/internal/presentation/formatter"
	"github.com/penwyp/go-step-monitor/internal/presentation/layout"
	"github.com/penwyp/go-step-monitor/internal/util"
)

// DisplayConfig configures the terminal display
type DisplayConfig struct {
	LayoutStyle int
	Width       int // 0 follows the terminal
}

// TerminalDisplay redraws the live status in place. It writes escape
// sequences, so it is meant for a real terminal; tests pass a buffer.
type TerminalDisplay struct {
	out               io.Writer
	config            DisplayConfig
	sizer             *layout.Sizer
	inAlternateScreen bool
	history           string // rendered chart, empty when hidden
}

func NewTerminalDisplay(out io.Writer, config DisplayConfig) *TerminalDisplay {
	return &TerminalDisplay{
		out:    out,
		config: config,
		sizer:  layout.NewSizer(config.Width),
	}
}

// EnterAlternateScreen switches to alternate screen buffer
func (td *TerminalDisplay) EnterAlternateScreen() {
	if td.inAlternateScreen {
		return
	}
	fmt.Fprint(td.out, util.EnterAlternateScreen+util.ClearScreen+util.MoveCursorHome+util.HideCursor)
	td.inAlternateScreen = true
}

// ExitAlternateScreen returns to normal screen buffer
func (td *TerminalDisplay) ExitAlternateScreen() {
	if !td.inAlternateScreen {
		return
	}
	fmt.Fprint(td.out, util.ClearScreen+util.MoveCursorHome+util.ShowCursor+util.ExitAlternateScreen)
	td.inAlternateScreen = false
}

// Render redraws the screen from the top: the history block when one is
// shown, then the status.
func (td *TerminalDisplay) Render(status model.LiveStatus) {
	var buf bytes.Buffer
	buf.WriteString(util.MoveCursorHome)
	buf.WriteString(td.history)
	layout.GetLayoutStrategy(td.config.LayoutStyle, td.sizer).Render(&buf, status)
	buf.WriteString(util.ClearToEnd)
	td.out.Write(buf.Bytes())
}

// ShowHistory puts the history chart above the status until DismissHistory
func (td *TerminalDisplay) ShowHistory(entries []model.HistoryEntry) error {
	var buf bytes.Buffer
	buf.WriteString(util.FormatDataTitle("History") + "\n")
	if err := formatter.NewChartFormatter(&buf, td.sizer.GetMaxWidth()).Format(entries); err != nil {
		return err
	}
	buf.WriteString("\n")

	td.history = buf.String()
	fmt.Fprint(td.out, util.ClearScreen)
	return nil
}

// DismissHistory removes the history block; reports whether one was shown
func (td *TerminalDisplay) DismissHistory() bool {
	if td.history == "" {
		return false
	}
	td.history = ""
	fmt.Fprint(td.out, util.ClearScreen)
	return true
}

// ShowingHistory reports whether the history block is on screen
func (td *TerminalDisplay) ShowingHistory() bool {
	return td.history != ""
}
