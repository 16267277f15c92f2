package layout

import (
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/penwyp/go-step-monitor/internal/util"
	"golang.org/x/term"
)

const (
	fallbackWidth = 74
	minWidth      = 40
	maxWidth      = 74
)

// Package-level singleton Sizer instance
var sharedSizer = &Sizer{}

// Sizer measures text and the terminal. A zero Width means "ask the terminal".
type Sizer struct {
	Width int
}

// NewSizer returns a sizer pinned to a fixed width
func NewSizer(width int) *Sizer {
	return &Sizer{Width: width}
}

// displayWidth calculates the actual display width of a string containing emojis and Unicode characters
func (i Sizer) displayWidth(s string) int {
	return runewidth.StringWidth(s)
}

// PadString pads a string to a specific display width, handling wide runes correctly
func (i Sizer) PadString(s string, width int, leftAlign bool) string {
	actualWidth := i.displayWidth(s)
	if actualWidth >= width {
		return s
	}

	padding := strings.Repeat(" ", width-actualWidth)
	if leftAlign {
		return s + padding
	}
	return padding + s
}

// TerminalWidth returns the stdout terminal width, or a fallback when stdout
// is not a terminal
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return fallbackWidth
	}
	return width
}

// GetMaxWidth returns the box width used by the dashboards
func (i Sizer) GetMaxWidth() int {
	width := i.Width
	if width <= 0 {
		width = TerminalWidth() - 4
	}

	if width < minWidth {
		width = minWidth
	}
	if width > maxWidth {
		width = maxWidth
	}

	util.LogDebugf("GetMaxWidth %d", width)
	return width
}
