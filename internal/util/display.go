package util

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Terminal control sequences
const (
	ColorReset  = "\033[0m"
	ColorCyan   = "\033[36m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBold   = "\033[1m"

	ClearScreen    = "\033[2J"
	MoveCursorHome = "\033[H"
	HideCursor     = "\033[?25l"
	ShowCursor     = "\033[?25h"
	ClearToEnd     = "\033[J"

	EnterAlternateScreen = "\033[?1049h"
	ExitAlternateScreen  = "\033[?1049l"
)

// GetDisplayWidth calculates the display width of a string, counting
// wide runes (Cyrillic is narrow, emoji are wide) correctly
func GetDisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// PadRight pads s with spaces up to the given display width
func PadRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// PadLeft pads s on the left up to the given display width
func PadLeft(s string, width int) string {
	return runewidth.FillLeft(s, width)
}

// Truncate cuts s to at most width display cells, marking the cut with "…"
func Truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "…")
}

// CreateBar draws a horizontal bar of at most width cells whose length is
// value/scale of the width. Values above scale are clamped; a zero scale
// draws an empty bar.
func CreateBar(value, scale, width int) string {
	if width <= 0 {
		return ""
	}
	filled := 0
	if scale > 0 {
		if value > scale {
			value = scale
		}
		if value > 0 {
			filled = int(float64(width) * float64(value) / float64(scale))
		}
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// FormatHeaderTitle formats main header titles (Cyan + Bold)
func FormatHeaderTitle(title string) string {
	return fmt.Sprintf("%s%s%s%s", ColorBold, ColorCyan, title, ColorReset)
}

// FormatDataTitle formats data section titles (Green + Bold)
func FormatDataTitle(title string) string {
	return fmt.Sprintf("%s%s%s%s", ColorBold, ColorGreen, title, ColorReset)
}
