package util

import (
	"fmt"
	"time"
)

// FormatNumber renders large step counts compactly: 950, 1.5K, 2.1M
func FormatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	} else if n < 1000000 {
		return fmt.Sprintf("%.1fK", float64(n)/1000)
	}
	return fmt.Sprintf("%.1fM", float64(n)/1000000)
}

// FormatStopwatch renders d as HH:MM:SS. Hours are not wrapped at 24 and
// negative durations render as zero.
func FormatStopwatch(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total/60)%60, total%60)
}
