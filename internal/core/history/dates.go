package history

import (
	"time"

	"github.com/penwyp/go-step-monitor/internal/core/constants"
)

// DateKey returns the day identifier of t in t's own location
func DateKey(t time.Time) string {
	return t.Format(constants.DateLayout)
}

// ParseDate parses a day identifier in loc
func ParseDate(date string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(constants.DateLayout, date, loc)
}

// WindowDates returns the identifiers of the `days` calendar days ending
// with the day of now, oldest first. Days are stepped through the calendar,
// so DST transitions never skip or repeat a date.
func WindowDates(now time.Time, days int) []string {
	if days <= 0 {
		return nil
	}
	y, m, d := now.Date()
	dates := make([]string, 0, days)
	for i := days - 1; i >= 0; i-- {
		dates = append(dates, DateKey(time.Date(y, m, d-i, 12, 0, 0, 0, now.Location())))
	}
	return dates
}
