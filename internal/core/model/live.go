package model

import "time"

// LiveStatus is what the live screen shows on every redraw
type LiveStatus struct {
	Now            time.Time
	DailySteps     int
	SessionSteps   int
	SessionElapsed time.Duration
	Results        SessionResults
	LastReadingAt  time.Time // zero until the sensor reported
	StatusMessage  string
}

// HasReading reports whether the sensor delivered anything yet
func (s LiveStatus) HasReading() bool {
	return !s.LastReadingAt.IsZero()
}
