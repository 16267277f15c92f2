package constants

import "time"

const (
	// DateLayout is the day identifier format, dd.MM.yyyy
	DateLayout = "02.01.2006"

	// ClockLayout is the wall-clock format shown on the live screen
	ClockLayout = "15:04:05"

	// HistoryRetentionDays is the number of calendar days kept in history,
	// today included
	HistoryRetentionDays = 10

	// PersistInterval is the default period of the background save
	PersistInterval = 3 * time.Minute

	// ClockTickInterval drives the live screen redraw
	ClockTickInterval = time.Second

	// ChartStepCap bounds the scale of the history chart
	ChartStepCap = 20000
)
