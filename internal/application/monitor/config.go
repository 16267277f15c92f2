package monitor

import (
	"time"

	"github.com/penwyp/go-step-monitor/internal/core/constants"
)

// MonitorConfig contains configuration for the live monitor
type MonitorConfig struct {
	// RunID tags the log lines of one process run
	RunID string

	// PersistInterval is the period of the background save
	PersistInterval time.Duration

	// RefreshInterval drives the clock redraw
	RefreshInterval time.Duration

	// Interactive switches to the alternate screen for the lifetime of Run
	Interactive bool

	// ExitOnSourceEnd ends Run once the sensor source is closed and drained
	ExitOnSourceEnd bool
}

// Validate fills defaults for unset intervals
func (c *MonitorConfig) Validate() error {
	if c.PersistInterval <= 0 {
		c.PersistInterval = constants.PersistInterval
	}
	if c.RefreshInterval <= 0 {
		c.RefreshInterval = constants.ClockTickInterval
	}
	return nil
}
