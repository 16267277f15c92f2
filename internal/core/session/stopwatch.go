// Package session implements the walk stopwatch: steps counted since the
// last reset, and the two most recent finished walks.
package session

import (
	"fmt"
	"time"

	"github.com/penwyp/go-step-monitor/internal/core/constants"
	"github.com/penwyp/go-step-monitor/internal/core/model"
	"github.com/penwyp/go-step-monitor/internal/util"
)

// Stopwatch counts steps between two resets. The first sensor reading after
// a reset becomes the zero point and starts the clock.
type Stopwatch struct {
	started bool
	initial float64
	running int
	start   time.Time
	results model.SessionResults
}

// NewStopwatch creates a stopwatch showing previously saved results
func NewStopwatch(results model.SessionResults) *Stopwatch {
	return &Stopwatch{results: results}
}

// Sample feeds a cumulative sensor reading and returns the session steps.
// The count never goes down within a session.
func (s *Stopwatch) Sample(cumulative float64, now time.Time) int {
	if !s.started {
		s.started = true
		s.initial = cumulative
		s.start = now
		util.LogDebug("Session started", util.F("initial", cumulative))
	}

	if steps := int(cumulative - s.initial); steps >= s.running {
		s.running = steps
	}
	return s.running
}

// Reset finishes the current session. When any steps were counted the
// session is formatted as "HH:MM:SS - N шагов" and pushed into the results;
// recorded reports whether that happened.
func (s *Stopwatch) Reset(now time.Time) (result string, recorded bool) {
	if s.running > 0 {
		result = FormatResult(now.Sub(s.start), s.running)
		s.results.Push(result)
		recorded = true
		util.LogInfo("Session finished", util.F("result", result))
	}

	s.started = false
	s.initial = 0
	s.running = 0
	s.start = now
	return result, recorded
}

// Steps returns the steps of the running session
func (s *Stopwatch) Steps() int {
	return s.running
}

// Elapsed returns the time since the session started
func (s *Stopwatch) Elapsed(now time.Time) time.Duration {
	if !s.started {
		return 0
	}
	return now.Sub(s.start)
}

// Results returns the last and previous finished sessions
func (s *Stopwatch) Results() model.SessionResults {
	return s.results
}

// FormatResult renders a finished session
func FormatResult(elapsed time.Duration, steps int) string {
	return fmt.Sprintf("%s - %d %s", util.FormatStopwatch(elapsed), steps, constants.StepsWord)
}
