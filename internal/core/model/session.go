package model

import "github.com/penwyp/go-step-monitor/internal/core/constants"

// SessionResults holds the two most recent stopwatch results, newest first
type SessionResults struct {
	Last     string `json:"last"`
	Previous string `json:"previous"`
}

// EmptySessionResults returns results with both slots showing the placeholder
func EmptySessionResults() SessionResults {
	return SessionResults{Last: constants.NoResultText, Previous: constants.NoResultText}
}

// Push records a new result, moving the current last one to previous
func (r *SessionResults) Push(result string) {
	r.Previous = r.Last
	r.Last = result
}
