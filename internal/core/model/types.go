package model

// HistoryEntry is the step total recorded for one calendar day
type HistoryEntry struct {
	Date  string `json:"date"` // "15.03.2024"
	Steps int    `json:"steps"`
}

// Baseline is the cumulative sensor value taken as zero for the current day.
// The zero Baseline is unset; a set baseline may legitimately be 0.
type Baseline struct {
	Value float64
	Set   bool
}

// NewBaseline returns a set baseline
func NewBaseline(value float64) Baseline {
	return Baseline{Value: value, Set: true}
}

// DailyCounterState is the persisted state of today's counter
type DailyCounterState struct {
	TotalDailySteps int
	LastSaveDate    string
	Baseline        Baseline
}

// StepsSince returns today's steps for a cumulative reading, never negative.
// An unset baseline counts nothing.
func (s DailyCounterState) StepsSince(cumulative float64) int {
	if !s.Baseline.Set {
		return 0
	}
	steps := int(cumulative - s.Baseline.Value)
	if steps < 0 {
		return 0
	}
	return steps
}
