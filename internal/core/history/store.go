// Package history owns the date-keyed record of daily step totals: the
// startup rollover, today's counter and the 10-day retention window.
package history

import (
	"fmt"

	"github.com/penwyp/go-step-monitor/internal/core/constants"
	"github.com/penwyp/go-step-monitor/internal/core/model"
	"github.com/penwyp/go-step-monitor/internal/data/kv"
	"github.com/penwyp/go-step-monitor/internal/util"
)

// Store is the daily history store. It is not safe for concurrent use; the
// monitor drives it from a single event loop.
type Store struct {
	kv      kv.Store
	clock   util.Clock
	counter model.DailyCounterState
	results model.SessionResults
}

// NewStore wraps a key-value store. Call Reconcile before anything else.
func NewStore(store kv.Store, clock util.Clock) *Store {
	return &Store{
		kv:      store,
		clock:   clock,
		results: model.EmptySessionResults(),
	}
}

// Reconcile loads the persisted state, rolls the previous day into history
// when the date changed, and writes the rebuilt namespace back. The returned
// Result is valid even when the write fails.
func (s *Store) Reconcile() (Result, error) {
	values, err := s.kv.Snapshot()
	if err != nil {
		util.LogWarn("Could not read stored state, starting from empty", util.F("error", err.Error()))
		values = map[string]kv.Value{}
	}

	persisted := Decode(values)
	result := Reconcile(s.clock.Now(), persisted)

	s.counter = result.Counter
	s.results = persisted.Results

	if result.RolledOver {
		util.LogInfo("Day changed since last save, archived previous total",
			util.F("date", persisted.Counter.LastSaveDate),
			util.F("steps", persisted.Counter.TotalDailySteps))
	}
	util.LogDebugf("Reconciled history for %s: %d stored days, baseline set=%v",
		result.Today, len(persisted.History), result.Counter.Baseline.Set)

	if err := s.kv.Apply(result.Batch(s.results)); err != nil {
		return result, fmt.Errorf("failed to persist reconciled history: %w", err)
	}
	return result, nil
}

// RecordSample feeds a cumulative sensor reading and returns today's total.
// The first reading after the baseline was cleared becomes the new baseline.
// Nothing is persisted.
func (s *Store) RecordSample(cumulative float64) int {
	if !s.counter.Baseline.Set {
		s.counter.Baseline = model.NewBaseline(cumulative)
		util.LogDebug("Day baseline set", util.F("baseline", cumulative))
	}
	s.counter.TotalDailySteps = s.counter.StepsSince(cumulative)
	return s.counter.TotalDailySteps
}

// PeriodicPersist saves today's counter stamped with the current date.
// History keys are left alone; they are only rebuilt by Reconcile.
func (s *Store) PeriodicPersist() error {
	s.counter.LastSaveDate = DateKey(s.clock.Now())

	b := kv.NewBatch()
	putCounter(b, s.counter)
	if err := s.kv.Apply(b); err != nil {
		return fmt.Errorf("failed to persist daily counter: %w", err)
	}

	util.LogDebug("Daily counter saved",
		util.F("date", s.counter.LastSaveDate),
		util.F("steps", s.counter.TotalDailySteps))
	return nil
}

// Counter returns today's counter state
func (s *Store) Counter() model.DailyCounterState {
	return s.counter
}

// Results returns the stopwatch results loaded at startup or last saved
func (s *Store) Results() model.SessionResults {
	return s.results
}

// SaveResults persists the two stopwatch result slots
func (s *Store) SaveResults(results model.SessionResults) error {
	s.results = results
	b := kv.NewBatch().
		PutString(constants.LastResultKey, results.Last).
		PutString(constants.PreviousResultKey, results.Previous)
	if err := s.kv.Apply(b); err != nil {
		return fmt.Errorf("failed to persist session results: %w", err)
	}
	return nil
}

// Clear wipes every stored key
func (s *Store) Clear() error {
	if err := s.kv.Apply(kv.NewBatch().Clear()); err != nil {
		return fmt.Errorf("failed to clear store: %w", err)
	}
	s.counter = model.DailyCounterState{}
	s.results = model.EmptySessionResults()
	return nil
}
