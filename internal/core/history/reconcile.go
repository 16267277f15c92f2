package history

import (
	"strings"
	"time"

	"github.com/penwyp/go-step-monitor/internal/core/constants"
	"github.com/penwyp/go-step-monitor/internal/core/model"
	"github.com/penwyp/go-step-monitor/internal/data/kv"
)

// Persisted is everything the store reads back at startup
type Persisted struct {
	Counter model.DailyCounterState
	History map[string]int // date -> steps
	Results model.SessionResults
}

// Decode reads persisted state from a raw snapshot. Missing or mistyped keys
// fall back to zero values, so any snapshot decodes.
func Decode(values map[string]kv.Value) Persisted {
	p := Persisted{
		Counter: model.DailyCounterState{
			TotalDailySteps: kv.Int(values, constants.TotalDailyStepsKey, 0),
			LastSaveDate:    kv.String(values, constants.LastSaveDateKey, ""),
		},
		History: make(map[string]int),
		Results: model.SessionResults{
			Last:     kv.String(values, constants.LastResultKey, constants.NoResultText),
			Previous: kv.String(values, constants.PreviousResultKey, constants.NoResultText),
		},
	}

	if baseline, ok := kv.Float(values, constants.DayResetInitialStepsKey); ok {
		p.Counter.Baseline = model.NewBaseline(baseline)
	}

	for key, v := range kv.WithPrefix(values, constants.HistoryKeyPrefix) {
		if v.Kind != kv.KindInt {
			continue
		}
		p.History[strings.TrimPrefix(key, constants.HistoryKeyPrefix)] = int(v.Int)
	}
	return p
}

// Result is the outcome of a startup reconciliation
type Result struct {
	Today      string
	History    []model.HistoryEntry // today-9 .. today, oldest first
	Counter    model.DailyCounterState
	RolledOver bool // the previous save belonged to another day
}

// Reconcile performs the day-boundary transition for a process starting at now.
// It is pure: the caller persists Batch(result, results).
func Reconcile(now time.Time, persisted Persisted) Result {
	today := DateKey(now)

	working := make(map[string]int, len(persisted.History)+1)
	for date, steps := range persisted.History {
		working[date] = steps
	}

	last := persisted.Counter.LastSaveDate
	rolledOver := last != "" && last != today
	if rolledOver {
		working[last] = persisted.Counter.TotalDailySteps
	}

	dates := WindowDates(now, constants.HistoryRetentionDays)
	entries := make([]model.HistoryEntry, 0, len(dates))
	for _, date := range dates {
		entries = append(entries, model.HistoryEntry{Date: date, Steps: working[date]})
	}

	counter := model.DailyCounterState{LastSaveDate: today}
	if last == today {
		counter.TotalDailySteps = persisted.Counter.TotalDailySteps
		counter.Baseline = persisted.Counter.Baseline
	}

	return Result{
		Today:      today,
		History:    entries,
		Counter:    counter,
		RolledOver: rolledOver,
	}
}

// Batch builds the write that replaces the whole namespace with the
// reconciled state. Session results are carried over untouched.
func (r Result) Batch(results model.SessionResults) *kv.Batch {
	b := kv.NewBatch().Clear()
	for _, e := range r.History {
		b.PutInt(constants.HistoryKey(e.Date), e.Steps)
	}
	putCounter(b, r.Counter)
	b.PutString(constants.LastResultKey, results.Last)
	b.PutString(constants.PreviousResultKey, results.Previous)
	return b
}

func putCounter(b *kv.Batch, c model.DailyCounterState) {
	b.PutInt(constants.TotalDailyStepsKey, c.TotalDailySteps)
	b.PutString(constants.LastSaveDateKey, c.LastSaveDate)
	if c.Baseline.Set {
		b.PutFloat(constants.DayResetInitialStepsKey, c.Baseline.Value)
	} else {
		b.Remove(constants.DayResetInitialStepsKey)
	}
}
