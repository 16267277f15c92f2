package history

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/penwyp/go-step-monitor/internal/core/constants"
	"github.com/penwyp/go-step-monitor/internal/core/model"
	"github.com/penwyp/go-step-monitor/internal/data/kv"
)

// View reads the display model straight from storage: every history key,
// with today's live counter laid over its own date, newest first.
func (s *Store) View() ([]model.HistoryEntry, error) {
	values, err := s.kv.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	return BuildView(values, s.location()), nil
}

// LiveView is View with today's in-memory counter instead of the last saved
// one
func (s *Store) LiveView() ([]model.HistoryEntry, error) {
	entries, err := s.View()
	if err != nil {
		return nil, err
	}
	if s.counter.LastSaveDate == "" {
		return entries, nil
	}
	for i := range entries {
		if entries[i].Date == s.counter.LastSaveDate {
			entries[i].Steps = s.counter.TotalDailySteps
			return entries, nil
		}
	}
	live := model.HistoryEntry{Date: s.counter.LastSaveDate, Steps: s.counter.TotalDailySteps}
	return append([]model.HistoryEntry{live}, entries...), nil
}

func (s *Store) location() *time.Location {
	return s.clock.Now().Location()
}

// BuildView turns a raw snapshot into entries sorted by date, newest first.
// Keys whose date does not parse are kept and sorted after all valid dates.
func BuildView(values map[string]kv.Value, loc *time.Location) []model.HistoryEntry {
	byDate := make(map[string]int)
	for key, v := range kv.WithPrefix(values, constants.HistoryKeyPrefix) {
		if v.Kind != kv.KindInt {
			continue
		}
		byDate[strings.TrimPrefix(key, constants.HistoryKeyPrefix)] = int(v.Int)
	}

	if last := kv.String(values, constants.LastSaveDateKey, ""); last != "" {
		byDate[last] = kv.Int(values, constants.TotalDailyStepsKey, 0)
	}

	type dated struct {
		entry model.HistoryEntry
		at    time.Time
		valid bool
	}
	rows := make([]dated, 0, len(byDate))
	for date, steps := range byDate {
		at, err := ParseDate(date, loc)
		rows = append(rows, dated{
			entry: model.HistoryEntry{Date: date, Steps: steps},
			at:    at,
			valid: err == nil,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.valid != b.valid {
			return a.valid
		}
		if a.valid && !a.at.Equal(b.at) {
			return a.at.After(b.at)
		}
		return a.entry.Date > b.entry.Date
	})

	entries := make([]model.HistoryEntry, len(rows))
	for i, r := range rows {
		entries[i] = r.entry
	}
	return entries
}

// ChartScale returns the step count a full-width bar represents: the largest
// entry, clamped to limit
func ChartScale(entries []model.HistoryEntry, limit int) int {
	scale := 0
	for _, e := range entries {
		if e.Steps > scale {
			scale = e.Steps
		}
	}
	if limit > 0 && scale > limit {
		return limit
	}
	return scale
}
