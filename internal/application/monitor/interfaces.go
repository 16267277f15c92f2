package monitor

import (
	"github.com/penwyp/go-step-monitor/internal/core/history"
	"github.com/penwyp/go-step-monitor/internal/core/model"
	"github.com/penwyp/go-step-monitor/internal/presentation/interaction"
)

// HistoryStore is the daily history the monitor drives
type HistoryStore interface {
	Reconcile() (history.Result, error)
	RecordSample(cumulative float64) int
	PeriodicPersist() error
	Counter() model.DailyCounterState
	Results() model.SessionResults
	SaveResults(results model.SessionResults) error
	LiveView() ([]model.HistoryEntry, error)
}

// DisplayController handles terminal display operations
type DisplayController interface {
	EnterAlternateScreen()
	ExitAlternateScreen()
	Render(status model.LiveStatus)
	ShowHistory(entries []model.HistoryEntry) error
	DismissHistory() bool
}

// InputHandler processes keyboard input events
type InputHandler interface {
	Events() <-chan interaction.KeyEvent
	Close() error
}
