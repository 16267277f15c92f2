// Package monitor runs the live step monitor: one event loop that owns the
// daily counter and the stopwatch, fed by the sensor, the keyboard, a clock
// tick and the periodic save.
package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/penwyp/go-step-monitor/internal/core/model"
	"github.com/penwyp/go-step-monitor/internal/core/session"
	"github.com/penwyp/go-step-monitor/internal/presentation/interaction"
	"github.com/penwyp/go-step-monitor/internal/scheduler"
	"github.com/penwyp/go-step-monitor/internal/sensor"
	"github.com/penwyp/go-step-monitor/internal/util"
)

// Orchestrator coordinates all components of the live monitor
type Orchestrator struct {
	config  MonitorConfig
	store   HistoryStore
	source  sensor.Source
	display DisplayController
	input   InputHandler // nil without a terminal
	clock   util.Clock

	stopwatch     *session.Stopwatch
	persistCh     chan struct{}
	lastReadingAt time.Time
	statusMessage string
	statusAt      time.Time
}

// statusMessageTTL is how long a key acknowledgement stays on screen
const statusMessageTTL = 5 * time.Second

// NewOrchestrator wires the monitor. input may be nil.
func NewOrchestrator(config MonitorConfig, store HistoryStore, source sensor.Source,
	display DisplayController, input InputHandler, clock util.Clock) (*Orchestrator, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Orchestrator{
		config:    config,
		store:     store,
		source:    source,
		display:   display,
		input:     input,
		clock:     clock,
		persistCh: make(chan struct{}, 1),
	}, nil
}

// Run reconciles the stored history and processes events until ctx is done,
// the user quits, or (with ExitOnSourceEnd) the sensor source ends. A final
// save is attempted on the way out.
func (o *Orchestrator) Run(ctx context.Context) error {
	util.LogInfo("Starting step monitor", util.F("run_id", o.config.RunID))

	// Phase 1: day rollover. A failed write leaves the in-memory state valid.
	result, err := o.store.Reconcile()
	if err != nil {
		util.LogError("Failed to save reconciled history", util.F("error", err.Error()))
	}
	util.LogInfo("History ready", util.F("today", result.Today), util.F("steps", result.Counter.TotalDailySteps))
	o.stopwatch = session.NewStopwatch(o.store.Results())

	// Phase 2: periodic save
	sched, err := scheduler.New()
	if err != nil {
		return err
	}
	if _, err := sched.ScheduleEvery("persist-daily-counter", o.config.PersistInterval, o.requestPersist); err != nil {
		return err
	}
	sched.Start()
	defer func() {
		if err := sched.Stop(); err != nil {
			util.LogWarn("Failed to stop scheduler", util.F("error", err.Error()))
		}
	}()

	if o.config.Interactive {
		o.display.EnterAlternateScreen()
		defer o.display.ExitAlternateScreen()
	}

	// Phase 3: main event loop
	ticker := time.NewTicker(o.config.RefreshInterval)
	defer ticker.Stop()

	readings := o.source.Readings()
	var keys <-chan interaction.KeyEvent
	if o.input != nil {
		keys = o.input.Events()
	}

	o.updateDisplay()

	for {
		select {
		case <-ctx.Done():
			util.LogInfo("Shutting down step monitor")
			return o.shutdown()

		case <-ticker.C:
			o.updateDisplay()

		case <-o.persistCh:
			o.persist()

		case reading, ok := <-readings:
			if !ok {
				readings = nil
				util.LogInfo("Sensor source closed")
				if o.config.ExitOnSourceEnd {
					return o.shutdown()
				}
				continue
			}
			o.handleReading(reading)

		case event := <-keys:
			if o.handleKeyboard(event) {
				return o.shutdown()
			}
			o.updateDisplay()
		}
	}
}

// requestPersist runs on the scheduler goroutine; the save itself happens
// in the loop
func (o *Orchestrator) requestPersist() {
	select {
	case o.persistCh <- struct{}{}:
	default:
	}
}

func (o *Orchestrator) persist() {
	if err := o.store.PeriodicPersist(); err != nil {
		util.LogError("Periodic save failed", util.F("error", err.Error()))
	}
}

func (o *Orchestrator) shutdown() error {
	if err := o.store.PeriodicPersist(); err != nil {
		return fmt.Errorf("final save failed: %w", err)
	}
	util.LogInfo("Daily counter saved on exit", util.F("steps", o.store.Counter().TotalDailySteps))
	return nil
}

func (o *Orchestrator) handleReading(reading sensor.Reading) {
	daily := o.store.RecordSample(reading.Value)
	running := o.stopwatch.Sample(reading.Value, reading.At)
	o.lastReadingAt = reading.At

	util.LogDebug("Sensor reading",
		util.F("cumulative", reading.Value),
		util.F("daily", daily),
		util.F("session", running))
}

// handleKeyboard applies a key; returns true when the monitor should exit
func (o *Orchestrator) handleKeyboard(event interaction.KeyEvent) bool {
	action := interaction.ActionFor(event)
	switch action {
	case interaction.ActionQuit:
		return true

	case interaction.ActionReset:
		o.resetSession()

	case interaction.ActionHistory:
		o.toggleHistory()
	}
	return false
}

func (o *Orchestrator) resetSession() {
	result, recorded := o.stopwatch.Reset(o.clock.Now())
	if !recorded {
		o.setStatus("Session reset")
		return
	}

	o.setStatus("Saved: " + result)
	if err := o.store.SaveResults(o.stopwatch.Results()); err != nil {
		util.LogError("Failed to save session result", util.F("error", err.Error()))
		o.setStatus("Could not save session result")
	}
}

func (o *Orchestrator) setStatus(msg string) {
	o.statusMessage = msg
	o.statusAt = o.clock.Now()
}

func (o *Orchestrator) toggleHistory() {
	if o.display.DismissHistory() {
		return
	}

	entries, err := o.store.LiveView()
	if err != nil {
		util.LogError("Failed to load history", util.F("error", err.Error()))
		o.setStatus("Could not load history")
		return
	}
	if err := o.display.ShowHistory(entries); err != nil {
		util.LogError("Failed to draw history", util.F("error", err.Error()))
	}
}

// Status assembles what the screen shows now
func (o *Orchestrator) Status() model.LiveStatus {
	now := o.clock.Now()
	status := model.LiveStatus{
		Now:           now,
		DailySteps:    o.store.Counter().TotalDailySteps,
		Results:       o.store.Results(),
		LastReadingAt: o.lastReadingAt,
	}
	if o.stopwatch != nil {
		status.SessionSteps = o.stopwatch.Steps()
		status.SessionElapsed = o.stopwatch.Elapsed(now)
		status.Results = o.stopwatch.Results()
	}
	if o.statusMessage != "" && now.Sub(o.statusAt) < statusMessageTTL {
		status.StatusMessage = o.statusMessage
	}
	return status
}

func (o *Orchestrator) updateDisplay() {
	o.display.Render(o.Status())
}
