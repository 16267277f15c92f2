// Package scheduler runs the background periodic jobs of the monitor.
package scheduler

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/penwyp/go-step-monitor/internal/util"
)

// ErrInvalidInterval is returned for a non-positive job interval
var ErrInvalidInterval = errors.New("interval must be positive")

// Scheduler wraps a gocron scheduler
type Scheduler struct {
	scheduler gocron.Scheduler
}

// New creates a stopped scheduler
func New() (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	return &Scheduler{scheduler: s}, nil
}

// Start begins running scheduled jobs
func (s *Scheduler) Start() {
	util.LogDebug("Starting scheduler")
	s.scheduler.Start()
}

// Stop shuts the scheduler down and waits for running jobs
func (s *Scheduler) Stop() error {
	util.LogDebug("Stopping scheduler")
	return s.scheduler.Shutdown()
}

// ScheduleEvery runs fn every interval, starting one interval from now.
// A run that outlasts the interval delays the next one instead of
// overlapping it. Returns the job ID.
func (s *Scheduler) ScheduleEvery(name string, interval time.Duration, fn func()) (string, error) {
	if interval <= 0 {
		return "", fmt.Errorf("job %s: %w", name, ErrInvalidInterval)
	}

	job, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(fn),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create job %s: %w", name, err)
	}

	util.LogDebug("Scheduled job", util.F("name", name), util.F("interval", interval.String()))
	return job.ID().String(), nil
}

// Jobs returns the number of registered jobs
func (s *Scheduler) Jobs() int {
	return len(s.scheduler.Jobs())
}
