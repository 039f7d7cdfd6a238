// Package scheduler triggers the daily prediction runs on cron expressions.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// RunFunc executes one labelled prediction run
type RunFunc func(ctx context.Context, label string) error

// Scheduler manages the scheduled prediction runs
type Scheduler struct {
	cron            *cron.Cron
	logger          *logrus.Entry
	mu              sync.RWMutex
	isRunning       bool
	jobs            map[string]cron.EntryID
	runTimeout      time.Duration
	gracefulTimeout time.Duration
}

// NewScheduler creates a scheduler whose expressions are read in loc.
// Overlapping firings of the same run are skipped.
func NewScheduler(loc *time.Location, runTimeout time.Duration, logger *logrus.Logger) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	if runTimeout <= 0 {
		runTimeout = 30 * time.Minute
	}
	cronLogger := cron.PrintfLogger(logger)
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		logger:          logger.WithField("component", "scheduler"),
		jobs:            make(map[string]cron.EntryID),
		runTimeout:      runTimeout,
		gracefulTimeout: 30 * time.Second,
	}
}

// ScheduleRun registers a labelled run on a standard five-field cron expression
func (s *Scheduler) ScheduleRun(label, cronExpression string, run RunFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}
	if _, ok := s.jobs[label]; ok {
		return fmt.Errorf("run %q is already scheduled", label)
	}

	jobFunc := func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.runTimeout)
		defer cancel()

		start := time.Now()
		log := s.logger.WithField("label", label)
		log.Info("Starting scheduled prediction run")

		if err := run(ctx, label); err != nil {
			log.WithError(err).Error("Scheduled prediction run failed")
			return
		}
		log.WithField("duration_ms", time.Since(start).Milliseconds()).Info("Scheduled prediction run completed")
	}

	entryID, err := s.cron.AddFunc(cronExpression, jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}

	s.jobs[label] = entryID
	s.logger.WithFields(logrus.Fields{
		"label": label,
		"cron":  cronExpression,
	}).Info("Scheduled prediction run")

	return nil
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}
	if len(s.jobs) == 0 {
		return fmt.Errorf("no jobs scheduled")
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.WithField("jobs", len(s.jobs)).Info("Scheduler started")

	return nil
}

// Stop waits for running jobs to finish, up to the graceful timeout
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	s.isRunning = false
	select {
	case <-s.cron.Stop().Done():
		s.logger.Info("Scheduler stopped")
		return nil
	case <-time.After(s.gracefulTimeout):
		return fmt.Errorf("scheduler stop timed out after %s", s.gracefulTimeout)
	}
}

// IsRunning returns whether the scheduler is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRuns returns the next firing time of every scheduled run, keyed by label
func (s *Scheduler) NextRuns() map[string]time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]time.Time, len(s.jobs))
	for label, id := range s.jobs {
		if entry := s.cron.Entry(id); entry.Valid() {
			out[label] = entry.Next
		}
	}
	return out
}

// GetNextRun returns the time of the next scheduled run, or zero when stopped
func (s *Scheduler) GetNextRun() time.Time {
	if !s.IsRunning() {
		return time.Time{}
	}

	next := time.Time{}
	for _, t := range s.NextRuns() {
		if next.IsZero() || t.Before(next) {
			next = t
		}
	}
	return next
}

// NextAfter returns when a cron expression fires next after t, in loc
func NextAfter(cronExpression string, t time.Time, loc *time.Location) (time.Time, error) {
	sched, err := cron.ParseStandard(cronExpression)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid cron expression %q: %w", cronExpression, err)
	}
	return sched.Next(t.In(loc)), nil
}
