// Package scheduler re-runs ticket builds on a cron schedule.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// ErrNoJobs is returned by Start when nothing has been scheduled
var ErrNoJobs = errors.New("no jobs scheduled")

// Job is a unit of scheduled work
type Job func(ctx context.Context) error

// Scheduler manages scheduled rebuild jobs
type Scheduler struct {
	cron       *cron.Cron
	logger     *logrus.Entry
	mu         sync.RWMutex
	isRunning  bool
	jobIDs     []cron.EntryID
	jobTimeout time.Duration
	breaker    *CircuitBreaker
}

// NewScheduler creates a new scheduler. jobTimeout bounds each job run; zero means no bound.
func NewScheduler(logger *logrus.Logger, jobTimeout time.Duration) *Scheduler {
	if logger == nil {
		logger = logrus.New()
	}
	return &Scheduler{
		cron:       cron.New(cron.WithLocation(time.UTC), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:     logger.WithField("component", "scheduler"),
		jobIDs:     make([]cron.EntryID, 0),
		jobTimeout: jobTimeout,
	}
}

// WithCircuitBreaker guards every job with cb. Must be called before Start.
func (s *Scheduler) WithCircuitBreaker(cb *CircuitBreaker) *Scheduler {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.breaker = cb
	return s
}

// ScheduleRebuild registers a job under a standard five-field cron expression
// or a descriptor such as "@every 5m".
func (s *Scheduler) ScheduleRebuild(cronExpression string, name string, job Job) (cron.EntryID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return 0, fmt.Errorf("cannot schedule job while scheduler is running")
	}

	entryID, err := s.cron.AddFunc(cronExpression, func() { s.runJob(name, job) })
	if err != nil {
		return 0, fmt.Errorf("failed to add job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithFields(logrus.Fields{
		"job":  name,
		"cron": cronExpression,
	}).Info("Scheduled job")

	return entryID, nil
}

func (s *Scheduler) runJob(name string, job Job) {
	entry := s.logger.WithField("job", name)
	if s.breaker != nil && !s.breaker.Allow() {
		entry.Warn("Circuit open, skipping scheduled job")
		return
	}

	ctx := context.Background()
	if s.jobTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.jobTimeout)
		defer cancel()
	}

	start := time.Now()
	if err := job(ctx); err != nil {
		entry.WithError(err).Error("Scheduled job failed")
		if s.breaker != nil {
			s.breaker.RecordFailure(err)
		}
		return
	}
	if s.breaker != nil {
		s.breaker.RecordSuccess()
	}
	entry.WithField("duration_ms", time.Since(start).Milliseconds()).Debug("Scheduled job completed")
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}
	if len(s.jobIDs) == 0 {
		return ErrNoJobs
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.WithField("jobs", len(s.jobIDs)).Info("Scheduler started")

	return nil
}

// Stop stops the scheduler and waits for running jobs to finish
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	<-s.cron.Stop().Done()
	s.isRunning = false
	s.logger.Info("Scheduler stopped")
}

// IsRunning returns whether the scheduler is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRun returns the time of the next scheduled job run
func (s *Scheduler) NextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return time.Time{}
	}

	nextRun := time.Time{}
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() && (nextRun.IsZero() || entry.Next.Before(nextRun)) {
			nextRun = entry.Next
		}
	}
	return nextRun
}

// RemoveJob removes a scheduled job
func (s *Scheduler) RemoveJob(jobID cron.EntryID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot remove job while scheduler is running")
	}

	s.cron.Remove(jobID)
	for i, id := range s.jobIDs {
		if id == jobID {
			s.jobIDs = append(s.jobIDs[:i], s.jobIDs[i+1:]...)
			break
		}
	}
	return nil
}
