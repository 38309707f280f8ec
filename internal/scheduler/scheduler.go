// Package scheduler provides cron-based reminder checking for the
// daemon.
package scheduler

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/masonpham16/TalkDoc/internal/config"
	"github.com/masonpham16/TalkDoc/internal/logging"
	"github.com/masonpham16/TalkDoc/internal/storage"
)

// Scheduler manages the periodic jobs using cron. The minute job
// fires due reminders; the five-minute job prunes stale fired marks.
type Scheduler struct {
	cron            *cron.Cron
	cfg             config.SchedulerConfig
	lastCheck       time.Time
	mu              sync.Mutex
	reminderChecker *ReminderChecker
	firedRepo       *storage.FiredRepo
}

// NewScheduler creates a new scheduler.
func NewScheduler(cfg config.SchedulerConfig, checker *ReminderChecker, firedRepo *storage.FiredRepo) *Scheduler {
	return &Scheduler{
		cron:            cron.New(cron.WithSeconds()),
		cfg:             cfg,
		reminderChecker: checker,
		firedRepo:       firedRepo,
	}
}

// Start starts the scheduler with all configured jobs.
func (s *Scheduler) Start() error {
	s.lastCheck = time.Now()

	// Fire at second 0 of every minute
	_, err := s.cron.AddFunc("0 * * * * *", func() {
		s.runMinuteChecks()
	})
	if err != nil {
		return fmt.Errorf("failed to add minute checks: %w", err)
	}

	_, err = s.cron.AddFunc("0 */5 * * * *", func() {
		s.runFiveMinuteChecks()
	})
	if err != nil {
		return fmt.Errorf("failed to add 5-minute checks: %w", err)
	}

	s.cron.Start()
	logging.Logger().Debug("scheduler started")
	return nil
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
	logging.Logger().Debug("scheduler stopped")
}

// runMinuteChecks fires due reminders. A check after a long gap
// (system sleep) is skipped so a backlog of stale minutes does not
// fire late.
func (s *Scheduler) runMinuteChecks() {
	s.mu.Lock()
	elapsed := time.Since(s.lastCheck)
	s.lastCheck = time.Now()
	s.mu.Unlock()

	if elapsed > s.cfg.SleepThreshold {
		logging.Logger().Debug("skipping stale checks after sleep",
			"elapsed", elapsed.Round(time.Second))
		return
	}

	if s.reminderChecker != nil {
		s.reminderChecker.Check()
	}
}

// runFiveMinuteChecks prunes fired marks past the retention window.
func (s *Scheduler) runFiveMinuteChecks() {
	if s.firedRepo == nil {
		return
	}

	cutoff := time.Now().Add(-s.cfg.FiredRetention)
	pruned, err := s.firedRepo.PruneOlderThan(cutoff)
	if err != nil {
		logging.Logger().Error("failed to prune fired marks", "error", err)
		return
	}
	if pruned > 0 {
		logging.Logger().Debug("pruned fired marks", "count", pruned)
	}
}

// NextRun returns the next scheduled run time for any job.
func (s *Scheduler) NextRun() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}

	next := entries[0].Next
	for _, e := range entries[1:] {
		if e.Next.Before(next) {
			next = e.Next
		}
	}
	return next
}
