// internal/scheduler/scheduler.go
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron"

	"github.com/Nikkeen22/fitness-bot/pkg/logger"
)

// Scheduler owns the recurring cron entries and the one-shot expiry timers.
// All cron specs are six-field with leading seconds and run in the configured
// timezone.
type Scheduler struct {
	cron   *cron.Cron
	expiry *ExpiryRegistry
	jobs   *Jobs
	log    *logger.Logger
}

func New(jobs *Jobs, log *logger.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.NewWithLocation(jobs.loc),
		expiry: NewExpiryRegistry(),
		jobs:   jobs,
		log:    log,
	}
}

func (s *Scheduler) Expiry() *ExpiryRegistry {
	return s.expiry
}

// Start registers every recurring job and launches the cron loop.
func (s *Scheduler) Start(ctx context.Context) error {
	entries := []struct {
		spec string
		name string
		run  func(context.Context)
	}{
		{"0 40 23 * * *", "daily workout reminder", s.jobs.DailyWorkoutReminder},
		{"0 0 19 * * 0", "weekly feedback request", s.jobs.WeeklyFeedbackRequest},
		{"0 0 10 1 * *", "monthly report", s.jobs.MonthlyReport},
		{"0 0 20 * * 0", "weekly leaderboard", s.jobs.WeeklyLeaderboard},
		{"0 0 12 * * 2,5", "group join nudge", s.jobs.GroupJoinNudge},
		{"0 30 21 * * *", "evening summary", s.jobs.EveningSummary},
		{"0 * * * * *", "meal reminders", s.jobs.MealReminders},
		{"0 0 22 * * *", "bedtime reminder", s.jobs.BedtimeReminder},
	}

	for _, e := range entries {
		e := e
		if err := s.cron.AddFunc(e.spec, func() { e.run(ctx) }); err != nil {
			return fmt.Errorf("failed to register %s: %w", e.name, err)
		}
	}

	s.cron.Start()
	s.log.Infof("Scheduler started with %d recurring jobs", len(entries))
	return nil
}

// Stop halts the cron loop and cancels all pending one-shot timers.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.expiry.Stop()
	s.log.Info("Scheduler stopped")
}
