package daemon

import (
	"context"
	"log/slog"
	"time"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/services/deadline"
)

// Sweeper runs one deadline sweep
type Sweeper interface {
	RunDeadlineSweep(ctx context.Context) deadline.SweepSummary
}

// Scheduler runs the deadline sweep on a fixed interval
type Scheduler struct {
	sweeper    Sweeper
	interval   time.Duration
	runOnStart bool
}

// NewScheduler creates a scheduler. interval <= 0 means one hour.
func NewScheduler(sweeper Sweeper, interval time.Duration, runOnStart bool) *Scheduler {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Scheduler{sweeper: sweeper, interval: interval, runOnStart: runOnStart}
}

// Run sweeps until ctx is canceled. Sweeps never overlap: a tick that fires
// while a sweep is running is dropped by the ticker.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	slog.Info("sweep scheduler started", "interval", s.interval, "run_on_start", s.runOnStart)

	if s.runOnStart {
		s.sweep(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			slog.Info("sweep scheduler stopping", "reason", ctx.Err())
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Scheduler) sweep(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	summary := s.sweeper.RunDeadlineSweep(ctx)
	if summary.Error != "" {
		slog.Error("scheduled deadline sweep failed", "error", summary.Error)
		return
	}
	slog.Debug("scheduled deadline sweep done",
		"tasks_analyzed", summary.TotalTasksAnalyzed,
		"notifications_created", summary.NotificationsCreated)
}
