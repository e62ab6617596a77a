package task

import (
	"context"
	"time"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/services/deadline"
)

// RiskChecker runs a deadline check for a task that just changed.
type RiskChecker interface {
	CheckTask(ctx context.Context, taskID int) (*deadline.CheckResult, error)
}

// Option is a functional option for configuring the task service
type Option func(*service)

// WithCycleDetection turns the acyclic check on edge updates on or off (default on)
func WithCycleDetection(enabled bool) Option {
	return func(s *service) {
		s.detectCycles = enabled
	}
}

// WithRiskChecker runs checker after every successful update
func WithRiskChecker(checker RiskChecker) Option {
	return func(s *service) {
		s.checker = checker
	}
}

// WithClock sets the clock used for timestamps
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}
