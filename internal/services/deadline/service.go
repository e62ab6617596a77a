// Package deadline runs deadline risk analysis over tasks and issues throttled
// warnings to the people responsible for them.
package deadline

import (
	"context"
	"log/slog"
	"time"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/database"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/events"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/models"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/risk"
)

// Service exposes the deadline risk analyzer and the batch sweep
type Service interface {
	// RunDeadlineSweep never returns an error: failures are logged, rolled
	// back and reported inside the summary.
	RunDeadlineSweep(ctx context.Context) SweepSummary
	CheckTask(ctx context.Context, taskID int) (*CheckResult, error)
	GetTaskDeadlineInsights(ctx context.Context, taskID int) (*Insights, error)
}

// SweepSummary reports one batch sweep
type SweepSummary struct {
	TotalTasksAnalyzed   int                `json:"total_tasks_analyzed"`
	RiskBreakdown        map[risk.Level]int `json:"risk_breakdown"`
	NotificationsCreated int                `json:"notifications_created"`
	OverdueTasks         int                `json:"overdue_tasks"`
	StartedAt            time.Time          `json:"started_at"`
	FinishedAt           time.Time          `json:"finished_at"`
	Committed            bool               `json:"committed"`
	Error                string             `json:"error,omitempty"`
}

// CheckResult reports a single-task risk check
type CheckResult struct {
	TaskID               int             `json:"task_id"`
	Assessment           risk.Assessment `json:"assessment"`
	Skipped              bool            `json:"skipped"`
	NotificationsCreated int             `json:"notifications_created"`
}

// Insights is the risk breakdown of one task with recommended actions
type Insights struct {
	TaskID int    `json:"task_id"`
	Title  string `json:"title"`
	risk.Assessment
	DueDate         *models.Date `json:"due_date"`
	CurrentStatus   *string      `json:"current_status"`
	Priority        string       `json:"priority"`
	EffortScore     int          `json:"effort_score"`
	Recommendations []string     `json:"recommendations"`
}

type service struct {
	repo        database.DataStore
	analyzer    *risk.Analyzer
	throttler   *Throttler
	eventClient events.EventPublisher
	now         func() time.Time
}

// NewService creates a deadline service. A nil clock means time.Now.
func NewService(repo database.DataStore, analyzer *risk.Analyzer, cfg Config, eventClient events.EventPublisher, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:        repo,
		analyzer:    analyzer,
		throttler:   NewThrottler(cfg, now),
		eventClient: eventClient,
		now:         now,
	}
}

func (s *service) today() models.Date {
	return models.DateOf(s.now())
}

// RunDeadlineSweep analyzes every open task with a due date and writes the
// warnings of the whole sweep in one transaction.
func (s *service) RunDeadlineSweep(ctx context.Context) SweepSummary {
	summary := SweepSummary{
		RiskBreakdown: map[risk.Level]int{},
		StartedAt:     s.now().UTC(),
	}
	for _, l := range risk.Levels() {
		summary.RiskBreakdown[l] = 0
	}

	today := s.today()
	perTask := map[*models.Task]int{}

	err := s.repo.WithTx(ctx, func(tx database.DataStore) error {
		tasks, err := tx.ListOpenTasksWithDeadline(ctx, risk.DoneKeywords())
		if err != nil {
			return err
		}
		summary.TotalTasksAnalyzed = len(tasks)

		projectNames := map[int]string{}
		for _, t := range tasks {
			a := s.analyzer.Assess(t, today)
			summary.RiskBreakdown[a.Level]++
			if a.Overdue {
				summary.OverdueTasks++
			}
			if a.Level == risk.LevelLow {
				continue
			}

			name, err := s.projectName(ctx, tx, projectNames, t.ProjectID)
			if err != nil {
				return err
			}
			created, err := s.throttler.Notify(ctx, tx, t, name, a)
			if err != nil {
				return err
			}
			if len(created) > 0 {
				perTask[t] = len(created)
				summary.NotificationsCreated += len(created)
			}
		}
		return nil
	})

	summary.FinishedAt = s.now().UTC()
	if err != nil {
		summary.NotificationsCreated = 0
		summary.Error = err.Error()
		slog.Error("deadline sweep failed",
			"tasks_analyzed", summary.TotalTasksAnalyzed,
			"error", err)
		s.publish(ctx, events.Event{Type: events.EventSweepCompleted, Error: summary.Error})
		return summary
	}

	summary.Committed = true
	for t, n := range perTask {
		s.publish(ctx, events.Event{
			Type:      events.EventNotificationCreated,
			ProjectID: t.ProjectID,
			TaskID:    t.ID,
			Count:     n,
		})
	}
	s.publish(ctx, events.Event{Type: events.EventSweepCompleted, Count: summary.NotificationsCreated})

	slog.Info("deadline sweep finished",
		"tasks_analyzed", summary.TotalTasksAnalyzed,
		"overdue", summary.OverdueTasks,
		"notifications_created", summary.NotificationsCreated,
		"duration", summary.FinishedAt.Sub(summary.StartedAt))
	return summary
}

// CheckTask runs the sweep logic for one task, typically right after it changed.
// Finished tasks and tasks without a due date are skipped.
func (s *service) CheckTask(ctx context.Context, taskID int) (*CheckResult, error) {
	if taskID <= 0 {
		return nil, ErrInvalidTaskID
	}

	result := &CheckResult{TaskID: taskID}
	var task *models.Task
	err := s.repo.WithTx(ctx, func(tx database.DataStore) error {
		t, err := tx.GetTask(ctx, taskID)
		if err != nil {
			return err
		}
		task = t
		result.Assessment = s.analyzer.Assess(t, s.today())

		if t.DueDate == nil || risk.IsDoneStatus(t.StatusName()) {
			result.Skipped = true
			return nil
		}
		if result.Assessment.Level == risk.LevelLow {
			return nil
		}

		project, err := tx.GetProject(ctx, t.ProjectID)
		if err != nil {
			return err
		}
		created, err := s.throttler.Notify(ctx, tx, t, project.Name, result.Assessment)
		if err != nil {
			return err
		}
		result.NotificationsCreated = len(created)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.NotificationsCreated > 0 {
		s.publish(ctx, events.Event{
			Type:      events.EventNotificationCreated,
			ProjectID: task.ProjectID,
			TaskID:    task.ID,
			Count:     result.NotificationsCreated,
		})
	}
	return result, nil
}

// GetTaskDeadlineInsights explains a task's deadline risk
func (s *service) GetTaskDeadlineInsights(ctx context.Context, taskID int) (*Insights, error) {
	if taskID <= 0 {
		return nil, ErrInvalidTaskID
	}
	t, err := s.repo.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	a := s.analyzer.Assess(t, s.today())
	in := &Insights{
		TaskID:          t.ID,
		Title:           t.Title,
		Assessment:      a,
		DueDate:         t.DueDate,
		Priority:        t.Priority,
		EffortScore:     t.EffortScore,
		Recommendations: risk.Recommendations(t, a),
	}
	if t.Status != nil {
		name := t.Status.Name
		in.CurrentStatus = &name
	}
	return in, nil
}

func (s *service) projectName(ctx context.Context, tx database.DataStore, cache map[int]string, projectID int) (string, error) {
	if name, ok := cache[projectID]; ok {
		return name, nil
	}
	p, err := tx.GetProject(ctx, projectID)
	if err != nil {
		return "", err
	}
	cache[projectID] = p.Name
	return p.Name, nil
}

func (s *service) publish(ctx context.Context, e events.Event) {
	if err := events.PublishWithRetry(ctx, s.eventClient, e, 3); err != nil {
		slog.Warn("failed to publish deadline event", "event_type", e.Type, "error", err)
	}
}
