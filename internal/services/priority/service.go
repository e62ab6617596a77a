// Package priority recomputes and explains task priority scores.
package priority

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/database"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/events"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/models"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/scoring"
)

// Service exposes the priority scoring engine to callers
type Service interface {
	RecomputePriority(ctx context.Context, taskID int) (*Change, error)
	RecomputeProjectPriorities(ctx context.Context, projectID int) (*ProjectRecompute, error)
	GetPriorityInsights(ctx context.Context, taskID int) (*Insights, error)
	Weights() scoring.Weights
}

// Change is the before/after of one task's derived priority fields
type Change struct {
	TaskID      int     `json:"task_id"`
	Title       string  `json:"title"`
	OldScore    float64 `json:"old_score"`
	NewScore    float64 `json:"new_score"`
	OldPriority string  `json:"old_priority"`
	NewPriority string  `json:"new_priority"`
	Changed     bool    `json:"changed"`
	Error       string  `json:"error,omitempty"`
}

// ProjectRecompute reports a project-wide recompute. Failed tasks carry an Error
// and do not stop the remaining tasks.
type ProjectRecompute struct {
	ProjectID int      `json:"project_id"`
	Results   []Change `json:"results"`
	Updated   int      `json:"updated"`
	Unchanged int      `json:"unchanged"`
	Failed    int      `json:"failed"`
}

// Insights is the full score breakdown of one task. The breakdown is computed
// fresh; StoredScore and StoredPriority are what the task row currently holds.
type Insights struct {
	TaskID int    `json:"task_id"`
	Title  string `json:"title"`
	scoring.Breakdown
	StoredScore    float64 `json:"stored_score"`
	StoredPriority string  `json:"stored_priority"`
	BlockingTasks  int     `json:"blocking_tasks"`
	BlockedByTasks int     `json:"blocked_by_tasks"`
}

type service struct {
	repo        database.TaskRepository
	projects    database.ProjectRepository
	engine      *scoring.Engine
	eventClient events.EventPublisher
}

// NewService creates a priority service
func NewService(repo database.DataStore, engine *scoring.Engine, eventClient events.EventPublisher) Service {
	return &service{
		repo:        repo,
		projects:    repo,
		engine:      engine,
		eventClient: eventClient,
	}
}

func (s *service) Weights() scoring.Weights {
	return s.engine.Weights()
}

// RecomputePriority rescores one task and writes the score and label only when they changed
func (s *service) RecomputePriority(ctx context.Context, taskID int) (*Change, error) {
	if taskID <= 0 {
		return nil, ErrInvalidTaskID
	}
	t, err := s.repo.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	change, err := s.recompute(ctx, t)
	if err != nil {
		return nil, err
	}
	return &change, nil
}

// RecomputeProjectPriorities rescores every task of a project. Each task is written
// on its own so one failure leaves the others intact.
func (s *service) RecomputeProjectPriorities(ctx context.Context, projectID int) (*ProjectRecompute, error) {
	if projectID <= 0 {
		return nil, ErrInvalidProjectID
	}
	if _, err := s.projects.GetProject(ctx, projectID); err != nil {
		return nil, err
	}
	tasks, err := s.repo.ListTasksByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	out := &ProjectRecompute{ProjectID: projectID, Results: make([]Change, 0, len(tasks))}
	for _, t := range tasks {
		change, err := s.recompute(ctx, t)
		switch {
		case err != nil:
			change.Error = err.Error()
			out.Failed++
			slog.Warn("priority recompute failed",
				"task_id", t.ID,
				"project_id", projectID,
				"error", err)
		case change.Changed:
			out.Updated++
		default:
			out.Unchanged++
		}
		out.Results = append(out.Results, change)
	}

	slog.Debug("project priorities recomputed",
		"project_id", projectID,
		"updated", out.Updated,
		"failed", out.Failed)
	return out, nil
}

// GetPriorityInsights explains how a task's priority is composed
func (s *service) GetPriorityInsights(ctx context.Context, taskID int) (*Insights, error) {
	if taskID <= 0 {
		return nil, ErrInvalidTaskID
	}
	t, err := s.repo.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	return &Insights{
		TaskID:         t.ID,
		Title:          t.Title,
		Breakdown:      s.engine.Breakdown(t),
		StoredScore:    t.PriorityScore,
		StoredPriority: t.Priority,
		BlockingTasks:  len(t.DependencyMap),
		BlockedByTasks: len(t.BlockedBy),
	}, nil
}

func (s *service) recompute(ctx context.Context, t *models.Task) (Change, error) {
	change := Change{
		TaskID:      t.ID,
		Title:       t.Title,
		OldScore:    t.PriorityScore,
		OldPriority: t.Priority,
	}
	change.Changed = s.engine.Apply(t)
	change.NewScore = t.PriorityScore
	change.NewPriority = t.Priority

	if !change.Changed {
		return change, nil
	}
	if err := s.repo.UpdateTaskPriority(ctx, t.ID, t.PriorityScore, t.Priority); err != nil {
		return change, fmt.Errorf("failed to save priority of task %d: %w", t.ID, err)
	}

	slog.Debug("priority recomputed",
		"task_id", t.ID,
		"old_score", change.OldScore,
		"new_score", change.NewScore,
		"priority", change.NewPriority)

	if err := events.PublishWithRetry(ctx, s.eventClient, events.Event{
		Type:      events.EventPriorityChanged,
		ProjectID: t.ProjectID,
		TaskID:    t.ID,
		Detail:    change.NewPriority,
	}, 3); err != nil {
		slog.Warn("failed to publish priority event", "task_id", t.ID, "error", err)
	}
	return change, nil
}
