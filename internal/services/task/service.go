package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/database"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/depgraph"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/events"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/models"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/scoring"
)

// Service defines all task-related business operations
type Service interface {
	// Read operations
	GetTask(ctx context.Context, taskID int) (*models.Task, error)
	ListTasksByProject(ctx context.Context, projectID int) ([]*models.Task, error)

	// Write operations
	CreateTask(ctx context.Context, req CreateTaskRequest) (*Result, error)
	UpdateTask(ctx context.Context, req UpdateTaskRequest) (*Result, error)
	DeleteTask(ctx context.Context, taskID int) (*GraphUpdate, error)

	// Dependency edits
	SetDependencyMap(ctx context.Context, taskID int, ids []int) (*Result, error)
	SetBlockedBy(ctx context.Context, taskID int, ids []int) (*Result, error)
}

// CreateTaskRequest encapsulates all data needed to create a task
type CreateTaskRequest struct {
	ProjectID     int
	Title         string
	Description   string
	DueDate       *models.Date
	StatusID      *int // Optional: nil means the project's default status
	EffortScore   int  // Optional: 0 means 3
	ImpactScore   int  // Optional: 0 means 3
	DependencyMap []int
	BlockedBy     []int
	AssignedTo    *int
}

// UpdateTaskRequest encapsulates all data needed to update a task.
// Nil fields are left unchanged; the Clear flags null out optional references.
type UpdateTaskRequest struct {
	TaskID        int
	Title         *string
	Description   *string
	DueDate       *models.Date
	ClearDueDate  bool
	StatusID      *int
	ClearStatus   bool
	EffortScore   *int
	ImpactScore   *int
	AssignedTo    *int
	ClearAssignee bool
	DependencyMap *[]int
	BlockedBy     *[]int
}

// GraphUpdate describes the edge changes of one edit and every task rescored because of it
type GraphUpdate struct {
	TaskID        int            `json:"task_id"`
	DependencyMap depgraph.Delta `json:"dependency_map"`
	BlockedBy     depgraph.Delta `json:"blocked_by"`
	Rescored      []int          `json:"rescored"`
}

// Result is the outcome of a create or update
type Result struct {
	Task  *models.Task `json:"task"`
	Graph GraphUpdate  `json:"graph"`
}

// service implements Service interface
type service struct {
	repo         database.DataStore
	engine       *scoring.Engine
	eventClient  events.EventPublisher
	checker      RiskChecker
	detectCycles bool
	now          func() time.Time
}

// NewService creates a new task service
func NewService(repo database.DataStore, engine *scoring.Engine, eventClient events.EventPublisher, opts ...Option) Service {
	s := &service{
		repo:         repo,
		engine:       engine,
		eventClient:  eventClient,
		detectCycles: true,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetTask retrieves a task with its status
func (s *service) GetTask(ctx context.Context, taskID int) (*models.Task, error) {
	if taskID <= 0 {
		return nil, ErrInvalidTaskID
	}
	return s.repo.GetTask(ctx, taskID)
}

// ListTasksByProject retrieves every task of a project
func (s *service) ListTasksByProject(ctx context.Context, projectID int) ([]*models.Task, error) {
	if projectID <= 0 {
		return nil, ErrInvalidProjectID
	}
	if _, err := s.repo.GetProject(ctx, projectID); err != nil {
		return nil, err
	}
	return s.repo.ListTasksByProject(ctx, projectID)
}

// CreateTask inserts a task, mirrors its edges onto its neighbours and scores
// everything touched, all in one transaction
func (s *service) CreateTask(ctx context.Context, req CreateTaskRequest) (*Result, error) {
	if err := validateCreateTask(&req); err != nil {
		return nil, err
	}

	var (
		update  GraphUpdate
		changed []*models.Task
		taskID  int
	)
	err := s.repo.WithTx(ctx, func(tx database.DataStore) error {
		if _, err := tx.GetProject(ctx, req.ProjectID); err != nil {
			return err
		}
		statusID, err := s.resolveStatus(ctx, tx, req.ProjectID, req.StatusID)
		if err != nil {
			return err
		}
		if err := s.checkAssignee(ctx, tx, req.AssignedTo); err != nil {
			return err
		}

		now := s.now().UTC()
		t := &models.Task{
			ProjectID:     req.ProjectID,
			Title:         req.Title,
			Description:   req.Description,
			DueDate:       req.DueDate,
			StatusID:      statusID,
			EffortScore:   req.EffortScore,
			ImpactScore:   req.ImpactScore,
			DependencyMap: []int{},
			BlockedBy:     []int{},
			AssignedTo:    req.AssignedTo,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		s.engine.Apply(t)

		created, err := tx.CreateTask(ctx, t)
		if err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}
		taskID = created.ID

		update, changed, err = s.save(ctx, tx, created, req.DependencyMap, req.BlockedBy, true)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publishPriorityChanges(ctx, changed)
	return s.result(ctx, taskID, update)
}

// UpdateTask applies the requested field and edge changes in one transaction,
// then runs a deadline check on the task
func (s *service) UpdateTask(ctx context.Context, req UpdateTaskRequest) (*Result, error) {
	if err := validateUpdateTask(&req); err != nil {
		return nil, err
	}

	var (
		update  GraphUpdate
		changed []*models.Task
	)
	err := s.repo.WithTx(ctx, func(tx database.DataStore) error {
		t, err := tx.GetTask(ctx, req.TaskID)
		if err != nil {
			return err
		}
		if err := s.applyFields(ctx, tx, t, req); err != nil {
			return err
		}

		deps, blocked := t.DependencyMap, t.BlockedBy
		if req.DependencyMap != nil {
			deps = *req.DependencyMap
		}
		if req.BlockedBy != nil {
			blocked = *req.BlockedBy
		}

		update, changed, err = s.save(ctx, tx, t, deps, blocked, false)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publishPriorityChanges(ctx, changed)
	s.checkRisk(ctx, req.TaskID)
	return s.result(ctx, req.TaskID, update)
}

// SetDependencyMap replaces the set of tasks blocked by taskID
func (s *service) SetDependencyMap(ctx context.Context, taskID int, ids []int) (*Result, error) {
	if ids == nil {
		ids = []int{}
	}
	return s.UpdateTask(ctx, UpdateTaskRequest{TaskID: taskID, DependencyMap: &ids})
}

// SetBlockedBy replaces the set of tasks blocking taskID
func (s *service) SetBlockedBy(ctx context.Context, taskID int, ids []int) (*Result, error) {
	if ids == nil {
		ids = []int{}
	}
	return s.UpdateTask(ctx, UpdateTaskRequest{TaskID: taskID, BlockedBy: &ids})
}

// DeleteTask detaches a task from its neighbours, rescoring them, then deletes it
func (s *service) DeleteTask(ctx context.Context, taskID int) (*GraphUpdate, error) {
	if taskID <= 0 {
		return nil, ErrInvalidTaskID
	}

	var (
		update  GraphUpdate
		changed []*models.Task
	)
	err := s.repo.WithTx(ctx, func(tx database.DataStore) error {
		t, err := tx.GetTask(ctx, taskID)
		if err != nil {
			return err
		}
		edit, err := s.prepareEdges(ctx, tx, t, nil, nil)
		if err != nil {
			return err
		}
		now := s.now().UTC()
		for _, n := range edit.neighbours {
			if s.engine.Apply(n) {
				changed = append(changed, n)
			}
			n.UpdatedAt = now
			if err := tx.UpdateTask(ctx, n); err != nil {
				return fmt.Errorf("failed to update neighbour %d: %w", n.ID, err)
			}
		}
		update = edit.update
		if err := tx.DeleteTask(ctx, taskID); err != nil {
			return fmt.Errorf("failed to delete task: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishPriorityChanges(ctx, changed)
	slog.Debug("task deleted", "task_id", taskID, "neighbours_rescored", len(update.Rescored))
	return &update, nil
}

// save mirrors the edge changes of t onto its neighbours, rescores every task
// whose adjacency changed and writes them all. It returns the tasks whose
// priority label or score moved.
func (s *service) save(ctx context.Context, tx database.DataStore, t *models.Task, deps, blocked []int, created bool) (GraphUpdate, []*models.Task, error) {
	edit, err := s.prepareEdges(ctx, tx, t, deps, blocked)
	if err != nil {
		return GraphUpdate{}, nil, err
	}

	now := s.now().UTC()
	var changed []*models.Task

	if s.engine.Apply(t) || created {
		changed = append(changed, t)
	}
	t.UpdatedAt = now
	if err := tx.UpdateTask(ctx, t); err != nil {
		return GraphUpdate{}, nil, fmt.Errorf("failed to update task: %w", err)
	}

	for _, n := range edit.neighbours {
		if s.engine.Apply(n) {
			changed = append(changed, n)
		}
		n.UpdatedAt = now
		if err := tx.UpdateTask(ctx, n); err != nil {
			return GraphUpdate{}, nil, fmt.Errorf("failed to update neighbour %d: %w", n.ID, err)
		}
	}

	edit.update.Rescored = append([]int{t.ID}, edit.update.Rescored...)
	return edit.update, changed, nil
}

// applyFields copies the requested scalar changes onto t
func (s *service) applyFields(ctx context.Context, tx database.DataStore, t *models.Task, req UpdateTaskRequest) error {
	if req.Title != nil {
		t.Title = *req.Title
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	switch {
	case req.ClearDueDate:
		t.DueDate = nil
	case req.DueDate != nil:
		d := *req.DueDate
		t.DueDate = &d
	}
	switch {
	case req.ClearStatus:
		t.StatusID, t.Status = nil, nil
	case req.StatusID != nil:
		st, err := s.statusInProject(ctx, tx, t.ProjectID, *req.StatusID)
		if err != nil {
			return err
		}
		t.StatusID, t.Status = &st.ID, st
	}
	if req.EffortScore != nil {
		t.EffortScore = *req.EffortScore
	}
	if req.ImpactScore != nil {
		t.ImpactScore = *req.ImpactScore
	}
	switch {
	case req.ClearAssignee:
		t.AssignedTo = nil
	case req.AssignedTo != nil:
		if err := s.checkAssignee(ctx, tx, req.AssignedTo); err != nil {
			return err
		}
		id := *req.AssignedTo
		t.AssignedTo = &id
	}
	return nil
}

// resolveStatus validates an explicit status or falls back to the project default
func (s *service) resolveStatus(ctx context.Context, tx database.DataStore, projectID int, statusID *int) (*int, error) {
	if statusID != nil {
		st, err := s.statusInProject(ctx, tx, projectID, *statusID)
		if err != nil {
			return nil, err
		}
		return &st.ID, nil
	}
	def, err := tx.GetDefaultStatus(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if def == nil {
		return nil, nil
	}
	return &def.ID, nil
}

func (s *service) statusInProject(ctx context.Context, tx database.DataStore, projectID, statusID int) (*models.Status, error) {
	st, err := tx.GetStatus(ctx, statusID)
	if errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("%w: status %d", ErrStatusNotInProject, statusID)
	}
	if err != nil {
		return nil, err
	}
	if st.ProjectID != projectID {
		return nil, fmt.Errorf("%w: status %d", ErrStatusNotInProject, statusID)
	}
	return st, nil
}

func (s *service) checkAssignee(ctx context.Context, tx database.DataStore, userID *int) error {
	if userID == nil {
		return nil
	}
	_, err := tx.GetUser(ctx, *userID)
	if errors.Is(err, models.ErrNotFound) {
		return fmt.Errorf("%w: user %d", ErrUnknownAssignee, *userID)
	}
	return err
}

// result reloads the task after commit so its status join is current
func (s *service) result(ctx context.Context, taskID int, update GraphUpdate) (*Result, error) {
	t, err := s.repo.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	return &Result{Task: t, Graph: update}, nil
}

// checkRisk runs the deadline check. Failures are logged; the update already committed.
func (s *service) checkRisk(ctx context.Context, taskID int) {
	if s.checker == nil {
		return
	}
	res, err := s.checker.CheckTask(ctx, taskID)
	if err != nil {
		slog.Warn("deadline check after update failed", "task_id", taskID, "error", err)
		return
	}
	if res.NotificationsCreated > 0 {
		slog.Debug("deadline warning issued after update",
			"task_id", taskID,
			"risk_level", res.Assessment.Level,
			"notifications", res.NotificationsCreated)
	}
}

// publishPriorityChanges publishes one event per rescored task
func (s *service) publishPriorityChanges(ctx context.Context, tasks []*models.Task) {
	for _, t := range tasks {
		if err := events.PublishWithRetry(ctx, s.eventClient, events.Event{
			Type:      events.EventPriorityChanged,
			ProjectID: t.ProjectID,
			TaskID:    t.ID,
			Detail:    t.Priority,
		}, 3); err != nil {
			slog.Warn("failed to publish priority event", "task_id", t.ID, "error", err)
		}
	}
}

// validateCreateTask validates a CreateTaskRequest
func validateCreateTask(req *CreateTaskRequest) error {
	if req.ProjectID <= 0 {
		return ErrInvalidProjectID
	}
	req.Title = strings.TrimSpace(req.Title)
	if err := validateTitle(req.Title); err != nil {
		return err
	}
	if req.EffortScore == 0 {
		req.EffortScore = models.DefaultLevel
	}
	if req.ImpactScore == 0 {
		req.ImpactScore = models.DefaultLevel
	}
	if !validLevel(req.EffortScore) {
		return ErrInvalidEffort
	}
	if !validLevel(req.ImpactScore) {
		return ErrInvalidImpact
	}
	return nil
}

// validateUpdateTask validates an UpdateTaskRequest
func validateUpdateTask(req *UpdateTaskRequest) error {
	if req.TaskID <= 0 {
		return ErrInvalidTaskID
	}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if err := validateTitle(title); err != nil {
			return err
		}
		req.Title = &title
	}
	if req.EffortScore != nil && !validLevel(*req.EffortScore) {
		return ErrInvalidEffort
	}
	if req.ImpactScore != nil && !validLevel(*req.ImpactScore) {
		return ErrInvalidImpact
	}
	return nil
}

func validateTitle(title string) error {
	if title == "" {
		return ErrEmptyTitle
	}
	if len(title) > 255 {
		return ErrTitleTooLong
	}
	return nil
}

func validLevel(level int) bool {
	return level >= models.MinLevel && level <= models.MaxLevel
}
