package status

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/database"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/models"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/risk"
)

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Service defines all status-related business operations
type Service interface {
	// Read operations
	ListStatuses(ctx context.Context, projectID int) ([]*models.Status, error)
	GetStatus(ctx context.Context, id int) (*models.Status, error)

	// Write operations
	CreateStatus(ctx context.Context, req CreateStatusRequest) (*models.Status, error)
	SetDefault(ctx context.Context, projectID, statusID int) error
	UpdateStatus(ctx context.Context, req UpdateStatusRequest) (*models.Status, error)
	DeleteStatus(ctx context.Context, statusID int, force bool) (int, error)
}

// UpdateStatusRequest encapsulates a partial status edit. Nil fields are left unchanged.
type UpdateStatusRequest struct {
	StatusID    int
	Name        *string
	Description *string
	Color       *string
	Position    *int
	IsDefault   *bool
}

// CreateStatusRequest encapsulates data for creating a status
type CreateStatusRequest struct {
	ProjectID   int
	Name        string
	Description string
	Color       string // Optional: empty means models.DefaultStatusColor
	Position    *int   // Optional: nil appends after the last status
	IsDefault   bool
}

// StatusView is a status with its estimated progress and done flag
type StatusView struct {
	*models.Status
	Progress float64 `json:"progress"`
	IsDone   bool    `json:"is_done"`
}

type service struct {
	repo      database.DataStore
	estimator *risk.Estimator
}

// NewService creates a new status service
func NewService(repo database.DataStore, estimator *risk.Estimator) Service {
	if estimator == nil {
		estimator = risk.NewEstimator(risk.DefaultProgressConfig())
	}
	return &service{repo: repo, estimator: estimator}
}

// Describe annotates statuses with the progress the risk analyzer will assume for them
func Describe(estimator *risk.Estimator, statuses []*models.Status) []StatusView {
	views := make([]StatusView, 0, len(statuses))
	for _, s := range statuses {
		views = append(views, StatusView{
			Status:   s,
			Progress: estimator.ForName(s.Name),
			IsDone:   risk.IsDoneStatus(s.Name),
		})
	}
	return views
}

// ListStatuses retrieves a project's workflow ordered by position
func (s *service) ListStatuses(ctx context.Context, projectID int) ([]*models.Status, error) {
	if projectID <= 0 {
		return nil, ErrInvalidProjectID
	}
	if _, err := s.repo.GetProject(ctx, projectID); err != nil {
		return nil, err
	}
	return s.repo.ListStatuses(ctx, projectID)
}

// GetStatus retrieves a specific status
func (s *service) GetStatus(ctx context.Context, id int) (*models.Status, error) {
	if id <= 0 {
		return nil, ErrInvalidStatusID
	}
	return s.repo.GetStatus(ctx, id)
}

// CreateStatus creates a status. A new default replaces the previous default.
func (s *service) CreateStatus(ctx context.Context, req CreateStatusRequest) (*models.Status, error) {
	if err := validateCreateStatus(&req); err != nil {
		return nil, err
	}

	var created *models.Status
	err := s.repo.WithTx(ctx, func(tx database.DataStore) error {
		if _, err := tx.GetProject(ctx, req.ProjectID); err != nil {
			return err
		}
		existing, err := tx.ListStatuses(ctx, req.ProjectID)
		if err != nil {
			return err
		}
		for _, st := range existing {
			if strings.EqualFold(st.Name, req.Name) {
				return ErrDuplicateName
			}
		}

		position := len(existing)
		if req.Position != nil {
			position = *req.Position
		}

		created, err = tx.CreateStatus(ctx, &models.Status{
			ProjectID:   req.ProjectID,
			Name:        req.Name,
			Description: req.Description,
			Color:       req.Color,
			Position:    position,
			IsDefault:   req.IsDefault,
		})
		if err != nil {
			return fmt.Errorf("failed to create status: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Debug("status created",
		"status_id", created.ID,
		"project_id", created.ProjectID,
		"is_default", created.IsDefault)
	return created, nil
}

// SetDefault makes statusID the project's only default status
func (s *service) SetDefault(ctx context.Context, projectID, statusID int) error {
	if projectID <= 0 {
		return ErrInvalidProjectID
	}
	if statusID <= 0 {
		return ErrInvalidStatusID
	}

	return s.repo.WithTx(ctx, func(tx database.DataStore) error {
		st, err := tx.GetStatus(ctx, statusID)
		if err != nil {
			return err
		}
		if st.ProjectID != projectID {
			return ErrWrongProject
		}
		return tx.SetDefaultStatus(ctx, projectID, statusID)
	})
}

// UpdateStatus edits a status. Renaming changes the progress the risk
// analyzer assumes for every task in it.
func (s *service) UpdateStatus(ctx context.Context, req UpdateStatusRequest) (*models.Status, error) {
	if req.StatusID <= 0 {
		return nil, ErrInvalidStatusID
	}

	var updated *models.Status
	err := s.repo.WithTx(ctx, func(tx database.DataStore) error {
		st, err := tx.GetStatus(ctx, req.StatusID)
		if err != nil {
			return err
		}

		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if err := validateName(name); err != nil {
				return err
			}
			if !strings.EqualFold(name, st.Name) {
				siblings, err := tx.ListStatuses(ctx, st.ProjectID)
				if err != nil {
					return err
				}
				for _, other := range siblings {
					if other.ID != st.ID && strings.EqualFold(other.Name, name) {
						return ErrDuplicateName
					}
				}
			}
			st.Name = name
		}
		if req.Description != nil {
			st.Description = *req.Description
		}
		if req.Color != nil {
			if !colorPattern.MatchString(*req.Color) {
				return ErrInvalidColor
			}
			st.Color = *req.Color
		}
		if req.Position != nil {
			if *req.Position < 0 {
				return ErrInvalidPosition
			}
			st.Position = *req.Position
		}
		if req.IsDefault != nil {
			st.IsDefault = *req.IsDefault
		}

		if err := tx.UpdateStatus(ctx, st); err != nil {
			return err
		}
		updated = st
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Debug("status updated", "status_id", updated.ID, "name", updated.Name)
	return updated, nil
}

// DeleteStatus removes a status and returns how many tasks lost it. A status
// still holding tasks is only removed with force.
func (s *service) DeleteStatus(ctx context.Context, statusID int, force bool) (int, error) {
	if statusID <= 0 {
		return 0, ErrInvalidStatusID
	}

	var detached int
	err := s.repo.WithTx(ctx, func(tx database.DataStore) error {
		if _, err := tx.GetStatus(ctx, statusID); err != nil {
			return err
		}
		n, err := tx.CountTasksWithStatus(ctx, statusID)
		if err != nil {
			return err
		}
		if n > 0 && !force {
			return fmt.Errorf("%w: %d task(s) still use it, reassign them first", ErrStatusInUse, n)
		}
		detached = n
		return tx.DeleteStatus(ctx, statusID)
	})
	if err != nil {
		return 0, err
	}

	slog.Debug("status deleted", "status_id", statusID, "detached_tasks", detached)
	return detached, nil
}

func validateName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if len(name) > 50 {
		return ErrNameTooLong
	}
	return nil
}

// validateCreateStatus validates req and fills in defaults
func validateCreateStatus(req *CreateStatusRequest) error {
	if req.ProjectID <= 0 {
		return ErrInvalidProjectID
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := validateName(req.Name); err != nil {
		return err
	}
	if req.Color == "" {
		req.Color = models.DefaultStatusColor
	}
	if !colorPattern.MatchString(req.Color) {
		return ErrInvalidColor
	}
	return nil
}
