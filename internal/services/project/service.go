package project

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/database"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/models"
)

// DefaultStatuses seeds every new project's workflow. The first one is the default.
var DefaultStatuses = []struct {
	Name  string
	Color string
}{
	{"To-Do", "#6B7280"},
	{"In Progress", "#3B82F6"},
	{"Review", "#A855F7"},
	{"Done", "#22C55E"},
}

// Service defines all project-related business operations
type Service interface {
	// Read operations
	ListProjects(ctx context.Context) ([]*models.Project, error)
	GetProject(ctx context.Context, id int) (*models.Project, error)
	ListMembers(ctx context.Context, projectID int) ([]int, error)

	// Write operations
	CreateProject(ctx context.Context, req CreateProjectRequest) (*models.Project, error)
	AddMember(ctx context.Context, projectID, userID int) error
}

// CreateProjectRequest encapsulates data for creating a project
type CreateProjectRequest struct {
	Name        string
	Description string
	CreatedBy   *int

	// SkipDefaultStatuses leaves the workflow empty
	SkipDefaultStatuses bool
}

type service struct {
	repo database.DataStore
	now  func() time.Time
}

// NewService creates a new project service. A nil clock means time.Now.
func NewService(repo database.DataStore, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	return &service{repo: repo, now: now}
}

// ListProjects retrieves all projects
func (s *service) ListProjects(ctx context.Context) ([]*models.Project, error) {
	return s.repo.ListProjects(ctx)
}

// GetProject retrieves a specific project
func (s *service) GetProject(ctx context.Context, id int) (*models.Project, error) {
	if id <= 0 {
		return nil, ErrInvalidProjectID
	}
	return s.repo.GetProject(ctx, id)
}

// ListMembers returns the user ids on a project's team
func (s *service) ListMembers(ctx context.Context, projectID int) ([]int, error) {
	if _, err := s.GetProject(ctx, projectID); err != nil {
		return nil, err
	}
	return s.repo.ListMemberIDs(ctx, projectID)
}

// CreateProject creates a project, its creator's membership and the default workflow
// in one transaction
func (s *service) CreateProject(ctx context.Context, req CreateProjectRequest) (*models.Project, error) {
	if err := validateCreateProject(req); err != nil {
		return nil, err
	}

	var created *models.Project
	err := s.repo.WithTx(ctx, func(tx database.DataStore) error {
		if req.CreatedBy != nil {
			if _, err := tx.GetUser(ctx, *req.CreatedBy); err != nil {
				return err
			}
		}

		p, err := tx.CreateProject(ctx, &models.Project{
			Name:        req.Name,
			Description: req.Description,
			CreatedBy:   req.CreatedBy,
			CreatedAt:   s.now().UTC(),
		})
		if err != nil {
			return fmt.Errorf("failed to create project: %w", err)
		}

		if req.CreatedBy != nil {
			if err := tx.AddTeamMember(ctx, p.ID, *req.CreatedBy); err != nil {
				return fmt.Errorf("failed to add creator to team: %w", err)
			}
		}

		if !req.SkipDefaultStatuses {
			for i, st := range DefaultStatuses {
				if _, err := tx.CreateStatus(ctx, &models.Status{
					ProjectID: p.ID,
					Name:      st.Name,
					Color:     st.Color,
					Position:  i,
					IsDefault: i == 0,
				}); err != nil {
					return fmt.Errorf("failed to create status %q: %w", st.Name, err)
				}
			}
		}

		created = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Debug("project created", "project_id", created.ID, "name", created.Name)
	return created, nil
}

// AddMember adds an active user to a project team. Adding an existing member is a no-op.
func (s *service) AddMember(ctx context.Context, projectID, userID int) error {
	if projectID <= 0 {
		return ErrInvalidProjectID
	}
	if userID <= 0 {
		return ErrInvalidUserID
	}

	if _, err := s.repo.GetProject(ctx, projectID); err != nil {
		return err
	}
	u, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if !u.Active {
		return ErrInactiveUser
	}

	if err := s.repo.AddTeamMember(ctx, projectID, userID); err != nil {
		return fmt.Errorf("failed to add team member: %w", err)
	}
	slog.Debug("team member added", "project_id", projectID, "user_id", userID)
	return nil
}

// validateCreateProject validates a CreateProjectRequest
func validateCreateProject(req CreateProjectRequest) error {
	if req.Name == "" {
		return ErrEmptyName
	}
	if len(req.Name) > 100 {
		return ErrNameTooLong
	}
	return nil
}
