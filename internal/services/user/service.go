package user

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/database"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/models"
)

// Service manages the users that tasks are assigned to and notifications are sent to
type Service interface {
	CreateUser(ctx context.Context, req CreateUserRequest) (*models.User, error)
	GetUser(ctx context.Context, id int) (*models.User, error)
}

// CreateUserRequest encapsulates data for creating a user
type CreateUserRequest struct {
	Email string
	Name  string // defaults to the local part of Email
}

type service struct {
	repo database.UserRepository
	now  func() time.Time
}

// NewService creates a new user service. A nil clock means time.Now.
func NewService(repo database.UserRepository, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	return &service{repo: repo, now: now}
}

func (s *service) CreateUser(ctx context.Context, req CreateUserRequest) (*models.User, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(req.Email))
	if err != nil {
		return nil, ErrInvalidEmail
	}
	email := strings.ToLower(addr.Address)

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = email[:strings.Index(email, "@")]
	}

	u, err := s.repo.CreateUser(ctx, &models.User{
		Email:     email,
		Name:      name,
		Active:    true,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return u, nil
}

func (s *service) GetUser(ctx context.Context, id int) (*models.User, error) {
	if id <= 0 {
		return nil, ErrInvalidUserID
	}
	return s.repo.GetUser(ctx, id)
}
