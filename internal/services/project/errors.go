package project

import (
	"fmt"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/models"
)

// Domain errors for project service
var (
	// Validation errors
	ErrEmptyName        = fmt.Errorf("%w: project name cannot be empty", models.ErrValidation)
	ErrNameTooLong      = fmt.Errorf("%w: project name cannot exceed 100 characters", models.ErrValidation)
	ErrInvalidProjectID = fmt.Errorf("%w: invalid project ID", models.ErrValidation)
	ErrInvalidUserID    = fmt.Errorf("%w: invalid user ID", models.ErrValidation)
	ErrInactiveUser     = fmt.Errorf("%w: inactive users cannot join a team", models.ErrValidation)
)
