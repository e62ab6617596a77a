package task

import (
	"fmt"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/models"
)

// Task-related errors. All of them match models.ErrValidation.
var (
	// Field validation errors
	ErrEmptyTitle       = fmt.Errorf("%w: task title cannot be empty", models.ErrValidation)
	ErrTitleTooLong     = fmt.Errorf("%w: task title cannot exceed 255 characters", models.ErrValidation)
	ErrInvalidTaskID    = fmt.Errorf("%w: invalid task ID", models.ErrValidation)
	ErrInvalidProjectID = fmt.Errorf("%w: invalid project ID", models.ErrValidation)
	ErrInvalidEffort    = fmt.Errorf("%w: effort score must be between 1 and 5", models.ErrValidation)
	ErrInvalidImpact    = fmt.Errorf("%w: impact score must be between 1 and 5", models.ErrValidation)

	// Reference errors
	ErrStatusNotInProject = fmt.Errorf("%w: status does not belong to the task's project", models.ErrValidation)
	ErrUnknownAssignee    = fmt.Errorf("%w: assignee does not exist", models.ErrValidation)

	// Dependency graph errors
	ErrSelfReference      = fmt.Errorf("%w: task cannot depend on itself", models.ErrValidation)
	ErrUnknownDependency  = fmt.Errorf("%w: referenced task does not exist", models.ErrValidation)
	ErrCrossProject       = fmt.Errorf("%w: referenced task belongs to another project", models.ErrValidation)
	ErrCircularDependency = fmt.Errorf("%w: dependency update would create a cycle", models.ErrValidation)
)
