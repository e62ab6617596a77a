package status

import (
	"fmt"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/models"
)

// Status-related errors
var (
	ErrEmptyName        = fmt.Errorf("%w: name cannot be empty", models.ErrValidation)
	ErrNameTooLong      = fmt.Errorf("%w: name cannot exceed 50 characters", models.ErrValidation)
	ErrInvalidColor     = fmt.Errorf("%w: color must look like #RRGGBB", models.ErrValidation)
	ErrInvalidProjectID = fmt.Errorf("%w: invalid project ID", models.ErrValidation)
	ErrInvalidStatusID  = fmt.Errorf("%w: invalid status ID", models.ErrValidation)
	ErrDuplicateName    = fmt.Errorf("%w: a status with this name already exists in the project", models.ErrValidation)
	ErrInvalidPosition  = fmt.Errorf("%w: position cannot be negative", models.ErrValidation)
	ErrStatusInUse      = fmt.Errorf("%w: status is in use", models.ErrValidation)
	ErrWrongProject     = fmt.Errorf("%w: status does not belong to the project", models.ErrValidation)
)
