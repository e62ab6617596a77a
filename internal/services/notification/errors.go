package notification

import (
	"fmt"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/models"
)

var (
	ErrInvalidUserID         = fmt.Errorf("%w: invalid user ID", models.ErrValidation)
	ErrInvalidNotificationID = fmt.Errorf("%w: invalid notification ID", models.ErrValidation)
	ErrInvalidPaging         = fmt.Errorf("%w: limit and offset cannot be negative", models.ErrValidation)
	ErrUnknownType           = fmt.Errorf("%w: unknown notification type", models.ErrValidation)
	ErrEmptyTitle            = fmt.Errorf("%w: notification title cannot be empty", models.ErrValidation)
)
