package user

import (
	"fmt"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/models"
)

var (
	ErrInvalidEmail  = fmt.Errorf("%w: email address is invalid", models.ErrValidation)
	ErrInvalidUserID = fmt.Errorf("%w: invalid user ID", models.ErrValidation)
)
