package deadline

import (
	"fmt"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/models"
)

var ErrInvalidTaskID = fmt.Errorf("%w: invalid task ID", models.ErrValidation)
