package analytics

import (
	"fmt"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/models"
)

var ErrInvalidProjectID = fmt.Errorf("%w: invalid project ID", models.ErrValidation)
