package cli

import (
	"testing"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/app"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/database"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/testutil"
)

// SetupCLITest creates an in-memory DB and returns both the repository and App instance
// This function is only for CLI tests and is isolated in a separate package
// to avoid import cycles when service tests import testutil
func SetupCLITest(t *testing.T) (*database.Repository, *app.App) {
	t.Helper()
	repo := testutil.SetupTestDB(t)

	// EventPublisher is nil - event publishing is tested elsewhere
	appInstance := app.New(repo, app.WithClock(testutil.FixedClock(testutil.Now)))

	return repo, appInstance
}
