package notification

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/cli"
	notificationservice "github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/services/notification"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/testutil"
	clitest "github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/testutil/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, s notificationservice.Service, userID int, priorities ...string) []int {
	t.Helper()
	ids := make([]int, 0, len(priorities))
	for i, p := range priorities {
		n, err := s.Create(context.Background(), notificationservice.CreateRequest{
			UserID:   userID,
			Title:    "Note " + strconv.Itoa(i),
			Priority: p,
		})
		require.NoError(t, err)
		ids = append(ids, n.ID)
	}
	return ids
}

func TestListAndRead(t *testing.T) {
	repo, app := clitest.SetupCLITest(t)
	userID := testutil.CreateTestUser(t, repo, "reader@example.com")
	uid := strconv.Itoa(userID)
	ids := seed(t, app.NotificationService, userID, "low", "high", "critical")

	output, err := clitest.ExecuteCLICommand(t, app, ListCmd(), []string{"--user", uid, "--limit", "2", "--json"})
	require.NoError(t, err)
	data := testutil.ParseJSON(t, output)["data"].(map[string]any)
	assert.Len(t, data["notifications"], 2)
	assert.EqualValues(t, 3, data["total_count"])
	assert.Equal(t, true, data["has_more"])

	output, err = clitest.ExecuteCLICommand(t, app, ListCmd(), []string{"--user", uid, "--priority", "high", "--quiet"})
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(ids[1]), strings.TrimSpace(output))

	output, err = clitest.ExecuteCLICommand(t, app, ReadCmd(), []string{strconv.Itoa(ids[0]), "--quiet"})
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(ids[0]), strings.TrimSpace(output))

	output, err = clitest.ExecuteCLICommand(t, app, ListCmd(), []string{"--user", uid, "--unread"})
	require.NoError(t, err)
	assert.Contains(t, output, "2 shown, 2 total, 2 unread")

	_, err = clitest.ExecuteCLICommand(t, app, ReadCmd(), []string{"999", "--json"})
	assert.Equal(t, cli.ExitNotFound, cli.ExitCodeFor(err))

	_, err = clitest.ExecuteCLICommand(t, app, ListCmd(), []string{"--user", uid, "--type", "gossip", "--json"})
	assert.Equal(t, cli.ExitValidation, cli.ExitCodeFor(err))
}

func TestReadAllAndStats(t *testing.T) {
	repo, app := clitest.SetupCLITest(t)
	userID := testutil.CreateTestUser(t, repo, "reader@example.com")
	uid := strconv.Itoa(userID)
	seed(t, app.NotificationService, userID, "medium", "medium")

	output, err := clitest.ExecuteCLICommand(t, app, StatsCmd(), []string{"--user", uid, "--quiet"})
	require.NoError(t, err)
	assert.Equal(t, "2", strings.TrimSpace(output))

	output, err = clitest.ExecuteCLICommand(t, app, ReadAllCmd(), []string{"--user", uid, "--quiet"})
	require.NoError(t, err)
	assert.Equal(t, "2", strings.TrimSpace(output))

	output, err = clitest.ExecuteCLICommand(t, app, StatsCmd(), []string{"--user", uid, "--json"})
	require.NoError(t, err)
	data := testutil.ParseJSON(t, output)["data"].(map[string]any)
	assert.EqualValues(t, 2, data["total"])
	assert.EqualValues(t, 0, data["unread"])
	assert.EqualValues(t, 2, data["recent_week"])

	output, err = clitest.ExecuteCLICommand(t, app, StatsCmd(), []string{"--user", uid})
	require.NoError(t, err)
	assert.Contains(t, output, "Last 30 days")

	_, err = clitest.ExecuteCLICommand(t, app, StatsCmd(), []string{"--user", "0", "--json"})
	assert.Equal(t, cli.ExitValidation, cli.ExitCodeFor(err))
}
