package project

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/cli"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/testutil"
	clitest "github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/testutil/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProject(t *testing.T) {
	repo, app := clitest.SetupCLITest(t)
	ctx := context.Background()
	owner := testutil.CreateTestUser(t, repo, "owner@example.com")

	t.Run("Seeds the default workflow", func(t *testing.T) {
		output, err := clitest.ExecuteCLICommand(t, app, CreateCmd(),
			[]string{"--name", "Launch", "--owner", strconv.Itoa(owner), "--quiet"})
		require.NoError(t, err)

		id, err := strconv.Atoi(strings.TrimSpace(output))
		require.NoError(t, err)

		statuses, err := repo.ListStatuses(ctx, id)
		require.NoError(t, err)
		require.Len(t, statuses, 4)
		assert.Equal(t, "To-Do", statuses[0].Name)
		assert.True(t, statuses[0].IsDefault)

		members, err := repo.ListMemberIDs(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, []int{owner}, members)
	})

	t.Run("Empty workflow", func(t *testing.T) {
		output, err := clitest.ExecuteCLICommand(t, app, CreateCmd(),
			[]string{"--name", "Bare", "--empty", "--json"})
		require.NoError(t, err)

		result := testutil.ParseJSON(t, output)
		data := result["data"].(map[string]any)
		assert.Equal(t, "Bare", data["name"])

		statuses, err := repo.ListStatuses(ctx, int(data["id"].(float64)))
		require.NoError(t, err)
		assert.Empty(t, statuses)
	})

	t.Run("Unknown owner", func(t *testing.T) {
		_, err := clitest.ExecuteCLICommand(t, app, CreateCmd(),
			[]string{"--name", "Orphan", "--owner", "404", "--json"})
		require.Error(t, err)
		assert.Equal(t, cli.ExitNotFound, cli.ExitCodeFor(err))
	})

	t.Run("Blank name", func(t *testing.T) {
		_, err := clitest.ExecuteCLICommand(t, app, CreateCmd(), []string{"--name", "", "--json"})
		require.Error(t, err)
		assert.Equal(t, cli.ExitValidation, cli.ExitCodeFor(err))
	})
}

func TestListAndShowProject(t *testing.T) {
	repo, app := clitest.SetupCLITest(t)
	projectID := testutil.CreateTestProject(t, repo, "Alpha")
	testutil.CreateTestProject(t, repo, "Beta")
	userID := testutil.CreateTestUser(t, repo, "dev@example.com")
	testutil.AddTestMember(t, repo, projectID, userID)

	output, err := clitest.ExecuteCLICommand(t, app, ListCmd(), []string{"--quiet"})
	require.NoError(t, err)
	assert.Len(t, strings.Fields(output), 2)

	output, err = clitest.ExecuteCLICommand(t, app, ShowCmd(), []string{strconv.Itoa(projectID), "--json"})
	require.NoError(t, err)
	data := testutil.ParseJSON(t, output)["data"].(map[string]any)
	assert.Equal(t, "Alpha", data["name"])
	assert.Equal(t, []any{float64(userID)}, data["members"])

	statuses := data["statuses"].([]any)
	require.Len(t, statuses, 3)
	last := statuses[2].(map[string]any)
	assert.Equal(t, "Done", last["name"])
	assert.Equal(t, true, last["is_done"])
	assert.EqualValues(t, 1, last["progress"])

	output, err = clitest.ExecuteCLICommand(t, app, ShowCmd(), []string{strconv.Itoa(projectID)})
	require.NoError(t, err)
	assert.Contains(t, output, "Alpha")
	assert.Contains(t, output, "(default)")

	_, err = clitest.ExecuteCLICommand(t, app, ShowCmd(), []string{"999", "--json"})
	require.Error(t, err)
	assert.Equal(t, cli.ExitNotFound, cli.ExitCodeFor(err))

	_, err = clitest.ExecuteCLICommand(t, app, ShowCmd(), []string{"abc", "--json"})
	require.Error(t, err)
	assert.Equal(t, cli.ExitUsage, cli.ExitCodeFor(err))
}

func TestAddMember(t *testing.T) {
	repo, app := clitest.SetupCLITest(t)
	projectID := testutil.CreateTestProject(t, repo, "Team")
	userID := testutil.CreateTestUser(t, repo, "dev@example.com")
	pid, uid := strconv.Itoa(projectID), strconv.Itoa(userID)

	_, err := clitest.ExecuteCLICommand(t, app, AddMemberCmd(), []string{pid, uid, "--quiet"})
	require.NoError(t, err)

	// adding twice is a no-op
	_, err = clitest.ExecuteCLICommand(t, app, AddMemberCmd(), []string{pid, uid, "--quiet"})
	require.NoError(t, err)

	members, err := repo.ListMemberIDs(context.Background(), projectID)
	require.NoError(t, err)
	assert.Equal(t, []int{userID}, members)

	_, err = clitest.ExecuteCLICommand(t, app, AddMemberCmd(), []string{pid, "404", "--json"})
	require.Error(t, err)
	assert.Equal(t, cli.ExitNotFound, cli.ExitCodeFor(err))
}

func TestStatusCommands(t *testing.T) {
	repo, app := clitest.SetupCLITest(t)
	ctx := context.Background()
	projectID := testutil.CreateTestProject(t, repo, "Flow")
	pid := strconv.Itoa(projectID)

	output, err := clitest.ExecuteCLICommand(t, app, StatusAddCmd(),
		[]string{pid, "--name", "Blocked", "--color", "#FF0000", "--quiet"})
	require.NoError(t, err)
	blocked, err := strconv.Atoi(strings.TrimSpace(output))
	require.NoError(t, err)

	st, err := repo.GetStatus(ctx, blocked)
	require.NoError(t, err)
	assert.Equal(t, 3, st.Position, "appended after the seeded statuses")
	assert.False(t, st.IsDefault)

	_, err = clitest.ExecuteCLICommand(t, app, StatusAddCmd(), []string{pid, "--name", "blocked", "--json"})
	require.Error(t, err)
	assert.Equal(t, cli.ExitValidation, cli.ExitCodeFor(err), "names are unique per project")

	_, err = clitest.ExecuteCLICommand(t, app, StatusDefaultCmd(), []string{pid, strconv.Itoa(blocked), "--quiet"})
	require.NoError(t, err)

	statuses, err := repo.ListStatuses(ctx, projectID)
	require.NoError(t, err)
	defaults := 0
	for _, s := range statuses {
		if s.IsDefault {
			defaults++
			assert.Equal(t, blocked, s.ID)
		}
	}
	assert.Equal(t, 1, defaults)

	other := testutil.CreateTestProject(t, repo, "Other")
	_, err = clitest.ExecuteCLICommand(t, app, StatusDefaultCmd(),
		[]string{strconv.Itoa(other), strconv.Itoa(blocked), "--json"})
	require.Error(t, err)
	assert.Equal(t, cli.ExitValidation, cli.ExitCodeFor(err))
}

func TestStatusUpdateAndDelete(t *testing.T) {
	repo, app := clitest.SetupCLITest(t)
	ctx := context.Background()
	projectID := testutil.CreateTestProject(t, repo, "Edit")
	inProgress := testutil.StatusID(t, repo, projectID, "In Progress")
	taskID := testutil.CreateTestTask(t, repo, projectID, "Busy", testutil.WithStatus(inProgress))
	sid := strconv.Itoa(inProgress)

	_, err := clitest.ExecuteCLICommand(t, app, StatusUpdateCmd(), []string{sid, "--json"})
	require.Error(t, err)
	assert.Equal(t, cli.ExitUsage, cli.ExitCodeFor(err), "no field flags")

	output, err := clitest.ExecuteCLICommand(t, app, StatusUpdateCmd(),
		[]string{sid, "--name", "Review", "--position", "0", "--json"})
	require.NoError(t, err)
	data := testutil.ParseJSON(t, output)["data"].(map[string]any)
	assert.Equal(t, "Review", data["name"])

	st, err := repo.GetStatus(ctx, inProgress)
	require.NoError(t, err)
	assert.Equal(t, "Review", st.Name)
	assert.Equal(t, 0, st.Position)

	_, err = clitest.ExecuteCLICommand(t, app, StatusUpdateCmd(), []string{"999", "--name", "x", "--json"})
	require.Error(t, err)
	assert.Equal(t, cli.ExitNotFound, cli.ExitCodeFor(err))

	_, err = clitest.ExecuteCLICommand(t, app, StatusDeleteCmd(), []string{sid, "--json"})
	require.Error(t, err)
	assert.Equal(t, cli.ExitValidation, cli.ExitCodeFor(err), "status still holds a task")

	output, err = clitest.ExecuteCLICommand(t, app, StatusDeleteCmd(), []string{sid, "--force", "--json"})
	require.NoError(t, err)
	data = testutil.ParseJSON(t, output)["data"].(map[string]any)
	assert.EqualValues(t, 1, data["detached_tasks"])

	task, err := repo.GetTask(ctx, taskID)
	require.NoError(t, err)
	assert.Nil(t, task.StatusID)
}

func TestRiskAndOverview(t *testing.T) {
	repo, app := clitest.SetupCLITest(t)
	projectID := testutil.CreateTestProject(t, repo, "Report")
	pid := strconv.Itoa(projectID)
	testutil.CreateTestTask(t, repo, projectID, "Urgent", testutil.WithDueIn(1),
		testutil.WithStatus(testutil.StatusID(t, repo, projectID, "To-Do")))

	output, err := clitest.ExecuteCLICommand(t, app, RiskCmd(), []string{pid, "--quiet"})
	require.NoError(t, err)
	assert.Equal(t, "critical", strings.TrimSpace(output))

	output, err = clitest.ExecuteCLICommand(t, app, RiskCmd(), []string{pid})
	require.NoError(t, err)
	assert.Contains(t, output, "CRITICAL")
	assert.Contains(t, output, "(1 days)")

	output, err = clitest.ExecuteCLICommand(t, app, OverviewCmd(), []string{pid, "--json"})
	require.NoError(t, err)
	data := testutil.ParseJSON(t, output)["data"].(map[string]any)
	assert.EqualValues(t, 1, data["total_tasks"])
	assert.Len(t, data["by_status"], 3)

	output, err = clitest.ExecuteCLICommand(t, app, OverviewCmd(), []string{pid})
	require.NoError(t, err)
	assert.Contains(t, output, "By status")

	_, err = clitest.ExecuteCLICommand(t, app, RiskCmd(), []string{"404", "--json"})
	require.Error(t, err)
	assert.Equal(t, cli.ExitNotFound, cli.ExitCodeFor(err))
}
