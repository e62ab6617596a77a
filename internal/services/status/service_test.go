package status

import (
	"context"
	"testing"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/models"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/risk"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateStatus_AppendsAndDefaults(t *testing.T) {
	t.Parallel()
	repo := testutil.SetupTestDB(t)
	svc := NewService(repo, nil)
	ctx := context.Background()
	projectID := testutil.CreateTestProject(t, repo, "Apollo")

	st, err := svc.CreateStatus(ctx, CreateStatusRequest{ProjectID: projectID, Name: " QA ", IsDefault: true})
	require.NoError(t, err)
	assert.Equal(t, "QA", st.Name)
	assert.Equal(t, models.DefaultStatusColor, st.Color)
	assert.Equal(t, 3, st.Position)

	statuses, err := svc.ListStatuses(ctx, projectID)
	require.NoError(t, err)
	defaults := 0
	for _, s := range statuses {
		if s.IsDefault {
			defaults++
			assert.Equal(t, st.ID, s.ID)
		}
	}
	assert.Equal(t, 1, defaults)
}

func TestCreateStatus_Validation(t *testing.T) {
	t.Parallel()
	repo := testutil.SetupTestDB(t)
	svc := NewService(repo, nil)
	ctx := context.Background()
	projectID := testutil.CreateTestProject(t, repo, "Apollo")

	tests := []struct {
		name string
		req  CreateStatusRequest
		want error
	}{
		{"missing project", CreateStatusRequest{Name: "x"}, ErrInvalidProjectID},
		{"empty name", CreateStatusRequest{ProjectID: projectID, Name: "  "}, ErrEmptyName},
		{"bad color", CreateStatusRequest{ProjectID: projectID, Name: "x", Color: "red"}, ErrInvalidColor},
		{"duplicate", CreateStatusRequest{ProjectID: projectID, Name: "done"}, ErrDuplicateName},
		{"unknown project", CreateStatusRequest{ProjectID: 404, Name: "x"}, models.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateStatus(ctx, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSetDefault(t *testing.T) {
	t.Parallel()
	repo := testutil.SetupTestDB(t)
	svc := NewService(repo, nil)
	ctx := context.Background()
	apollo := testutil.CreateTestProject(t, repo, "Apollo")
	gemini := testutil.CreateTestProject(t, repo, "Gemini")
	done := testutil.StatusID(t, repo, apollo, "Done")

	require.NoError(t, svc.SetDefault(ctx, apollo, done))
	def, err := repo.GetDefaultStatus(ctx, apollo)
	require.NoError(t, err)
	assert.Equal(t, done, def.ID)

	assert.ErrorIs(t, svc.SetDefault(ctx, gemini, done), ErrWrongProject)
}

func TestDescribe(t *testing.T) {
	t.Parallel()
	views := Describe(risk.NewEstimator(risk.DefaultProgressConfig()), []*models.Status{
		{Name: "In Progress"}, {Name: "Deployed"}, {Name: "Someday"},
	})
	require.Len(t, views, 3)
	assert.Equal(t, 0.5, views[0].Progress)
	assert.True(t, views[1].IsDone)
	assert.Equal(t, 0.2, views[2].Progress)
	assert.False(t, views[2].IsDone)
}

func TestUpdateStatus_RenameChangesTaskRisk(t *testing.T) {
	t.Parallel()
	repo := testutil.SetupTestDB(t)
	svc := NewService(repo, nil)
	ctx := context.Background()
	projectID := testutil.CreateTestProject(t, repo, "Apollo")
	inProgress := testutil.StatusID(t, repo, projectID, "In Progress")
	taskID := testutil.CreateTestTask(t, repo, projectID, "Ship", testutil.WithDueIn(1), testutil.WithStatus(inProgress))
	analyzer := risk.NewAnalyzer(risk.DefaultConfig())

	task, err := repo.GetTask(ctx, taskID)
	require.NoError(t, err)
	before := analyzer.Assess(task, testutil.Today())
	assert.Equal(t, 0.5, before.Progress)
	assert.Equal(t, risk.LevelCritical, before.Level)

	name := "Review"
	st, err := svc.UpdateStatus(ctx, UpdateStatusRequest{StatusID: inProgress, Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Review", st.Name)

	task, err = repo.GetTask(ctx, taskID)
	require.NoError(t, err)
	after := analyzer.Assess(task, testutil.Today())
	assert.Equal(t, 0.8, after.Progress)
	assert.Equal(t, risk.LevelMedium, after.Level)
}

func TestUpdateStatus_Fields(t *testing.T) {
	t.Parallel()
	repo := testutil.SetupTestDB(t)
	svc := NewService(repo, nil)
	ctx := context.Background()
	projectID := testutil.CreateTestProject(t, repo, "Apollo")
	done := testutil.StatusID(t, repo, projectID, "Done")

	color, pos, isDefault := "#00FF00", 7, true
	st, err := svc.UpdateStatus(ctx, UpdateStatusRequest{StatusID: done, Color: &color, Position: &pos, IsDefault: &isDefault})
	require.NoError(t, err)
	assert.Equal(t, "Done", st.Name)
	assert.Equal(t, "#00FF00", st.Color)
	assert.Equal(t, 7, st.Position)

	def, err := repo.GetDefaultStatus(ctx, projectID)
	require.NoError(t, err)
	assert.Equal(t, done, def.ID, "the previous default is cleared")

	tests := []struct {
		name string
		req  UpdateStatusRequest
		want error
	}{
		{"invalid id", UpdateStatusRequest{}, ErrInvalidStatusID},
		{"unknown status", UpdateStatusRequest{StatusID: 404}, models.ErrNotFound},
		{"duplicate name", UpdateStatusRequest{StatusID: done, Name: ptr("to-do")}, ErrDuplicateName},
		{"empty name", UpdateStatusRequest{StatusID: done, Name: ptr(" ")}, ErrEmptyName},
		{"bad color", UpdateStatusRequest{StatusID: done, Color: ptr("green")}, ErrInvalidColor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateStatus(ctx, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDeleteStatus(t *testing.T) {
	t.Parallel()
	repo := testutil.SetupTestDB(t)
	svc := NewService(repo, nil)
	ctx := context.Background()
	projectID := testutil.CreateTestProject(t, repo, "Apollo")
	inProgress := testutil.StatusID(t, repo, projectID, "In Progress")
	done := testutil.StatusID(t, repo, projectID, "Done")
	taskID := testutil.CreateTestTask(t, repo, projectID, "Ship", testutil.WithDueIn(5), testutil.WithStatus(inProgress))

	// unused statuses go straight away
	n, err := svc.DeleteStatus(ctx, done, false)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = svc.DeleteStatus(ctx, inProgress, false)
	assert.ErrorIs(t, err, ErrStatusInUse)

	n, err = svc.DeleteStatus(ctx, inProgress, true)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	task, err := repo.GetTask(ctx, taskID)
	require.NoError(t, err)
	assert.Nil(t, task.StatusID)
	analyzer := risk.NewAnalyzer(risk.DefaultConfig())
	assert.Equal(t, 0.1, analyzer.Progress(task), "tasks without a status use the no-status progress")

	statuses, err := svc.ListStatuses(ctx, projectID)
	require.NoError(t, err)
	assert.Len(t, statuses, 1)

	_, err = svc.DeleteStatus(ctx, 404, true)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func ptr[T any](v T) *T { return &v }
