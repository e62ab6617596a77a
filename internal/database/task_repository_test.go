package database

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/models"
)

func TestTaskRepo_CreateAndGet(t *testing.T) {
	t.Parallel()
	repo := setupTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, repo, "dev@example.com")
	project := createTestProject(t, repo, "Apollo")
	status := createTestStatus(t, repo, project.ID, "In Progress", true)
	due := models.NewDate(2024, time.June, 10)

	created := createTestTask(t, repo, &models.Task{
		ProjectID:     project.ID,
		Title:         "Write launch checklist",
		DueDate:       &due,
		StatusID:      &status.ID,
		EffortScore:   2,
		ImpactScore:   5,
		DependencyMap: []int{9, 4},
		AssignedTo:    &user.ID,
		PriorityScore: 6.1,
		Priority:      models.PriorityMedium,
	})

	got, err := repo.GetTask(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetTask() error: %v", err)
	}
	if got.DueDate == nil || got.DueDate.String() != "2024-06-10" {
		t.Errorf("DueDate = %v", got.DueDate)
	}
	if got.Status == nil || got.Status.Name != "In Progress" || !got.Status.IsDefault {
		t.Errorf("Status = %+v", got.Status)
	}
	if !reflect.DeepEqual(got.DependencyMap, []int{4, 9}) {
		t.Errorf("DependencyMap = %v", got.DependencyMap)
	}
	if len(got.BlockedBy) != 0 {
		t.Errorf("BlockedBy = %v, want empty", got.BlockedBy)
	}
	if got.AssignedTo == nil || *got.AssignedTo != user.ID {
		t.Errorf("AssignedTo = %v", got.AssignedTo)
	}
	if !got.CreatedAt.Equal(testNow) {
		t.Errorf("CreatedAt = %v", got.CreatedAt)
	}
}

func TestTaskRepo_GetMissing(t *testing.T) {
	t.Parallel()
	repo := setupTestDB(t)
	_, err := repo.GetTask(context.Background(), 404)
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestTaskRepo_UpdatePriorityOnlyTouchesDerivedFields(t *testing.T) {
	t.Parallel()
	repo := setupTestDB(t)
	ctx := context.Background()
	project := createTestProject(t, repo, "Apollo")
	task := createTestTask(t, repo, &models.Task{ProjectID: project.ID, Title: "Keep me"})

	if err := repo.UpdateTaskPriority(ctx, task.ID, 8.25, models.PriorityUrgent); err != nil {
		t.Fatalf("UpdateTaskPriority() error: %v", err)
	}
	got, _ := repo.GetTask(ctx, task.ID)
	if got.PriorityScore != 8.25 || got.Priority != models.PriorityUrgent {
		t.Errorf("priority not written: %v %s", got.PriorityScore, got.Priority)
	}
	if got.Title != "Keep me" || !got.UpdatedAt.Equal(task.UpdatedAt) {
		t.Errorf("unrelated fields changed: %+v", got)
	}

	if err := repo.UpdateTaskPriority(ctx, 999, 1, models.PriorityLow); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestTaskRepo_UpdateTask(t *testing.T) {
	t.Parallel()
	repo := setupTestDB(t)
	ctx := context.Background()
	project := createTestProject(t, repo, "Apollo")
	task := createTestTask(t, repo, &models.Task{ProjectID: project.ID, Title: "Draft"})

	due := models.NewDate(2024, time.July, 1)
	task.Title = "Final"
	task.DueDate = &due
	task.BlockedBy = []int{3}
	task.UpdatedAt = testNow.Add(time.Hour)
	if err := repo.UpdateTask(ctx, task); err != nil {
		t.Fatalf("UpdateTask() error: %v", err)
	}

	got, _ := repo.GetTask(ctx, task.ID)
	if got.Title != "Final" || got.DueDate.String() != "2024-07-01" || !reflect.DeepEqual(got.BlockedBy, []int{3}) {
		t.Errorf("update not persisted: %+v", got)
	}
	if !got.UpdatedAt.Equal(testNow.Add(time.Hour)) {
		t.Errorf("UpdatedAt = %v", got.UpdatedAt)
	}
}

func TestTaskRepo_ListOpenTasksWithDeadline(t *testing.T) {
	t.Parallel()
	repo := setupTestDB(t)
	ctx := context.Background()
	project := createTestProject(t, repo, "Apollo")
	todo := createTestStatus(t, repo, project.ID, "To-Do", true)
	done := createTestStatus(t, repo, project.ID, "Done", false)
	deployed := createTestStatus(t, repo, project.ID, "Deployed to prod", false)
	due := models.NewDate(2024, time.June, 3)

	open := createTestTask(t, repo, &models.Task{ProjectID: project.ID, Title: "open", DueDate: &due, StatusID: &todo.ID})
	noStatus := createTestTask(t, repo, &models.Task{ProjectID: project.ID, Title: "no status", DueDate: datePtr(due.AddDays(1))})
	createTestTask(t, repo, &models.Task{ProjectID: project.ID, Title: "done", DueDate: &due, StatusID: &done.ID})
	createTestTask(t, repo, &models.Task{ProjectID: project.ID, Title: "deployed", DueDate: &due, StatusID: &deployed.ID})
	createTestTask(t, repo, &models.Task{ProjectID: project.ID, Title: "no due date", StatusID: &todo.ID})

	tasks, err := repo.ListOpenTasksWithDeadline(ctx, []string{"done", "completed", "finished", "closed", "deployed"})
	if err != nil {
		t.Fatalf("ListOpenTasksWithDeadline() error: %v", err)
	}
	if len(tasks) != 2 || tasks[0].ID != open.ID || tasks[1].ID != noStatus.ID {
		t.Fatalf("unexpected tasks: %+v", tasks)
	}
}
