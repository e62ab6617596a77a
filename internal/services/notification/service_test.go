package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/database"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/events"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/models"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/testutil"
)

type recordingPublisher struct {
	sent []events.Event
}

func (r *recordingPublisher) SendEvent(e events.Event) error {
	r.sent = append(r.sent, e)
	return nil
}

func seed(t *testing.T, repo *database.Repository, n *models.Notification) *models.Notification {
	t.Helper()
	if n.CreatedAt.IsZero() {
		n.CreatedAt = testutil.Now
	}
	created, err := repo.CreateNotification(context.Background(), n)
	if err != nil {
		t.Fatalf("Failed to seed notification: %v", err)
	}
	return created
}

func TestList_PagingAndFilters(t *testing.T) {
	t.Parallel()
	repo := testutil.SetupTestDB(t)
	svc := NewService(repo, nil, testutil.FixedClock(testutil.Now))
	ctx := context.Background()
	userID := testutil.CreateTestUser(t, repo, "a@example.com")
	projectID := testutil.CreateTestProject(t, repo, "Apollo")

	for i := 0; i < 5; i++ {
		seed(t, repo, &models.Notification{
			UserID:    userID,
			Title:     "warning",
			Type:      models.NotificationTypeDeadlineWarning,
			Priority:  "high",
			ProjectID: &projectID,
			CreatedAt: testutil.Now.Add(time.Duration(i) * time.Minute),
		})
	}
	seed(t, repo, &models.Notification{UserID: userID, Title: "hi", Type: models.NotificationTypeGeneral, Priority: "low", IsRead: true})

	page, err := svc.List(ctx, ListRequest{UserID: userID, Limit: 2})
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(page.Notifications) != 2 || page.TotalCount != 6 || page.UnreadCount != 5 || !page.HasMore {
		t.Errorf("unexpected first page: %+v", page)
	}

	page, err = svc.List(ctx, ListRequest{UserID: userID, Limit: 2, Offset: 4})
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(page.Notifications) != 2 || page.HasMore {
		t.Errorf("unexpected last page: %+v", page)
	}

	page, err = svc.List(ctx, ListRequest{UserID: userID, Priority: "HIGH", ProjectID: &projectID})
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if page.TotalCount != 5 {
		t.Errorf("priority+project filter total = %d, want 5", page.TotalCount)
	}

	page, err = svc.List(ctx, ListRequest{UserID: userID, Type: models.NotificationTypeGeneral})
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if page.TotalCount != 1 || page.Notifications[0].Title != "hi" {
		t.Errorf("type filter = %+v", page)
	}
}

func TestList_Validation(t *testing.T) {
	t.Parallel()
	repo := testutil.SetupTestDB(t)
	svc := NewService(repo, nil, nil)

	tests := []struct {
		name string
		req  ListRequest
	}{
		{"no user", ListRequest{}},
		{"negative limit", ListRequest{UserID: 1, Limit: -1}},
		{"negative offset", ListRequest{UserID: 1, Offset: -5}},
		{"unknown type", ListRequest{UserID: 1, Type: "spam"}},
		{"unknown priority", ListRequest{UserID: 1, Priority: "extreme"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.List(context.Background(), tt.req)
			if !errors.Is(err, models.ErrValidation) {
				t.Errorf("List() error = %v, want validation error", err)
			}
		})
	}
}

func TestList_LimitIsCapped(t *testing.T) {
	t.Parallel()
	repo := testutil.SetupTestDB(t)
	svc := NewService(repo, nil, nil)
	userID := testutil.CreateTestUser(t, repo, "a@example.com")

	page, err := svc.List(context.Background(), ListRequest{UserID: userID, Limit: 1000})
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if page.HasMore || page.TotalCount != 0 || len(page.Notifications) != 0 {
		t.Errorf("unexpected page for empty inbox: %+v", page)
	}
}

func TestCreateAndMarkRead(t *testing.T) {
	t.Parallel()
	repo := testutil.SetupTestDB(t)
	pub := &recordingPublisher{}
	svc := NewService(repo, pub, testutil.FixedClock(testutil.Now))
	ctx := context.Background()
	userID := testutil.CreateTestUser(t, repo, "a@example.com")
	projectID := testutil.CreateTestProject(t, repo, "Apollo")

	n, err := svc.Create(ctx, CreateRequest{UserID: userID, Title: " Welcome ", ProjectID: &projectID})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if n.Title != "Welcome" || n.Type != models.NotificationTypeGeneral || n.Priority != "low" || n.IsRead {
		t.Errorf("unexpected notification: %+v", n)
	}
	if len(pub.sent) != 1 || pub.sent[0].Type != events.EventNotificationCreated || pub.sent[0].ProjectID != projectID {
		t.Errorf("unexpected events: %+v", pub.sent)
	}

	read, err := svc.MarkRead(ctx, n.ID)
	if err != nil {
		t.Fatalf("MarkRead() error: %v", err)
	}
	if !read.IsRead {
		t.Error("notification should be read")
	}

	if _, err := svc.MarkRead(ctx, 999); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("MarkRead(999) error = %v, want not found", err)
	}
	if _, err := svc.Create(ctx, CreateRequest{UserID: userID, Title: ""}); !errors.Is(err, ErrEmptyTitle) {
		t.Errorf("Create() error = %v, want ErrEmptyTitle", err)
	}
}

func TestMarkAllReadAndDelete(t *testing.T) {
	t.Parallel()
	repo := testutil.SetupTestDB(t)
	svc := NewService(repo, nil, testutil.FixedClock(testutil.Now))
	ctx := context.Background()
	userID := testutil.CreateTestUser(t, repo, "a@example.com")

	warning := seed(t, repo, &models.Notification{UserID: userID, Title: "w", Type: models.NotificationTypeDeadlineWarning, Priority: "critical"})
	seed(t, repo, &models.Notification{UserID: userID, Title: "g", Type: models.NotificationTypeGeneral, Priority: "low"})

	changed, err := svc.MarkAllRead(ctx, userID, models.NotificationTypeDeadlineWarning)
	if err != nil || changed != 1 {
		t.Fatalf("MarkAllRead(deadline_warning) = %d, %v", changed, err)
	}
	changed, err = svc.MarkAllRead(ctx, userID, "")
	if err != nil || changed != 1 {
		t.Fatalf("MarkAllRead() = %d, %v", changed, err)
	}

	if err := svc.Delete(ctx, warning.ID); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if err := svc.Delete(ctx, warning.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("second Delete() error = %v, want not found", err)
	}
}

func TestStats_Windows(t *testing.T) {
	t.Parallel()
	repo := testutil.SetupTestDB(t)
	svc := NewService(repo, nil, testutil.FixedClock(testutil.Now))
	userID := testutil.CreateTestUser(t, repo, "a@example.com")

	// Now is 2024-06-01 12:00, so the week starts 2024-05-25 00:00 and the month 2024-05-02 00:00
	seed(t, repo, &models.Notification{UserID: userID, Title: "today", Type: models.NotificationTypeDeadlineWarning, Priority: "high"})
	seed(t, repo, &models.Notification{UserID: userID, Title: "week edge", Type: models.NotificationTypeGeneral, Priority: "low",
		CreatedAt: time.Date(2024, time.May, 25, 0, 0, 0, 0, time.UTC)})
	seed(t, repo, &models.Notification{UserID: userID, Title: "month", Type: models.NotificationTypeGeneral, Priority: "low",
		CreatedAt: time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC)})
	seed(t, repo, &models.Notification{UserID: userID, Title: "ancient", Type: models.NotificationTypeGeneral, Priority: "low", IsRead: true,
		CreatedAt: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)})

	stats, err := svc.Stats(context.Background(), userID)
	if err != nil {
		t.Fatalf("Stats() error: %v", err)
	}
	if stats.Total != 4 || stats.Unread != 3 || stats.RecentWeek != 2 || stats.RecentMonth != 3 || stats.UnreadDeadline != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if stats.ByType[models.NotificationTypeGeneral] != 3 || stats.ByPriority["high"] != 1 {
		t.Errorf("unexpected groups: %+v", stats)
	}
}
