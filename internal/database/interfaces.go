package database

import (
	"context"
	"time"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/models"
)

// TaskReader defines read operations for tasks.
type TaskReader interface {
	GetTask(ctx context.Context, id int) (*models.Task, error)
	ListTasksByProject(ctx context.Context, projectID int) ([]*models.Task, error)
	ListOpenTasksWithDeadline(ctx context.Context, doneKeywords []string) ([]*models.Task, error)
}

// TaskWriter defines write operations for tasks.
type TaskWriter interface {
	CreateTask(ctx context.Context, t *models.Task) (*models.Task, error)
	UpdateTask(ctx context.Context, t *models.Task) error
	UpdateTaskPriority(ctx context.Context, id int, score float64, label string) error
	DeleteTask(ctx context.Context, id int) error
}

// TaskRepository combines task reads and writes.
type TaskRepository interface {
	TaskReader
	TaskWriter
}

// StatusRepository defines operations for per-project statuses.
type StatusRepository interface {
	CreateStatus(ctx context.Context, s *models.Status) (*models.Status, error)
	SetDefaultStatus(ctx context.Context, projectID, id int) error
	GetStatus(ctx context.Context, id int) (*models.Status, error)
	ListStatuses(ctx context.Context, projectID int) ([]*models.Status, error)
	GetDefaultStatus(ctx context.Context, projectID int) (*models.Status, error)
	UpdateStatus(ctx context.Context, s *models.Status) error
	CountTasksWithStatus(ctx context.Context, id int) (int, error)
	DeleteStatus(ctx context.Context, id int) error
}

// ProjectRepository defines operations for projects.
type ProjectRepository interface {
	CreateProject(ctx context.Context, p *models.Project) (*models.Project, error)
	GetProject(ctx context.Context, id int) (*models.Project, error)
	ListProjects(ctx context.Context) ([]*models.Project, error)
}

// UserRepository defines operations for users.
type UserRepository interface {
	CreateUser(ctx context.Context, u *models.User) (*models.User, error)
	GetUser(ctx context.Context, id int) (*models.User, error)
}

// TeamRepository defines project membership operations.
type TeamRepository interface {
	AddTeamMember(ctx context.Context, projectID, userID int) error
	ListMemberIDs(ctx context.Context, projectID int) ([]int, error)
	IsTeamMember(ctx context.Context, projectID, userID int) (bool, error)
}

// NotificationReader defines read operations for notifications.
type NotificationReader interface {
	FindRecentNotification(ctx context.Context, taskID int, typ string, since time.Time) (*models.Notification, error)
	GetNotification(ctx context.Context, id int) (*models.Notification, error)
	ListNotifications(ctx context.Context, f NotificationFilter) ([]*models.Notification, error)
	CountNotifications(ctx context.Context, f NotificationFilter) (int, error)
	NotificationStats(ctx context.Context, userID int, weekStart, monthStart time.Time) (*models.NotificationStats, error)
}

// NotificationWriter defines write operations for notifications.
type NotificationWriter interface {
	CreateNotification(ctx context.Context, n *models.Notification) (*models.Notification, error)
	MarkNotificationRead(ctx context.Context, id int) error
	MarkAllNotificationsRead(ctx context.Context, userID int, typ string) (int64, error)
	DeleteNotification(ctx context.Context, id int) error
}

// NotificationRepository combines notification reads and writes.
type NotificationRepository interface {
	NotificationReader
	NotificationWriter
}
