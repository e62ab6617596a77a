// Package notification serves a user's notification inbox.
package notification

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/database"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/events"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/models"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/risk"
)

// Paging limits for List
const (
	DefaultLimit = 50
	MaxLimit     = 100
)

// Service defines the notification inbox operations
type Service interface {
	List(ctx context.Context, req ListRequest) (*Page, error)
	Create(ctx context.Context, req CreateRequest) (*models.Notification, error)
	MarkRead(ctx context.Context, id int) (*models.Notification, error)
	MarkAllRead(ctx context.Context, userID int, typ string) (int64, error)
	Delete(ctx context.Context, id int) error
	Stats(ctx context.Context, userID int) (*models.NotificationStats, error)
}

// ListRequest filters one user's notifications. Limit 0 means DefaultLimit;
// larger values are capped at MaxLimit.
type ListRequest struct {
	UserID     int
	UnreadOnly bool
	Type       string
	Priority   string
	ProjectID  *int
	Limit      int
	Offset     int
}

// Page is one page of notifications plus the totals needed to page further
type Page struct {
	Notifications []*models.Notification `json:"notifications"`
	TotalCount    int                    `json:"total_count"`
	UnreadCount   int                    `json:"unread_count"`
	HasMore       bool                   `json:"has_more"`
}

// CreateRequest creates a general notification
type CreateRequest struct {
	UserID    int
	Title     string
	Message   string
	Priority  string // defaults to low
	TaskID    *int
	ProjectID *int
}

type service struct {
	repo        database.NotificationRepository
	eventClient events.EventPublisher
	now         func() time.Time
}

// NewService creates a notification service. A nil clock means time.Now.
func NewService(repo database.NotificationRepository, eventClient events.EventPublisher, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	return &service{repo: repo, eventClient: eventClient, now: now}
}

// List returns one page of notifications, newest first
func (s *service) List(ctx context.Context, req ListRequest) (*Page, error) {
	if req.UserID <= 0 {
		return nil, ErrInvalidUserID
	}
	if req.Limit < 0 || req.Offset < 0 {
		return nil, ErrInvalidPaging
	}
	if req.Limit == 0 {
		req.Limit = DefaultLimit
	}
	req.Limit = min(req.Limit, MaxLimit)
	if err := validateType(req.Type); err != nil {
		return nil, err
	}
	if req.Priority != "" {
		level, err := risk.ParseLevel(req.Priority)
		if err != nil {
			return nil, err
		}
		req.Priority = string(level)
	}

	filter := database.NotificationFilter{
		UserID:     req.UserID,
		UnreadOnly: req.UnreadOnly,
		Type:       req.Type,
		Priority:   req.Priority,
		ProjectID:  req.ProjectID,
		Limit:      req.Limit,
		Offset:     req.Offset,
	}
	items, err := s.repo.ListNotifications(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.CountNotifications(ctx, filter)
	if err != nil {
		return nil, err
	}
	unread, err := s.repo.CountNotifications(ctx, database.NotificationFilter{UserID: req.UserID, UnreadOnly: true})
	if err != nil {
		return nil, err
	}

	return &Page{
		Notifications: items,
		TotalCount:    total,
		UnreadCount:   unread,
		HasMore:       req.Offset+req.Limit < total,
	}, nil
}

// Create stores a general notification and announces it
func (s *service) Create(ctx context.Context, req CreateRequest) (*models.Notification, error) {
	if req.UserID <= 0 {
		return nil, ErrInvalidUserID
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	priority := string(risk.LevelLow)
	if req.Priority != "" {
		level, err := risk.ParseLevel(req.Priority)
		if err != nil {
			return nil, err
		}
		priority = string(level)
	}

	n, err := s.repo.CreateNotification(ctx, &models.Notification{
		UserID:    req.UserID,
		Title:     title,
		Message:   req.Message,
		Type:      models.NotificationTypeGeneral,
		Priority:  priority,
		CreatedAt: s.now().UTC(),
		TaskID:    req.TaskID,
		ProjectID: req.ProjectID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	event := events.Event{Type: events.EventNotificationCreated, Count: 1}
	if n.ProjectID != nil {
		event.ProjectID = *n.ProjectID
	}
	if n.TaskID != nil {
		event.TaskID = *n.TaskID
	}
	if err := events.PublishWithRetry(ctx, s.eventClient, event, 3); err != nil {
		slog.Warn("failed to publish notification event", "notification_id", n.ID, "error", err)
	}
	return n, nil
}

// MarkRead marks one notification as read and returns it
func (s *service) MarkRead(ctx context.Context, id int) (*models.Notification, error) {
	if id <= 0 {
		return nil, ErrInvalidNotificationID
	}
	if err := s.repo.MarkNotificationRead(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.GetNotification(ctx, id)
}

// MarkAllRead marks every unread notification of a user as read, optionally
// only those of one type
func (s *service) MarkAllRead(ctx context.Context, userID int, typ string) (int64, error) {
	if userID <= 0 {
		return 0, ErrInvalidUserID
	}
	if err := validateType(typ); err != nil {
		return 0, err
	}
	n, err := s.repo.MarkAllNotificationsRead(ctx, userID, typ)
	if err != nil {
		return 0, err
	}
	slog.Debug("notifications marked read", "user_id", userID, "type", typ, "count", n)
	return n, nil
}

// Delete removes one notification
func (s *service) Delete(ctx context.Context, id int) error {
	if id <= 0 {
		return ErrInvalidNotificationID
	}
	return s.repo.DeleteNotification(ctx, id)
}

// Stats summarizes a user's notifications. The week and month windows start
// 7 and 30 days before the current UTC midnight.
func (s *service) Stats(ctx context.Context, userID int) (*models.NotificationStats, error) {
	if userID <= 0 {
		return nil, ErrInvalidUserID
	}
	today := models.DateOf(s.now()).Time()
	return s.repo.NotificationStats(ctx, userID, today.AddDate(0, 0, -7), today.AddDate(0, 0, -30))
}

func validateType(typ string) error {
	switch typ {
	case "", models.NotificationTypeGeneral, models.NotificationTypeDeadlineWarning:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownType, typ)
}
