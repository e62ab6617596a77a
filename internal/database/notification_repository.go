package database

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/models"
)

// NotificationFilter selects a page of one user's notifications
type NotificationFilter struct {
	UserID     int
	UnreadOnly bool
	Type       string
	Priority   string
	ProjectID  *int
	Limit      int
	Offset     int
}

// NotificationRepo handles notification persistence
type NotificationRepo struct {
	q conn
}

const notificationColumns = `id, user_id, title, message, type, priority, is_read,
	created_at, next_reminder_at, task_id, project_id`

// CreateNotification inserts n and returns it with its id set.
func (r *NotificationRepo) CreateNotification(ctx context.Context, n *models.Notification) (*models.Notification, error) {
	created := nowOr(n.CreatedAt)
	var id int
	err := r.q.queryRow(ctx,
		`INSERT INTO notifications (user_id, title, message, type, priority, is_read,
			created_at, next_reminder_at, task_id, project_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 RETURNING id`,
		n.UserID, n.Title, n.Message, n.Type, n.Priority, n.IsRead,
		formatTime(created), nullableTime(n.NextReminderAt), nullableInt(n.TaskID), nullableInt(n.ProjectID),
	).Scan(&id)
	if err != nil {
		return nil, storageErr("create notification", err)
	}
	out := *n
	out.ID = id
	out.CreatedAt = created
	return &out, nil
}

// FindRecentNotification returns the newest notification of type typ for
// taskID created at or after since, or nil when there is none.
func (r *NotificationRepo) FindRecentNotification(ctx context.Context, taskID int, typ string, since time.Time) (*models.Notification, error) {
	n, err := scanNotification(r.q.queryRow(ctx,
		`SELECT `+notificationColumns+` FROM notifications
		 WHERE task_id = ? AND type = ? AND created_at >= ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT 1`,
		taskID, typ, formatTime(since)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("find recent notification", err)
	}
	return n, nil
}

// GetNotification returns a notification by id.
func (r *NotificationRepo) GetNotification(ctx context.Context, id int) (*models.Notification, error) {
	n, err := scanNotification(r.q.queryRow(ctx,
		`SELECT `+notificationColumns+` FROM notifications WHERE id = ?`, id))
	if err != nil {
		return nil, lookupErr("notification", id, err)
	}
	return n, nil
}

// ListNotifications returns one page of notifications, newest first.
func (r *NotificationRepo) ListNotifications(ctx context.Context, f NotificationFilter) ([]*models.Notification, error) {
	where, args := f.where()
	query := `SELECT ` + notificationColumns + ` FROM notifications` + where +
		` ORDER BY created_at DESC, id DESC`
	if f.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, f.Limit, f.Offset)
	}

	rows, err := r.q.query(ctx, query, args...)
	if err != nil {
		return nil, storageErr("list notifications", err)
	}
	defer rows.Close()

	out := []*models.Notification{}
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, storageErr("scan notification", err)
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list notifications", err)
	}
	return out, nil
}

// CountNotifications counts the rows matching f, ignoring paging.
func (r *NotificationRepo) CountNotifications(ctx context.Context, f NotificationFilter) (int, error) {
	where, args := f.where()
	var n int
	if err := r.q.queryRow(ctx, `SELECT COUNT(*) FROM notifications`+where, args...).Scan(&n); err != nil {
		return 0, storageErr("count notifications", err)
	}
	return n, nil
}

// MarkNotificationRead flips the read flag of one notification.
func (r *NotificationRepo) MarkNotificationRead(ctx context.Context, id int) error {
	res, err := r.q.exec(ctx, `UPDATE notifications SET is_read = ? WHERE id = ?`, true, id)
	if err != nil {
		return storageErr("mark notification read", err)
	}
	return expectOneRow(res, "notification", id)
}

// MarkAllNotificationsRead marks every unread notification of userID as read,
// optionally only those of type typ, and returns how many changed.
func (r *NotificationRepo) MarkAllNotificationsRead(ctx context.Context, userID int, typ string) (int64, error) {
	query := `UPDATE notifications SET is_read = ? WHERE user_id = ? AND is_read = ?`
	args := []any{true, userID, false}
	if typ != "" {
		query += ` AND type = ?`
		args = append(args, typ)
	}
	res, err := r.q.exec(ctx, query, args...)
	if err != nil {
		return 0, storageErr("mark notifications read", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, storageErr("read rows affected", err)
	}
	return n, nil
}

// DeleteNotification removes one notification.
func (r *NotificationRepo) DeleteNotification(ctx context.Context, id int) error {
	res, err := r.q.exec(ctx, `DELETE FROM notifications WHERE id = ?`, id)
	if err != nil {
		return storageErr("delete notification", err)
	}
	return expectOneRow(res, "notification", id)
}

// NotificationStats aggregates a user's notifications. Rows created at or
// after weekStart and monthStart count towards RecentWeek and RecentMonth.
func (r *NotificationRepo) NotificationStats(ctx context.Context, userID int, weekStart, monthStart time.Time) (*models.NotificationStats, error) {
	stats := &models.NotificationStats{
		ByType:     map[string]int{},
		ByPriority: map[string]int{},
	}

	err := r.q.queryRow(ctx,
		`SELECT COUNT(*),
			COALESCE(SUM(CASE WHEN is_read = ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN created_at >= ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN created_at >= ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN is_read = ? AND type = ? THEN 1 ELSE 0 END), 0)
		 FROM notifications WHERE user_id = ?`,
		false, formatTime(weekStart), formatTime(monthStart),
		false, models.NotificationTypeDeadlineWarning, userID,
	).Scan(&stats.Total, &stats.Unread, &stats.RecentWeek, &stats.RecentMonth, &stats.UnreadDeadline)
	if err != nil {
		return nil, storageErr("count notification stats", err)
	}

	if err := r.groupCount(ctx, "type", userID, stats.ByType); err != nil {
		return nil, err
	}
	if err := r.groupCount(ctx, "priority", userID, stats.ByPriority); err != nil {
		return nil, err
	}
	return stats, nil
}

// groupCount fills into with per-value counts of column. column is never user input.
func (r *NotificationRepo) groupCount(ctx context.Context, column string, userID int, into map[string]int) error {
	rows, err := r.q.query(ctx,
		`SELECT `+column+`, COUNT(*) FROM notifications WHERE user_id = ? GROUP BY `+column, userID)
	if err != nil {
		return storageErr("group notifications by "+column, err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			key   string
			count int
		)
		if err := rows.Scan(&key, &count); err != nil {
			return storageErr("scan notification group", err)
		}
		into[key] = count
	}
	if err := rows.Err(); err != nil {
		return storageErr("group notifications by "+column, err)
	}
	return nil
}

func (f NotificationFilter) where() (string, []any) {
	conds := []string{"user_id = ?"}
	args := []any{f.UserID}
	if f.UnreadOnly {
		conds = append(conds, "is_read = ?")
		args = append(args, false)
	}
	if f.Type != "" {
		conds = append(conds, "type = ?")
		args = append(args, f.Type)
	}
	if f.Priority != "" {
		conds = append(conds, "priority = ?")
		args = append(args, f.Priority)
	}
	if f.ProjectID != nil {
		conds = append(conds, "project_id = ?")
		args = append(args, *f.ProjectID)
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanNotification(row rowScanner) (*models.Notification, error) {
	var (
		n                 models.Notification
		createdAt         string
		nextReminder      sql.NullString
		taskID, projectID sql.NullInt64
	)
	err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type, &n.Priority, &n.IsRead,
		&createdAt, &nextReminder, &taskID, &projectID)
	if err != nil {
		return nil, err
	}
	if n.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if n.NextReminderAt, err = nullStringToTime(nextReminder); err != nil {
		return nil, err
	}
	n.TaskID = nullInt64ToPtr(taskID)
	n.ProjectID = nullInt64ToPtr(projectID)
	return &n, nil
}
