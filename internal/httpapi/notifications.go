package httpapi

import (
	"fmt"
	"net/http"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/models"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/services/notification"
)

func (s *Server) listNotifications(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	req, err := parseListRequest(r, userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	page, err := s.app.NotificationService.List(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if page.Notifications == nil {
		page.Notifications = []*models.Notification{}
	}
	writeJSON(w, http.StatusOK, page)
}

func parseListRequest(r *http.Request, userID int) (notification.ListRequest, error) {
	q := r.URL.Query()
	req := notification.ListRequest{
		UserID:   userID,
		Type:     q.Get("type"),
		Priority: q.Get("priority"),
	}

	unread, err := parseBoolStrict(q.Get("unread_only"))
	if err != nil {
		return req, fmt.Errorf("%w: unread_only must be a boolean", models.ErrValidation)
	}
	req.UnreadOnly = unread

	if v, ok, err := queryInt(r, "project_id"); err != nil {
		return req, err
	} else if ok {
		req.ProjectID = &v
	}
	if req.Limit, _, err = queryInt(r, "limit"); err != nil {
		return req, err
	}
	if req.Offset, _, err = queryInt(r, "offset"); err != nil {
		return req, err
	}
	return req, nil
}

type createNotificationBody struct {
	Title     string `json:"title"`
	Message   string `json:"message"`
	Priority  string `json:"priority"`
	TaskID    *int   `json:"task_id"`
	ProjectID *int   `json:"project_id"`
}

func (s *Server) createNotification(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	var body createNotificationBody
	if err := decodeJSON(w, r, &body); err != nil {
		writeServiceError(w, r, err)
		return
	}
	n, err := s.app.NotificationService.Create(r.Context(), notification.CreateRequest{
		UserID:    userID,
		Title:     body.Title,
		Message:   body.Message,
		Priority:  body.Priority,
		TaskID:    body.TaskID,
		ProjectID: body.ProjectID,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, n)
}

func (s *Server) markRead(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	n, err := s.app.NotificationService.MarkRead(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

func (s *Server) markAllRead(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	n, err := s.app.NotificationService.MarkAllRead(r.Context(), userID, r.URL.Query().Get("type"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"updated": n})
}

func (s *Server) deleteNotification(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if err := s.app.NotificationService.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) notificationStats(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	stats, err := s.app.NotificationService.Stats(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
