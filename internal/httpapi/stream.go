package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/events"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/models"
)

// streamEvents serves broker events as server-sent events. ?project_id
// narrows the stream to one project; global events are always delivered.
func (s *Server) streamEvents(w http.ResponseWriter, r *http.Request) {
	if s.subscriber == nil {
		writeError(w, http.StatusNotFound, "event stream not enabled")
		return
	}
	projectID, _, err := queryInt(r, "project_id")
	if err != nil || projectID < 0 {
		writeServiceError(w, r, fmt.Errorf("%w: project_id must be a non-negative integer", models.ErrValidation))
		return
	}

	rc := http.NewResponseController(w)
	ch, cancel := s.subscriber.Subscribe(projectID)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	if err := rc.Flush(); err != nil {
		slog.Warn("event stream cannot flush", "error", err)
		return
	}

	heartbeat := time.NewTicker(s.heartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			if err := writeEvent(w, rc, events.Event{Type: events.EventPing, Timestamp: time.Now()}); err != nil {
				return
			}
		case e, ok := <-ch:
			if !ok {
				return
			}
			if err := writeEvent(w, rc, e); err != nil {
				slog.Debug("event stream closed", "request_id", RequestIDFromContext(r.Context()), "error", err)
				return
			}
		}
	}
}

func writeEvent(w http.ResponseWriter, rc *http.ResponseController, e events.Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	if e.SequenceID > 0 {
		if _, err := fmt.Fprintf(w, "id: %d\n", e.SequenceID); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", e.Type, data); err != nil {
		return err
	}
	return rc.Flush()
}

// publishEvent accepts an event from another process, such as a CLI
// command, and hands it to the broker so stream clients see it
func (s *Server) publishEvent(w http.ResponseWriter, r *http.Request) {
	if s.publisher == nil {
		writeError(w, http.StatusNotFound, "event publishing not enabled")
		return
	}
	var e events.Event
	if err := decodeJSON(w, r, &e); err != nil {
		writeServiceError(w, r, err)
		return
	}
	switch e.Type {
	case events.EventPriorityChanged, events.EventNotificationCreated, events.EventSweepCompleted:
	default:
		writeServiceError(w, r, fmt.Errorf("%w: unsupported event type %q", models.ErrValidation, e.Type))
		return
	}
	if e.ProjectID < 0 {
		writeServiceError(w, r, fmt.Errorf("%w: project_id must be a non-negative integer", models.ErrValidation))
		return
	}
	e.SequenceID = 0
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}

	if err := s.publisher.SendEvent(e); err != nil {
		if errors.Is(err, events.ErrBrokerClosed) {
			writeError(w, http.StatusServiceUnavailable, "event broker closed")
			return
		}
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}
