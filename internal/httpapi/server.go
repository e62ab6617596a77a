// Package httpapi exposes the engine over JSON/HTTP.
package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/app"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/events"
)

// MetricsFunc returns the value served on GET /api/metrics
type MetricsFunc func() any

// Server routes requests to the application services
type Server struct {
	app            *app.App
	subscriber     events.Subscriber
	publisher      events.EventPublisher
	metrics        MetricsFunc
	requestTimeout time.Duration
	heartbeat      time.Duration
	mux            *http.ServeMux
}

// Option configures a Server
type Option func(*Server)

// WithSubscriber enables GET /api/events
func WithSubscriber(sub events.Subscriber) Option {
	return func(s *Server) { s.subscriber = sub }
}

// WithPublisher enables POST /api/events, which republishes events sent by
// other processes
func WithPublisher(pub events.EventPublisher) Option {
	return func(s *Server) { s.publisher = pub }
}

// WithMetrics enables GET /api/metrics
func WithMetrics(fn MetricsFunc) Option {
	return func(s *Server) { s.metrics = fn }
}

// WithRequestTimeout bounds every non-streaming request. 0 disables it.
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Server) { s.requestTimeout = d }
}

// WithHeartbeat sets how often the event stream sends a ping
func WithHeartbeat(d time.Duration) Option {
	return func(s *Server) { s.heartbeat = d }
}

// NewServer builds the router for a
func NewServer(a *app.App, opts ...Option) *Server {
	s := &Server{
		app:            a,
		requestTimeout: a.Config().Server.RequestTimeout.Duration,
		heartbeat:      30 * time.Second,
		mux:            http.NewServeMux(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.heartbeat <= 0 {
		s.heartbeat = 30 * time.Second
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /healthz", s.healthz)

	s.mux.HandleFunc("POST /api/users", s.createUser)
	s.mux.HandleFunc("GET /api/users/{id}", s.getUser)

	s.mux.HandleFunc("GET /api/projects", s.listProjects)
	s.mux.HandleFunc("POST /api/projects", s.createProject)
	s.mux.HandleFunc("GET /api/projects/{id}", s.getProject)
	s.mux.HandleFunc("POST /api/projects/{id}/members", s.addMember)
	s.mux.HandleFunc("GET /api/projects/{id}/statuses", s.listStatuses)
	s.mux.HandleFunc("POST /api/projects/{id}/statuses", s.createStatus)
	s.mux.HandleFunc("GET /api/projects/{id}/tasks", s.listTasks)
	s.mux.HandleFunc("POST /api/projects/{id}/priorities", s.recomputeProject)
	s.mux.HandleFunc("GET /api/projects/{id}/deadline-risk", s.projectDeadlineRisk)
	s.mux.HandleFunc("GET /api/projects/{id}/overview", s.projectOverview)

	s.mux.HandleFunc("PATCH /api/statuses/{id}", s.updateStatus)
	s.mux.HandleFunc("DELETE /api/statuses/{id}", s.deleteStatus)

	s.mux.HandleFunc("POST /api/tasks", s.createTask)
	s.mux.HandleFunc("GET /api/tasks/{id}", s.getTask)
	s.mux.HandleFunc("PATCH /api/tasks/{id}", s.updateTask)
	s.mux.HandleFunc("DELETE /api/tasks/{id}", s.deleteTask)
	s.mux.HandleFunc("POST /api/tasks/{id}/priority", s.recomputeTask)
	s.mux.HandleFunc("GET /api/tasks/{id}/priority-insights", s.priorityInsights)
	s.mux.HandleFunc("GET /api/tasks/{id}/deadline-insights", s.deadlineInsights)

	s.mux.HandleFunc("POST /api/deadline-sweep", s.runSweep)

	s.mux.HandleFunc("GET /api/users/{id}/notifications", s.listNotifications)
	s.mux.HandleFunc("POST /api/users/{id}/notifications", s.createNotification)
	s.mux.HandleFunc("GET /api/users/{id}/notifications/stats", s.notificationStats)
	s.mux.HandleFunc("PUT /api/users/{id}/notifications/read-all", s.markAllRead)
	s.mux.HandleFunc("PUT /api/notifications/{id}/read", s.markRead)
	s.mux.HandleFunc("DELETE /api/notifications/{id}", s.deleteNotification)

	s.mux.HandleFunc("GET /api/metrics", s.serveMetrics)
	s.mux.HandleFunc("GET /api/events", s.streamEvents)
	s.mux.HandleFunc("POST /api/events", s.publishEvent)
}

// Handler returns the routed handler wrapped in the middleware chain
func (s *Server) Handler() http.Handler {
	var h http.Handler = s.mux
	h = withTimeout(s.requestTimeout, isStream)(h)
	h = withRecover(h)
	h = withLogging(h)
	h = withRequestID(h)
	return h
}

func isStream(r *http.Request) bool {
	return r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/api/events")
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) serveMetrics(w http.ResponseWriter, r *http.Request) {
	if s.metrics == nil {
		writeError(w, http.StatusNotFound, "metrics not enabled")
		return
	}
	writeJSON(w, http.StatusOK, s.metrics())
}
