package daemon

import (
	"sync/atomic"
	"time"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/events"
)

// Metrics tracks daemon statistics using atomic operations for thread-safety
type Metrics struct {
	SweepsRun            atomic.Int64
	SweepsFailed         atomic.Int64
	NotificationsCreated atomic.Int64
	PriorityRecomputes   atomic.Int64
	EventsPublished      atomic.Int64
	EventsDropped        atomic.Int64
	ConnectedClients     atomic.Int32
	LastSweep            atomic.Pointer[time.Time]
	StartTime            time.Time
}

// NewMetrics creates a new Metrics instance
func NewMetrics() *Metrics {
	return &Metrics{
		StartTime: time.Now(),
	}
}

// Observe updates the counters from one broker event
func (m *Metrics) Observe(e events.Event) {
	m.EventsPublished.Add(1)
	switch e.Type {
	case events.EventSweepCompleted:
		m.SweepsRun.Add(1)
		if e.Error != "" {
			m.SweepsFailed.Add(1)
		}
		ts := e.Timestamp
		m.LastSweep.Store(&ts)
	case events.EventNotificationCreated:
		m.NotificationsCreated.Add(int64(e.Count))
	case events.EventPriorityChanged:
		m.PriorityRecomputes.Add(1)
	}
}

// SetDropped records the broker's dropped-event total
func (m *Metrics) SetDropped(n int64) {
	m.EventsDropped.Store(n)
}

// SetConnectedClients sets the current connected clients count
func (m *Metrics) SetConnectedClients(count int32) {
	m.ConnectedClients.Store(count)
}

// MetricsSnapshot represents a point-in-time snapshot of metrics
type MetricsSnapshot struct {
	SweepsRun            int64      `json:"sweeps_run"`
	SweepsFailed         int64      `json:"sweeps_failed"`
	NotificationsCreated int64      `json:"notifications_created"`
	PriorityRecomputes   int64      `json:"priority_recomputes"`
	EventsPublished      int64      `json:"events_published"`
	EventsDropped        int64      `json:"events_dropped"`
	ConnectedClients     int32      `json:"connected_clients"`
	LastSweep            *time.Time `json:"last_sweep,omitempty"`
	StartTime            time.Time  `json:"start_time"`
	Uptime               string     `json:"uptime"`
}

// GetSnapshot returns a snapshot of current metrics
func (m *Metrics) GetSnapshot() MetricsSnapshot {
	return MetricsSnapshot{
		SweepsRun:            m.SweepsRun.Load(),
		SweepsFailed:         m.SweepsFailed.Load(),
		NotificationsCreated: m.NotificationsCreated.Load(),
		PriorityRecomputes:   m.PriorityRecomputes.Load(),
		EventsPublished:      m.EventsPublished.Load(),
		EventsDropped:        m.EventsDropped.Load(),
		ConnectedClients:     m.ConnectedClients.Load(),
		LastSweep:            m.LastSweep.Load(),
		StartTime:            m.StartTime,
		Uptime:               time.Since(m.StartTime).Round(time.Second).String(),
	}
}
