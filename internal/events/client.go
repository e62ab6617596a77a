package events

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"
)

// EventsPath is where a daemon accepts events from other processes
const EventsPath = "/api/events"

// Client forwards events from a short-lived process, such as a CLI command,
// to a running daemon, which republishes them on its broker.
type Client struct {
	baseURL string
	http    *http.Client

	mu     sync.Mutex
	queue   chan Event
	started bool
	closed  bool

	senderDone chan struct{}
}

// NewClient creates a client for the daemon at addr but does not connect.
// addr may be host:port or a full http URL.
func NewClient(addr string) (*Client, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, fmt.Errorf("daemon address is empty")
	}
	if !strings.Contains(addr, "://") {
		addr = "http://" + addr
	}
	return &Client{
		baseURL:    strings.TrimRight(addr, "/"),
		http:       &http.Client{Timeout: 2 * time.Second},
		queue:      make(chan Event, 100),
		senderDone: make(chan struct{}),
	}, nil
}

// Connect checks that the daemon answers its health check and starts the
// sender. A client that failed to connect must not be used.
func (c *Client) Connect(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach daemon: %w", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("daemon health check returned %s", resp.Status)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClientClosed
	}
	if !c.started {
		c.started = true
		go c.startSender()
	}
	return nil
}

// SendEvent queues an event for the daemon. It never blocks.
func (c *Client) SendEvent(event Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClientClosed
	}
	select {
	case c.queue <- event:
		return nil
	default:
		return ErrQueueFull
	}
}

// startSender posts queued events in order until the queue is closed
func (c *Client) startSender() {
	defer close(c.senderDone)
	for event := range c.queue {
		if err := c.post(event); err != nil {
			slog.Debug("failed to forward event to daemon",
				"event_type", event.Type,
				"project_id", event.ProjectID,
				"error", err)
		}
	}
}

func (c *Client) post(event Event) error {
	// the daemon's broker assigns sequence numbers
	event.SequenceID = 0
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	resp, err := c.http.Post(c.baseURL+EventsPath, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("daemon rejected event: %s", resp.Status)
	}
	return nil
}

// Close flushes queued events and stops the sender. It is safe to call twice.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	started := c.started
	close(c.queue)
	c.mu.Unlock()

	if started {
		<-c.senderDone
	}
	return nil
}
