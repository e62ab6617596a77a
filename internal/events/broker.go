package events

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultSubscriberBuffer is the per-subscriber queue size.
const DefaultSubscriberBuffer = 16

type subscription struct {
	projectID int
	ch        chan Event
}

// Broker fans events out to in-process subscribers. Slow subscribers lose
// events instead of blocking publishers.
type Broker struct {
	mu         sync.RWMutex
	subs       map[*subscription]struct{}
	closed     bool
	bufferSize int
	sequence   atomic.Int64
	dropped    atomic.Int64
	now        func() time.Time
}

// NewBroker creates a broker; bufferSize <= 0 uses DefaultSubscriberBuffer.
func NewBroker(bufferSize int) *Broker {
	if bufferSize <= 0 {
		bufferSize = DefaultSubscriberBuffer
	}
	return &Broker{
		subs:       make(map[*subscription]struct{}),
		bufferSize: bufferSize,
		now:        time.Now,
	}
}

// SendEvent stamps the event with a sequence number and delivers it to every
// matching subscriber without blocking.
func (b *Broker) SendEvent(event Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return ErrBrokerClosed
	}

	event.SequenceID = b.sequence.Add(1)
	if event.Timestamp.IsZero() {
		event.Timestamp = b.now().UTC()
	}

	for sub := range b.subs {
		if !event.Matches(sub.projectID) {
			continue
		}
		select {
		case sub.ch <- event:
		default:
			b.dropped.Add(1)
			slog.Debug("subscriber queue full, event dropped",
				"event_type", event.Type,
				"project_id", event.ProjectID)
		}
	}
	return nil
}

// Subscribe registers a subscriber. The returned cancel func is idempotent.
func (b *Broker) Subscribe(projectID int) (<-chan Event, func()) {
	sub := &subscription{projectID: projectID, ch: make(chan Event, b.bufferSize)}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(sub.ch)
		return sub.ch, func() {}
	}
	b.subs[sub] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	return sub.ch, func() {
		once.Do(func() { b.remove(sub) })
	}
}

func (b *Broker) remove(sub *subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subs[sub]; ok {
		delete(b.subs, sub)
		close(sub.ch)
	}
}

// Subscribers returns the current subscriber count.
func (b *Broker) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Dropped returns how many deliveries were skipped because a queue was full.
func (b *Broker) Dropped() int64 {
	return b.dropped.Load()
}

// Close ends every subscription. Later SendEvent calls fail with ErrBrokerClosed.
func (b *Broker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	for sub := range b.subs {
		close(sub.ch)
	}
	b.subs = make(map[*subscription]struct{})
	return nil
}
