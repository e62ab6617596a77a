package events

import (
	"context"
	"errors"
	"testing"
	"time"
)

// mockRetryPublisher fails the first failUntil attempts
type mockRetryPublisher struct {
	sendAttempts int
	failUntil    int
	failWith     error
	lastEvent    Event
}

func (m *mockRetryPublisher) SendEvent(event Event) error {
	m.lastEvent = event
	currentAttempt := m.sendAttempts
	m.sendAttempts++

	if currentAttempt < m.failUntil {
		if m.failWith != nil {
			return m.failWith
		}
		return errors.New("simulated send failure")
	}
	return nil
}

func TestPublishWithRetry_Success(t *testing.T) {
	mock := &mockRetryPublisher{}
	event := Event{Type: EventPriorityChanged, ProjectID: 1, TaskID: 7}

	if err := PublishWithRetry(context.Background(), mock, event, 3); err != nil {
		t.Errorf("Expected success, got error: %v", err)
	}
	if mock.sendAttempts != 1 {
		t.Errorf("Expected 1 attempt, got %d", mock.sendAttempts)
	}
	if mock.lastEvent.TaskID != 7 {
		t.Errorf("Expected event task ID 7, got %d", mock.lastEvent.TaskID)
	}
}

func TestPublishWithRetry_SuccessAfterRetries(t *testing.T) {
	mock := &mockRetryPublisher{failUntil: 2}

	start := time.Now()
	err := PublishWithRetry(context.Background(), mock, Event{Type: EventSweepCompleted}, 3)
	duration := time.Since(start)

	if err != nil {
		t.Errorf("Expected success after retries, got error: %v", err)
	}
	if mock.sendAttempts != 3 {
		t.Errorf("Expected 3 attempts, got %d", mock.sendAttempts)
	}
	// 50ms + 100ms of backoff
	if duration < 150*time.Millisecond {
		t.Errorf("Expected at least 150ms delay for retries, got %v", duration)
	}
}

func TestPublishWithRetry_FailureAfterAllRetries(t *testing.T) {
	mock := &mockRetryPublisher{failUntil: 999}

	err := PublishWithRetry(context.Background(), mock, Event{Type: EventSweepCompleted}, 2)
	if err == nil || err.Error() != "simulated send failure" {
		t.Errorf("Expected final send error, got %v", err)
	}
	if mock.sendAttempts != 2 {
		t.Errorf("Expected 2 attempts, got %d", mock.sendAttempts)
	}
}

func TestPublishWithRetry_ClosedBrokerStopsEarly(t *testing.T) {
	mock := &mockRetryPublisher{failUntil: 999, failWith: ErrBrokerClosed}

	err := PublishWithRetry(context.Background(), mock, Event{Type: EventPing}, 5)
	if !errors.Is(err, ErrBrokerClosed) {
		t.Errorf("Expected ErrBrokerClosed, got %v", err)
	}
	if mock.sendAttempts != 1 {
		t.Errorf("Expected 1 attempt, got %d", mock.sendAttempts)
	}
}

func TestPublishWithRetry_CancelledContext(t *testing.T) {
	mock := &mockRetryPublisher{failUntil: 999}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := PublishWithRetry(ctx, mock, Event{Type: EventPing}, 5)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestPublishWithRetry_NilClient(t *testing.T) {
	if err := PublishWithRetry(context.Background(), nil, Event{Type: EventPing}, 3); err != nil {
		t.Errorf("Expected nil error for nil client, got: %v", err)
	}
}

func TestPublishWithRetry_ZeroRetries(t *testing.T) {
	mock := &mockRetryPublisher{failUntil: 999}

	if err := PublishWithRetry(context.Background(), mock, Event{Type: EventPing}, 0); err != nil {
		t.Errorf("Expected nil error with 0 retries, got: %v", err)
	}
	if mock.sendAttempts != 0 {
		t.Errorf("Expected 0 attempts with maxRetries=0, got %d", mock.sendAttempts)
	}
}
