package events

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// PublishWithRetry attempts to publish an event with retry logic.
// It makes up to maxRetries attempts with exponential backoff (50ms, 100ms, 200ms...).
// A closed broker or a cancelled context ends the retries early.
//
// Events are advisory: callers log the returned error and carry on.
func PublishWithRetry(ctx context.Context, client EventPublisher, event Event, maxRetries int) error {
	if client == nil {
		return nil
	}

	var lastErr error
	baseDelay := 50 * time.Millisecond

	for attempt := 0; attempt < maxRetries; attempt++ {
		err := client.SendEvent(event)
		if err == nil {
			if attempt > 0 {
				slog.Debug("event published after retry",
					"attempt", attempt+1,
					"event_type", event.Type,
					"project_id", event.ProjectID)
			}
			return nil
		}

		lastErr = err
		if errors.Is(err, ErrBrokerClosed) {
			return err
		}

		if attempt < maxRetries-1 {
			delay := baseDelay * (1 << attempt)
			slog.Debug("event publish failed, retrying",
				"attempt", attempt+1,
				"max_retries", maxRetries,
				"retry_delay", delay,
				"error", err)

			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}
	}

	if lastErr != nil {
		slog.Warn("event publish failed after all retries",
			"attempts", maxRetries,
			"event_type", event.Type,
			"project_id", event.ProjectID,
			"error", lastErr)
	}

	return lastErr
}
