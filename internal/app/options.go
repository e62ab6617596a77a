package app

import (
	"log/slog"
	"time"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/config"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/events"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	eventClient events.EventPublisher
	logger      *slog.Logger
	config      *config.Config
	now         func() time.Time
}

// WithEventPublisher sets the event publisher for the application
func WithEventPublisher(ec events.EventPublisher) Option {
	return func(cfg *appConfig) {
		cfg.eventClient = ec
	}
}

// WithLogger sets the logger for the application
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *appConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithConfig builds the services from c instead of the defaults
func WithConfig(c *config.Config) Option {
	return func(cfg *appConfig) {
		if c != nil {
			cfg.config = c
		}
	}
}

// WithClock sets the clock every service reads
func WithClock(now func() time.Time) Option {
	return func(cfg *appConfig) {
		if now != nil {
			cfg.now = now
		}
	}
}
