package app

import (
	"log/slog"
	"time"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/config"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/database"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/events"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/risk"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/scoring"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/services/analytics"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/services/deadline"
	notificationservice "github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/services/notification"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/services/priority"
	projectservice "github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/services/project"
	statusservice "github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/services/status"
	taskservice "github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/services/task"
	userservice "github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/services/user"
)

// App holds all application services and provides dependency injection.
// This is the main application container that manages service lifecycles.
type App struct {
	// Repository layer (direct database access)
	repo database.DataStore

	// Event system for live updates
	eventClient events.EventPublisher

	cfg    *config.Config
	logger *slog.Logger

	// Engine components shared by the services
	Engine    *scoring.Engine
	Analyzer  *risk.Analyzer
	Estimator *risk.Estimator

	// Service layer (business logic)
	TaskService         taskservice.Service
	ProjectService      projectservice.Service
	StatusService       statusservice.Service
	UserService         userservice.Service
	PriorityService     priority.Service
	DeadlineService     deadline.Service
	NotificationService notificationservice.Service
	AnalyticsService    analytics.Service
}

// New creates a new App with all services initialized.
// This is the single entry point for creating the application container.
func New(repo database.DataStore, opts ...Option) *App {
	cfg := &appConfig{
		config: config.Default(),
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	c := cfg.config
	engine := scoring.NewEngine(c.Scoring, cfg.now)
	analyzer := risk.NewAnalyzer(c.Risk)
	estimator := risk.NewEstimator(c.Risk.Progress)
	deadlineService := deadline.NewService(repo, analyzer, c.Deadline, cfg.eventClient, cfg.now)

	return &App{
		repo:        repo,
		eventClient: cfg.eventClient,
		cfg:         c,
		logger:      cfg.logger,
		Engine:      engine,
		Analyzer:    analyzer,
		Estimator:   estimator,
		TaskService: taskservice.NewService(repo, engine, cfg.eventClient,
			taskservice.WithCycleDetection(c.Graph.DetectCycles),
			taskservice.WithRiskChecker(deadlineService),
			taskservice.WithClock(cfg.now),
		),
		ProjectService:      projectservice.NewService(repo, cfg.now),
		StatusService:       statusservice.NewService(repo, estimator),
		UserService:         userservice.NewService(repo, cfg.now),
		PriorityService:     priority.NewService(repo, engine, cfg.eventClient),
		DeadlineService:     deadlineService,
		NotificationService: notificationservice.NewService(repo, cfg.eventClient, cfg.now),
		AnalyticsService:    analytics.NewService(repo, analyzer, cfg.now),
	}
}

// Repo returns the underlying repository for direct database access.
func (a *App) Repo() database.DataStore {
	return a.repo
}

// Config returns the configuration the services were built from.
func (a *App) Config() *config.Config {
	return a.cfg
}

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Events returns the publisher services announce changes on; nil when none was configured.
func (a *App) Events() events.EventPublisher {
	return a.eventClient
}

// Close performs cleanup of application resources.
// The repository is owned by the caller and stays open.
func (a *App) Close() error {
	return nil
}
