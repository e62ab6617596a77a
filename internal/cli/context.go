package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/app"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/config"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/database"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/events"
)

// daemonCheckTimeout bounds the health check NewCLI makes against the daemon
const daemonCheckTimeout = 300 * time.Millisecond

type appKey struct{}

// WithApp returns a context that makes GetCLIFromContext reuse a instead of
// opening the configured database. Tests and the daemon use it.
func WithApp(ctx context.Context, a *app.App) context.Context {
	return context.WithValue(ctx, appKey{}, a)
}

// CLI represents the CLI application context
type CLI struct {
	App   *app.App // Application container with services
	close func() error
}

// GetCLIFromContext returns the app injected with WithApp, or builds one from
// the loaded configuration
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	if ctx != nil {
		if a, ok := ctx.Value(appKey{}).(*app.App); ok && a != nil {
			return &CLI{App: a, close: func() error { return nil }}, nil
		}
	} else {
		ctx = context.Background()
	}
	return NewCLI(ctx)
}

// NewCLI opens the configured database and builds the application
func NewCLI(ctx context.Context) (*CLI, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	db, dialect, err := database.InitDB(ctx, cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	opts := []app.Option{app.WithConfig(cfg)}
	eventClient := connectDaemon(ctx, cfg.Server.Addr)
	if eventClient != nil {
		opts = append(opts, app.WithEventPublisher(eventClient))
	}
	application := app.New(database.NewRepository(db, dialect), opts...)

	return &CLI{
		App: application,
		close: func() error {
			if err := application.Close(); err != nil {
				slog.Error("error closing app", "error", err)
			}
			if eventClient != nil {
				// flushes events queued by the command
				_ = eventClient.Close()
			}
			return db.Close()
		},
	}, nil
}

// connectDaemon returns a client forwarding events to the daemon at addr,
// or nil when no daemon answers there
func connectDaemon(ctx context.Context, addr string) *events.Client {
	if addr == "" {
		return nil
	}
	client, err := events.NewClient(addr)
	if err != nil {
		return nil
	}
	checkCtx, cancel := context.WithTimeout(ctx, daemonCheckTimeout)
	defer cancel()
	if err := client.Connect(checkCtx); err != nil {
		slog.Debug("daemon not reachable, events stay local", "addr", addr, "error", err)
		_ = client.Close()
		return nil
	}
	return client
}

// Close cleans up CLI resources
func (c *CLI) Close() error {
	if c.close == nil {
		return nil
	}
	return c.close()
}
