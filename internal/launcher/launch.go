package launcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/app"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/config"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/daemon"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/database"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/events"
)

// BrokerBuffer is the per-subscriber event buffer
const BrokerBuffer = 64

// Serve opens the configured database, wires the event broker into the
// application and runs the HTTP daemon until ctx is canceled.
func Serve(ctx context.Context, cfg *config.Config) error {
	db, dialect, err := database.InitDB(ctx, cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	// database cleanup
	defer func() {
		// Allow time for in-flight operations to complete
		drainCtx, drainCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer drainCancel()
		select {
		case <-drainCtx.Done():
			slog.Info("drain period complete, closing database")
		case <-time.After(100 * time.Millisecond):
		}

		if err := db.Close(); err != nil {
			slog.Error("error closing database", "error", err)
		}
	}()

	broker := events.NewBroker(BrokerBuffer)
	application := app.New(
		database.NewRepository(db, dialect),
		app.WithConfig(cfg),
		app.WithEventPublisher(broker),
	)
	defer func() {
		if err := application.Close(); err != nil {
			slog.Error("error closing app", "error", err)
		}
	}()

	server, err := daemon.NewServer(application, broker)
	if err != nil {
		return fmt.Errorf("failed to create daemon: %w", err)
	}

	slog.Info("synergy daemon starting",
		"addr", server.Addr(),
		"driver", cfg.Database.Driver,
		"sweep", cfg.Sweep.Enabled,
		"pid", os.Getpid())

	// blocks until shutdown
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("daemon error: %w", err)
	}

	slog.Info("synergy daemon shut down gracefully")
	return nil
}
