package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/config"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/launcher"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/logging"
)

// synergyd is the service entrypoint for process managers; it is equivalent
// to "synergy serve" but logs to stderr unless a log file is configured.
func main() {
	// Set up signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logFile := cfg.Logging.File
	if logFile == "" {
		logFile = "-"
	}
	closer, err := logging.Init(logging.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format, File: logFile})
	if err != nil {
		slog.Error("failed to initialize logging", "error", err)
		os.Exit(1)
	}
	defer closer.Close()

	if err := launcher.Serve(ctx, cfg); err != nil {
		slog.Error("daemon error", "error", err)
		cancel()
		os.Exit(1)
	}
}
