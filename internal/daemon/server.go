package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/app"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/events"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/httpapi"
	"github.com/sourcegraph/conc"
)

// shutdownGrace bounds how long in-flight requests may run after shutdown starts
const shutdownGrace = 5 * time.Second

// Server is the long-running engine process: HTTP API, sweep scheduler and
// metrics collector sharing one broker
type Server struct {
	app          *app.App
	broker       *events.Broker
	listener     net.Listener
	http         *http.Server
	scheduler    *Scheduler
	metrics      *Metrics
	pollInterval time.Duration
	shutdownOnce sync.Once
	shutdownErr  error
}

// NewServer binds the configured address. The broker must be the publisher
// the app's services were built with, otherwise the stream and metrics stay empty.
func NewServer(a *app.App, broker *events.Broker) (*Server, error) {
	cfg := a.Config()

	lc := net.ListenConfig{}
	listener, err := lc.Listen(context.Background(), "tcp", cfg.Server.Addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", cfg.Server.Addr, err)
	}

	s := &Server{
		app:          a,
		broker:       broker,
		listener:     listener,
		metrics:      NewMetrics(),
		pollInterval: time.Second,
	}

	api := httpapi.NewServer(a,
		httpapi.WithSubscriber(broker),
		httpapi.WithPublisher(broker),
		httpapi.WithMetrics(func() any { return s.metrics.GetSnapshot() }),
		httpapi.WithRequestTimeout(cfg.Server.RequestTimeout.Duration),
	)
	s.http = &http.Server{
		Handler:           api.Handler(),
		ReadHeaderTimeout: cfg.Server.ReadTimeout.Duration,
		ReadTimeout:       cfg.Server.ReadTimeout.Duration,
		// WriteTimeout stays 0: it would cut the event stream
	}

	if cfg.Sweep.Enabled {
		s.scheduler = NewScheduler(a.DeadlineService, cfg.Sweep.Interval.Duration, cfg.Sweep.RunOnStart)
	}
	return s, nil
}

// Addr is the bound listen address
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Metrics returns the live counters
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Start serves until ctx is canceled or the listener fails, then shuts down
func (s *Server) Start(ctx context.Context) error {
	slog.Info("daemon starting", "addr", s.Addr(), "sweep", s.scheduler != nil)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// subscribe before serving so no event published by a request is missed
	feed, unsubscribe := s.broker.Subscribe(0)
	defer unsubscribe()

	serveErr := make(chan error, 1)
	var wg conc.WaitGroup
	wg.Go(func() {
		err := s.http.Serve(s.listener)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		serveErr <- err
		cancel()
	})
	wg.Go(func() { s.collect(runCtx, feed) })
	if s.scheduler != nil {
		wg.Go(func() { s.scheduler.Run(runCtx) })
	}

	<-runCtx.Done()
	slog.Info("daemon shutting down")
	shutdownErr := s.Shutdown()

	if r := wg.WaitAndRecover(); r != nil {
		return fmt.Errorf("daemon goroutine panicked: %w", r.AsError())
	}
	if err := <-serveErr; err != nil {
		return fmt.Errorf("http server: %w", err)
	}
	return shutdownErr
}

// collect feeds broker events into the metrics and polls the broker gauges
func (s *Server) collect(ctx context.Context, feed <-chan events.Event) {
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-feed:
			if !ok {
				return
			}
			s.metrics.Observe(e)
		case <-ticker.C:
			s.metrics.SetDropped(s.broker.Dropped())
			// the collector's own subscription is not a client
			s.metrics.SetConnectedClients(int32(max(s.broker.Subscribers()-1, 0)))
		}
	}
}

// Shutdown stops accepting requests, drains in-flight ones and closes the broker.
// It is safe to call more than once.
func (s *Server) Shutdown() error {
	s.shutdownOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()

		// closing the broker first ends open event streams so Shutdown can drain
		if err := s.broker.Close(); err != nil {
			slog.Warn("error closing broker", "error", err)
		}
		if err := s.http.Shutdown(ctx); err != nil {
			s.shutdownErr = fmt.Errorf("failed to shut down http server: %w", err)
		}
		slog.Info("daemon stopped")
	})
	return s.shutdownErr
}
