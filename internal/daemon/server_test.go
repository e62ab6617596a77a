package daemon

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/app"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/config"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/events"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/testutil"
)

type testDaemon struct {
	server *Server
	base   string
	cancel context.CancelFunc
	done   chan error
}

func setupTestDaemon(t *testing.T, mutate func(*config.Config)) *testDaemon {
	t.Helper()

	cfg := config.Default()
	cfg.Server.Addr = "127.0.0.1:0"
	cfg.Sweep.Enabled = false
	if mutate != nil {
		mutate(cfg)
	}

	repo := testutil.SetupTestDB(t)
	broker := events.NewBroker(0)
	a := app.New(repo,
		app.WithConfig(cfg),
		app.WithEventPublisher(broker),
		app.WithClock(testutil.FixedClock(testutil.Now)),
	)

	server, err := NewServer(a, broker)
	if err != nil {
		t.Fatalf("Failed to create test daemon: %v", err)
	}
	server.pollInterval = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	d := &testDaemon{
		server: server,
		base:   "http://" + server.Addr(),
		cancel: cancel,
		done:   make(chan error, 1),
	}
	go func() { d.done <- server.Start(ctx) }()
	t.Cleanup(func() {
		cancel()
		_ = server.Shutdown()
	})

	waitFor(t, 2*time.Second, func() bool {
		resp, err := http.Get(d.base + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	})
	return d
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("Timeout waiting for condition")
}

func (d *testDaemon) snapshot(t *testing.T) MetricsSnapshot {
	t.Helper()
	resp, err := http.Get(d.base + "/api/metrics")
	if err != nil {
		t.Fatalf("GET /api/metrics: %v", err)
	}
	defer resp.Body.Close()
	var snap MetricsSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		t.Fatalf("Failed to decode metrics: %v", err)
	}
	return snap
}

func TestNewServer_InvalidAddr(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Addr = "not-an-address"
	a := app.New(testutil.SetupTestDB(t), app.WithConfig(cfg))

	if _, err := NewServer(a, events.NewBroker(0)); err == nil {
		t.Fatal("Expected error for invalid listen address")
	}
}

func TestServer_MetricsFollowEvents(t *testing.T) {
	d := setupTestDaemon(t, nil)

	resp, err := http.Post(d.base+"/api/projects", "application/json", strings.NewReader(`{"name":"Daemon"}`))
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create project status = %d", resp.StatusCode)
	}

	body := fmt.Sprintf(`{"project_id":1,"title":"Observe me","due_date":%q}`, testutil.Today().AddDays(1))
	resp, err = http.Post(d.base+"/api/tasks", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create task status = %d", resp.StatusCode)
	}

	waitFor(t, 2*time.Second, func() bool {
		return d.snapshot(t).PriorityRecomputes >= 1
	})
	if snap := d.snapshot(t); snap.ConnectedClients != 0 {
		t.Errorf("ConnectedClients = %d, want 0", snap.ConnectedClients)
	}
}

func TestServer_RunsSweepOnStart(t *testing.T) {
	d := setupTestDaemon(t, func(cfg *config.Config) {
		cfg.Sweep.Enabled = true
		cfg.Sweep.RunOnStart = true
		cfg.Sweep.Interval = config.Duration{Duration: time.Hour}
	})

	waitFor(t, 2*time.Second, func() bool {
		return d.server.Metrics().SweepsRun.Load() == 1
	})
	snap := d.snapshot(t)
	if snap.SweepsFailed != 0 {
		t.Errorf("SweepsFailed = %d, want 0", snap.SweepsFailed)
	}
	if snap.LastSweep == nil {
		t.Error("LastSweep should be set after a sweep")
	}
}

func TestShutdown_GracefulClose(t *testing.T) {
	d := setupTestDaemon(t, nil)

	d.cancel()
	select {
	case err := <-d.done:
		if err != nil {
			t.Errorf("Start returned %v, want nil", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Start did not return after cancel")
	}

	if _, err := http.Get(d.base + "/healthz"); err == nil {
		t.Error("Expected connection error after shutdown")
	}
}

func TestShutdown_Idempotent(t *testing.T) {
	d := setupTestDaemon(t, nil)

	if err := d.server.Shutdown(); err != nil {
		t.Fatalf("First Shutdown failed: %v", err)
	}
	if err := d.server.Shutdown(); err != nil {
		t.Fatalf("Second Shutdown failed: %v", err)
	}

	select {
	case err := <-d.done:
		if err != nil {
			t.Errorf("Start returned %v after Shutdown, want nil", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Start did not return after Shutdown")
	}
}
