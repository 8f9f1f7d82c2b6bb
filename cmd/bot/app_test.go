package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"camp-map-tracker/internal/config"
	"camp-map-tracker/internal/statestore"
)

func TestApp_Shutdown(t *testing.T) {
	store, err := statestore.Open(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}

	trackerCtx, trackerCancel := context.WithCancel(context.Background())

	metricsServer := &http.Server{Addr: ":0"}
	go func() {
		_ = metricsServer.ListenAndServe()
	}()
	time.Sleep(10 * time.Millisecond)

	app := &App{
		config:        &config.Config{},
		store:         store,
		metricsServer: metricsServer,
		trackerCtx:    trackerCtx,
		trackerCancel: trackerCancel,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	if err := app.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}

	select {
	case <-trackerCtx.Done():
	default:
		t.Error("Tracker context was not cancelled")
	}

	// A closed store rejects further writes.
	if err := store.PutGuildColor("g", "#ffffff"); err == nil {
		t.Error("Expected store to be closed after shutdown")
	}
}

func TestApp_Shutdown_NilComponents(t *testing.T) {
	app := &App{config: &config.Config{}}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	// Shutdown before Run must not panic.
	if err := app.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}
}

func TestStartMetricsServer_ServesMetrics(t *testing.T) {
	srv := startMetricsServer("127.0.0.1:0")
	defer srv.Close()

	// The listener address is not exposed, so this only verifies the
	// handler wiring responds.
	req, err := http.NewRequest(http.MethodGet, "/metrics", nil)
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200 from /metrics, got %d", rec.Code)
	}
	if rec.Body.Len() == 0 {
		t.Error("Expected metrics payload")
	}
}
