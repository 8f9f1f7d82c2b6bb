package tracker

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"camp-map-tracker/internal/config"
	"camp-map-tracker/internal/mapview"
	"camp-map-tracker/internal/metrics"
)

// Service drives the update loop: fetch telemetry once per tick, render at
// most one snapshot, and reconcile every bound guild's map message.
type Service struct {
	interval time.Duration
	mapName  string
	calib    mapview.Calibration

	telemetry TelemetryClient
	discord   DiscordSession
	store     BindingStore
	renderer  SnapshotRenderer
	colors    *mapview.ColorTable

	running atomic.Bool
}

func NewService(cfg *config.Config, calib mapview.Calibration, store BindingStore, discord DiscordSession, telemetry TelemetryClient, renderer SnapshotRenderer, colors *mapview.ColorTable) *Service {
	return &Service{
		interval:  cfg.UpdateInterval,
		mapName:   cfg.MapName,
		calib:     calib,
		telemetry: telemetry,
		discord:   discord,
		store:     store,
		renderer:  renderer,
		colors:    colors,
	}
}

func (s *Service) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	slog.Info("Map tracker started", "interval", s.interval)

	s.runCycle(ctx, "", false)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runCycle(ctx, "", false)
		}
	}
}

// Trigger starts a forced cycle for one guild in the background. Forced
// cycles re-publish even when the snapshot hash is unchanged. Returns false
// when a cycle is already in flight; triggers are dropped, never queued.
func (s *Service) Trigger(ctx context.Context, guildID string) bool {
	if s.running.Load() {
		slog.Warn("Update cycle in progress, trigger dropped", "guild_id", guildID)
		metrics.UpdateCycles.WithLabelValues("dropped").Inc()
		return false
	}
	go s.runCycle(ctx, guildID, true)
	return true
}

// runCycle is the single entry point for all updates, scheduled and forced.
// The guard admits one cycle at a time; overlapping attempts are dropped.
func (s *Service) runCycle(ctx context.Context, guildID string, forced bool) {
	if !s.running.CompareAndSwap(false, true) {
		slog.Warn("Update cycle in progress, trigger dropped", "guild_id", guildID, "forced", forced)
		metrics.UpdateCycles.WithLabelValues("dropped").Inc()
		return
	}
	defer s.running.Store(false)

	snap, err := s.buildSnapshot()
	if err != nil {
		slog.Error("Failed to fetch telemetry, keeping previous snapshots", "error", err)
		metrics.UpdateCycles.WithLabelValues("fetch_error").Inc()
		return
	}

	bindings, err := s.cycleBindings(ctx, guildID)
	if err != nil {
		slog.Error("Failed to load bindings", "error", err)
		metrics.UpdateCycles.WithLabelValues("store_error").Inc()
		return
	}

	slog.Info("Running update cycle",
		"players", len(snap.players),
		"camps", len(snap.camps),
		"bindings", len(bindings),
		"forced", forced)

	for _, binding := range bindings {
		if err := s.publish(ctx, snap, binding, forced); err != nil {
			slog.Error("Failed to update map message", "guild_id", binding.GuildID, "error", err)
			metrics.BindingUpdates.WithLabelValues("error").Inc()
		}
	}

	metrics.UpdateCycles.WithLabelValues("ok").Inc()
}
