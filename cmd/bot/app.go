package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"camp-map-tracker/internal/config"
	"camp-map-tracker/internal/gameapi"
	"camp-map-tracker/internal/handlers"
	"camp-map-tracker/internal/mapview"
	"camp-map-tracker/internal/statestore"
	"camp-map-tracker/internal/tracker"

	"github.com/bwmarrin/discordgo"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type App struct {
	config             *config.Config
	store              *statestore.SQLiteStore
	discord            *discordgo.Session
	trackerService     *tracker.Service
	router             *handlers.Router
	metricsServer      *http.Server
	trackerCtx         context.Context
	trackerCancel      context.CancelFunc
	registeredCommands []*discordgo.ApplicationCommand
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	store, err := statestore.Open(cfg.StatePath)
	if err != nil {
		slog.Error("Failed to open state store", "error", err)
		return nil, err
	}

	baseMap, err := mapview.LoadBaseMap(cfg.MapImagePath)
	if err != nil {
		slog.Error("Failed to load base map", "path", cfg.MapImagePath, "error", err)
		store.Close()
		return nil, err
	}

	colors, err := mapview.NewColorTable(store)
	if err != nil {
		slog.Error("Failed to load guild colors", "error", err)
		store.Close()
		return nil, err
	}

	discord, err := NewDiscordSession(cfg)
	if err != nil {
		store.Close()
		return nil, err
	}

	calib := mapview.Calibration{
		WorldOffsetX: cfg.WorldOffsetX,
		WorldOffsetY: cfg.WorldOffsetY,
		WorldScale:   cfg.WorldScale,
		PixelScaleX:  cfg.PixelScaleX,
		PixelOffsetX: cfg.PixelOffsetX,
		PixelScaleY:  cfg.PixelScaleY,
		PixelOffsetY: cfg.PixelOffsetY,
	}
	renderer := mapview.NewRenderer(baseMap, calib, mapview.NewIconCache(cfg.IconDir), cfg.OutputSize)
	telemetry := gameapi.NewClient(cfg.PlayerAPIURL, cfg.PlayerAPIPassword, cfg.GuildAPIURL, cfg.GuildAPIToken)
	trackerService := tracker.NewService(cfg, calib, store, discord, telemetry, renderer, colors)

	botHandlers := &handlers.BotHandler{Store: store, Tracker: trackerService}
	router := handlers.NewRouter()
	router.Register("map-attach", handlers.WithAdmin(botHandlers.AttachMap))
	router.Register("map-detach", handlers.WithAdmin(botHandlers.DetachMap))
	router.Register("map-status", botHandlers.MapStatus)
	router.Register("map-update", botHandlers.ForceUpdate)

	discord.AddHandler(handlers.ReadyHandler)
	discord.AddHandler(router.HandleFunc())

	return &App{
		config:         cfg,
		store:          store,
		discord:        discord,
		trackerService: trackerService,
		router:         router,
	}, nil
}

func (a *App) Run() error {
	if err := a.discord.Open(); err != nil {
		slog.Error("Failed to open discord session", "error", err)
		return err
	}

	commands := GetApplicationCommands()
	CleanupCommands(a.discord, a.registeredCommands, a.discord.State.User.ID)
	a.registeredCommands = RegisterCommands(a.discord, commands, a.discord.State.User.ID)

	a.metricsServer = startMetricsServer(a.config.MetricsAddr)

	slog.Info("Camp Map Tracker is online!")

	a.trackerCtx, a.trackerCancel = context.WithCancel(context.Background())
	go a.trackerService.Start(a.trackerCtx)

	return nil
}

func (a *App) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down...")

	if a.trackerCancel != nil {
		a.trackerCancel()
	}

	var errs []error

	if a.discord != nil {
		if a.discord.State != nil && a.discord.State.User != nil {
			CleanupCommands(a.discord, a.registeredCommands, a.discord.State.User.ID)
		}
		if err := a.discord.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if a.metricsServer != nil {
		if err := a.metricsServer.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	if a.store != nil {
		if err := a.store.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func startMetricsServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server error", "error", err)
		}
	}()

	slog.Info("Metrics server listening", "addr", addr)
	return srv
}
