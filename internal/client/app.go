package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/MKhiriev/go-session-keeper/internal/adapter"
	"github.com/MKhiriev/go-session-keeper/internal/config"
	"github.com/MKhiriev/go-session-keeper/internal/guard"
	"github.com/MKhiriev/go-session-keeper/internal/logger"
	"github.com/MKhiriev/go-session-keeper/internal/metrics"
	"github.com/MKhiriev/go-session-keeper/internal/service"
	"github.com/MKhiriev/go-session-keeper/internal/session"
	"github.com/MKhiriev/go-session-keeper/internal/store"
	"github.com/MKhiriev/go-session-keeper/internal/tui"
	"github.com/MKhiriev/go-session-keeper/internal/workers"
	"github.com/MKhiriev/go-session-keeper/models"
)

type App struct {
	storages *store.ClientStorages
	sessions *session.Manager
	api      adapter.API
	services *service.ClientServices
	workers  *workers.Workers
	tui      *tui.TUI
	registry *prometheus.Registry

	metricsAddress string
	metricsServer  *metrics.Server

	logger *logger.Logger
}

var _ Client = (*App)(nil)

// NewApp builds every client component from cfg. Storage opened here is
// released by Run, or by Close when Run is never called.
func NewApp(ctx context.Context, cfg *config.ClientConfig, buildInfo models.AppBuildInfo, log *logger.Logger) (*App, error) {
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	storages, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("create credential store: %w", err)
	}

	sessions := session.NewManager(storages.CredentialStore, log, session.WithMetrics(collector))

	api, err := adapter.NewHTTPServerAdapter(cfg.Adapter, sessions, collector, log)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("create api client: %w", err), storages.Close())
	}

	services := service.NewClientServices(api, sessions, log)

	ui, err := tui.New(services, sessions, guard.Policy{
		PublicEntry:           cfg.Guard.PublicEntry,
		PrivateEntry:          cfg.Guard.PrivateEntry,
		RedirectAuthenticated: cfg.Guard.RedirectAuthenticated,
	}, buildInfo, log)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("create ui: %w", err), storages.Close())
	}

	return &App{
		storages: storages,
		sessions: sessions,
		api:      api,
		services: services,
		workers: workers.NewWorkers(
			workers.NewProfileRefresher(services.AuthService, sessions, cfg.Workers.ProfileRefreshInterval, log),
		),
		tui:            ui,
		registry:       registry,
		metricsAddress: cfg.Metrics.Address,
		logger:         log.WithComponent("app"),
	}, nil
}

// Run starts the metrics endpoint when configured, the background workers and
// the terminal UI, and blocks until the UI exits. Quitting from the UI is not
// an error.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	if err := a.startMetrics(); err != nil {
		return err
	}
	defer a.stopMetrics()

	a.workers.Start(ctx)
	defer a.workers.Stop()

	err := a.tui.Run(ctx)
	if errors.Is(err, tui.ErrUserQuit) {
		a.logger.Info().Str("func", "App.Run").Msg("user quit")
		return nil
	}
	return err
}

// Close releases storage resources.
func (a *App) Close() {
	if err := a.storages.Close(); err != nil {
		a.logger.Err(err).Str("func", "App.Close").Msg("failed to close storage")
	}
}

func (a *App) startMetrics() error {
	if a.metricsAddress == "" {
		return nil
	}

	srv, err := metrics.StartServer(a.metricsAddress, a.registry, a.logger)
	if err != nil {
		return fmt.Errorf("start metrics server: %w", err)
	}
	a.metricsServer = srv
	return nil
}

func (a *App) stopMetrics() {
	if a.metricsServer == nil {
		return
	}
	if err := a.metricsServer.Shutdown(); err != nil {
		a.logger.Err(err).Str("func", "App.stopMetrics").Msg("failed to stop metrics server")
	}
	a.metricsServer = nil
}

// Metrics exposes the collected client metrics.
func (a *App) Metrics() prometheus.Gatherer {
	return a.registry
}
