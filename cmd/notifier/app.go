package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"elearning-notifier/internal/config"
	"elearning-notifier/internal/logger"
	"elearning-notifier/internal/metrics"
	"elearning-notifier/internal/repository"
	"elearning-notifier/internal/repository/firestoredb"
	"elearning-notifier/internal/repository/postgres"
	"elearning-notifier/internal/service"
)

// app holds the process-wide dependencies. They are built once and shared,
// read-only, by every dispatch.
type app struct {
	cfg        *config.Config
	dispatcher *service.NotificationDispatcher
	registry   *prometheus.Registry
	closers    []func() error
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{cfg: cfg, registry: prometheus.NewRegistry()}
	a.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	users, err := a.openUserStore(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	transport := service.NewMailTransport(cfg)
	if transport == nil {
		logger.Warn("Mail credentials not configured; notification emails are disabled", "provider", cfg.Mail.Provider)
	} else {
		logger.Info("Mail transport configured", "provider", transport.Name(), "account", cfg.Mail.Account)
	}

	loc, err := cfg.Location()
	if err != nil {
		a.Close()
		return nil, err
	}

	recorder, err := metrics.NewDispatchMetrics(a.registry)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	a.dispatcher = service.NewNotificationDispatcher(
		users,
		transport,
		service.NewEmailRenderer(loc, cfg.Mail.FromName),
		service.DispatcherOptions{
			Logger:      logger.WithService("notification-dispatcher"),
			Recorder:    recorder,
			SendTimeout: cfg.Dispatcher.SendTimeout,
		},
	)
	return a, nil
}

func (a *app) openUserStore(ctx context.Context) (repository.UserProfileRepository, error) {
	switch a.cfg.UserStore.Backend {
	case config.UserStorePostgres:
		logger.Info("Connecting to database...", "host", a.cfg.Database.Host, "port", a.cfg.Database.Port, "database", a.cfg.Database.Database)
		db, err := sql.Open("postgres", a.cfg.GetDatabaseConnectionString())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		a.closers = append(a.closers, db.Close)
		if err := db.PingContext(ctx); err != nil {
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
		logger.Info("Database connection established")
		return postgres.NewUserProfileRepository(db), nil
	default:
		logger.Info("Connecting to Firestore...", "project_id", a.cfg.Firebase.ProjectID)
		client, err := firestoredb.NewClient(ctx, a.cfg.Firebase)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Close)
		return firestoredb.NewUserProfileRepository(client, a.cfg.UserStore.Collection), nil
	}
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			logger.Error("Failed to close resource", "error", err)
		}
	}
	a.closers = nil
}
