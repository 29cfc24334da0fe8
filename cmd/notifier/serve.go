package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	httpapi "elearning-notifier/internal/api/http"
	"elearning-notifier/internal/logger"
	"elearning-notifier/internal/security"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the notification trigger endpoint over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			logger.Info("Starting notification notifier...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
			logger.Info("Server configuration", "address", cfg.GetServerAddress(), "user_store", cfg.UserStore.Backend)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx, cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			var tokens security.PushTokenManager
			if cfg.Server.PushSecret != "" {
				tokens = security.NewPushTokenManager(cfg.Server.PushSecret)
			} else {
				logger.Warn("Push secret not set; trigger endpoint accepts unauthenticated deliveries")
			}

			router := mux.NewRouter()
			httpapi.RegisterRoutes(router, httpapi.NewTriggerHandler(a.dispatcher, tokens),
				promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))

			srv := &http.Server{
				Addr:              cfg.GetServerAddress(),
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("HTTP server listening", "address", srv.Addr)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					logger.Error("HTTP server error", "error", err)
					return err
				}
			case <-ctx.Done():
			}

			logger.Info("Shutting down HTTP server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}
