package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/library-circulation/circulation/api"
	"github.com/AntonStoeckl/library-circulation/circulation/features/command/returnbook"
	"github.com/AntonStoeckl/library-circulation/circulation/shared/shell"
	"github.com/AntonStoeckl/library-circulation/circulation/shared/shell/auth"
	"github.com/AntonStoeckl/library-circulation/circulation/shared/shell/config"
	"github.com/AntonStoeckl/library-circulation/circulation/shared/shell/eventbus"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig(cmd, map[string]string{
				"addr":          "http.addr",
				"strict-return": "borrowing.strict_return",
			})
			if err != nil {
				return err
			}

			return serve(cmd.Context(), cfg)
		},
	}

	cmd.Flags().String("addr", "", "listen address, e.g. :8080")
	cmd.Flags().Bool("strict-return", false, "reject returns of books that were removed from the catalog")

	return cmd
}

func serve(ctx context.Context, cfg config.Config) error {
	logger := config.NewLogger(cfg.Log, os.Stderr)

	if err := cfg.Auth.RequireJWTSecret(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	observers := config.Observers{Logger: logger}
	if cfg.OTel.Enabled {
		providers, err := config.NewObservabilityProviders(ctx, cfg.OTel, version)
		if err != nil {
			return err
		}
		defer func() {
			if err := providers.Shutdown(); err != nil {
				logger.Error("shutting down telemetry failed", "error", err.Error())
			}
		}()

		observers = providers.Observers(logger)
	}

	es, err := config.OpenEventStore(ctx, cfg, observers)
	if err != nil {
		return err
	}
	defer func() { _ = es.Close() }()

	var store shell.EventStore = es
	if cfg.AMQP.URL != "" {
		publisher, err := eventbus.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			return err
		}
		defer func() { _ = publisher.Close() }()

		store = eventbus.NewPublishingEventStore(es, publisher, logger)
	}

	mode := returnbook.ModeBestEffort
	if cfg.Borrowing.StrictReturn {
		mode = returnbook.ModeStrict
	}

	services, err := api.NewServices(store, api.ServicesOptions{
		ReturnMode: mode,
		RetryOptions: []shell.RetryOption{
			shell.WithMaxAttempts(cfg.Retry.MaxAttempts),
			shell.WithBaseDelay(cfg.Retry.BaseDelay),
		},
		Observers: observers,
	})
	if err != nil {
		return err
	}

	tokens, err := auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	server := api.NewHTTPServer(cfg.HTTP.Addr, api.NewServer(services, tokens, api.WithLogger(logger)).Router())

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", cfg.HTTP.Addr), slog.String("engine", cfg.Database.Engine))
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return err

	case <-ctx.Done():
		logger.Info("shutting down http server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	}
}
