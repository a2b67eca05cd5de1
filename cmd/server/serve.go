package main

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iudanet/cloudsync/internal/cloud/sqlite"
	"github.com/iudanet/cloudsync/internal/config"
	"github.com/iudanet/cloudsync/internal/server"
	"github.com/iudanet/cloudsync/internal/server/handlers"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the cloud API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context(), cfg, log)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func jwtConfig(cfg *config.ServerConfig) handlers.JWTConfig {
	return handlers.JWTConfig{
		Secret:   []byte(cfg.JWT.Secret),
		Issuer:   cfg.JWT.Issuer,
		TokenTTL: cfg.JWT.TokenTTL,
	}
}

// newServer opens the cloud store and builds the API server on top of it.
func newServer(ctx context.Context, cfg *config.ServerConfig, logger *zap.Logger) (*server.Server, *sqlite.Storage, error) {
	store, err := sqlite.New(ctx, cfg.DBPath, sqlite.WithLease(cfg.LockLease))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open cloud store: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(store.DB(), "cloud"),
	)

	srv := server.New(store, server.Options{
		Gatherer:        registry,
		Addr:            cfg.Addr,
		Version:         Version,
		JWT:             jwtConfig(cfg),
		RateLimit:       cfg.RateLimit,
		RateWindow:      cfg.RateWindow,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, logger)
	return srv, store, nil
}

func runServe(ctx context.Context, cfg *config.ServerConfig, logger *zap.Logger) error {
	srv, store, err := newServer(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close cloud store", zap.Error(err))
		}
	}()

	logger.Info("starting cloudsync server",
		zap.String("version", Version),
		zap.String("db_path", cfg.DBPath),
	)
	return srv.Run(ctx)
}
