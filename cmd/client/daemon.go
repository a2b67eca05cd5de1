package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iudanet/cloudsync/internal/config"
	"github.com/iudanet/cloudsync/internal/scheduler"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Sync periodically on the configured schedule",
	Long: `Run the sync engine in the foreground and submit a sync task on every
tick of scheduler.spec until interrupted. When metrics_addr is set, engine
metrics are served on /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDaemon(cmd.Context(), cfg, log)
	},
}

func init() {
	rootCmd.AddCommand(daemonCmd)
}

func runDaemon(ctx context.Context, cfg *config.ClientConfig, logger *zap.Logger) error {
	schedCfg := cfg.Scheduler
	schedCfg.Enabled = true

	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	closeCtx := context.WithoutCancel(ctx)
	defer func() {
		if err := a.Close(closeCtx); err != nil {
			logger.Error("failed to close", zap.Error(err))
		}
	}()

	sched, err := scheduler.New(schedCfg, a.engine, logger)
	if err != nil {
		return err
	}
	if err := sched.Start(ctx); err != nil {
		return err
	}

	var metricsSrv *http.Server
	if cfg.MetricsAddr != "" {
		metricsSrv = &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}),
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			logger.Info("metrics listening", zap.String("addr", cfg.MetricsAddr))
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", zap.Error(err))
			}
		}()
	}

	<-ctx.Done()
	logger.Info("shutting down")

	wait := cfg.Engine.CloseWait
	if wait <= 0 {
		wait = 10 * time.Second
	}
	stopCtx, cancel := context.WithTimeout(closeCtx, wait)
	defer cancel()

	var errs []error
	if err := sched.Stop(stopCtx); err != nil {
		errs = append(errs, err)
	}
	if metricsSrv != nil {
		if err := metricsSrv.Shutdown(stopCtx); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop metrics server: %w", err))
		}
	}
	return errors.Join(errs...)
}
