package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iudanet/cloudsync/internal/config"
	"github.com/iudanet/cloudsync/internal/logger"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

var (
	cfgFile string
	cfg     *config.ServerConfig
	log     *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:          "cloudsync-server",
	Short:        "Cloud store for cloudsync clients",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadServer(config.NewViper(), cfgFile)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		log, err = logger.New(cfg.Logging)
		if err != nil {
			return fmt.Errorf("failed to init logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default ./cloudsync-server.yaml or $HOME/.cloudsync/cloudsync-server.yaml)")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
