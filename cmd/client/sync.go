package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iudanet/cloudsync/internal/config"
	"github.com/iudanet/cloudsync/internal/models"
	"github.com/iudanet/cloudsync/internal/syncer"
)

type syncFlags struct {
	mode       string
	tables     []string
	timeout    time.Duration
	level      int
	priority   bool
	assetsOnly bool
}

var syncOpts syncFlags

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one sync task and wait for it",
	Long: `Run one sync task against the cloud and wait until it finishes.

Modes:
  merge       download, resolve conflicts by modification time, upload
  push        upload local changes only
  pull        download cloud changes only
  force_push  make the cloud equal to local data
  force_pull  make local data equal to the cloud`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSync(cmd.Context(), cmd.OutOrStdout(), cfg, syncOpts, log)
	},
}

func init() {
	f := syncCmd.Flags()
	f.StringVarP(&syncOpts.mode, "mode", "m", models.SyncModeMerge.String(), "sync mode")
	f.StringSliceVarP(&syncOpts.tables, "tables", "t", nil, "tables to sync (default all configured tables)")
	f.DurationVar(&syncOpts.timeout, "timeout", 0, "task timeout (default engine.default_timeout)")
	f.BoolVar(&syncOpts.priority, "priority", false, "run as a priority task")
	f.IntVar(&syncOpts.level, "priority-level", 0, "order among priority tasks, higher runs first")
	f.BoolVar(&syncOpts.assetsOnly, "assets-only", false, "only restore assets of rows already present locally")
	rootCmd.AddCommand(syncCmd)
}

func (f syncFlags) option(cfg *config.ClientConfig) (syncer.SyncOption, error) {
	mode, err := models.ParseSyncMode(f.mode)
	if err != nil {
		return syncer.SyncOption{}, err
	}
	tables := f.tables
	if len(tables) == 0 {
		tables = cfg.TableNames()
	}
	return syncer.SyncOption{
		Tables:        tables,
		Devices:       []string{syncer.CloudDevice},
		Mode:          mode,
		Timeout:       f.timeout,
		PriorityLevel: f.level,
		Priority:      f.priority,
		AssetsOnly:    f.assetsOnly,
	}, nil
}

func runSync(ctx context.Context, out io.Writer, cfg *config.ClientConfig, flags syncFlags, logger *zap.Logger) error {
	opt, err := flags.option(cfg)
	if err != nil {
		return err
	}

	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(context.WithoutCancel(ctx)); err != nil {
			logger.Error("failed to close", zap.Error(err))
		}
	}()

	health, err := a.cloud.Health(ctx)
	if err != nil {
		return fmt.Errorf("cloud is unavailable: %w", err)
	}
	logger.Debug("cloud is healthy", zap.String("status", health.Status), zap.String("version", health.Version))

	opt.Observer = progressLogger(logger)
	id, err := a.engine.Submit(ctx, opt)
	if err != nil {
		return fmt.Errorf("failed to submit sync: %w", err)
	}

	p, err := a.engine.Wait(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to wait for sync: %w", err)
	}
	printProcess(out, p)
	if p.Err != nil {
		return fmt.Errorf("sync failed (%s): %w", syncer.KindOf(p.Err), p.Err)
	}
	return nil
}

func printProcess(out io.Writer, p syncer.SyncProcess) {
	names := make([]string, 0, len(p.Tables))
	for name := range p.Tables {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintf(out, "task %d: %s\n", p.TaskID, p.Status)
	for _, name := range names {
		tp := p.Tables[name]
		fmt.Fprintf(out, "  %-20s down %d/%d  up %d/%d  assets %d/%d\n", name,
			tp.Download.Success, tp.Download.Total,
			tp.Upload.Success, tp.Upload.Total,
			tp.Assets.Success, tp.Assets.Total,
		)
	}
}

var cleanCmd = &cobra.Command{
	Use:   "clean [table...]",
	Short: "Forget cloud identities of local rows",
	Long: `Clear cloud ids, watermarks and cursors of the given tables (default all)
so the next sync treats every local row as new.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		tables := args
		if len(tables) == 0 {
			tables = cfg.TableNames()
		}

		a, err := newApp(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer func() {
			if err := a.Close(context.WithoutCancel(ctx)); err != nil {
				log.Error("failed to close", zap.Error(err))
			}
		}()

		if err := a.engine.CleanCloudData(ctx, tables); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "cloud data cleaned: %v\n", tables)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}
