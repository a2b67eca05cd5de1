package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/iudanet/cloudsync/internal/assets"
	"github.com/iudanet/cloudsync/internal/cloud/httpclient"
	"github.com/iudanet/cloudsync/internal/config"
	"github.com/iudanet/cloudsync/internal/storage/boltdb"
	"github.com/iudanet/cloudsync/internal/syncer"
)

// app holds the local store, the cloud client and the engine of one run.
type app struct {
	store    *boltdb.Storage
	cloud    *httpclient.Client
	engine   *syncer.Syncer
	registry *prometheus.Registry
	logger   *zap.Logger
}

func newApp(ctx context.Context, cfg *config.ClientConfig, logger *zap.Logger) (*app, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	schemas, err := cfg.Schemas()
	if err != nil {
		return nil, err
	}
	deviceID, err := cfg.DeviceID()
	if err != nil {
		return nil, err
	}
	logger = logger.With(zap.String("device_id", deviceID))

	store, err := boltdb.New(ctx, cfg.Storage.Path, deviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}
	for _, s := range schemas {
		if err := store.CreateTable(ctx, s); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("failed to create table %s: %w", s.Name, err)
		}
	}
	// облако хранит записи без собственной схемы, берем схему из конфигурации
	if err := store.SetCloudSchema(ctx, schemas...); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to save cloud schema: %w", err)
	}

	client := httpclient.New(cfg.Cloud.URL, logger,
		httpclient.WithToken(cfg.Cloud.Token),
		httpclient.WithHTTPClient(&http.Client{Timeout: cfg.Cloud.Timeout}),
	)
	loader, err := assets.New(client, cfg.Storage.AssetDir, logger)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	engineCfg := cfg.Engine
	engineCfg.DeviceID = deviceID
	registry := prometheus.NewRegistry()
	engine, err := syncer.New(store, client, loader, engineCfg, logger, syncer.WithRegisterer(registry))
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to create sync engine: %w", err)
	}

	return &app{
		store:    store,
		cloud:    client,
		engine:   engine,
		registry: registry,
		logger:   logger,
	}, nil
}

// Close stops the engine and then closes the local store.
func (a *app) Close(ctx context.Context) error {
	var errs []error
	if err := a.engine.Close(ctx); err != nil {
		errs = append(errs, fmt.Errorf("failed to close sync engine: %w", err))
	}
	if err := a.store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close local store: %w", err))
	}
	return errors.Join(errs...)
}

// progressLogger logs table progress of a task once the table is finished.
func progressLogger(logger *zap.Logger) syncer.Observer {
	return syncer.ObserverFunc(func(p syncer.SyncProcess) {
		for _, tp := range p.Tables {
			if tp.Status != syncer.StatusFinished {
				continue
			}
			logger.Debug("table synced",
				zap.Uint64("task_id", uint64(p.TaskID)),
				zap.String("table", tp.Table),
				zap.Int64("downloaded", tp.Download.Success),
				zap.Int64("uploaded", tp.Upload.Success),
				zap.Int64("failed", tp.Download.Fail+tp.Upload.Fail+tp.Assets.Fail),
			)
		}
	})
}
