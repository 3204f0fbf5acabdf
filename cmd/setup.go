package cmd

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/kasuboski/gapz/config"
	"github.com/kasuboski/gapz/pkg/catalog"
	"github.com/kasuboski/gapz/pkg/library"
	"github.com/kasuboski/gapz/pkg/logger"
	"github.com/kasuboski/gapz/pkg/manager"
	"github.com/kasuboski/gapz/pkg/metadata"
	"github.com/kasuboski/gapz/pkg/storage"
	"github.com/kasuboski/gapz/pkg/storage/sqlite"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// readConfig unmarshals and validates the configuration from viper
func readConfig() (config.Config, error) {
	cfg, err := config.New(viper.GetViper())
	if err != nil {
		return cfg, fmt.Errorf("failed to read configurations: %w", err)
	}

	return cfg, cfg.Validate()
}

// app holds everything a command needs to run against the persisted catalog
type app struct {
	config  config.Config
	store   storage.Storage
	catalog *catalog.Tree
	manager *manager.MediaManager
}

func newApp(ctx context.Context) (*app, error) {
	log := logger.FromCtx(ctx)

	cfg, err := readConfig()
	if err != nil {
		return nil, err
	}

	store, err := sqlite.New(ctx, cfg.Storage.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage connection: %w", err)
	}

	if err := store.RunMigrations(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	tree, err := catalog.Load(ctx, store)
	if err != nil {
		store.Close()
		return nil, err
	}

	var lib library.Library
	if cfg.Library.TVDir != "" {
		lib = library.New(os.DirFS(cfg.Library.TVDir), cfg.Library.TVDir)
	} else {
		log.Warnw("no tv library configured, library scans are skipped")
	}

	var records metadata.RecordReader = metadata.NewDirReader(cfg.Metadata.CacheDir)
	if cfg.Metadata.CacheDir == "" {
		log.Warnw("no metadata cache configured, every series reads as having no records")
		records = metadata.NewReader(emptyFS{})
	}

	log.Debugw("loaded application",
		zap.String("database", cfg.Storage.FilePath),
		zap.String("tv", cfg.Library.TVDir),
		zap.String("metadata_cache", cfg.Metadata.CacheDir))

	return &app{
		config:  cfg,
		store:   store,
		catalog: tree,
		manager: manager.New(tree, records, lib, store, cfg),
	}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}

// emptyFS stands in for an unconfigured metadata cache
type emptyFS struct{}

func (emptyFS) Open(name string) (fs.File, error) {
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}
