package manager

import (
	"context"
	"fmt"

	"github.com/kasuboski/gapz/config"
	"github.com/kasuboski/gapz/pkg/cache"
	"github.com/kasuboski/gapz/pkg/catalog"
	"github.com/kasuboski/gapz/pkg/library"
	"github.com/kasuboski/gapz/pkg/logger"
	"github.com/kasuboski/gapz/pkg/metadata"
	"github.com/kasuboski/gapz/pkg/storage"
	"go.uber.org/zap"
)

type MediaManager struct {
	catalog   catalog.Catalog
	records   metadata.RecordReader
	library   library.Library
	storage   storage.Storage
	config    config.Config
	progress  *cache.Cache[int64, float64]
	scheduler *Scheduler
}

func New(c catalog.Catalog, records metadata.RecordReader, lib library.Library, store storage.Storage, cfg config.Config) *MediaManager {
	m := &MediaManager{
		catalog:  c,
		records:  records,
		library:  lib,
		storage:  store,
		config:   cfg,
		progress: cache.New[int64, float64](),
	}

	m.scheduler = NewScheduler(store, cfg.Manager, map[JobType]JobExecutor{
		LibraryScan:     m.ScanLibrary,
		SeriesReconcile: m.ReconcileSeries,
	})

	return m
}

// Run starts the job scheduler and blocks until ctx is done
func (m *MediaManager) Run(ctx context.Context) error {
	return m.scheduler.Run(ctx)
}

// ScanOrchestrator wires the reconciliation engine against the manager's catalog and policy
func (m *MediaManager) ScanOrchestrator() ScanOrchestrator {
	mutator := NewTreeMutator(m.catalog, m.config.Metadata.SeasonZeroName)
	reconciler := NewSeriesReconciler(m.catalog, m.records, mutator, m.config.Metadata)
	return NewScanOrchestrator(m.catalog, reconciler, mutator, m.config.Metadata)
}

// ReconcileSeries runs a full reconciliation pass, publishing progress for the job
func (m *MediaManager) ReconcileSeries(ctx context.Context, jobID int64) error {
	log := logger.FromCtx(ctx).With(zap.Int64("job_id", jobID))
	ctx = logger.WithCtx(ctx, log)

	defer m.progress.Delete(jobID)

	summary, err := m.ScanOrchestrator().Run(ctx, func(percent float64) {
		m.progress.Set(jobID, percent)
		log.Debugw("reconcile progress", "percent", percent)
	})
	if err != nil {
		return fmt.Errorf("series reconcile incomplete (%s): %w", summary, err)
	}

	if summary.Failed > 0 {
		log.Warnw("series reconcile finished with failures", "summary", summary.String())
	}

	return nil
}

// ScanLibrary mirrors the files on disk into the catalog
func (m *MediaManager) ScanLibrary(ctx context.Context, jobID int64) error {
	log := logger.FromCtx(ctx).With(zap.Int64("job_id", jobID))
	ctx = logger.WithCtx(ctx, log)

	if m.library == nil {
		log.Debugw("no tv library configured")
		return nil
	}

	_, err := m.library.Scan(ctx, m.catalog)
	return err
}
