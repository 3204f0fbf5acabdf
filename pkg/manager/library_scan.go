package manager

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kasuboski/gapz/config"
	"github.com/kasuboski/gapz/pkg/catalog"
	"github.com/kasuboski/gapz/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
)

// ScanOrchestrator reconciles every series in the catalog, one at a time
type ScanOrchestrator struct {
	catalog    catalog.Catalog
	reconciler SeriesReconciler
	mutator    TreeMutator
	policy     config.Metadata
}

func NewScanOrchestrator(c catalog.Catalog, reconciler SeriesReconciler, mutator TreeMutator, policy config.Metadata) ScanOrchestrator {
	return ScanOrchestrator{
		catalog:    c,
		reconciler: reconciler,
		mutator:    mutator,
		policy:     policy,
	}
}

// Run reconciles all series, reporting progress after each one. Cancellation is only observed
// between series; a series that has started always runs to completion.
func (o ScanOrchestrator) Run(ctx context.Context, progress ProgressFunc) (ScanSummary, error) {
	log := logger.FromCtx(ctx)

	if progress == nil {
		progress = func(float64) {}
	}

	var summary ScanSummary

	if !o.policy.InternetEnabled || isExcluded(o.policy.ExcludedTypes, catalog.KindSeries) {
		log.Debugw("remote metadata disabled for series, skipping scan")
		progress(100)
		return summary, nil
	}

	series, err := o.catalog.ListSeries(ctx)
	if err != nil {
		return summary, fmt.Errorf("couldn't list series: %w", err)
	}

	if len(series) == 0 {
		log.Debugw("no series in catalog")
		progress(100)
		return summary, nil
	}

	total := len(series)
	for i, s := range series {
		if err := ctx.Err(); err != nil {
			return summary, fmt.Errorf("library scan stopped after %d of %d series: %w", i, total, err)
		}

		o.scanSeries(context.WithoutCancel(ctx), s, &summary)
		progress(float64(i+1) / float64(total) * 100)
	}

	log.Infow("library scan finished", "summary", summary.String())
	return summary, nil
}

func (o ScanOrchestrator) scanSeries(ctx context.Context, series catalog.Item, summary *ScanSummary) {
	log := logger.FromCtx(ctx, "series", series.Name, "series_id", series.ID)

	summary.Series++

	result, err := o.reconciler.Reconcile(ctx, series)
	summary.merge(result)
	if result.Changed() {
		summary.Changed++
	}

	switch {
	case err != nil:
		summary.Failed++
		if errors.Is(err, ErrStructuralMutation) {
			log.Errorw("series left partially reconciled", zap.Error(err))
		} else {
			log.Errorw("failed to reconcile series", zap.Error(err))
		}
	case result.Changed():
		if err := o.mutator.Refresh(ctx, series); err != nil {
			log.Errorw("failed to refresh series", zap.Error(err))
		}
	}

	if err := o.updateSeriesStats(ctx, series); err != nil {
		log.Errorw("failed to update series stats", zap.Error(err))
	}
}

// updateSeriesStats recomputes the aggregates shown on the series from its current episodes
func (o ScanOrchestrator) updateSeriesStats(ctx context.Context, series catalog.Item) error {
	episodes, err := o.catalog.Descendants(ctx, series.ID, catalog.KindEpisode)
	if err != nil {
		return err
	}

	return o.catalog.UpdateSeriesStats(ctx, series.ID, seriesStats(episodes))
}

func seriesStats(episodes []catalog.Item) catalog.SeriesStats {
	var (
		stats     catalog.SeriesStats
		lastAdded *time.Time
	)

	seasons := make(map[int32]struct{})
	for _, ep := range episodes {
		if n, ok := ep.SeasonNumber(); ok {
			switch {
			case n == 0:
				stats.SpecialFeatureIDs = append(stats.SpecialFeatureIDs, ep.ID)
			case n > 0:
				seasons[n] = struct{}{}
			}
		}

		if lastAdded == nil || ep.DateCreated.After(*lastAdded) {
			created := ep.DateCreated
			lastAdded = &created
		}
	}

	stats.SeasonCount = len(seasons)
	stats.DateLastEpisodeAdded = lastAdded

	return stats
}

func isExcluded(excluded []string, kind catalog.Kind) bool {
	fold := cases.Fold()
	want := fold.String(string(kind))
	for _, t := range excluded {
		if fold.String(t) == want {
			return true
		}
	}
	return false
}
