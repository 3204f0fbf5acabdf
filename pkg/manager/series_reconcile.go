package manager

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/kasuboski/gapz/config"
	"github.com/kasuboski/gapz/pkg/catalog"
	"github.com/kasuboski/gapz/pkg/logger"
	"github.com/kasuboski/gapz/pkg/metadata"
	"go.uber.org/zap"
)

// SeriesReconciler aligns the virtual seasons and episodes of a series with its physical
// files and the cached remote records for it.
type SeriesReconciler struct {
	catalog catalog.Catalog
	records metadata.RecordReader
	mutator TreeMutator
	policy  config.Metadata
	now     func() time.Time
}

func NewSeriesReconciler(c catalog.Catalog, records metadata.RecordReader, mutator TreeMutator, policy config.Metadata) SeriesReconciler {
	return SeriesReconciler{
		catalog: c,
		records: records,
		mutator: mutator,
		policy:  policy,
		now:     time.Now,
	}
}

// Reconcile runs a single pass over the series. Removal always runs; missing episodes are only
// added when internet metadata is enabled. The returned result is valid even when an error is returned.
func (r SeriesReconciler) Reconcile(ctx context.Context, series catalog.Item) (ReconcileResult, error) {
	log := logger.FromCtx(ctx, "series", series.Name, "series_id", series.ID)
	ctx = logger.WithCtx(ctx, log)

	var result ReconcileResult

	if series.ProviderID == "" {
		log.Debugw("series has no provider id, skipping")
		return result, nil
	}

	records, err := r.records.Records(ctx, series.ProviderID)
	if err != nil {
		return result, fmt.Errorf("couldn't read records for provider id %s: %w", series.ProviderID, err)
	}

	seasons, err := r.catalog.Children(ctx, series.ID, catalog.KindSeason)
	if err != nil {
		return result, fmt.Errorf("couldn't list seasons: %w", err)
	}

	result.SeasonsRemoved, err = r.removeObsoleteSeasons(ctx, seasons, records)
	if err != nil {
		return result, err
	}

	episodes, err := r.catalog.Descendants(ctx, series.ID, catalog.KindEpisode)
	if err != nil {
		return result, fmt.Errorf("couldn't list episodes: %w", err)
	}

	result.EpisodesRemoved, err = r.removeObsoleteEpisodes(ctx, episodes, records)
	if err != nil {
		return result, err
	}

	if !r.policy.InternetEnabled {
		log.Debugw("internet metadata disabled, not adding missing episodes")
		return result, nil
	}

	seasons, err = r.catalog.Children(ctx, series.ID, catalog.KindSeason)
	if err != nil {
		return result, fmt.Errorf("couldn't list seasons: %w", err)
	}

	episodes, err = r.catalog.Descendants(ctx, series.ID, catalog.KindEpisode)
	if err != nil {
		return result, fmt.Errorf("couldn't list episodes: %w", err)
	}

	added, err := r.addMissingEpisodes(ctx, series, seasons, episodes, records)
	result.SeasonsAdded = added.SeasonsAdded
	result.EpisodesAdded = added.EpisodesAdded
	if err != nil {
		return result, err
	}

	if result.Changed() {
		log.Infow("reconciled series",
			"seasons_removed", result.SeasonsRemoved,
			"episodes_removed", result.EpisodesRemoved,
			"seasons_added", result.SeasonsAdded,
			"episodes_added", result.EpisodesAdded)
	}

	return result, nil
}

// removeObsoleteSeasons removes virtual seasons that are superseded by a physical season
// or that no longer appear in the remote records
func (r SeriesReconciler) removeObsoleteSeasons(ctx context.Context, seasons []catalog.Item, records metadata.RecordSet) (int, error) {
	log := logger.FromCtx(ctx)

	physical := make(map[int32]bool)
	for _, season := range seasons {
		if n, ok := season.SeasonNumber(); ok && !season.IsVirtual() {
			physical[n] = true
		}
	}

	var removed int
	for _, season := range seasons {
		if !season.IsVirtual() {
			continue
		}

		n, ok := season.SeasonNumber()
		switch {
		case !ok:
			log.Debugw("removing virtual season without a number", "season_id", season.ID)
		case physical[n]:
			log.Debugw("removing virtual season with physical counterpart", "season", n)
		case !records.HasSeason(int(n)):
			log.Debugw("removing virtual season missing from remote records", "season", n)
		default:
			continue
		}

		if err := r.mutator.Remove(ctx, season); err != nil {
			return removed, fmt.Errorf("%w: removing season %s: %w", ErrStructuralMutation, season.ID, err)
		}
		removed++
	}

	return removed, nil
}

// removeObsoleteEpisodes removes virtual episodes covered by a physical episode in the same
// season or that no longer appear in the remote records
func (r SeriesReconciler) removeObsoleteEpisodes(ctx context.Context, episodes []catalog.Item, records metadata.RecordSet) (int, error) {
	log := logger.FromCtx(ctx)

	var physical []catalog.Item
	for _, ep := range episodes {
		if !ep.IsVirtual() {
			physical = append(physical, ep)
		}
	}

	var removed int
	for _, ep := range episodes {
		if !ep.IsVirtual() {
			continue
		}

		season, hasSeason := ep.SeasonNumber()
		switch {
		case !hasSeason || ep.IndexNumber == nil:
			log.Debugw("removing virtual episode without a number", "episode_id", ep.ID)
		case containsEpisode(physical, season, *ep.IndexNumber):
			log.Debugw("removing virtual episode with physical counterpart", "season", season, "episode", *ep.IndexNumber)
		case !records.Has(int(season), int(*ep.IndexNumber)):
			log.Debugw("removing virtual episode missing from remote records", "season", season, "episode", *ep.IndexNumber)
		default:
			continue
		}

		if err := r.mutator.Remove(ctx, ep); err != nil {
			return removed, fmt.Errorf("%w: removing episode %s: %w", ErrStructuralMutation, ep.ID, err)
		}
		removed++
	}

	return removed, nil
}

// addMissingEpisodes adds a virtual episode for every dated remote record that has no episode yet.
// Missing seasons are created on demand.
func (r SeriesReconciler) addMissingEpisodes(ctx context.Context, series catalog.Item, seasons, episodes []catalog.Item, records metadata.RecordSet) (ReconcileResult, error) {
	log := logger.FromCtx(ctx)

	var result ReconcileResult

	bySeason := make(map[int32]catalog.Item)
	for _, season := range seasons {
		n, ok := season.SeasonNumber()
		if !ok {
			continue
		}
		if existing, ok := bySeason[n]; ok && !existing.IsVirtual() {
			continue
		}
		bySeason[n] = season
	}

	now := r.now()
	for _, record := range records.Records() {
		if !validRecordNumber(record.Season) || !validRecordNumber(record.Episode) {
			continue
		}
		if record.AirDate == nil {
			log.Debugw("remote record has no air date, skipping", "season", record.Season, "episode", record.Episode)
			continue
		}

		seasonNumber, episodeNumber := int32(record.Season), int32(record.Episode)
		if containsEpisode(episodes, seasonNumber, episodeNumber) {
			continue
		}

		season, ok := bySeason[seasonNumber]
		if !ok {
			var err error
			season, err = r.mutator.AddSeason(ctx, series, seasonNumber)
			if err != nil {
				return result, fmt.Errorf("%w: adding season %d: %w", ErrStructuralMutation, seasonNumber, err)
			}
			log.Debugw("added virtual season", "season", seasonNumber)
			bySeason[seasonNumber] = season
			result.SeasonsAdded++
		}

		label := catalog.LabelUnaired
		if record.AirDate.Before(now) {
			label = catalog.LabelMissing
		}

		episode, err := r.mutator.AddEpisode(ctx, season, episodeNumber, *record.AirDate, label)
		if err != nil {
			return result, fmt.Errorf("%w: adding episode S%02dE%02d: %w", ErrStructuralMutation, seasonNumber, episodeNumber, err)
		}

		log.Debugw("added virtual episode", zap.Int32("season", seasonNumber), zap.Int32("episode", episodeNumber), zap.String("label", string(label)))
		episodes = append(episodes, episode)
		result.EpisodesAdded++
	}

	return result, nil
}

func validRecordNumber(n int) bool {
	return n > 0 && n <= math.MaxInt32
}

// containsEpisode reports whether any episode in the season covers the episode number
func containsEpisode(episodes []catalog.Item, season, number int32) bool {
	for _, ep := range episodes {
		if s, ok := ep.SeasonNumber(); ok && s == season && ep.ContainsEpisodeNumber(number) {
			return true
		}
	}
	return false
}
