package manager

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/kasuboski/gapz/pkg/catalog"
	catalogMocks "github.com/kasuboski/gapz/pkg/catalog/mocks"
	"github.com/kasuboski/gapz/pkg/metadata"
	metadataMocks "github.com/kasuboski/gapz/pkg/metadata/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestSeriesReconciler_Reconcile(t *testing.T) {
	ctx := context.Background()

	t.Run("adds missing episode next to physical ones", func(t *testing.T) {
		lib := newTestLibrary(t)
		alpha := lib.series("Alpha", "1234")
		season1 := lib.season(alpha, ptr(int32(1)), catalog.PresencePhysical)
		lib.episode(season1, ptr(int32(1)), nil, catalog.PresencePhysical)
		lib.episode(season1, ptr(int32(2)), nil, catalog.PresencePhysical)

		records := staticRecords{"1234": metadata.NewRecordSet(
			metadata.Record{Season: 1, Episode: 1, AirDate: date(2024, 1, 1)},
			metadata.Record{Season: 1, Episode: 2, AirDate: date(2024, 1, 8)},
			metadata.Record{Season: 1, Episode: 3, AirDate: date(2024, 1, 15)},
		)}

		r := newTestReconciler(lib.tree, records, true)
		result, err := r.Reconcile(ctx, alpha)
		require.NoError(t, err)
		assert.Equal(t, ReconcileResult{EpisodesAdded: 1}, result)
		assert.True(t, result.Changed())

		assert.ElementsMatch(t, []string{"physical S01E01", "physical S01E02", "virtual S01E03"}, lib.episodeKeys(alpha))
		assert.Equal(t, []string{"physical 1"}, lib.seasonKeys(alpha))

		children, err := lib.tree.Children(ctx, season1.ID, catalog.KindEpisode)
		require.NoError(t, err)
		require.Len(t, children, 3)
		added := children[2]
		assert.Equal(t, catalog.PresenceVirtual, added.Presence)
		assert.Equal(t, catalog.LabelMissing, added.LocationLabel)
		assert.Equal(t, "Episode 3", added.Name)
		assert.Equal(t, date(2024, 1, 15), added.PremiereDate)
		assert.Equal(t, catalog.DeterministicID(catalog.KindEpisode, season1.ID, 3, "Episode 3"), added.ID)

		result, err = r.Reconcile(ctx, alpha)
		require.NoError(t, err)
		assert.False(t, result.Changed(), "second pass must not mutate")
	})

	t.Run("removes virtual season and its episodes missing from records", func(t *testing.T) {
		lib := newTestLibrary(t)
		beta := lib.series("Beta", "5678")
		season1 := lib.season(beta, ptr(int32(1)), catalog.PresencePhysical)
		lib.episode(season1, ptr(int32(1)), nil, catalog.PresencePhysical)
		season2 := lib.season(beta, ptr(int32(2)), catalog.PresenceVirtual)
		episode := lib.episode(season2, ptr(int32(1)), nil, catalog.PresenceVirtual)

		records := staticRecords{"5678": metadata.NewRecordSet(
			metadata.Record{Season: 1, Episode: 1, AirDate: date(2024, 1, 1)},
		)}

		r := newTestReconciler(lib.tree, records, true)
		result, err := r.Reconcile(ctx, beta)
		require.NoError(t, err)
		assert.Equal(t, ReconcileResult{SeasonsRemoved: 1}, result)

		assert.False(t, lib.exists(season2.ID))
		assert.False(t, lib.exists(episode.ID))
		assert.Equal(t, []string{"physical 1"}, lib.seasonKeys(beta))

		result, err = r.Reconcile(ctx, beta)
		require.NoError(t, err)
		assert.False(t, result.Changed())
	})

	t.Run("range membership supersedes and suppresses virtual episodes", func(t *testing.T) {
		lib := newTestLibrary(t)
		series := lib.series("Ranged", "42")
		season1 := lib.season(series, ptr(int32(1)), catalog.PresencePhysical)
		lib.episode(season1, ptr(int32(3)), ptr(int32(4)), catalog.PresencePhysical)
		stale := lib.episode(season1, ptr(int32(4)), nil, catalog.PresenceVirtual)

		records := staticRecords{"42": metadata.NewRecordSet(
			metadata.Record{Season: 1, Episode: 3, AirDate: date(2024, 1, 1)},
			metadata.Record{Season: 1, Episode: 4, AirDate: date(2024, 1, 1)},
			metadata.Record{Season: 1, Episode: 5, AirDate: date(2024, 1, 8)},
		)}

		r := newTestReconciler(lib.tree, records, true)
		result, err := r.Reconcile(ctx, series)
		require.NoError(t, err)
		assert.Equal(t, ReconcileResult{EpisodesRemoved: 1, EpisodesAdded: 1}, result)

		assert.False(t, lib.exists(stale.ID))
		assert.ElementsMatch(t, []string{"physical S01E03", "virtual S01E05"}, lib.episodeKeys(series))
	})

	t.Run("never creates season or episode zero", func(t *testing.T) {
		lib := newTestLibrary(t)
		series := lib.series("Zero", "7")

		records := staticRecords{"7": metadata.NewRecordSet(
			metadata.Record{Season: 0, Episode: 1, AirDate: date(2024, 1, 1)},
			metadata.Record{Season: 1, Episode: 0, AirDate: date(2024, 1, 1)},
			metadata.Record{Season: -1, Episode: 2, AirDate: date(2024, 1, 1)},
			metadata.Record{Season: 1, Episode: 1, AirDate: date(2024, 1, 1)},
		)}

		r := newTestReconciler(lib.tree, records, true)
		result, err := r.Reconcile(ctx, series)
		require.NoError(t, err)
		assert.Equal(t, ReconcileResult{SeasonsAdded: 1, EpisodesAdded: 1}, result)

		assert.Equal(t, []string{"virtual 1"}, lib.seasonKeys(series))
		assert.Equal(t, []string{"virtual S01E01"}, lib.episodeKeys(series))

		seasons, err := lib.tree.Children(ctx, series.ID, catalog.KindSeason)
		require.NoError(t, err)
		assert.Equal(t, "Season 1", seasons[0].Name)
		assert.Equal(t, catalog.DeterministicID(catalog.KindSeason, series.ID, 1, "Season 1"), seasons[0].ID)
	})

	t.Run("labels future episodes unaired and skips undated records", func(t *testing.T) {
		lib := newTestLibrary(t)
		series := lib.series("Future", "8")

		records := staticRecords{"8": metadata.NewRecordSet(
			metadata.Record{Season: 1, Episode: 1, AirDate: date(2030, 1, 1)},
			metadata.Record{Season: 1, Episode: 2},
		)}

		r := newTestReconciler(lib.tree, records, true)
		result, err := r.Reconcile(ctx, series)
		require.NoError(t, err)
		assert.Equal(t, ReconcileResult{SeasonsAdded: 1, EpisodesAdded: 1}, result)

		episodes, err := lib.tree.Descendants(ctx, series.ID, catalog.KindEpisode)
		require.NoError(t, err)
		require.Len(t, episodes, 1)
		assert.Equal(t, catalog.LabelUnaired, episodes[0].LocationLabel)
	})

	t.Run("virtual season superseded by physical season", func(t *testing.T) {
		lib := newTestLibrary(t)
		series := lib.series("Moved", "9")
		physical := lib.season(series, ptr(int32(1)), catalog.PresencePhysical)
		virtual := lib.season(series, ptr(int32(1)), catalog.PresenceVirtual)
		lib.episode(virtual, ptr(int32(1)), nil, catalog.PresenceVirtual)

		records := staticRecords{"9": metadata.NewRecordSet(
			metadata.Record{Season: 1, Episode: 1, AirDate: date(2024, 1, 1)},
		)}

		r := newTestReconciler(lib.tree, records, true)
		result, err := r.Reconcile(ctx, series)
		require.NoError(t, err)
		assert.Equal(t, ReconcileResult{SeasonsRemoved: 1, EpisodesAdded: 1}, result)

		assert.False(t, lib.exists(virtual.ID))
		episodes, err := lib.tree.Children(ctx, physical.ID, catalog.KindEpisode)
		require.NoError(t, err)
		require.Len(t, episodes, 1)
		assert.True(t, episodes[0].IsVirtual())

		result, err = r.Reconcile(ctx, series)
		require.NoError(t, err)
		assert.False(t, result.Changed())
	})

	t.Run("removes unidentifiable placeholders", func(t *testing.T) {
		lib := newTestLibrary(t)
		series := lib.series("Broken", "10")
		unnumbered := lib.season(series, nil, catalog.PresenceVirtual)
		season1 := lib.season(series, ptr(int32(1)), catalog.PresenceVirtual)
		noNumber := lib.episode(season1, nil, nil, catalog.PresenceVirtual)
		kept := lib.episode(season1, ptr(int32(1)), nil, catalog.PresenceVirtual)

		records := staticRecords{"10": metadata.NewRecordSet(
			metadata.Record{Season: 1, Episode: 1, AirDate: date(2024, 1, 1)},
		)}

		r := newTestReconciler(lib.tree, records, true)
		result, err := r.Reconcile(ctx, series)
		require.NoError(t, err)
		assert.Equal(t, ReconcileResult{SeasonsRemoved: 1, EpisodesRemoved: 1}, result)

		assert.False(t, lib.exists(unnumbered.ID))
		assert.False(t, lib.exists(noNumber.ID))
		assert.True(t, lib.exists(kept.ID))
	})

	t.Run("internet metadata disabled only removes", func(t *testing.T) {
		lib := newTestLibrary(t)
		series := lib.series("Offline", "11")
		season1 := lib.season(series, ptr(int32(1)), catalog.PresencePhysical)
		lib.episode(season1, ptr(int32(1)), nil, catalog.PresencePhysical)
		stale := lib.episode(season1, ptr(int32(9)), nil, catalog.PresenceVirtual)

		records := staticRecords{"11": metadata.NewRecordSet(
			metadata.Record{Season: 1, Episode: 1, AirDate: date(2024, 1, 1)},
			metadata.Record{Season: 1, Episode: 2, AirDate: date(2024, 1, 8)},
		)}

		r := newTestReconciler(lib.tree, records, false)
		result, err := r.Reconcile(ctx, series)
		require.NoError(t, err)
		assert.Equal(t, ReconcileResult{EpisodesRemoved: 1}, result)
		assert.False(t, lib.exists(stale.ID))
		assert.Equal(t, []string{"physical S01E01"}, lib.episodeKeys(series))
	})
}

func TestSeriesReconciler_Reconcile_NoProviderID(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := catalogMocks.NewMockCatalog(ctrl)
	records := metadataMocks.NewMockRecordReader(ctrl)

	r := newTestReconciler(c, records, true)
	result, err := r.Reconcile(context.Background(), catalog.Item{ID: uuid.New(), Kind: catalog.KindSeries, Name: "Local"})
	require.NoError(t, err)
	assert.Equal(t, ReconcileResult{}, result)
}

func TestSeriesReconciler_Reconcile_Errors(t *testing.T) {
	ctx := context.Background()
	series := catalog.Item{ID: uuid.New(), Kind: catalog.KindSeries, Name: "Alpha", ProviderID: "1234"}

	t.Run("record read failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		c := catalogMocks.NewMockCatalog(ctrl)
		records := metadataMocks.NewMockRecordReader(ctrl)
		records.EXPECT().Records(gomock.Any(), "1234").Return(metadata.RecordSet{}, errors.New("boom"))

		r := newTestReconciler(c, records, true)
		_, err := r.Reconcile(ctx, series)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrStructuralMutation)
	})

	t.Run("mutation failure aborts the series", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		c := catalogMocks.NewMockCatalog(ctrl)
		records := metadataMocks.NewMockRecordReader(ctrl)

		season := catalog.Item{
			ID:          uuid.New(),
			ParentID:    series.ID,
			Kind:        catalog.KindSeason,
			Presence:    catalog.PresenceVirtual,
			IndexNumber: ptr(int32(2)),
		}

		records.EXPECT().Records(gomock.Any(), "1234").Return(metadata.NewRecordSet(), nil)
		c.EXPECT().Children(gomock.Any(), series.ID, catalog.KindSeason).Return([]catalog.Item{season}, nil)
		c.EXPECT().Children(gomock.Any(), season.ID, catalog.KindEpisode).Return(nil, nil)
		c.EXPECT().RemoveChild(gomock.Any(), series.ID, season.ID).Return(errors.New("disk full"))

		r := newTestReconciler(c, records, true)
		result, err := r.Reconcile(ctx, series)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrStructuralMutation)
		assert.Equal(t, ReconcileResult{}, result)
	})
}

func TestContainsEpisode(t *testing.T) {
	episodes := []catalog.Item{
		{Kind: catalog.KindEpisode, ParentIndexNumber: ptr(int32(1)), IndexNumber: ptr(int32(3)), IndexNumberEnd: ptr(int32(4))},
		{Kind: catalog.KindEpisode, ParentIndexNumber: ptr(int32(2)), IndexNumber: ptr(int32(1))},
		{Kind: catalog.KindEpisode, IndexNumber: ptr(int32(7))},
	}

	assert.True(t, containsEpisode(episodes, 1, 3))
	assert.True(t, containsEpisode(episodes, 1, 4))
	assert.False(t, containsEpisode(episodes, 1, 5))
	assert.True(t, containsEpisode(episodes, 2, 1))
	assert.False(t, containsEpisode(episodes, 3, 1))
	assert.False(t, containsEpisode(episodes, 0, 7))
}
