package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	items   map[uuid.UUID]Item
	saveErr error
}

func newMemStore() *memStore {
	return &memStore{items: make(map[uuid.UUID]Item)}
}

func (m *memStore) ListCatalogItems(ctx context.Context) ([]Item, error) {
	items := make([]Item, 0, len(m.items))
	for _, i := range m.items {
		items = append(items, i)
	}
	return items, nil
}

func (m *memStore) SaveCatalogItems(ctx context.Context, items ...Item) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	for _, i := range items {
		m.items[i.ID] = i
	}
	return nil
}

func (m *memStore) DeleteCatalogItems(ctx context.Context, ids ...uuid.UUID) error {
	for _, id := range ids {
		delete(m.items, id)
	}
	return nil
}

type fakeRefresher struct {
	calls int
	err   error
}

func (f *fakeRefresher) RefreshMetadata(ctx context.Context, item Item) (Item, error) {
	f.calls++
	item.Name = item.Name + " (refreshed)"
	item.Kind = KindFolder
	return item, f.err
}

type fixture struct {
	folder  Item
	series  Item
	season1 Item
	ep1     Item
	ep2     Item
}

func newFixture(t *testing.T, tree *Tree) fixture {
	t.Helper()
	ctx := context.Background()

	f := fixture{
		folder:  Item{ID: uuid.New(), Kind: KindFolder, Name: "TV"},
		series:  Item{ID: uuid.New(), Kind: KindSeries, Name: "Alpha", ProviderID: "1234"},
		season1: Item{ID: uuid.New(), Kind: KindSeason, Name: "Season 1", IndexNumber: ptr(int32(1))},
		ep1:     Item{ID: uuid.New(), Kind: KindEpisode, Name: "Pilot", IndexNumber: ptr(int32(1)), ParentIndexNumber: ptr(int32(1))},
		ep2:     Item{ID: uuid.New(), Kind: KindEpisode, Name: "Two", IndexNumber: ptr(int32(2)), ParentIndexNumber: ptr(int32(1))},
	}

	require.NoError(t, tree.AddChild(ctx, uuid.Nil, f.folder))
	require.NoError(t, tree.AddChild(ctx, f.folder.ID, f.series))
	require.NoError(t, tree.AddChild(ctx, f.series.ID, f.season1))
	require.NoError(t, tree.AddChild(ctx, f.season1.ID, f.ep2))
	require.NoError(t, tree.AddChild(ctx, f.season1.ID, f.ep1))

	return f
}

func TestTree_AddChild(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("sets parent, presence and creation date", func(t *testing.T) {
		tree := NewTree(WithClock(func() time.Time { return created }))
		f := newFixture(t, tree)

		got, err := tree.Get(ctx, f.ep1.ID)
		require.NoError(t, err)
		assert.Equal(t, f.season1.ID, got.ParentID)
		assert.Equal(t, PresencePhysical, got.Presence)
		assert.Equal(t, created, got.DateCreated)

		season, err := tree.Get(ctx, f.season1.ID)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{f.ep2.ID, f.ep1.ID}, season.Children)
	})

	t.Run("duplicate id", func(t *testing.T) {
		tree := NewTree()
		f := newFixture(t, tree)

		err := tree.AddChild(ctx, f.season1.ID, f.ep1)
		assert.ErrorIs(t, err, ErrAlreadyExists)
	})

	t.Run("unknown parent", func(t *testing.T) {
		tree := NewTree()
		err := tree.AddChild(ctx, uuid.New(), Item{ID: uuid.New(), Kind: KindSeason})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("invalid hierarchy", func(t *testing.T) {
		tree := NewTree()
		f := newFixture(t, tree)

		err := tree.AddChild(ctx, f.series.ID, Item{ID: uuid.New(), Kind: KindEpisode})
		assert.ErrorIs(t, err, ErrInvalidParent)

		err = tree.AddChild(ctx, uuid.Nil, Item{ID: uuid.New(), Kind: KindSeason})
		assert.ErrorIs(t, err, ErrInvalidParent)
	})

	t.Run("missing id", func(t *testing.T) {
		tree := NewTree()
		err := tree.AddChild(ctx, uuid.Nil, Item{Kind: KindFolder})
		assert.Error(t, err)
	})

	t.Run("store failure leaves tree untouched", func(t *testing.T) {
		store := newMemStore()
		tree := NewTree(WithStore(store))
		f := newFixture(t, tree)

		store.saveErr = errors.New("disk full")
		extra := Item{ID: uuid.New(), Kind: KindEpisode, IndexNumber: ptr(int32(3))}
		err := tree.AddChild(ctx, f.season1.ID, extra)
		assert.ErrorIs(t, err, store.saveErr)

		_, err = tree.Get(ctx, extra.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		season, err := tree.Get(ctx, f.season1.ID)
		require.NoError(t, err)
		assert.Len(t, season.Children, 2)
	})
}

func TestTree_Reads(t *testing.T) {
	ctx := context.Background()
	tree := NewTree()
	f := newFixture(t, tree)

	seasons, err := tree.Children(ctx, f.series.ID, KindSeason)
	require.NoError(t, err)
	require.Len(t, seasons, 1)
	assert.Equal(t, f.season1.ID, seasons[0].ID)

	none, err := tree.Children(ctx, f.series.ID, KindEpisode)
	require.NoError(t, err)
	assert.Empty(t, none)

	episodes, err := tree.Descendants(ctx, f.series.ID, KindEpisode)
	require.NoError(t, err)
	assert.Len(t, episodes, 2)

	roots, err := tree.Children(ctx, uuid.Nil, KindFolder)
	require.NoError(t, err)
	assert.Len(t, roots, 1)

	_, err = tree.Descendants(ctx, uuid.New(), KindEpisode)
	assert.ErrorIs(t, err, ErrNotFound)

	t.Run("returned items are copies", func(t *testing.T) {
		got, err := tree.Get(ctx, f.ep1.ID)
		require.NoError(t, err)
		*got.IndexNumber = 99

		again, err := tree.Get(ctx, f.ep1.ID)
		require.NoError(t, err)
		assert.Equal(t, int32(1), *again.IndexNumber)
	})
}

func TestTree_ListSeries(t *testing.T) {
	ctx := context.Background()
	tree := NewTree()
	f := newFixture(t, tree)

	nested := Item{ID: uuid.New(), Kind: KindFolder, Name: "Kids"}
	require.NoError(t, tree.AddChild(ctx, f.folder.ID, nested))
	beta := Item{ID: uuid.New(), Kind: KindSeries, Name: "Beta"}
	require.NoError(t, tree.AddChild(ctx, nested.ID, beta))
	gamma := Item{ID: uuid.New(), Kind: KindSeries, Name: "Gamma"}
	require.NoError(t, tree.AddChild(ctx, uuid.Nil, gamma))

	series, err := tree.ListSeries(ctx)
	require.NoError(t, err)

	names := make([]string, len(series))
	for i, s := range series {
		names[i] = s.Name
	}
	assert.ElementsMatch(t, []string{"Alpha", "Beta", "Gamma"}, names)
}

func TestTree_RemoveChild(t *testing.T) {
	ctx := context.Background()

	t.Run("cascades to descendants", func(t *testing.T) {
		store := newMemStore()
		tree := NewTree(WithStore(store))
		f := newFixture(t, tree)

		err := tree.RemoveChild(ctx, f.series.ID, f.season1.ID)
		require.NoError(t, err)

		for _, id := range []uuid.UUID{f.season1.ID, f.ep1.ID, f.ep2.ID} {
			_, err := tree.Get(ctx, id)
			assert.ErrorIs(t, err, ErrNotFound)
			assert.NotContains(t, store.items, id)
		}

		series, err := tree.Get(ctx, f.series.ID)
		require.NoError(t, err)
		assert.Empty(t, series.Children)
	})

	t.Run("not a child of parent", func(t *testing.T) {
		tree := NewTree()
		f := newFixture(t, tree)

		err := tree.RemoveChild(ctx, f.series.ID, f.ep1.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("root", func(t *testing.T) {
		tree := NewTree()
		f := newFixture(t, tree)

		require.NoError(t, tree.RemoveChild(ctx, uuid.Nil, f.folder.ID))
		series, err := tree.ListSeries(ctx)
		require.NoError(t, err)
		assert.Empty(t, series)
	})
}

func TestTree_UpdateSeriesStats(t *testing.T) {
	ctx := context.Background()
	tree := NewTree()
	f := newFixture(t, tree)

	added := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	stats := SeriesStats{
		SeasonCount:          1,
		SpecialFeatureIDs:    []uuid.UUID{f.ep1.ID},
		DateLastEpisodeAdded: &added,
	}

	require.NoError(t, tree.UpdateSeriesStats(ctx, f.series.ID, stats))

	series, err := tree.Get(ctx, f.series.ID)
	require.NoError(t, err)
	assert.Equal(t, stats, series.Stats())

	err = tree.UpdateSeriesStats(ctx, f.season1.ID, stats)
	assert.Error(t, err)

	err = tree.UpdateSeriesStats(ctx, uuid.New(), stats)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTree_Update(t *testing.T) {
	ctx := context.Background()
	tree := NewTree()
	f := newFixture(t, tree)

	series, err := tree.Get(ctx, f.series.ID)
	require.NoError(t, err)

	series.ProviderID = "999"
	series.Kind = KindFolder
	series.Children = nil
	require.NoError(t, tree.Update(ctx, series))

	got, err := tree.Get(ctx, f.series.ID)
	require.NoError(t, err)
	assert.Equal(t, "999", got.ProviderID)
	assert.Equal(t, KindSeries, got.Kind)
	assert.Len(t, got.Children, 1)
	assert.NotNil(t, got.DateModified)
}

func TestTree_RefreshMetadata(t *testing.T) {
	ctx := context.Background()

	t.Run("applies refresher output", func(t *testing.T) {
		refresher := &fakeRefresher{}
		tree := NewTree(WithRefresher(refresher))
		f := newFixture(t, tree)

		require.NoError(t, tree.RefreshMetadata(ctx, f.series.ID))
		assert.Equal(t, 1, refresher.calls)

		got, err := tree.Get(ctx, f.series.ID)
		require.NoError(t, err)
		assert.Equal(t, "Alpha (refreshed)", got.Name)
		assert.Equal(t, KindSeries, got.Kind)
		assert.NotNil(t, got.DateModified)
	})

	t.Run("refresher failure", func(t *testing.T) {
		refresher := &fakeRefresher{err: errors.New("provider down")}
		tree := NewTree(WithRefresher(refresher))
		f := newFixture(t, tree)

		err := tree.RefreshMetadata(ctx, f.series.ID)
		assert.ErrorIs(t, err, refresher.err)
	})

	t.Run("without refresher stamps modification", func(t *testing.T) {
		tree := NewTree()
		f := newFixture(t, tree)

		require.NoError(t, tree.RefreshMetadata(ctx, f.ep1.ID))
		got, err := tree.Get(ctx, f.ep1.ID)
		require.NoError(t, err)
		assert.NotNil(t, got.DateModified)
	})
}

func TestTree_RevalidateChildren(t *testing.T) {
	ctx := context.Background()
	tree := NewTree()
	f := newFixture(t, tree)

	require.NoError(t, tree.RevalidateChildren(ctx, f.series.ID))

	season, err := tree.Get(ctx, f.season1.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{f.ep1.ID, f.ep2.ID}, season.Children)

	assert.ErrorIs(t, tree.RevalidateChildren(ctx, uuid.New()), ErrNotFound)
}

func TestLoad(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()

	original := NewTree(WithStore(store))
	f := newFixture(t, original)

	orphan := Item{ID: uuid.New(), ParentID: uuid.New(), Kind: KindEpisode}
	store.items[orphan.ID] = orphan

	loaded, err := Load(ctx, store)
	require.NoError(t, err)

	series, err := loaded.ListSeries(ctx)
	require.NoError(t, err)
	require.Len(t, series, 1)
	assert.Equal(t, f.series.ID, series[0].ID)

	season, err := loaded.Get(ctx, f.season1.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{f.ep1.ID, f.ep2.ID}, season.Children)

	_, err = loaded.Get(ctx, orphan.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
