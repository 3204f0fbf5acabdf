package manager

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kasuboski/gapz/config"
	"github.com/kasuboski/gapz/pkg/catalog"
	"github.com/kasuboski/gapz/pkg/metadata"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

func ptr[A any](a A) *A {
	return &a
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

type testLibrary struct {
	t      *testing.T
	tree   *catalog.Tree
	folder catalog.Item
}

func newTestLibrary(t *testing.T) *testLibrary {
	t.Helper()

	tree := catalog.NewTree(catalog.WithClock(func() time.Time { return testNow }))
	folder := catalog.Item{ID: uuid.New(), Kind: catalog.KindFolder, Name: "tv"}
	require.NoError(t, tree.AddChild(context.Background(), uuid.Nil, folder))

	return &testLibrary{t: t, tree: tree, folder: folder}
}

func (l *testLibrary) series(name, providerID string) catalog.Item {
	l.t.Helper()

	series := catalog.Item{
		ID:         uuid.New(),
		Kind:       catalog.KindSeries,
		Name:       name,
		ProviderID: providerID,
		Presence:   catalog.PresencePhysical,
	}
	require.NoError(l.t, l.tree.AddChild(context.Background(), l.folder.ID, series))
	return l.get(series.ID)
}

func (l *testLibrary) season(series catalog.Item, number *int32, presence catalog.Presence) catalog.Item {
	l.t.Helper()

	season := catalog.Item{
		ID:          uuid.New(),
		Kind:        catalog.KindSeason,
		Name:        "Season",
		Presence:    presence,
		IndexNumber: number,
	}
	require.NoError(l.t, l.tree.AddChild(context.Background(), series.ID, season))
	return l.get(season.ID)
}

func (l *testLibrary) episode(season catalog.Item, number, end *int32, presence catalog.Presence) catalog.Item {
	l.t.Helper()

	episode := catalog.Item{
		ID:                uuid.New(),
		Kind:              catalog.KindEpisode,
		Name:              "Episode",
		Presence:          presence,
		IndexNumber:       number,
		IndexNumberEnd:    end,
		ParentIndexNumber: season.IndexNumber,
	}
	require.NoError(l.t, l.tree.AddChild(context.Background(), season.ID, episode))
	return l.get(episode.ID)
}

func (l *testLibrary) get(id uuid.UUID) catalog.Item {
	l.t.Helper()

	item, err := l.tree.Get(context.Background(), id)
	require.NoError(l.t, err)
	return item
}

func (l *testLibrary) exists(id uuid.UUID) bool {
	_, err := l.tree.Get(context.Background(), id)
	return err == nil
}

// episodeKeys returns "<presence> SxxEyy" for every episode below the series
func (l *testLibrary) episodeKeys(series catalog.Item) []string {
	l.t.Helper()

	episodes, err := l.tree.Descendants(context.Background(), series.ID, catalog.KindEpisode)
	require.NoError(l.t, err)

	keys := make([]string, 0, len(episodes))
	for _, ep := range episodes {
		keys = append(keys, fmt.Sprintf("%s S%02dE%02d", ep.Presence, deref(ep.ParentIndexNumber), deref(ep.IndexNumber)))
	}
	return keys
}

func (l *testLibrary) seasonKeys(series catalog.Item) []string {
	l.t.Helper()

	seasons, err := l.tree.Children(context.Background(), series.ID, catalog.KindSeason)
	require.NoError(l.t, err)

	keys := make([]string, 0, len(seasons))
	for _, s := range seasons {
		keys = append(keys, fmt.Sprintf("%s %d", s.Presence, deref(s.IndexNumber)))
	}
	return keys
}

func deref(n *int32) int32 {
	if n == nil {
		return -1
	}
	return *n
}

// staticRecords serves fixed record sets keyed by provider id
type staticRecords map[string]metadata.RecordSet

func (s staticRecords) Records(_ context.Context, providerID string) (metadata.RecordSet, error) {
	return s[providerID], nil
}

func newTestReconciler(c catalog.Catalog, records metadata.RecordReader, internet bool) SeriesReconciler {
	policy := config.Metadata{InternetEnabled: internet}
	r := NewSeriesReconciler(c, records, NewTreeMutator(c, ""), policy)
	r.now = func() time.Time { return testNow }
	return r
}
