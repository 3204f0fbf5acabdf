package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func ptr[A any](thing A) *A {
	return &thing
}

func TestItem_ContainsEpisodeNumber(t *testing.T) {
	tests := []struct {
		name   string
		item   Item
		number int32
		want   bool
	}{
		{name: "no index", item: Item{}, number: 1, want: false},
		{name: "single match", item: Item{IndexNumber: ptr(int32(3))}, number: 3, want: true},
		{name: "single mismatch", item: Item{IndexNumber: ptr(int32(3))}, number: 4, want: false},
		{name: "range start", item: Item{IndexNumber: ptr(int32(3)), IndexNumberEnd: ptr(int32(4))}, number: 3, want: true},
		{name: "range end", item: Item{IndexNumber: ptr(int32(3)), IndexNumberEnd: ptr(int32(4))}, number: 4, want: true},
		{name: "below range", item: Item{IndexNumber: ptr(int32(3)), IndexNumberEnd: ptr(int32(4))}, number: 2, want: false},
		{name: "above range", item: Item{IndexNumber: ptr(int32(3)), IndexNumberEnd: ptr(int32(4))}, number: 5, want: false},
		{name: "end without start", item: Item{IndexNumberEnd: ptr(int32(4))}, number: 4, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.item.ContainsEpisodeNumber(tt.number))
		})
	}
}

func TestItem_SeasonNumber(t *testing.T) {
	n, ok := Item{Kind: KindSeason, IndexNumber: ptr(int32(2))}.SeasonNumber()
	assert.True(t, ok)
	assert.Equal(t, int32(2), n)

	n, ok = Item{Kind: KindEpisode, IndexNumber: ptr(int32(7)), ParentIndexNumber: ptr(int32(3))}.SeasonNumber()
	assert.True(t, ok)
	assert.Equal(t, int32(3), n)

	_, ok = Item{Kind: KindEpisode, IndexNumber: ptr(int32(7))}.SeasonNumber()
	assert.False(t, ok)

	_, ok = Item{Kind: KindSeries, IndexNumber: ptr(int32(1))}.SeasonNumber()
	assert.False(t, ok)
}

func TestItem_clone(t *testing.T) {
	original := Item{
		ID:          uuid.New(),
		IndexNumber: ptr(int32(1)),
		Children:    []uuid.UUID{uuid.New()},
	}

	c := original.clone()
	*c.IndexNumber = 5
	c.Children[0] = uuid.Nil

	assert.Equal(t, int32(1), *original.IndexNumber)
	assert.NotEqual(t, uuid.Nil, original.Children[0])
}

func TestDeterministicID(t *testing.T) {
	parent := uuid.MustParse("2d9f5c4e-1a2b-4c3d-8e9f-0a1b2c3d4e5f")

	first := DeterministicID(KindSeason, parent, 1, "Season 1")
	second := DeterministicID(KindSeason, parent, 1, "Season 1")
	assert.Equal(t, first, second)

	assert.NotEqual(t, first, DeterministicID(KindSeason, parent, 2, "Season 2"))
	assert.NotEqual(t, first, DeterministicID(KindEpisode, parent, 1, "Season 1"))
	assert.NotEqual(t, first, DeterministicID(KindSeason, uuid.New(), 1, "Season 1"))
}
