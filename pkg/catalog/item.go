package catalog

import (
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindFolder  Kind = "Folder"
	KindSeries  Kind = "Series"
	KindSeason  Kind = "Season"
	KindEpisode Kind = "Episode"
)

// Presence describes whether an item is backed by a media file on disk
type Presence string

const (
	PresencePhysical Presence = "physical"
	PresenceVirtual  Presence = "virtual"
)

// LocationLabel classifies virtual episodes for display only
type LocationLabel string

const (
	LabelNone    LocationLabel = ""
	LabelMissing LocationLabel = "missing"
	LabelUnaired LocationLabel = "unaired"
)

// Item is a single node of the catalog arena. Parent and child relations are
// stored as identifiers and resolved through the owning Tree.
type Item struct {
	ID       uuid.UUID `json:"id"`
	ParentID uuid.UUID `json:"parentId"`
	Kind     Kind      `json:"kind"`
	Name     string    `json:"name"`
	Path     string    `json:"path,omitempty"`
	Presence Presence  `json:"presence"`

	// ProviderID is the remote metadata provider id, only meaningful on series
	ProviderID string `json:"providerId,omitempty"`

	// IndexNumber is the season number of a season or the first episode number of an episode
	IndexNumber *int32 `json:"indexNumber,omitempty"`
	// IndexNumberEnd is the last episode number covered by a multi-episode file
	IndexNumberEnd *int32 `json:"indexNumberEnd,omitempty"`
	// ParentIndexNumber is the season number of an episode
	ParentIndexNumber *int32 `json:"parentIndexNumber,omitempty"`

	PremiereDate  *time.Time    `json:"premiereDate,omitempty"`
	LocationLabel LocationLabel `json:"locationLabel,omitempty"`
	DateCreated   time.Time     `json:"dateCreated"`
	DateModified  *time.Time    `json:"dateModified,omitempty"`

	SeasonCount          int         `json:"seasonCount,omitempty"`
	SpecialFeatureIDs    []uuid.UUID `json:"specialFeatureIds,omitempty"`
	DateLastEpisodeAdded *time.Time  `json:"dateLastEpisodeAdded,omitempty"`

	Children []uuid.UUID `json:"children,omitempty"`
}

// SeriesStats are the derived aggregates kept on a series
type SeriesStats struct {
	SeasonCount          int
	SpecialFeatureIDs    []uuid.UUID
	DateLastEpisodeAdded *time.Time
}

// IsVirtual reports whether the item has no backing media file
func (i Item) IsVirtual() bool {
	return i.Presence == PresenceVirtual
}

// ContainsEpisodeNumber reports whether the episode covers the given episode number.
// Multi-episode files cover the inclusive range [IndexNumber, IndexNumberEnd].
func (i Item) ContainsEpisodeNumber(number int32) bool {
	if i.IndexNumber == nil {
		return false
	}

	if i.IndexNumberEnd != nil {
		return number >= *i.IndexNumber && number <= *i.IndexNumberEnd
	}

	return *i.IndexNumber == number
}

// SeasonNumber returns the season the item belongs to.
// Seasons report their own index, episodes their parent index.
func (i Item) SeasonNumber() (int32, bool) {
	var n *int32
	switch i.Kind {
	case KindSeason:
		n = i.IndexNumber
	case KindEpisode:
		n = i.ParentIndexNumber
	}

	if n == nil {
		return 0, false
	}

	return *n, true
}

// Stats returns the series aggregates currently stored on the item
func (i Item) Stats() SeriesStats {
	return SeriesStats{
		SeasonCount:          i.SeasonCount,
		SpecialFeatureIDs:    slices.Clone(i.SpecialFeatureIDs),
		DateLastEpisodeAdded: clonePtr(i.DateLastEpisodeAdded),
	}
}

func (i Item) clone() Item {
	c := i
	c.IndexNumber = clonePtr(i.IndexNumber)
	c.IndexNumberEnd = clonePtr(i.IndexNumberEnd)
	c.ParentIndexNumber = clonePtr(i.ParentIndexNumber)
	c.PremiereDate = clonePtr(i.PremiereDate)
	c.DateModified = clonePtr(i.DateModified)
	c.DateLastEpisodeAdded = clonePtr(i.DateLastEpisodeAdded)
	c.SpecialFeatureIDs = slices.Clone(i.SpecialFeatureIDs)
	c.Children = slices.Clone(i.Children)
	return c
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}

	c := *v
	return &c
}

var kindNamespaces = map[Kind]uuid.UUID{
	KindFolder:  uuid.MustParse("4c0f1e52-8f0b-4b8e-9d51-2f0b6a3f2a10"),
	KindSeries:  uuid.MustParse("0a7d8c1e-3b55-4f43-8f4e-7a6c1c9e5b21"),
	KindSeason:  uuid.MustParse("9b2e4f60-5c1d-4a7b-b8e3-1d4f6a2c8e32"),
	KindEpisode: uuid.MustParse("d3c5a7e9-1f2b-4c6d-a8e0-5b7d9f1c3e43"),
}

// DeterministicID derives a stable identifier from the parent, a numeric index and a
// display name so the same logical item resolves to the same id across runs.
func DeterministicID(kind Kind, parentID uuid.UUID, index int32, name string) uuid.UUID {
	ns, ok := kindNamespaces[kind]
	if !ok {
		ns = uuid.NameSpaceOID
	}

	return uuid.NewMD5(ns, []byte(parentID.String()+strconv.Itoa(int(index))+name))
}
