// Package catalog holds the hierarchical media catalog (folders → series → seasons → episodes)
// as an arena of items addressed by stable identifiers.
package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

//go:generate mockgen -package mocks -destination mocks/mock_catalog.go github.com/kasuboski/gapz/pkg/catalog Catalog

var (
	ErrNotFound      = errors.New("item not found in catalog")
	ErrAlreadyExists = errors.New("item already exists in catalog")
	ErrInvalidParent = errors.New("item kind not allowed under parent")
	ErrNotVirtual    = errors.New("item is not virtual")
)

// Catalog is the contract for reading and mutating the catalog tree.
// Reads return copies; callers must not expect later mutations to be reflected in them.
type Catalog interface {
	Get(ctx context.Context, id uuid.UUID) (Item, error)
	// Children returns the direct children of parentID of the given kind
	Children(ctx context.Context, parentID uuid.UUID, kind Kind) ([]Item, error)
	// Descendants returns every item of the given kind below parentID
	Descendants(ctx context.Context, parentID uuid.UUID, kind Kind) ([]Item, error)
	// ListSeries returns every series reachable from the catalog roots
	ListSeries(ctx context.Context) ([]Item, error)

	AddChild(ctx context.Context, parentID uuid.UUID, item Item) error
	// RemoveChild removes the child and everything below it
	RemoveChild(ctx context.Context, parentID uuid.UUID, childID uuid.UUID) error
	Update(ctx context.Context, item Item) error
	UpdateSeriesStats(ctx context.Context, id uuid.UUID, stats SeriesStats) error

	RefreshMetadata(ctx context.Context, id uuid.UUID) error
	RevalidateChildren(ctx context.Context, id uuid.UUID) error
}

// Store persists catalog items. Children are rebuilt from each item's ParentID on load.
type Store interface {
	ListCatalogItems(ctx context.Context) ([]Item, error)
	SaveCatalogItems(ctx context.Context, items ...Item) error
	DeleteCatalogItems(ctx context.Context, ids ...uuid.UUID) error
}

// Refresher refreshes the metadata of a single item, e.g. from a metadata provider.
// Structural fields of the returned item are ignored.
type Refresher interface {
	RefreshMetadata(ctx context.Context, item Item) (Item, error)
}

var allowedChildren = map[Kind][]Kind{
	KindFolder: {KindFolder, KindSeries},
	KindSeries: {KindSeason},
	KindSeason: {KindEpisode},
}
