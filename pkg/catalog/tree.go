package catalog

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kasuboski/gapz/pkg/logger"
	"go.uber.org/zap"
)

var _ Catalog = (*Tree)(nil)

// Tree is the in-memory arena implementation of Catalog.
// Mutations are written through to the Store when one is configured.
type Tree struct {
	mu        sync.RWMutex
	items     map[uuid.UUID]*Item
	roots     []uuid.UUID
	store     Store
	refresher Refresher
	now       func() time.Time
}

type Option func(*Tree)

// WithStore persists every mutation to the given store
func WithStore(store Store) Option {
	return func(t *Tree) {
		t.store = store
	}
}

// WithRefresher sets the metadata refresher used by RefreshMetadata
func WithRefresher(r Refresher) Option {
	return func(t *Tree) {
		t.refresher = r
	}
}

// WithClock overrides the time source used for creation and modification dates
func WithClock(now func() time.Time) Option {
	return func(t *Tree) {
		t.now = now
	}
}

// NewTree creates an empty catalog tree
func NewTree(opts ...Option) *Tree {
	t := &Tree{
		items: make(map[uuid.UUID]*Item),
		now:   time.Now,
	}

	for _, o := range opts {
		o(t)
	}

	return t
}

// Load builds a tree from the items persisted in store. The store is also used for write-through.
func Load(ctx context.Context, store Store, opts ...Option) (*Tree, error) {
	log := logger.FromCtx(ctx)

	items, err := store.ListCatalogItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("couldn't list catalog items: %w", err)
	}

	t := NewTree(append([]Option{WithStore(store)}, opts...)...)
	for _, item := range items {
		item.Children = nil
		t.items[item.ID] = &item
	}

	for _, item := range items {
		if item.ParentID == uuid.Nil {
			t.roots = append(t.roots, item.ID)
			continue
		}

		parent, ok := t.items[item.ParentID]
		if !ok {
			log.Warnw("dropping catalog item with unknown parent", zap.Stringer("id", item.ID), zap.Stringer("parent_id", item.ParentID))
			delete(t.items, item.ID)
			continue
		}

		parent.Children = append(parent.Children, item.ID)
	}

	t.sortChildren(&t.roots)
	for _, item := range t.items {
		t.sortChildren(&item.Children)
	}

	log.Debugw("loaded catalog", zap.Int("items", len(t.items)))
	return t, nil
}

func (t *Tree) Get(ctx context.Context, id uuid.UUID) (Item, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	item, ok := t.items[id]
	if !ok {
		return Item{}, ErrNotFound
	}

	return item.clone(), nil
}

func (t *Tree) Children(ctx context.Context, parentID uuid.UUID, kind Kind) ([]Item, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	ids := t.roots
	if parentID != uuid.Nil {
		parent, ok := t.items[parentID]
		if !ok {
			return nil, ErrNotFound
		}
		ids = parent.Children
	}

	children := make([]Item, 0, len(ids))
	for _, id := range ids {
		child, ok := t.items[id]
		if !ok || child.Kind != kind {
			continue
		}
		children = append(children, child.clone())
	}

	return children, nil
}

func (t *Tree) Descendants(ctx context.Context, parentID uuid.UUID, kind Kind) ([]Item, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	parent, ok := t.items[parentID]
	if !ok {
		return nil, ErrNotFound
	}

	var found []Item
	t.walk(parent.Children, func(item *Item) bool {
		if item.Kind == kind {
			found = append(found, item.clone())
		}
		return true
	})

	return found, nil
}

func (t *Tree) ListSeries(ctx context.Context) ([]Item, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var series []Item
	t.walk(t.roots, func(item *Item) bool {
		if item.Kind != KindSeries {
			return true
		}
		series = append(series, item.clone())
		return false
	})

	return series, nil
}

// walk visits ids depth first. fn returning false stops descent below that item.
func (t *Tree) walk(ids []uuid.UUID, fn func(item *Item) bool) {
	for _, id := range ids {
		item, ok := t.items[id]
		if !ok {
			continue
		}

		if fn(item) {
			t.walk(item.Children, fn)
		}
	}
}

func (t *Tree) AddChild(ctx context.Context, parentID uuid.UUID, item Item) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if item.ID == uuid.Nil {
		return fmt.Errorf("item %q has no id", item.Name)
	}

	if _, ok := t.items[item.ID]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, item.ID)
	}

	var parent *Item
	if parentID == uuid.Nil {
		if item.Kind != KindFolder && item.Kind != KindSeries {
			return fmt.Errorf("%w: %s at root", ErrInvalidParent, item.Kind)
		}
	} else {
		var ok bool
		parent, ok = t.items[parentID]
		if !ok {
			return fmt.Errorf("parent %s: %w", parentID, ErrNotFound)
		}

		if !slices.Contains(allowedChildren[parent.Kind], item.Kind) {
			return fmt.Errorf("%w: %s under %s", ErrInvalidParent, item.Kind, parent.Kind)
		}
	}

	item = item.clone()
	item.ParentID = parentID
	item.Children = nil
	if item.DateCreated.IsZero() {
		item.DateCreated = t.now().UTC()
	}
	if item.Presence == "" {
		item.Presence = PresencePhysical
	}

	if t.store != nil {
		if err := t.store.SaveCatalogItems(ctx, item); err != nil {
			return fmt.Errorf("couldn't persist item %s: %w", item.ID, err)
		}
	}

	t.items[item.ID] = &item
	if parent == nil {
		t.roots = append(t.roots, item.ID)
	} else {
		parent.Children = append(parent.Children, item.ID)
	}

	return nil
}

func (t *Tree) RemoveChild(ctx context.Context, parentID uuid.UUID, childID uuid.UUID) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	siblings := &t.roots
	if parentID != uuid.Nil {
		parent, ok := t.items[parentID]
		if !ok {
			return fmt.Errorf("parent %s: %w", parentID, ErrNotFound)
		}
		siblings = &parent.Children
	}

	idx := slices.Index(*siblings, childID)
	if idx < 0 {
		return fmt.Errorf("child %s of %s: %w", childID, parentID, ErrNotFound)
	}

	removed := []uuid.UUID{childID}
	if child, ok := t.items[childID]; ok {
		t.walk(child.Children, func(item *Item) bool {
			removed = append(removed, item.ID)
			return true
		})
	}

	if t.store != nil {
		if err := t.store.DeleteCatalogItems(ctx, removed...); err != nil {
			return fmt.Errorf("couldn't delete items below %s: %w", childID, err)
		}
	}

	for _, id := range removed {
		delete(t.items, id)
	}
	*siblings = slices.Delete(*siblings, idx, idx+1)

	return nil
}

// Update replaces the descriptive fields of an existing item. Kind, parent and children are kept.
func (t *Tree) Update(ctx context.Context, item Item) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	existing, ok := t.items[item.ID]
	if !ok {
		return ErrNotFound
	}

	updated := item.clone()
	updated.Kind = existing.Kind
	updated.ParentID = existing.ParentID
	updated.Children = existing.Children
	updated.DateCreated = existing.DateCreated
	now := t.now().UTC()
	updated.DateModified = &now

	return t.replace(ctx, existing, updated)
}

func (t *Tree) UpdateSeriesStats(ctx context.Context, id uuid.UUID, stats SeriesStats) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	existing, ok := t.items[id]
	if !ok {
		return ErrNotFound
	}

	if existing.Kind != KindSeries {
		return fmt.Errorf("%s is a %s, not a series", id, existing.Kind)
	}

	updated := existing.clone()
	updated.SeasonCount = stats.SeasonCount
	updated.SpecialFeatureIDs = slices.Clone(stats.SpecialFeatureIDs)
	updated.DateLastEpisodeAdded = clonePtr(stats.DateLastEpisodeAdded)

	return t.replace(ctx, existing, updated)
}

// RefreshMetadata runs the configured refresher for the item and stamps its modification date.
// The refresher is called without holding the tree lock.
func (t *Tree) RefreshMetadata(ctx context.Context, id uuid.UUID) error {
	item, err := t.Get(ctx, id)
	if err != nil {
		return err
	}

	if t.refresher != nil {
		refreshed, err := t.refresher.RefreshMetadata(ctx, item)
		if err != nil {
			return fmt.Errorf("couldn't refresh metadata for %s: %w", id, err)
		}

		item.Name = refreshed.Name
		item.PremiereDate = clonePtr(refreshed.PremiereDate)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	existing, ok := t.items[id]
	if !ok {
		return ErrNotFound
	}

	updated := existing.clone()
	updated.Name = item.Name
	updated.PremiereDate = item.PremiereDate
	now := t.now().UTC()
	updated.DateModified = &now

	return t.replace(ctx, existing, updated)
}

// RevalidateChildren drops dangling child references and restores the canonical
// child order for the item and everything below it.
func (t *Tree) RevalidateChildren(ctx context.Context, id uuid.UUID) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	item, ok := t.items[id]
	if !ok {
		return ErrNotFound
	}

	t.revalidate(item)
	return nil
}

func (t *Tree) revalidate(item *Item) {
	item.Children = slices.DeleteFunc(item.Children, func(id uuid.UUID) bool {
		child, ok := t.items[id]
		return !ok || child.ParentID != item.ID
	})
	t.sortChildren(&item.Children)

	for _, id := range item.Children {
		t.revalidate(t.items[id])
	}
}

func (t *Tree) replace(ctx context.Context, existing *Item, updated Item) error {
	if t.store != nil {
		if err := t.store.SaveCatalogItems(ctx, updated); err != nil {
			return fmt.Errorf("couldn't persist item %s: %w", updated.ID, err)
		}
	}

	*existing = updated
	return nil
}

// sortChildren orders items by index number, unnumbered last, then by name
func (t *Tree) sortChildren(ids *[]uuid.UUID) {
	slices.SortStableFunc(*ids, func(a, b uuid.UUID) int {
		ia, ib := t.items[a], t.items[b]
		if ia == nil || ib == nil {
			return 0
		}

		switch {
		case ia.IndexNumber == nil && ib.IndexNumber != nil:
			return 1
		case ia.IndexNumber != nil && ib.IndexNumber == nil:
			return -1
		case ia.IndexNumber != nil && ib.IndexNumber != nil && *ia.IndexNumber != *ib.IndexNumber:
			return cmp.Compare(*ia.IndexNumber, *ib.IndexNumber)
		}

		return cmp.Compare(ia.Name, ib.Name)
	})
}
