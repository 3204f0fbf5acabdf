package manager

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kasuboski/gapz/pkg/catalog"
	"github.com/kasuboski/gapz/pkg/logger"
)

const defaultSeasonZeroName = "Specials"

// TreeMutator creates and removes virtual nodes in the catalog
type TreeMutator struct {
	catalog        catalog.Catalog
	seasonZeroName string
}

func NewTreeMutator(c catalog.Catalog, seasonZeroName string) TreeMutator {
	if strings.TrimSpace(seasonZeroName) == "" {
		seasonZeroName = defaultSeasonZeroName
	}

	return TreeMutator{
		catalog:        c,
		seasonZeroName: seasonZeroName,
	}
}

func (t TreeMutator) seasonName(number int32) string {
	if number == 0 {
		return t.seasonZeroName
	}
	return fmt.Sprintf("Season %d", number)
}

// AddSeason adds a virtual season with the given number under the series
func (t TreeMutator) AddSeason(ctx context.Context, series catalog.Item, number int32) (catalog.Item, error) {
	name := t.seasonName(number)
	season := catalog.Item{
		ID:          catalog.DeterministicID(catalog.KindSeason, series.ID, number, name),
		Kind:        catalog.KindSeason,
		Name:        name,
		Presence:    catalog.PresenceVirtual,
		IndexNumber: &number,
	}

	if err := t.add(ctx, series.ID, season); err != nil {
		return catalog.Item{}, err
	}

	return t.catalog.Get(ctx, season.ID)
}

// AddEpisode adds a virtual episode to the season. The label only affects how the episode is displayed.
func (t TreeMutator) AddEpisode(ctx context.Context, season catalog.Item, number int32, airDate time.Time, label catalog.LocationLabel) (catalog.Item, error) {
	seasonNumber, ok := season.SeasonNumber()
	if !ok {
		return catalog.Item{}, fmt.Errorf("season %s has no number", season.ID)
	}

	name := fmt.Sprintf("Episode %d", number)
	airDate = airDate.UTC()
	episode := catalog.Item{
		ID:                catalog.DeterministicID(catalog.KindEpisode, season.ID, number, name),
		Kind:              catalog.KindEpisode,
		Name:              name,
		Presence:          catalog.PresenceVirtual,
		IndexNumber:       &number,
		ParentIndexNumber: &seasonNumber,
		PremiereDate:      &airDate,
		LocationLabel:     label,
	}

	if err := t.add(ctx, season.ID, episode); err != nil {
		return catalog.Item{}, err
	}

	return t.catalog.Get(ctx, episode.ID)
}

func (t TreeMutator) add(ctx context.Context, parentID uuid.UUID, item catalog.Item) error {
	log := logger.FromCtx(ctx)

	if err := t.catalog.AddChild(ctx, parentID, item); err != nil {
		return fmt.Errorf("couldn't add %s %q: %w", item.Kind, item.Name, err)
	}

	if err := t.catalog.RefreshMetadata(ctx, item.ID); err != nil {
		log.Warnw("failed to refresh new item", "id", item.ID, "kind", item.Kind, "error", err)
	}

	return nil
}

// Remove detaches a virtual item and everything below it. Physical items, and virtual
// seasons that still hold physical episodes, are refused with catalog.ErrNotVirtual.
func (t TreeMutator) Remove(ctx context.Context, item catalog.Item) error {
	if !item.IsVirtual() {
		return fmt.Errorf("couldn't remove %s %s: %w", item.Kind, item.ID, catalog.ErrNotVirtual)
	}

	if item.Kind == catalog.KindSeason {
		episodes, err := t.catalog.Children(ctx, item.ID, catalog.KindEpisode)
		if err != nil {
			return err
		}
		for _, ep := range episodes {
			if !ep.IsVirtual() {
				return fmt.Errorf("couldn't remove season %s with physical episode %s: %w", item.ID, ep.ID, catalog.ErrNotVirtual)
			}
		}
	}

	return t.catalog.RemoveChild(ctx, item.ParentID, item.ID)
}

// Refresh refreshes the series metadata and revalidates its children after structural changes
func (t TreeMutator) Refresh(ctx context.Context, series catalog.Item) error {
	if err := t.catalog.RefreshMetadata(ctx, series.ID); err != nil {
		return fmt.Errorf("couldn't refresh series %s: %w", series.ID, err)
	}

	if err := t.catalog.RevalidateChildren(ctx, series.ID); err != nil {
		return fmt.Errorf("couldn't revalidate series %s: %w", series.ID, err)
	}

	return nil
}
