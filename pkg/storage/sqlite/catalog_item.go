package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kasuboski/gapz/pkg/catalog"
)

const catalogItemColumns = `id, parent_id, kind, name, path, presence, provider_id,
	index_number, index_number_end, parent_index_number, premiere_date, location_label,
	season_count, special_feature_ids, date_last_episode_added, date_created, date_modified`

// ListCatalogItems returns every stored catalog item. Children are left empty.
func (s *SQLite) ListCatalogItems(ctx context.Context) ([]catalog.Item, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+catalogItemColumns+` FROM catalog_item ORDER BY date_created, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog items: %w", err)
	}
	defer rows.Close()

	items := make([]catalog.Item, 0)
	for rows.Next() {
		item, err := scanCatalogItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list catalog items: %w", err)
	}

	return items, nil
}

// SaveCatalogItems inserts or replaces the given items in a single transaction
func (s *SQLite) SaveCatalogItems(ctx context.Context, items ...catalog.Item) error {
	if len(items) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.inTx(ctx, func(tx *sql.Tx) error {
		for _, item := range items {
			if err := saveCatalogItem(ctx, tx, item); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteCatalogItems removes the items with the given ids. Unknown ids are ignored.
func (s *SQLite) DeleteCatalogItems(ctx context.Context, ids ...uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.inTx(ctx, func(tx *sql.Tx) error {
		for _, id := range ids {
			if _, err := tx.ExecContext(ctx, `DELETE FROM catalog_item WHERE id = ?`, id.String()); err != nil {
				return fmt.Errorf("failed to delete catalog item %s: %w", id, err)
			}
		}
		return nil
	})
}

func saveCatalogItem(ctx context.Context, q querier, item catalog.Item) error {
	specials, err := json.Marshal(item.SpecialFeatureIDs)
	if err != nil {
		return fmt.Errorf("failed to encode special feature ids: %w", err)
	}
	if item.SpecialFeatureIDs == nil {
		specials = []byte("[]")
	}

	parentID := sql.NullString{String: item.ParentID.String(), Valid: item.ParentID != uuid.Nil}

	_, err = q.ExecContext(ctx, `
		INSERT INTO catalog_item (`+catalogItemColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			parent_id = excluded.parent_id,
			kind = excluded.kind,
			name = excluded.name,
			path = excluded.path,
			presence = excluded.presence,
			provider_id = excluded.provider_id,
			index_number = excluded.index_number,
			index_number_end = excluded.index_number_end,
			parent_index_number = excluded.parent_index_number,
			premiere_date = excluded.premiere_date,
			location_label = excluded.location_label,
			season_count = excluded.season_count,
			special_feature_ids = excluded.special_feature_ids,
			date_last_episode_added = excluded.date_last_episode_added,
			date_created = excluded.date_created,
			date_modified = excluded.date_modified`,
		item.ID.String(), parentID, string(item.Kind), item.Name, item.Path, string(item.Presence), item.ProviderID,
		item.IndexNumber, item.IndexNumberEnd, item.ParentIndexNumber, utcPtr(item.PremiereDate), string(item.LocationLabel),
		item.SeasonCount, string(specials), utcPtr(item.DateLastEpisodeAdded), item.DateCreated.UTC(), utcPtr(item.DateModified),
	)
	if err != nil {
		return fmt.Errorf("failed to save catalog item %s: %w", item.ID, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCatalogItem(row rowScanner) (catalog.Item, error) {
	var (
		item     catalog.Item
		parentID sql.NullString
		specials string
	)

	err := row.Scan(
		&item.ID, &parentID, &item.Kind, &item.Name, &item.Path, &item.Presence, &item.ProviderID,
		&item.IndexNumber, &item.IndexNumberEnd, &item.ParentIndexNumber, &item.PremiereDate, &item.LocationLabel,
		&item.SeasonCount, &specials, &item.DateLastEpisodeAdded, &item.DateCreated, &item.DateModified,
	)
	if err != nil {
		return catalog.Item{}, fmt.Errorf("failed to scan catalog item: %w", mapError(err))
	}

	if parentID.Valid {
		item.ParentID, err = uuid.Parse(parentID.String)
		if err != nil {
			return catalog.Item{}, fmt.Errorf("invalid parent id for %s: %w", item.ID, err)
		}
	}

	if specials != "" {
		if err := json.Unmarshal([]byte(specials), &item.SpecialFeatureIDs); err != nil {
			return catalog.Item{}, fmt.Errorf("invalid special feature ids for %s: %w", item.ID, err)
		}
	}
	if len(item.SpecialFeatureIDs) == 0 {
		item.SpecialFeatureIDs = nil
	}

	return item, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
