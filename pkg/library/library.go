// Package library discovers TV episode files on disk and mirrors them into the catalog as physical items.
package library

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/kasuboski/gapz/pkg/catalog"
	"github.com/kasuboski/gapz/pkg/logger"
	"go.uber.org/zap"
)

//go:generate mockgen -package mocks -destination mocks/mock_library.go github.com/kasuboski/gapz/pkg/library Library

type Library interface {
	FindEpisodes(ctx context.Context) ([]EpisodeFile, error)
	// Scan synchronizes the physical series, seasons and episodes in the catalog with the files on disk
	Scan(ctx context.Context, c catalog.Catalog) (ScanResult, error)
}

// ScanResult counts the physical items touched by a scan
type ScanResult struct {
	Files   int `json:"files"`
	Added   int `json:"added"`
	Removed int `json:"removed"`
	Skipped int `json:"skipped"`
}

type TVLibrary struct {
	tv   fs.FS
	root string
}

// New creates a library over the tv filesystem. root names the folder item the series are placed under.
func New(tv fs.FS, root string) *TVLibrary {
	return &TVLibrary{
		tv:   tv,
		root: root,
	}
}

func (l *TVLibrary) FindEpisodes(ctx context.Context) ([]EpisodeFile, error) {
	log := logger.FromCtx(ctx)

	episodes := []EpisodeFile{}
	err := fs.WalkDir(l.tv, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Debugw("skipping unreadable path", "path", path, zap.Error(err))
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		nesting := levelsOfNesting(path)
		if d.IsDir() {
			if path != "." && (nesting > 1 || strings.HasPrefix(d.Name(), ".")) {
				log.Debugw("skipping", "dir", path)
				return fs.SkipDir
			}
			return nil
		}

		if nesting == 0 || !isVideoFile(path) {
			return nil
		}

		ef := EpisodeFileFromPath(path)
		if info, err := d.Info(); err == nil {
			ef.Size = info.Size()
		}

		episodes = append(episodes, ef)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return episodes, nil
}

// Scan adds physical items for new episode files and removes physical episodes whose files are gone.
// Files without a season or episode number are skipped.
func (l *TVLibrary) Scan(ctx context.Context, c catalog.Catalog) (ScanResult, error) {
	log := logger.FromCtx(ctx)

	var result ScanResult

	files, err := l.FindEpisodes(ctx)
	if err != nil {
		return result, fmt.Errorf("couldn't list episode files: %w", err)
	}
	result.Files = len(files)

	folder := catalog.Item{
		ID:   catalog.DeterministicID(catalog.KindFolder, uuid.Nil, 0, l.root),
		Kind: catalog.KindFolder,
		Name: l.root,
		Path: l.root,
	}
	added, err := ensure(ctx, c, uuid.Nil, folder)
	if err != nil {
		return result, err
	}
	if added {
		result.Added++
	}

	found := make(map[uuid.UUID]struct{})
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if f.Season == nil || f.Episode == nil {
			log.Debugw("couldn't identify episode file", "path", f.RelativePath)
			result.Skipped++
			continue
		}

		n, err := l.addEpisodeFile(ctx, c, folder.ID, f, found)
		result.Added += n
		if err != nil {
			return result, err
		}
	}

	removed, err := removeMissing(ctx, c, folder.ID, found)
	result.Removed = removed
	if err != nil {
		return result, err
	}

	log.Infow("library scan complete", "files", result.Files, "added", result.Added, "removed", result.Removed, "skipped", result.Skipped)
	return result, nil
}

func (l *TVLibrary) addEpisodeFile(ctx context.Context, c catalog.Catalog, folderID uuid.UUID, f EpisodeFile, found map[uuid.UUID]struct{}) (int, error) {
	var added int

	series := catalog.Item{
		ID:         catalog.DeterministicID(catalog.KindSeries, folderID, 0, f.SeriesPath),
		Kind:       catalog.KindSeries,
		Name:       f.SeriesName,
		Path:       f.SeriesPath,
		ProviderID: f.ProviderID,
	}
	ok, err := ensure(ctx, c, folderID, series)
	if err != nil {
		return added, err
	}
	if ok {
		added++
	}

	// files directly in the series folder share the season with files in a season folder
	season := catalog.Item{
		ID:          catalog.DeterministicID(catalog.KindSeason, series.ID, *f.Season, path.Join(f.SeriesPath, strconv.Itoa(int(*f.Season)))),
		Kind:        catalog.KindSeason,
		Name:        seasonName(*f.Season),
		Path:        f.SeasonPath,
		IndexNumber: f.Season,
	}
	ok, err = ensure(ctx, c, series.ID, season)
	if err != nil {
		return added, err
	}
	if ok {
		added++
	}

	episode := catalog.Item{
		ID:                catalog.DeterministicID(catalog.KindEpisode, season.ID, *f.Episode, f.RelativePath),
		Kind:              catalog.KindEpisode,
		Name:              f.Name,
		Path:              f.RelativePath,
		IndexNumber:       f.Episode,
		IndexNumberEnd:    f.EpisodeEnd,
		ParentIndexNumber: f.Season,
	}
	ok, err = ensure(ctx, c, season.ID, episode)
	if err != nil {
		return added, err
	}
	if ok {
		added++
	}

	found[series.ID] = struct{}{}
	found[season.ID] = struct{}{}
	found[episode.ID] = struct{}{}
	return added, nil
}

// ensure adds the physical item under the parent when it isn't in the catalog yet
func ensure(ctx context.Context, c catalog.Catalog, parentID uuid.UUID, item catalog.Item) (bool, error) {
	_, err := c.Get(ctx, item.ID)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, catalog.ErrNotFound) {
		return false, fmt.Errorf("couldn't look up %s %q: %w", item.Kind, item.Name, err)
	}

	item.Presence = catalog.PresencePhysical
	if err := c.AddChild(ctx, parentID, item); err != nil {
		return false, fmt.Errorf("couldn't add %s %q: %w", item.Kind, item.Name, err)
	}

	logger.FromCtx(ctx).Debugw("added physical item", "kind", item.Kind, "name", item.Name, "path", item.Path)
	return true, nil
}

// removeMissing drops physical episodes and seasons below the folder that were not found on disk.
// Series are kept so their virtual episodes survive a temporarily unavailable share.
func removeMissing(ctx context.Context, c catalog.Catalog, folderID uuid.UUID, found map[uuid.UUID]struct{}) (int, error) {
	var removed int

	for _, kind := range []catalog.Kind{catalog.KindEpisode, catalog.KindSeason} {
		items, err := c.Descendants(ctx, folderID, kind)
		if err != nil {
			return removed, err
		}

		for _, item := range items {
			if item.IsVirtual() {
				continue
			}
			if _, ok := found[item.ID]; ok {
				continue
			}
			if kind == catalog.KindSeason && hasVirtualChildren(ctx, c, item.ID) {
				continue
			}

			if err := c.RemoveChild(ctx, item.ParentID, item.ID); err != nil {
				if errors.Is(err, catalog.ErrNotFound) {
					continue
				}
				return removed, fmt.Errorf("couldn't remove %s %s: %w", item.Kind, item.ID, err)
			}
			logger.FromCtx(ctx).Debugw("removed physical item", "kind", item.Kind, "path", item.Path)
			removed++
		}
	}

	return removed, nil
}

func hasVirtualChildren(ctx context.Context, c catalog.Catalog, seasonID uuid.UUID) bool {
	episodes, err := c.Children(ctx, seasonID, catalog.KindEpisode)
	if err != nil {
		return false
	}
	for _, ep := range episodes {
		if ep.IsVirtual() {
			return true
		}
	}
	return false
}

func seasonName(n int32) string {
	if n == 0 {
		return "Specials"
	}
	return fmt.Sprintf("Season %d", n)
}

func levelsOfNesting(path string) int {
	return strings.Count(path, "/")
}
