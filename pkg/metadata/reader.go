// Package metadata reads the locally cached per-episode metadata records of a series.
package metadata

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/kasuboski/gapz/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/ianaindex"
)

//go:generate mockgen -package mocks -destination mocks/mock_record_reader.go github.com/kasuboski/gapz/pkg/metadata RecordReader

var (
	ErrMalformedFilename = errors.New("filename is not episode-<season>-<episode>.xml")
	ErrBlankName         = errors.New("episode name is blank")
)

const (
	episodeNameElement = "EpisodeName"
	firstAiredElement  = "FirstAired"
)

var episodeFileRegex = regexp.MustCompile(`(?i)^episode-(\d+)-(\d+)\.xml$`)

var airDateLayouts = []string{
	time.DateOnly,
	time.RFC3339,
	time.DateTime,
	"2006-01-02T15:04:05",
	"01/02/2006",
	"2006/01/02",
	"2 Jan 2006",
}

// RecordReader returns the remote episode records cached for a series
type RecordReader interface {
	Records(ctx context.Context, providerID string) (RecordSet, error)
}

var _ RecordReader = (*Reader)(nil)

// Reader reads cache directories laid out as <providerID>/episode-<season>-<episode>.xml
type Reader struct {
	fs fs.FS
}

// NewReader creates a reader rooted at the metadata cache
func NewReader(fsys fs.FS) *Reader {
	return &Reader{fs: fsys}
}

// NewDirReader creates a reader for a cache directory on the local disk
func NewDirReader(dir string) *Reader {
	return NewReader(os.DirFS(dir))
}

// SeriesDir is the cache directory of a series, relative to the cache root
func (r *Reader) SeriesDir(providerID string) string {
	return providerID
}

// Records reads the record set cached for the provider id
func (r *Reader) Records(ctx context.Context, providerID string) (RecordSet, error) {
	return r.ReadDir(ctx, r.SeriesDir(providerID))
}

// ReadDir parses every episode file in dir. A missing or unreadable directory is an empty set.
// Files that can't be parsed are skipped.
func (r *Reader) ReadDir(ctx context.Context, dir string) (RecordSet, error) {
	log := logger.FromCtx(ctx, "dir", dir)

	var rs RecordSet
	if !fs.ValidPath(dir) {
		log.Debugw("invalid cache directory, treating as empty")
		return rs, nil
	}

	entries, err := fs.ReadDir(r.fs, dir)
	if err != nil {
		log.Debugw("couldn't read cache directory, treating as empty", zap.Error(err))
		return rs, nil
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return RecordSet{}, err
		}

		if entry.IsDir() {
			continue
		}

		season, episode, err := parseFilename(entry.Name())
		if err != nil {
			continue
		}

		airDate, err := r.readFile(path.Join(dir, entry.Name()))
		if err != nil {
			log.Debugw("skipping cache file", "file", entry.Name(), zap.Error(err))
			continue
		}

		rs.Add(Record{
			Season:  season,
			Episode: episode,
			AirDate: airDate,
		})
	}

	log.Debugw("read cached records", "count", rs.Len())
	return rs, nil
}

func (r *Reader) readFile(name string) (*time.Time, error) {
	f, err := r.fs.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return parseEpisode(f)
}

func parseFilename(name string) (int, int, error) {
	matches := episodeFileRegex.FindStringSubmatch(name)
	if matches == nil {
		return 0, 0, ErrMalformedFilename
	}

	season, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %w", ErrMalformedFilename, err)
	}

	episode, err := strconv.Atoi(matches[2])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %w", ErrMalformedFilename, err)
	}

	return season, episode, nil
}

// parseEpisode scans the document once for the first EpisodeName and FirstAired elements.
// A present but blank EpisodeName marks a placeholder and ends the scan with ErrBlankName.
func parseEpisode(r io.Reader) (*time.Time, error) {
	d := xml.NewDecoder(r)
	d.Strict = false
	d.CharsetReader = charsetReader

	var (
		airDate   *time.Time
		seenName  bool
		seenAired bool
	)

	for !seenName || !seenAired {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("couldn't read episode xml: %w", err)
		}

		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch {
		case se.Name.Local == episodeNameElement && !seenName:
			seenName = true
			var name string
			if err := d.DecodeElement(&name, &se); err != nil {
				return nil, fmt.Errorf("couldn't read %s: %w", episodeNameElement, err)
			}
			if strings.TrimSpace(name) == "" {
				return nil, ErrBlankName
			}
		case se.Name.Local == firstAiredElement && !seenAired:
			seenAired = true
			var aired string
			if err := d.DecodeElement(&aired, &se); err != nil {
				return nil, fmt.Errorf("couldn't read %s: %w", firstAiredElement, err)
			}
			airDate = parseAirDate(aired)
		}
	}

	return airDate, nil
}

func parseAirDate(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	for _, layout := range airDateLayouts {
		t, err := time.Parse(layout, value)
		if err != nil {
			continue
		}
		t = t.UTC()
		return &t
	}

	return nil
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported charset %q", label)
	}

	return enc.NewDecoder().Reader(input), nil
}
