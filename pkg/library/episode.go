package library

import (
	"fmt"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

var (
	providerRegex   = regexp.MustCompile(`(?i)\s*[\[{]tvdb(?:id)?[-=](\d+)[\]}]`)
	seasonDirRegex  = regexp.MustCompile(`(?i)^season[\s._-]*(\d{1,4})$`)
	episodeRegex    = regexp.MustCompile(`(?i)S(\d{1,3})[\s._-]?E(\d{1,4})(?:[\s._-]*E(\d{1,4}))?`)
	crossRegex      = regexp.MustCompile(`(?i)(?:^|[^a-z0-9])(\d{1,2})x(\d{2,3})(?:[^0-9]|$)`)
	videoExtensions = []string{".mp4", ".avi", ".mkv", ".m4v", ".iso", ".ts", ".m2ts"}
)

// EpisodeFile is a video file found below a series folder
type EpisodeFile struct {
	Name         string `json:"name"`
	RelativePath string `json:"path"`
	Size         int64  `json:"size"`
	SeriesName   string `json:"seriesName"`
	SeriesPath   string `json:"seriesPath"`
	ProviderID   string `json:"providerId,omitempty"`
	// SeasonPath is the season folder, or empty when the file sits directly in the series folder
	SeasonPath   string `json:"seasonPath,omitempty"`
	Season       *int32 `json:"season,omitempty"`
	Episode      *int32 `json:"episode,omitempty"`
	EpisodeEnd   *int32 `json:"episodeEnd,omitempty"`
}

func (ef EpisodeFile) String() string {
	return fmt.Sprintf("name: %s, series: %s, season: %s, episode: %s, relative path: %s, size: %s",
		ef.Name, ef.SeriesName, formatNumber(ef.Season), formatNumber(ef.Episode), ef.RelativePath, humanize.IBytes(uint64(ef.Size)))
}

func formatNumber(n *int32) string {
	if n == nil {
		return "?"
	}
	return strconv.Itoa(int(*n))
}

// EpisodeFileFromPath parses a slash separated path of the form
// <series>/<file> or <series>/<season>/<file>
func EpisodeFileFromPath(p string) EpisodeFile {
	parts := strings.Split(p, "/")
	name := parts[len(parts)-1]

	ef := EpisodeFile{
		Name:         name,
		RelativePath: p,
		SeriesPath:   parts[0],
	}
	ef.SeriesName, ef.ProviderID = parseSeriesDir(parts[0])

	if len(parts) > 2 {
		ef.SeasonPath = path.Join(parts[:len(parts)-1]...)
		if n, ok := parseSeasonDir(parts[len(parts)-2]); ok {
			ef.Season = &n
		}
	}

	season, start, end, ok := parseEpisodeNumbers(name)
	if ok {
		if ef.Season == nil {
			ef.Season = &season
		}
		ef.Episode = &start
		if end > start {
			ef.EpisodeEnd = &end
		}
	}

	return ef
}

// parseSeriesDir splits a series folder name into its display name and provider id tag
func parseSeriesDir(name string) (string, string) {
	var providerID string
	if m := providerRegex.FindStringSubmatch(name); m != nil {
		providerID = m[1]
	}

	return sanitizeName(providerRegex.ReplaceAllString(name, "")), providerID
}

func parseSeasonDir(name string) (int32, bool) {
	name = sanitizeName(name)
	if strings.EqualFold(name, "specials") {
		return 0, true
	}

	m := seasonDirRegex.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}

	n, err := strconv.ParseInt(m[1], 10, 32)
	if err != nil {
		return 0, false
	}
	return int32(n), true
}

// parseEpisodeNumbers extracts the season and episode range from S01E02, S01E02-E03 or 1x02 style names
func parseEpisodeNumbers(name string) (season, start, end int32, ok bool) {
	if m := episodeRegex.FindStringSubmatch(name); m != nil {
		season, start = atoi32(m[1]), atoi32(m[2])
		end = start
		if m[3] != "" {
			end = atoi32(m[3])
		}
		return season, start, end, true
	}

	if m := crossRegex.FindStringSubmatch(name); m != nil {
		season, start = atoi32(m[1]), atoi32(m[2])
		return season, start, start, true
	}

	return 0, 0, 0, false
}

func atoi32(s string) int32 {
	n, _ := strconv.ParseInt(s, 10, 32)
	return int32(n)
}

func isVideoFile(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	for _, e := range videoExtensions {
		if ext == e {
			return true
		}
	}

	return false
}

func sanitizeName(name string) string {
	return strings.Trim(strings.TrimSpace(name), "'")
}
