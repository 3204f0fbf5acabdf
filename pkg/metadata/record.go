package metadata

import (
	"time"
)

// Record is a single remote episode parsed from the local metadata cache
type Record struct {
	Season  int
	Episode int
	// AirDate is in UTC, nil when the cache entry had no usable date
	AirDate *time.Time
}

type recordKey struct {
	season, episode int
}

// RecordSet is an ordered, de-duplicated set of records keyed by (season, episode).
// Iteration order is the order of first appearance.
type RecordSet struct {
	records []Record
	index   map[recordKey]int
	seasons map[int]struct{}
}

// NewRecordSet builds a set from records, dropping later duplicates
func NewRecordSet(records ...Record) RecordSet {
	var rs RecordSet
	for _, r := range records {
		rs.Add(r)
	}
	return rs
}

// Add inserts r unless a record with the same season and episode already exists.
// It reports whether r was added.
func (rs *RecordSet) Add(r Record) bool {
	if rs.index == nil {
		rs.index = make(map[recordKey]int)
		rs.seasons = make(map[int]struct{})
	}

	key := recordKey{r.Season, r.Episode}
	if _, ok := rs.index[key]; ok {
		return false
	}

	rs.index[key] = len(rs.records)
	rs.seasons[r.Season] = struct{}{}
	rs.records = append(rs.records, r)
	return true
}

// Records returns the records in insertion order
func (rs RecordSet) Records() []Record {
	out := make([]Record, len(rs.records))
	copy(out, rs.records)
	return out
}

func (rs RecordSet) Len() int {
	return len(rs.records)
}

// Has reports whether a record for the exact season and episode exists
func (rs RecordSet) Has(season, episode int) bool {
	_, ok := rs.index[recordKey{season, episode}]
	return ok
}

// HasSeason reports whether any record belongs to the season
func (rs RecordSet) HasSeason(season int) bool {
	_, ok := rs.seasons[season]
	return ok
}
