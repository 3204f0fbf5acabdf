package manager

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
)

// ErrStructuralMutation wraps a failed add or remove against the catalog.
// The series being reconciled is abandoned and the scan moves on.
var ErrStructuralMutation = errors.New("catalog mutation failed")

// ProgressFunc receives the completion percentage of a running scan in [0, 100]
type ProgressFunc func(percent float64)

// ReconcileResult counts the structural changes made to a single series
type ReconcileResult struct {
	SeasonsRemoved  int `json:"seasonsRemoved"`
	EpisodesRemoved int `json:"episodesRemoved"`
	SeasonsAdded    int `json:"seasonsAdded"`
	EpisodesAdded   int `json:"episodesAdded"`
}

// Changed reports whether the series tree was modified
func (r ReconcileResult) Changed() bool {
	return r.SeasonsRemoved+r.EpisodesRemoved+r.SeasonsAdded+r.EpisodesAdded > 0
}

func (r *ReconcileResult) merge(other ReconcileResult) {
	r.SeasonsRemoved += other.SeasonsRemoved
	r.EpisodesRemoved += other.EpisodesRemoved
	r.SeasonsAdded += other.SeasonsAdded
	r.EpisodesAdded += other.EpisodesAdded
}

// ScanSummary totals a full library scan
type ScanSummary struct {
	ReconcileResult
	Series  int `json:"series"`
	Changed int `json:"changed"`
	Failed  int `json:"failed"`
}

func (s ScanSummary) String() string {
	return fmt.Sprintf("%s series (%s changed, %s failed), seasons +%s/-%s, episodes +%s/-%s",
		humanize.Comma(int64(s.Series)),
		humanize.Comma(int64(s.Changed)),
		humanize.Comma(int64(s.Failed)),
		humanize.Comma(int64(s.SeasonsAdded)),
		humanize.Comma(int64(s.SeasonsRemoved)),
		humanize.Comma(int64(s.EpisodesAdded)),
		humanize.Comma(int64(s.EpisodesRemoved)),
	)
}
