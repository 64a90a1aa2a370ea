package search

import (
	"github.com/poiesic/shortlist/core"
)

const (
	// DefaultLimit is the maximum number of candidates returned per query.
	DefaultLimit = 5

	// DefaultOverscan is the number of filtered records examined before
	// deduplication, so that collapsed duplicates still leave enough candidates.
	DefaultOverscan = 20
)

// RankAndDedup examines the first overscan records in order, skips any whose
// trimmed name was already accepted, and stops once limit candidates have been
// accepted. Each accepted record is described with core.Describe.
// Non-positive limit or overscan values fall back to the defaults.
func RankAndDedup(records []core.Restaurant, limit, overscan int) []core.Candidate {
	return rankAndDedup(records, nil, limit, overscan, &noopMonitor{})
}

// rankAndDedup is RankAndDedup with optional per-record scores aligned with
// records and a monitor notified of skipped duplicates.
func rankAndDedup(records []core.Restaurant, scores []float64, limit, overscan int, monitor SearchMonitor) []core.Candidate {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if overscan <= 0 {
		overscan = DefaultOverscan
	}

	window := records[:min(overscan, len(records))]
	seen := make(map[string]struct{}, len(window))
	out := make([]core.Candidate, 0, min(limit, len(window)))

	for i := range window {
		if len(out) == limit {
			break
		}
		r := window[i]
		key := r.NameKey()
		if _, dup := seen[key]; dup {
			monitor.DuplicateSkipped(r)
			continue
		}
		seen[key] = struct{}{}

		c := core.Candidate{
			Restaurant:  r,
			Description: core.Describe(&r),
		}
		if scores != nil {
			c.Score = scores[i]
		}
		out = append(out, c)
	}
	return out
}
