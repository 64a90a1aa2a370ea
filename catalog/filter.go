package catalog

import (
	"strings"

	"github.com/poiesic/shortlist/core"
)

// Filter returns the records of ds that satisfy every active predicate in prefs,
// in dataset order. Inactive predicates (empty place, no cuisines, nil price
// bounds, zero rating) match everything. Records with an unknown cost never
// satisfy an active price bound.
//
// An empty result is a non-nil empty slice.
func Filter(ds *Dataset, prefs *core.Preferences) []core.Restaurant {
	out := []core.Restaurant{}
	if prefs == nil {
		prefs = &core.Preferences{}
	}

	m := newMatcher(prefs)
	for _, r := range ds.All() {
		if m.match(&r) {
			out = append(out, r)
		}
	}
	return out
}

// matcher holds the lowercased predicate inputs so each record is compared
// without re-normalizing the preferences.
type matcher struct {
	place     string
	cuisines  []string
	minPrice  *float64
	maxPrice  *float64
	minRating float64
}

func newMatcher(prefs *core.Preferences) *matcher {
	m := &matcher{
		place:     strings.ToLower(prefs.Place),
		minPrice:  prefs.MinPrice,
		maxPrice:  prefs.MaxPrice,
		minRating: prefs.MinRating,
	}
	// Terms are matched as given; surrounding whitespace is significant.
	for _, c := range prefs.Cuisines {
		if c != "" {
			m.cuisines = append(m.cuisines, strings.ToLower(c))
		}
	}
	return m
}

func (m *matcher) match(r *core.Restaurant) bool {
	if m.place != "" && !strings.Contains(strings.ToLower(r.Location), m.place) {
		return false
	}
	if m.minRating > 0 && r.Rate < m.minRating {
		return false
	}
	if m.maxPrice != nil && (!r.HasCost() || *r.Cost > *m.maxPrice) {
		return false
	}
	if m.minPrice != nil && (!r.HasCost() || *r.Cost <= *m.minPrice) {
		return false
	}
	if len(m.cuisines) > 0 && !m.matchCuisine(r.Cuisines) {
		return false
	}
	return true
}

// matchCuisine reports whether any requested cuisine is a substring of the
// record's cuisine string, so "Indian" matches "North Indian".
func (m *matcher) matchCuisine(cuisines string) bool {
	lower := strings.ToLower(cuisines)
	for _, c := range m.cuisines {
		if strings.Contains(lower, c) {
			return true
		}
	}
	return false
}
