package catalog

import (
	"slices"
	"strings"
)

// FacetSet lists the distinct filter values present in a dataset, used to
// populate selection menus.
type FacetSet struct {
	Places   []string  `json:"places"`
	Cuisines []string  `json:"cuisines"`
	Costs    []float64 `json:"costs"`
}

// Facets collects the sorted distinct places, cuisines and costs of ds.
// A place is the first comma separated segment of a location; cuisines are
// split on commas. Blank values are ignored.
func Facets(ds *Dataset) FacetSet {
	places := map[string]struct{}{}
	cuisines := map[string]struct{}{}
	costs := map[float64]struct{}{}

	for _, r := range ds.All() {
		place, _, _ := strings.Cut(r.Location, ",")
		if place = strings.TrimSpace(place); place != "" {
			places[place] = struct{}{}
		}
		for c := range strings.SplitSeq(r.Cuisines, ",") {
			if c = strings.TrimSpace(c); c != "" {
				cuisines[c] = struct{}{}
			}
		}
		if r.HasCost() {
			costs[*r.Cost] = struct{}{}
		}
	}

	return FacetSet{
		Places:   sortedKeys(places),
		Cuisines: sortedKeys(cuisines),
		Costs:    sortedKeys(costs),
	}
}

func sortedKeys[K string | float64](m map[K]struct{}) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
