package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/poiesic/shortlist/core"
	"github.com/poiesic/shortlist/search"
)

// explainMonitor prints each search stage for the --explain flag.
type explainMonitor struct {
	w io.Writer
}

var _ search.SearchMonitor = (*explainMonitor)(nil)

func newExplainMonitor(w io.Writer) *explainMonitor {
	return &explainMonitor{w: w}
}

func (m *explainMonitor) Start(prefs *core.Preferences) {
	fmt.Fprintf(m.w, "query: place=%q cuisines=%q budget=%s min-rating=%s\n",
		prefs.Place, strings.Join(prefs.Cuisines, ", "), prefs.Budget, core.FormatRating(prefs.MinRating))
}

func (m *explainMonitor) AfterFilter(matched []core.Restaurant) {
	fmt.Fprintf(m.w, "filter: %d records matched\n", len(matched))
}

func (m *explainMonitor) AfterOrdering(window []core.Restaurant, scores []float64) {
	fmt.Fprintf(m.w, "window: %d records\n", len(window))
	for i, r := range window {
		if scores != nil {
			fmt.Fprintf(m.w, "  %2d. %s (%s) [%0.3f]\n", i+1, r.Name, r.Location, scores[i])
		} else {
			fmt.Fprintf(m.w, "  %2d. %s (%s)\n", i+1, r.Name, r.Location)
		}
	}
}

func (m *explainMonitor) DuplicateSkipped(r core.Restaurant) {
	fmt.Fprintf(m.w, "skip: %s already selected\n", r.Name)
}

func (m *explainMonitor) Finish(candidates []core.Candidate) {
	fmt.Fprintf(m.w, "selected: %d candidates\n", len(candidates))
}
