package search

import (
	"github.com/poiesic/shortlist/core"
)

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(prefs *core.Preferences)
	AfterFilter(matched []core.Restaurant)
	AfterOrdering(window []core.Restaurant, scores []float64)
	DuplicateSkipped(record core.Restaurant)
	Finish(candidates []core.Candidate)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ *core.Preferences)                    {}
func (n *noopMonitor) AfterFilter(_ []core.Restaurant)              {}
func (n *noopMonitor) AfterOrdering(_ []core.Restaurant, _ []float64) {}
func (n *noopMonitor) DuplicateSkipped(_ core.Restaurant)           {}
func (n *noopMonitor) Finish(_ []core.Candidate)                    {}
