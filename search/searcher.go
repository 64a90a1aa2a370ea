package search

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/poiesic/shortlist/ai"
	"github.com/poiesic/shortlist/catalog"
	"github.com/poiesic/shortlist/core"
	"github.com/poiesic/shortlist/vector"
)

// Searcher filters, orders and deduplicates restaurants for a single query.
// A Searcher holds no per-query state and is safe for concurrent use.
type Searcher struct {
	dataset  *catalog.Dataset
	embedder ai.Embedder
	limit    int
	overscan int
	semantic bool
	monitor  SearchMonitor
	logger   *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithLimit sets the maximum number of candidates returned.
// Default is DefaultLimit.
func WithLimit(limit int) Option {
	return func(s *Searcher) error {
		if limit <= 0 {
			return fmt.Errorf("%w: limit must be positive, got %d", ErrInvalidOption, limit)
		}
		s.limit = limit
		return nil
	}
}

// WithOverscan sets how many filtered records are examined before deduplication.
// Default is DefaultOverscan.
func WithOverscan(overscan int) Option {
	return func(s *Searcher) error {
		if overscan <= 0 {
			return fmt.Errorf("%w: overscan must be positive, got %d", ErrInvalidOption, overscan)
		}
		s.overscan = overscan
		return nil
	}
}

// WithSemanticRanking orders the overscan window by similarity to the query
// before deduplication. Default is false, which keeps dataset order.
func WithSemanticRanking(enabled bool) Option {
	return func(s *Searcher) error {
		s.semantic = enabled
		return nil
	}
}

// WithMonitor sets the monitor Search reports to.
// Default is a no-op monitor.
func WithMonitor(monitor SearchMonitor) Option {
	return func(s *Searcher) error {
		s.monitor = monitor
		return nil
	}
}

// NewSearcher creates a new searcher over dataset. The embedder is only
// required when semantic ranking is enabled and may otherwise be nil.
func NewSearcher(dataset *catalog.Dataset, embedder ai.Embedder, opts ...Option) (*Searcher, error) {
	if dataset == nil {
		return nil, ErrDatasetRequired
	}

	s := &Searcher{
		dataset:  dataset,
		embedder: embedder,
		limit:    DefaultLimit,
		overscan: DefaultOverscan,
		logger:   slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	if s.semantic && s.embedder == nil {
		return nil, ErrEmbedderRequired
	}
	s.logger = s.logger.With("component", "searcher")

	return s, nil
}

// Search returns up to the configured limit of candidates matching prefs.
// An empty result is not an error.
func (s *Searcher) Search(ctx context.Context, prefs *core.Preferences) ([]core.Candidate, error) {
	return s.SearchWithMonitor(ctx, prefs, s.monitor)
}

// SearchWithMonitor runs Search and reports each stage to monitor.
func (s *Searcher) SearchWithMonitor(ctx context.Context, prefs *core.Preferences, monitor SearchMonitor) ([]core.Candidate, error) {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := core.ValidatePreferences(prefs); err != nil {
		return nil, err
	}

	monitor.Start(prefs)

	// 1. Filter
	matched := catalog.Filter(s.dataset, prefs)
	monitor.AfterFilter(matched)
	s.logger.Debug("filtered dataset", "place", prefs.Place, "cuisines", prefs.Cuisines, "matched", len(matched))

	if len(matched) == 0 {
		monitor.Finish([]core.Candidate{})
		return []core.Candidate{}, nil
	}

	// 2. Order the overscan window
	window := matched[:min(s.overscan, len(matched))]
	var scores []float64
	if s.semantic {
		var err error
		window, scores, err = s.orderBySimilarity(ctx, prefs, window)
		if err != nil {
			return nil, err
		}
	}
	monitor.AfterOrdering(window, scores)

	// 3. Dedup, truncate and describe
	candidates := rankAndDedup(window, scores, s.limit, s.overscan, monitor)
	monitor.Finish(candidates)

	s.logger.Debug("search complete", "candidates", len(candidates))
	return candidates, nil
}

// orderBySimilarity stable-sorts window by descending cosine similarity between
// the query text and each record's summary. Ties keep dataset order.
func (s *Searcher) orderBySimilarity(ctx context.Context, prefs *core.Preferences, window []core.Restaurant) ([]core.Restaurant, []float64, error) {
	query, err := s.embedder.EmbedText(ctx, prefs.QueryText())
	if err != nil {
		s.logger.Error("error embedding query", "err", err)
		return nil, nil, err
	}

	texts := make([]string, len(window))
	for i := range window {
		texts[i] = core.Summary(&window[i])
	}
	embeddings, err := s.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		s.logger.Error("error embedding candidates", "count", len(texts), "err", err)
		return nil, nil, err
	}
	if len(embeddings) != len(window) {
		return nil, nil, fmt.Errorf("embedder returned %d vectors for %d texts", len(embeddings), len(window))
	}

	type scored struct {
		record core.Restaurant
		score  float64
	}
	items := make([]scored, len(window))
	for i, r := range window {
		sim, err := vector.CosineSimilarity(query, embeddings[i])
		if err != nil {
			s.logger.Warn("unable to score candidate", "name", r.Name, "err", err)
		}
		items[i] = scored{record: r, score: sim}
	}

	slices.SortStableFunc(items, func(a, b scored) int {
		return cmp.Compare(b.score, a.score)
	})

	ordered := make([]core.Restaurant, len(items))
	scores := make([]float64, len(items))
	for i, it := range items {
		ordered[i] = it.record
		scores[i] = it.score
	}
	return ordered, scores, nil
}
