package recommend

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/shortlist/ai"
	"github.com/poiesic/shortlist/core"
	"github.com/poiesic/shortlist/prompt"
	"github.com/poiesic/shortlist/search"
)

// Result is the outcome of a single recommendation query.
type Result struct {
	// Text is the backend's raw response, or prompt.NoResultsMessage.
	Text string

	// Candidates are the restaurants the prompt was built from, in prompt order.
	Candidates []core.Candidate

	// Prompt is the text sent to the backend. Empty when it was not called.
	Prompt string
}

// Generated reports whether Text came from the generation backend.
func (r *Result) Generated() bool {
	return r.Prompt != ""
}

// Observer receives timing for calls to the generation backend.
type Observer interface {
	ObserveGeneration(elapsed time.Duration, err error)
}

// Recommender runs the full query pipeline. It is safe for concurrent use.
type Recommender struct {
	searcher  *search.Searcher
	generator ai.Generator
	observer  Observer
	logger    *slog.Logger
}

// Option configures a Recommender.
type Option func(*Recommender) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Recommender) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// WithObserver registers an observer for backend latency.
func WithObserver(observer Observer) Option {
	return func(r *Recommender) error {
		r.observer = observer
		return nil
	}
}

// New creates a Recommender.
func New(searcher *search.Searcher, generator ai.Generator, opts ...Option) (*Recommender, error) {
	if searcher == nil {
		return nil, ErrSearcherRequired
	}
	if generator == nil {
		return nil, ErrGeneratorRequired
	}

	r := &Recommender{
		searcher:  searcher,
		generator: generator,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	r.logger = r.logger.With("component", "recommender")
	return r, nil
}

// Recommend searches for candidates matching prefs and asks the backend to
// present them. When no candidate matches, the result carries
// prompt.NoResultsMessage and the backend is not called. Backend failures are
// returned wrapped in ErrBackendUnavailable; no partial result is produced.
func (r *Recommender) Recommend(ctx context.Context, prefs *core.Preferences) (*Result, error) {
	candidates, err := r.searcher.Search(ctx, prefs)
	if err != nil {
		return nil, err
	}

	if len(candidates) == 0 {
		r.logger.Info("no candidates matched", "place", prefs.Place, "cuisines", prefs.Cuisines)
		return &Result{Text: prompt.NoResultsMessage, Candidates: candidates}, nil
	}

	p := prompt.Build(candidates, prefs)

	start := time.Now()
	text, err := r.generator.Generate(ctx, p)
	if r.observer != nil {
		r.observer.ObserveGeneration(time.Since(start), err)
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		r.logger.Error("generation failed", "candidates", len(candidates), "err", err)
		return nil, fmt.Errorf("%w: %w", ErrBackendUnavailable, err)
	}

	r.logger.Debug("recommendation generated", "candidates", len(candidates), "length", len(text))
	return &Result{Text: text, Candidates: candidates, Prompt: p}, nil
}

// Prompt returns the candidates and prompt that Recommend would send, without
// calling the backend. The prompt is empty when no candidate matches.
func (r *Recommender) Prompt(ctx context.Context, prefs *core.Preferences) (*Result, error) {
	candidates, err := r.searcher.Search(ctx, prefs)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return &Result{Text: prompt.NoResultsMessage, Candidates: candidates}, nil
	}
	return &Result{Candidates: candidates, Prompt: prompt.Build(candidates, prefs)}, nil
}
