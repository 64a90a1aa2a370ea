// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package shortlist recommends restaurants from a cleaned Zomato snapshot.
//
// A Shortlist owns the snapshot store and the AI provider. Queries run against
// an in-memory catalog.Dataset loaded from the store: the records are filtered,
// ordered, deduplicated and described, then handed to a generation backend
// which writes the final recommendation.
package shortlist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/shortlist/ai"
	"github.com/poiesic/shortlist/ai/googleai"
	"github.com/poiesic/shortlist/ai/openai"
	"github.com/poiesic/shortlist/catalog"
	"github.com/poiesic/shortlist/core"
	"github.com/poiesic/shortlist/ingestion"
	"github.com/poiesic/shortlist/recommend"
	"github.com/poiesic/shortlist/search"
	"github.com/poiesic/shortlist/storage"
	"github.com/poiesic/shortlist/storage/badger"
)

type Shortlist struct {
	backend    *badger.Backend
	repository storage.RestaurantRepository
	provider   ai.AIProvider
	retries    int
	retryDelay time.Duration
	logger     *slog.Logger
}

// Option configures a Shortlist.
type Option func(*options)

type options struct {
	aiConfig   *ai.Config
	inMemory   bool
	retries    int
	retryDelay time.Duration
	logger     *slog.Logger
}

// WithAIConfig sets the generation backend configuration.
// Default is ai.DefaultConfig().
func WithAIConfig(config *ai.Config) Option {
	return func(o *options) {
		o.aiConfig = config
	}
}

// WithInMemory keeps the snapshot in memory instead of on disk.
func WithInMemory() Option {
	return func(o *options) {
		o.inMemory = true
	}
}

// WithGenerationRetries retries failed generation calls up to maxAttempts
// times with exponential backoff starting at baseDelay.
func WithGenerationRetries(maxAttempts int, baseDelay time.Duration) Option {
	return func(o *options) {
		o.retries = maxAttempts
		o.retryDelay = baseDelay
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// NewProvider creates the AI provider selected by config.Provider.
func NewProvider(ctx context.Context, config *ai.Config) (ai.AIProvider, error) {
	config.Normalize()
	switch config.Provider {
	case ai.ProviderOpenAI:
		return openai.NewProvider(config)
	case ai.ProviderGoogleAI, "":
		return googleai.NewProvider(ctx, config)
	default:
		return nil, fmt.Errorf("%w: %q", ai.ErrUnknownProvider, config.Provider)
	}
}

// Open opens the snapshot store at dbPath and creates the AI provider
// described by the WithAIConfig option.
func Open(ctx context.Context, dbPath string, opts ...Option) (*Shortlist, error) {
	options := applyOptions(opts)

	provider, err := NewProvider(ctx, options.aiConfig)
	if err != nil {
		return nil, err
	}

	s, err := open(dbPath, provider, options)
	if err != nil {
		provider.Close()
		return nil, err
	}
	return s, nil
}

// OpenWithProvider opens the snapshot store at dbPath using an existing
// provider. The Shortlist takes ownership of the provider and closes it.
func OpenWithProvider(dbPath string, provider ai.AIProvider, opts ...Option) (*Shortlist, error) {
	if provider == nil {
		return nil, fmt.Errorf("%w: provider is nil", ai.ErrConfigurationMissing)
	}
	return open(dbPath, provider, applyOptions(opts))
}

func applyOptions(opts []Option) *options {
	options := &options{
		aiConfig: ai.DefaultConfig(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.aiConfig == nil {
		options.aiConfig = ai.DefaultConfig()
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}
	return options
}

func open(dbPath string, provider ai.AIProvider, options *options) (*Shortlist, error) {
	backend, err := badger.OpenBackend(dbPath, options.inMemory)
	if err != nil {
		return nil, err
	}

	repository, err := badger.NewRestaurantRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	return &Shortlist{
		backend:    backend,
		repository: repository,
		provider:   provider,
		retries:    options.retries,
		retryDelay: options.retryDelay,
		logger:     options.logger.With("component", "shortlist"),
	}, nil
}

func (s *Shortlist) Close() error {
	var errs []error

	// Close AI provider first
	if err := s.provider.Close(); err != nil {
		s.logger.Error("error closing AI provider", "err", err)
		errs = append(errs, err)
	}
	if err := s.repository.Close(); err != nil {
		s.logger.Error("error closing restaurant repository", "err", err)
		errs = append(errs, err)
	}
	if err := s.backend.Close(); err != nil {
		s.logger.Error("error closing backend storage", "err", err)
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (s *Shortlist) Repository() storage.RestaurantRepository {
	return s.repository
}

func (s *Shortlist) Provider() ai.AIProvider {
	return s.provider
}

// LoadDataset reads the whole snapshot into an in-memory dataset, in
// ingestion order.
func (s *Shortlist) LoadDataset(ctx context.Context) (*catalog.Dataset, error) {
	ds, err := ReadDataset(ctx, s.repository)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("dataset loaded", "records", ds.Len())
	return ds, nil
}

// ReadDataset reads every record of repository into an in-memory dataset.
func ReadDataset(ctx context.Context, repository storage.RestaurantRepository) (*catalog.Dataset, error) {
	var records []core.Restaurant
	for r, err := range repository.AllRestaurants(ctx) {
		if err != nil {
			return nil, err
		}
		records = append(records, *r)
	}
	return catalog.NewDataset(records), nil
}

func (s *Shortlist) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(s.repository, opts...)
}

func (s *Shortlist) NewSearcher(dataset *catalog.Dataset, opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(dataset, s.provider.Embedder(), opts...)
}

// NewRecommender creates a recommender over dataset that generates with the
// provider's generator, wrapped in retries when WithGenerationRetries was set.
func (s *Shortlist) NewRecommender(dataset *catalog.Dataset, searchOpts []search.Option, opts ...recommend.Option) (*recommend.Recommender, error) {
	searcher, err := s.NewSearcher(dataset, searchOpts...)
	if err != nil {
		return nil, err
	}

	generator := s.provider.Generator()
	if s.retries > 1 {
		generator, err = recommend.NewRetryingGenerator(generator, s.retries, s.retryDelay)
		if err != nil {
			return nil, err
		}
	}
	return recommend.New(searcher, generator, opts...)
}
