package googleai

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/shortlist/ai"
	"github.com/poiesic/shortlist/vector"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/googleai"
)

// Provider implements ai.AIProvider using the Gemini API.
// A single client is shared by the generator and, when enabled, the embedder.
type Provider struct {
	client    *googleai.GoogleAI
	embedder  ai.Embedder
	generator ai.Generator
	logger    *slog.Logger
}

// NewProvider validates the config and creates a Gemini-backed provider.
// It returns ai.ErrConfigurationMissing (wrapped) when the API key is absent.
func NewProvider(ctx context.Context, config *ai.Config) (ai.AIProvider, error) {
	if config.Provider == "" {
		config.Provider = ai.ProviderGoogleAI
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := googleai.New(ctx,
		googleai.WithAPIKey(config.APIKey),
		googleai.WithDefaultModel(config.GenerationModel),
		googleai.WithDefaultEmbeddingModel(config.EmbeddingModel),
	)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	logger := slog.Default().With("component", "googleai-provider")

	var embedder ai.Embedder = vector.NewStubEmbedder()
	if !config.UseStubEmbedder {
		lcEmbedder, err := embeddings.NewEmbedder(client)
		if err != nil {
			client.Close()
			return nil, fmt.Errorf("creating gemini embedder: %w", err)
		}
		embedder = ai.NewModelEmbedder(lcEmbedder, slog.Default().With("component", "googleai-embedder"))
	}

	return &Provider{
		client:    client,
		embedder:  embedder,
		generator: ai.NewModelGenerator(client, config.Temperature, slog.Default().With("component", "googleai-generator")),
		logger:    logger,
	}, nil
}

// Embedder returns the text embedding service.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// Generator returns the text generation service.
func (p *Provider) Generator() ai.Generator {
	return p.generator
}

// Close releases the underlying Gemini client.
func (p *Provider) Close() error {
	p.logger.Debug("closing Gemini provider")
	return p.client.Close()
}
