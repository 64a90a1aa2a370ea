package ai

import (
	"context"
	"log/slog"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms"
)

// ModelGenerator implements Generator on top of a langchaingo model.
// Both backends share it; they differ only in how the client is built.
type ModelGenerator struct {
	model       llms.Model
	temperature float64
	logger      *slog.Logger
}

// NewModelGenerator wraps model. A nil logger means slog.Default().
func NewModelGenerator(model llms.Model, temperature float64, logger *slog.Logger) *ModelGenerator {
	if logger == nil {
		logger = slog.Default()
	}
	return &ModelGenerator{model: model, temperature: temperature, logger: logger}
}

// Generate sends the prompt as a single human message and returns the raw completion.
func (g *ModelGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.logger.Debug("generating completion", "prompt_length", len(prompt))

	text, err := llms.GenerateFromSinglePrompt(ctx, g.model, prompt, llms.WithTemperature(g.temperature))
	if err != nil {
		g.logger.Error("completion failed", "err", err)
		return "", err
	}
	return text, nil
}

// ModelEmbedder implements Embedder on top of a langchaingo embedder.
type ModelEmbedder struct {
	embedder embeddings.Embedder
	logger   *slog.Logger
}

// NewModelEmbedder wraps embedder. A nil logger means slog.Default().
func NewModelEmbedder(embedder embeddings.Embedder, logger *slog.Logger) *ModelEmbedder {
	if logger == nil {
		logger = slog.Default()
	}
	return &ModelEmbedder{embedder: embedder, logger: logger}
}

func (e *ModelEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	vec, err := e.embedder.EmbedQuery(ctx, text)
	if err != nil {
		e.logger.Error("embedding failed", "length", len(text), "err", err)
		return nil, err
	}
	return vec, nil
}

func (e *ModelEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	e.logger.Debug("embedding batch", "count", len(texts))

	vecs, err := e.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		e.logger.Error("batch embedding failed", "count", len(texts), "err", err)
		return nil, err
	}
	return vecs, nil
}
