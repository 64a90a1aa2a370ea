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


package ai

import (
	"errors"
	"fmt"
	"strings"
)

// Supported provider names.
const (
	ProviderOpenAI   = "openai"
	ProviderGoogleAI = "googleai"
)

var (
	// ErrConfigurationMissing is returned when the generation backend cannot be
	// reached because a credential or setting is absent. It must be checked before
	// a recommendation pipeline is built.
	ErrConfigurationMissing = errors.New("ai config: configuration missing")

	// ErrUnknownProvider is returned for a provider name that is not supported.
	ErrUnknownProvider = errors.New("ai config: unknown provider")
)

// Config holds configuration for AI service providers.
type Config struct {
	// Provider selects the backend implementation: "openai" or "googleai".
	// Default: "googleai"
	Provider string

	// Host is the base URL for OpenAI-compatible APIs.
	// Example: "http://localhost:11434/v1" for a local server. Ignored by googleai.
	Host string

	// APIKey authenticates against the hosted backend.
	// Required for googleai. For openai it may be "none" for local servers.
	APIKey string

	// GenerationModel is the model identifier used to produce recommendations.
	// Example: "gemini-2.0-flash", "gpt-4o-mini"
	GenerationModel string

	// EmbeddingModel is the model identifier used for embeddings when the stub
	// embedder is disabled.
	// Example: "text-embedding-004", "text-embedding-3-small"
	EmbeddingModel string

	// Temperature is the sampling temperature for generation.
	// Default: 0.3
	Temperature float64

	// UseStubEmbedder selects the deterministic placeholder embedder instead of
	// calling the backend for embeddings.
	// Default: true
	UseStubEmbedder bool
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithProvider sets the backend provider name.
func WithProvider(provider string) ConfigOption {
	return func(c *Config) {
		c.Provider = provider
	}
}

// WithHost sets the OpenAI-compatible host URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithAPIKey sets the backend credential.
func WithAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithGenerationModel sets the generation model identifier.
func WithGenerationModel(model string) ConfigOption {
	return func(c *Config) {
		c.GenerationModel = model
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) ConfigOption {
	return func(c *Config) {
		c.Temperature = t
	}
}

// WithStubEmbedder toggles the deterministic placeholder embedder.
func WithStubEmbedder(enabled bool) ConfigOption {
	return func(c *Config) {
		c.UseStubEmbedder = enabled
	}
}

// DefaultConfig returns a Config targeting Gemini with the stub embedder.
// The API key is intentionally empty and must be supplied by the caller.
func DefaultConfig() *Config {
	return &Config{
		Provider:        ProviderGoogleAI,
		Host:            "http://localhost:11434/v1",
		GenerationModel: "gemini-2.0-flash",
		EmbeddingModel:  "text-embedding-004",
		Temperature:     0.3,
		UseStubEmbedder: true,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := NewConfig(
//	    WithProvider(ProviderOpenAI),
//	    WithHost("http://localhost:11434"),
//	    WithAPIKey("none"),
//	    WithGenerationModel("qwen2.5:7b"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// It lowercases the provider name and, for openai, adds the /v1 suffix to the
// host if missing, which is required by most OpenAI-compatible APIs.
func (c *Config) Normalize() {
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	c.APIKey = strings.TrimSpace(c.APIKey)
	if c.Provider == ProviderOpenAI && c.Host != "" && !strings.HasSuffix(c.Host, "/v1") {
		c.Host = strings.TrimSuffix(c.Host, "/") + "/v1"
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
// Missing credentials and models are reported as ErrConfigurationMissing.
func (c *Config) Validate() error {
	c.Normalize()

	switch c.Provider {
	case ProviderOpenAI:
		if c.Host == "" {
			return fmt.Errorf("%w: Host is required for %s", ErrConfigurationMissing, c.Provider)
		}
	case ProviderGoogleAI:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownProvider, c.Provider)
	}

	if c.APIKey == "" {
		return fmt.Errorf("%w: APIKey is required for %s", ErrConfigurationMissing, c.Provider)
	}
	if c.GenerationModel == "" {
		return fmt.Errorf("%w: GenerationModel is required", ErrConfigurationMissing)
	}
	if !c.UseStubEmbedder && c.EmbeddingModel == "" {
		return fmt.Errorf("%w: EmbeddingModel is required without the stub embedder", ErrConfigurationMissing)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return errors.New("ai config: Temperature must be between 0 and 2")
	}
	return nil
}
