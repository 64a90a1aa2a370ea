package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return NewConfig(
		WithAPIKey("test-key"),
	)
}

func TestConfigNormalize(t *testing.T) {
	tests := []struct {
		name         string
		provider     string
		host         string
		expectedProv string
		expectedHost string
	}{
		{
			name:         "openai host without v1",
			provider:     "openai",
			host:         "http://localhost:11434",
			expectedProv: ProviderOpenAI,
			expectedHost: "http://localhost:11434/v1",
		},
		{
			name:         "openai host with trailing slash",
			provider:     "OpenAI",
			host:         "http://localhost:11434/",
			expectedProv: ProviderOpenAI,
			expectedHost: "http://localhost:11434/v1",
		},
		{
			name:         "openai host already normalized",
			provider:     "openai",
			host:         "http://localhost:11434/v1",
			expectedProv: ProviderOpenAI,
			expectedHost: "http://localhost:11434/v1",
		},
		{
			name:         "googleai host left alone",
			provider:     " GoogleAI ",
			host:         "http://localhost:11434",
			expectedProv: ProviderGoogleAI,
			expectedHost: "http://localhost:11434",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Provider: tt.provider, Host: tt.host}
			cfg.Normalize()

			assert.Equal(t, tt.expectedProv, cfg.Provider)
			assert.Equal(t, tt.expectedHost, cfg.Host)
		})
	}
}

func TestConfigValidate(t *testing.T) {
	t.Run("valid googleai config", func(t *testing.T) {
		assert.NoError(t, validConfig().Validate())
	})

	t.Run("valid openai config normalizes host", func(t *testing.T) {
		cfg := validConfig()
		cfg.Provider = ProviderOpenAI
		cfg.Host = "http://localhost:11434"

		require.NoError(t, cfg.Validate())
		assert.Equal(t, "http://localhost:11434/v1", cfg.Host)
	})

	t.Run("missing api key", func(t *testing.T) {
		cfg := NewConfig()

		err := cfg.Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrConfigurationMissing)
		assert.Contains(t, err.Error(), "APIKey")
	})

	t.Run("blank api key", func(t *testing.T) {
		cfg := NewConfig(WithAPIKey("   "))
		assert.ErrorIs(t, cfg.Validate(), ErrConfigurationMissing)
	})

	t.Run("missing openai host", func(t *testing.T) {
		cfg := validConfig()
		cfg.Provider = ProviderOpenAI
		cfg.Host = ""

		err := cfg.Validate()
		assert.ErrorIs(t, err, ErrConfigurationMissing)
		assert.Contains(t, err.Error(), "Host")
	})

	t.Run("missing generation model", func(t *testing.T) {
		cfg := validConfig()
		cfg.GenerationModel = ""

		err := cfg.Validate()
		assert.ErrorIs(t, err, ErrConfigurationMissing)
		assert.Contains(t, err.Error(), "GenerationModel")
	})

	t.Run("embedding model only needed without stub", func(t *testing.T) {
		cfg := validConfig()
		cfg.EmbeddingModel = ""
		assert.NoError(t, cfg.Validate())

		cfg.UseStubEmbedder = false
		err := cfg.Validate()
		assert.ErrorIs(t, err, ErrConfigurationMissing)
		assert.Contains(t, err.Error(), "EmbeddingModel")
	})

	t.Run("unknown provider", func(t *testing.T) {
		cfg := validConfig()
		cfg.Provider = "anthropic"

		err := cfg.Validate()
		assert.ErrorIs(t, err, ErrUnknownProvider)
		assert.NotErrorIs(t, err, ErrConfigurationMissing)
	})

	t.Run("temperature out of range", func(t *testing.T) {
		cfg := validConfig()
		cfg.Temperature = 2.5

		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Temperature")
	})
}

func TestConfigOptions(t *testing.T) {
	cfg := NewConfig(
		WithProvider(ProviderOpenAI),
		WithHost("http://test:8080/v1"),
		WithAPIKey("none"),
		WithGenerationModel("qwen2.5:7b"),
		WithEmbeddingModel("embeddinggemma"),
		WithTemperature(0.7),
		WithStubEmbedder(false),
	)

	assert.Equal(t, ProviderOpenAI, cfg.Provider)
	assert.Equal(t, "http://test:8080/v1", cfg.Host)
	assert.Equal(t, "none", cfg.APIKey)
	assert.Equal(t, "qwen2.5:7b", cfg.GenerationModel)
	assert.Equal(t, "embeddinggemma", cfg.EmbeddingModel)
	assert.Equal(t, 0.7, cfg.Temperature)
	assert.False(t, cfg.UseStubEmbedder)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, ProviderGoogleAI, cfg.Provider)
	assert.Equal(t, 0.3, cfg.Temperature)
	assert.True(t, cfg.UseStubEmbedder)
	assert.Empty(t, cfg.APIKey)
}
