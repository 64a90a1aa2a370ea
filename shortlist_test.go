package shortlist

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/poiesic/shortlist/ai"
	"github.com/poiesic/shortlist/ai/mock"
	"github.com/poiesic/shortlist/core"
	"github.com/poiesic/shortlist/ingestion"
	"github.com/poiesic/shortlist/prompt"
	"github.com/poiesic/shortlist/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var koramangalaRows = []ingestion.RawRow{
	{Name: "Onesta", Location: "Koramangala 5th Block", Cuisines: "Italian, Pizza", Rate: "4.3/5", Votes: "2,556", Cost: "600", RestType: "Casual Dining"},
	{Name: "Onesta", Location: "Koramangala 6th Block", Cuisines: "Italian, Pizza", Rate: "4.3/5", Votes: "1,310", Cost: "600", RestType: "Casual Dining"},
	{Name: "Mainland China", Location: "Koramangala 4th Block", Cuisines: "Chinese", Rate: "4.1/5", Votes: "900", Cost: "1,400"},
	{Name: "Brand New", Location: "Koramangala 5th Block", Cuisines: "Italian", Rate: "NEW", Cost: "700"},
	{Name: "Truffles", Location: "St. Marks Road", Cuisines: "Cafe, American", Rate: "4.7/5", Votes: "14,726", Cost: "900"},
}

func openTest(t *testing.T, opts ...Option) (*Shortlist, *mock.MockProvider) {
	t.Helper()
	provider := mock.NewMockProvider().(*mock.MockProvider)
	s, err := OpenWithProvider("", provider, append([]Option{WithInMemory()}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, provider
}

func ingest(t *testing.T, s *Shortlist) {
	t.Helper()
	pipeline, err := s.NewIngestionPipeline(ingestion.WithPoolSize(2))
	require.NoError(t, err)
	defer pipeline.Release()

	stats, err := pipeline.Run(context.Background(), koramangalaRows, nil)
	require.NoError(t, err)
	require.Equal(t, 4, stats.Kept)
}

func TestOpenWithProvider(t *testing.T) {
	t.Run("on disk", func(t *testing.T) {
		provider := mock.NewMockProvider().(*mock.MockProvider)
		s, err := OpenWithProvider(filepath.Join(t.TempDir(), "snapshot"), provider)
		require.NoError(t, err)

		assert.NotNil(t, s.Repository())
		assert.Same(t, provider, s.Provider())

		require.NoError(t, s.Close())
		assert.True(t, provider.Closed())
	})

	t.Run("nil provider", func(t *testing.T) {
		_, err := OpenWithProvider("", nil, WithInMemory())
		assert.ErrorIs(t, err, ai.ErrConfigurationMissing)
	})

	t.Run("error with invalid path", func(t *testing.T) {
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		require.NoError(t, os.WriteFile(tmpFile, []byte("test"), 0644))

		s, err := OpenWithProvider(tmpFile, mock.NewMockProvider())
		assert.Error(t, err)
		assert.Nil(t, s)
	})
}

func TestOpen_ConfigurationMissing(t *testing.T) {
	for _, provider := range []string{ai.ProviderGoogleAI, ai.ProviderOpenAI} {
		t.Run(provider, func(t *testing.T) {
			config := ai.NewConfig(ai.WithProvider(provider), ai.WithAPIKey(""))
			s, err := Open(context.Background(), "", WithInMemory(), WithAIConfig(config))
			assert.ErrorIs(t, err, ai.ErrConfigurationMissing)
			assert.Nil(t, s)
		})
	}
}

func TestNewProvider(t *testing.T) {
	config := ai.NewConfig(ai.WithProvider("anthropic"), ai.WithAPIKey("key"))
	_, err := NewProvider(context.Background(), config)
	assert.ErrorIs(t, err, ai.ErrUnknownProvider)

	config = ai.NewConfig(ai.WithProvider(" OpenAI "), ai.WithAPIKey("key"))
	provider, err := NewProvider(context.Background(), config)
	require.NoError(t, err)
	defer provider.Close()
	assert.NotNil(t, provider.Generator())
	assert.NotNil(t, provider.Embedder())
}

func TestLoadDataset(t *testing.T) {
	s, _ := openTest(t)

	ds, err := s.LoadDataset(context.Background())
	require.NoError(t, err)
	assert.Zero(t, ds.Len())

	ingest(t, s)

	ds, err = s.LoadDataset(context.Background())
	require.NoError(t, err)
	require.Equal(t, 4, ds.Len())

	var names []string
	for _, r := range ds.All() {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"Onesta", "Onesta", "Mainland China", "Truffles"}, names)
}

func TestRecommend_EndToEnd(t *testing.T) {
	s, provider := openTest(t)
	ingest(t, s)
	provider.GetMockGenerator().WithResponse("<div class=\"swiggy-grid\"></div>")

	ds, err := s.LoadDataset(context.Background())
	require.NoError(t, err)

	recommender, err := s.NewRecommender(ds, []search.Option{search.WithLimit(5)})
	require.NoError(t, err)

	prefs := core.NewPreferences("Koramangala", []string{"Italian", "Chinese"}, core.PriceBandStandard, 4.0)
	result, err := recommender.Recommend(context.Background(), prefs)
	require.NoError(t, err)

	assert.Equal(t, "<div class=\"swiggy-grid\"></div>", result.Text)
	require.Len(t, result.Candidates, 2)
	assert.Equal(t, "Onesta", result.Candidates[0].Restaurant.Name)
	assert.Equal(t, "Mainland China", result.Candidates[1].Restaurant.Name)
	assert.Contains(t, provider.GetMockGenerator().LastPrompt(), "Location: Koramangala")

	result, err = recommender.Recommend(context.Background(), core.NewPreferences("Whitefield", nil, core.PriceBandAny, 4.0))
	require.NoError(t, err)
	assert.Equal(t, prompt.NoResultsMessage, result.Text)
	assert.Equal(t, 1, provider.GetMockGenerator().CallCount())
}

func TestNewRecommender_GenerationRetries(t *testing.T) {
	s, provider := openTest(t, WithGenerationRetries(3, time.Millisecond))
	ingest(t, s)

	calls := 0
	provider.GetMockGenerator().GenerateFunc = func(ctx context.Context, _ string) (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("503 model overloaded")
		}
		return "ok", nil
	}

	ds, err := s.LoadDataset(context.Background())
	require.NoError(t, err)
	recommender, err := s.NewRecommender(ds, nil)
	require.NoError(t, err)

	result, err := recommender.Recommend(context.Background(), core.NewPreferences("Koramangala", nil, core.PriceBandAny, 0))
	require.NoError(t, err)
	assert.Equal(t, "ok", result.Text)
	assert.Equal(t, 3, calls)
}
