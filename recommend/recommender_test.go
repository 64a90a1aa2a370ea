package recommend

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/poiesic/shortlist/ai/mock"
	"github.com/poiesic/shortlist/catalog"
	"github.com/poiesic/shortlist/core"
	"github.com/poiesic/shortlist/prompt"
	"github.com/poiesic/shortlist/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrFloat(v float64) *float64 { return &v }
func ptrInt(v int) *int           { return &v }

func newSearcher(t *testing.T) *search.Searcher {
	t.Helper()
	ds := catalog.NewDataset([]core.Restaurant{
		{Name: "A", Location: "Koramangala", Cuisines: "Italian", Rate: 4.5, Votes: ptrInt(100), Cost: ptrFloat(800)},
		{Name: "A", Location: "Koramangala", Cuisines: "Italian", Rate: 4.5, Votes: ptrInt(100), Cost: ptrFloat(800)},
		{Name: "B", Location: "Koramangala", Cuisines: "Chinese", Rate: 3.0, Votes: ptrInt(50), Cost: ptrFloat(300)},
	})
	s, err := search.NewSearcher(ds, nil)
	require.NoError(t, err)
	return s
}

type recordingObserver struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (o *recordingObserver) ObserveGeneration(_ time.Duration, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls++
	o.err = err
}

func TestNew(t *testing.T) {
	s := newSearcher(t)

	_, err := New(nil, mock.NewMockGenerator())
	assert.Equal(t, ErrSearcherRequired, err)

	_, err = New(s, nil)
	assert.Equal(t, ErrGeneratorRequired, err)

	r, err := New(s, mock.NewMockGenerator(), WithLogger(nil))
	require.NoError(t, err)
	assert.NotNil(t, r)
}

func TestRecommend(t *testing.T) {
	gen := mock.NewMockGenerator().WithResponse("<div>A is great</div>")
	observer := &recordingObserver{}
	r, err := New(newSearcher(t), gen, WithObserver(observer))
	require.NoError(t, err)

	prefs := &core.Preferences{Place: "Koramangala", Cuisines: []string{"Italian"}, MinRating: 4.0}
	result, err := r.Recommend(context.Background(), prefs)
	require.NoError(t, err)

	assert.Equal(t, "<div>A is great</div>", result.Text)
	require.Len(t, result.Candidates, 1)
	assert.Equal(t, "A", result.Candidates[0].Restaurant.Name)
	assert.True(t, result.Generated())

	require.Equal(t, 1, gen.CallCount())
	assert.Equal(t, prompt.Build(result.Candidates, prefs), gen.LastPrompt())
	assert.Equal(t, gen.LastPrompt(), result.Prompt)
	assert.Equal(t, 1, observer.calls)
	assert.NoError(t, observer.err)
}

func TestRecommend_NoCandidatesSkipsBackend(t *testing.T) {
	gen := mock.NewMockGenerator()
	r, err := New(newSearcher(t), gen)
	require.NoError(t, err)

	result, err := r.Recommend(context.Background(), &core.Preferences{Place: "Whitefield"})
	require.NoError(t, err)

	assert.Equal(t, prompt.NoResultsMessage, result.Text)
	assert.Empty(t, result.Candidates)
	assert.False(t, result.Generated())
	assert.Equal(t, 0, gen.CallCount())
}

func TestRecommend_BackendUnavailable(t *testing.T) {
	gen := mock.NewMockGenerator()
	cause := errors.New("quota exceeded")
	gen.GenerateFunc = func(ctx context.Context, p string) (string, error) {
		return "", cause
	}
	observer := &recordingObserver{}
	r, err := New(newSearcher(t), gen, WithObserver(observer))
	require.NoError(t, err)

	result, err := r.Recommend(context.Background(), &core.Preferences{Place: "Koramangala"})
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrBackendUnavailable)
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, observer.err, cause)
}

func TestRecommend_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	gen := mock.NewMockGenerator()
	gen.GenerateFunc = func(ctx context.Context, p string) (string, error) {
		cancel()
		return "", ctx.Err()
	}
	r, err := New(newSearcher(t), gen)
	require.NoError(t, err)

	result, err := r.Recommend(ctx, &core.Preferences{Place: "Koramangala"})
	assert.Nil(t, result)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrBackendUnavailable)
}

func TestRecommend_InvalidPreferences(t *testing.T) {
	gen := mock.NewMockGenerator()
	r, err := New(newSearcher(t), gen)
	require.NoError(t, err)

	_, err = r.Recommend(context.Background(), &core.Preferences{MinRating: 0.5})
	assert.ErrorIs(t, err, core.ErrInvalidPreferences)
	assert.Equal(t, 0, gen.CallCount())
}

func TestPrompt(t *testing.T) {
	gen := mock.NewMockGenerator()
	r, err := New(newSearcher(t), gen)
	require.NoError(t, err)

	prefs := &core.Preferences{Place: "Koramangala"}
	result, err := r.Prompt(context.Background(), prefs)
	require.NoError(t, err)
	assert.Len(t, result.Candidates, 2)
	assert.Equal(t, prompt.Build(result.Candidates, prefs), result.Prompt)
	assert.Empty(t, result.Text)

	empty, err := r.Prompt(context.Background(), &core.Preferences{Place: "Whitefield"})
	require.NoError(t, err)
	assert.Empty(t, empty.Prompt)
	assert.Equal(t, prompt.NoResultsMessage, empty.Text)

	assert.Equal(t, 0, gen.CallCount())
}
