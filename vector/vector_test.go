package vector

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbed_Deterministic(t *testing.T) {
	texts := []string{
		"Italian food in Koramangala",
		"",
		"The restaurant Jalsa is located in Banashankari.",
	}

	for _, text := range texts {
		t.Run(text, func(t *testing.T) {
			first := Embed(text)
			second := Embed(text)

			require.Len(t, first, Dimensions)
			require.Len(t, second, Dimensions)
			for i := range first {
				// Bit-identical, not merely close.
				assert.Equal(t, math.Float32bits(first[i]), math.Float32bits(second[i]), "component %d", i)
			}
		})
	}
}

func TestEmbed_Range(t *testing.T) {
	v := Embed("Chinese food in BTM")
	for i, x := range v {
		assert.GreaterOrEqual(t, x, float32(-1), "component %d", i)
		assert.Less(t, x, float32(1), "component %d", i)
	}
}

func TestEmbed_DifferentTexts(t *testing.T) {
	a := Embed("Biryani food in HSR")
	b := Embed("Desserts food in HSR")
	assert.NotEqual(t, a, b)
}

func TestCosineSimilarity_Self(t *testing.T) {
	for _, text := range []string{"a", "Cafe food in Indiranagar", ""} {
		v := Embed(text)
		sim, err := CosineSimilarity(v, v)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, sim, 1e-12)
	}

	sim, err := CosineSimilarity([]float32{3, 4}, []float32{3, 4})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, sim, 1e-12)
}

func TestCosineSimilarity_Known(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 2}, []float32{-1, -2}, -1},
		{"scaled", []float32{1, 2, 3}, []float32{2, 4, 6}, 1},
		{"45 degrees", []float32{1, 0}, []float32{1, 1}, 1 / math.Sqrt2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CosineSimilarity(tt.a, tt.b)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestCosineSimilarity_Bounds(t *testing.T) {
	a := Embed("North Indian food in Jayanagar")
	b := Embed("South Indian food in Jayanagar")
	sim, err := CosineSimilarity(a, b)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, sim, -1.0)
	assert.LessOrEqual(t, sim, 1.0)
}

func TestCosineSimilarity_Errors(t *testing.T) {
	_, err := CosineSimilarity([]float32{0, 0}, []float32{1, 1})
	assert.ErrorIs(t, err, ErrZeroVector)

	_, err = CosineSimilarity([]float32{1, 1}, []float32{0, 0})
	assert.ErrorIs(t, err, ErrZeroVector)

	_, err = CosineSimilarity([]float32{1}, []float32{1, 1})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestStubEmbedder(t *testing.T) {
	ctx := context.Background()
	e := NewStubEmbedder()

	v, err := e.EmbedText(ctx, "Continental food in Bellandur")
	require.NoError(t, err)
	assert.Equal(t, Embed("Continental food in Bellandur"), v)

	vs, err := e.EmbedTexts(ctx, []string{"x", "y"})
	require.NoError(t, err)
	require.Len(t, vs, 2)
	assert.Equal(t, Embed("x"), vs[0])
	assert.Equal(t, Embed("y"), vs[1])

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = e.EmbedText(cancelled, "x")
	assert.ErrorIs(t, err, context.Canceled)
}
