package vector

import (
	"context"
	"hash/fnv"
	"math/rand/v2"
)

// Dimensions is the length of every vector produced by Embed.
const Dimensions = 1536

// Embed generates a deterministic placeholder embedding for text.
// The FNV-64a hash of the text seeds a PCG generator and each component is
// drawn uniformly from [-1, 1). The same text always yields the same vector;
// vectors for different texts carry no semantic relation.
func Embed(text string) []float32 {
	h := fnv.New64a()
	h.Write([]byte(text))
	seed := h.Sum64()

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	v := make([]float32, Dimensions)
	for i := range v {
		v[i] = float32(rng.Float64()*2 - 1)
	}
	return v
}

// StubEmbedder implements ai.Embedder on top of Embed.
// It performs no I/O and is safe for concurrent use.
type StubEmbedder struct{}

// NewStubEmbedder returns a StubEmbedder.
func NewStubEmbedder() *StubEmbedder {
	return &StubEmbedder{}
}

// EmbedText returns Embed(text).
func (StubEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Embed(text), nil
}

// EmbedTexts returns Embed for every text, in input order.
func (StubEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = Embed(text)
	}
	return out, nil
}
