// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.Embedder, ai.Generator and
// ai.AIProvider for use in unit tests. The mocks allow tests to run without a
// generation backend and make it possible to assert on what was sent to it.
//
// # Usage in Tests
//
//	gen := mock.NewMockGenerator().WithResponse("<div>cards</div>")
//	rec := recommend.New(searcher, gen)
//	result, err := rec.Recommend(ctx, prefs)
//
//	// The generator was called once with the assembled prompt
//	gen.CallCount()
//	gen.LastPrompt()
//
//	// Simulate an outage
//	gen.GenerateFunc = func(ctx context.Context, prompt string) (string, error) {
//	    return "", errors.New("connection refused")
//	}
//
// # Default Behavior
//
//   - MockEmbedder: Returns deterministic unit vectors based on text hash
//   - MockGenerator: Returns a fixed canned response
//   - MockProvider: Aggregates mock embedder and generator
package mock
