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


// Package ai provides abstractions for the AI services used by shortlist.
//
// The recommendation pipeline depends on two capabilities: an Embedder that
// turns text into vectors for similarity scoring, and a Generator that turns an
// assembled prompt into the final recommendation text. Both are interfaces so
// the core never couples to a particular vendor.
//
// # Implementation Packages
//
//   - ai/googleai: Gemini models through langchaingo
//   - ai/openai: OpenAI-compatible APIs through langchaingo
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// Public constructors (googleai.NewProvider, openai.NewProvider) return the
// ai.AIProvider interface. Mock constructors return concrete types so tests can
// inspect call counts and captured prompts.
//
// # Embeddings
//
// Unless Config.UseStubEmbedder is false, providers hand out the deterministic
// vector.StubEmbedder rather than calling the backend. The stub carries no
// semantic meaning; it keeps similarity scoring reproducible and offline.
//
// # Usage Example
//
//	cfg := ai.NewConfig(ai.WithAPIKey(os.Getenv("GEMINI_API_KEY")))
//	if err := cfg.Validate(); err != nil {
//	    // errors.Is(err, ai.ErrConfigurationMissing) when the key is absent
//	    log.Fatal(err)
//	}
//	provider, err := googleai.NewProvider(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	text, err := provider.Generator().Generate(ctx, prompt)
package ai
