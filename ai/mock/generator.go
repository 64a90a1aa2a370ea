package mock

import (
	"context"
	"sync"
)

// DefaultResponse is returned by MockGenerator when no response was configured.
const DefaultResponse = "<div class=\"grid\">mock recommendation</div>"

// MockGenerator is a test double for ai.Generator.
// It records every prompt it receives.
type MockGenerator struct {
	// GenerateFunc is called by Generate if set.
	// If nil, the configured response is returned.
	GenerateFunc func(ctx context.Context, prompt string) (string, error)

	mu       sync.Mutex
	response string
	prompts  []string
}

// NewMockGenerator creates a mock generator returning DefaultResponse.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{response: DefaultResponse}
}

// WithResponse sets the canned response and returns the generator for chaining.
func (m *MockGenerator) WithResponse(response string) *MockGenerator {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.response = response
	return m
}

// Generate records the prompt and returns the canned response.
func (m *MockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	fn := m.GenerateFunc
	response := m.response
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, prompt)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return response, nil
}

// CallCount returns the number of times Generate was called.
func (m *MockGenerator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

// LastPrompt returns the most recent prompt, or "" if Generate was never called.
func (m *MockGenerator) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.prompts) == 0 {
		return ""
	}
	return m.prompts[len(m.prompts)-1]
}

// Prompts returns a copy of every prompt received so far.
func (m *MockGenerator) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

// Reset clears recorded prompts and the custom function.
func (m *MockGenerator) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = nil
	m.GenerateFunc = nil
	m.response = DefaultResponse
}
