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


package recommend

import (
	"context"
	"log/slog"
	"time"

	"github.com/poiesic/shortlist/ai"
)

// RetryWithBackoff retries an operation with exponential backoff.
// maxAttempts: maximum number of attempts (must be > 0)
// baseDelay: base delay between retries (doubles on each retry)
// Returns the error from the last attempt if all attempts fail.
func RetryWithBackoff(ctx context.Context, operation func() error, maxAttempts int, baseDelay time.Duration) error {
	if maxAttempts <= 0 {
		return ErrInvalidMaxAttempts
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = operation()
		if lastErr == nil {
			if attempt > 1 {
				slog.Debug("operation succeeded after retry", "attempt", attempt)
			}
			return nil
		}

		slog.Debug("operation failed", "attempt", attempt, "maxAttempts", maxAttempts, "err", lastErr)
		if attempt == maxAttempts {
			break
		}

		delay := baseDelay << (attempt - 1)
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	return lastErr
}

// RetryingGenerator decorates an ai.Generator with RetryWithBackoff.
// The recommendation pipeline itself never retries; outer layers opt in by
// wrapping their generator.
type RetryingGenerator struct {
	next        ai.Generator
	maxAttempts int
	baseDelay   time.Duration
}

var _ ai.Generator = (*RetryingGenerator)(nil)

// NewRetryingGenerator wraps next. maxAttempts must be positive.
func NewRetryingGenerator(next ai.Generator, maxAttempts int, baseDelay time.Duration) (*RetryingGenerator, error) {
	if next == nil {
		return nil, ErrGeneratorRequired
	}
	if maxAttempts <= 0 {
		return nil, ErrInvalidMaxAttempts
	}
	return &RetryingGenerator{next: next, maxAttempts: maxAttempts, baseDelay: baseDelay}, nil
}

// Generate calls the wrapped generator until it succeeds, the attempts are
// exhausted or ctx is done.
func (g *RetryingGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	var text string
	err := RetryWithBackoff(ctx, func() error {
		var err error
		text, err = g.next.Generate(ctx, prompt)
		return err
	}, g.maxAttempts, g.baseDelay)
	if err != nil {
		return "", err
	}
	return text, nil
}
