package recommend

import "errors"

var (
	// ErrBackendUnavailable is returned when the generation backend fails.
	// The backend's own error is wrapped alongside it.
	ErrBackendUnavailable = errors.New("generation backend unavailable")

	// ErrSearcherRequired is returned when a searcher is not provided.
	ErrSearcherRequired = errors.New("searcher required")

	// ErrGeneratorRequired is returned when a generator is not provided.
	ErrGeneratorRequired = errors.New("generator required")

	// ErrInvalidMaxAttempts is returned when the retry attempt count is not positive.
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")
)
