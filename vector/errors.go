package vector

import "errors"

var (
	// ErrDimensionMismatch is returned when two vectors have different lengths.
	ErrDimensionMismatch = errors.New("vector dimensions do not match")

	// ErrZeroVector is returned when a similarity involves a vector with zero norm.
	ErrZeroVector = errors.New("zero vector has no direction")
)
