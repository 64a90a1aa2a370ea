package storage

import (
	"context"
	"iter"

	"github.com/poiesic/shortlist/core"
)

// RestaurantRepository stores the ingested dataset snapshot.
// It is a plain record store, not a search index: queries run against an
// in-memory catalog.Dataset loaded from it.
// Implementations must be thread-safe and support concurrent access.
type RestaurantRepository interface {
	// AddRestaurants stores one or more restaurants.
	// For records with ID=0, generates new IDs from sequence.
	// Returns the records with generated IDs populated.
	AddRestaurants(ctx context.Context, records ...*core.Restaurant) ([]*core.Restaurant, error)

	// GetRestaurant retrieves a single restaurant by ID.
	// Returns ErrNotFound if the record doesn't exist.
	GetRestaurant(ctx context.Context, id core.ID) (*core.Restaurant, error)

	// AllRestaurants iterates over every stored restaurant in insertion order.
	// Iteration stops at the first error, which is yielded with a nil record.
	AllRestaurants(ctx context.Context) iter.Seq2[*core.Restaurant, error]

	// Count returns the number of stored restaurants.
	Count(ctx context.Context) (int, error)

	// DeleteAll removes every stored restaurant.
	DeleteAll(ctx context.Context) error

	// DeleteRange removes the restaurants with IDs in [from, to).
	// A zero to means no upper bound.
	DeleteRange(ctx context.Context, from, to core.ID) error

	// Close closes the storage backend and releases resources.
	Close() error
}
