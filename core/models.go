package core

import (
	"strings"
)

// ID is a unique identifier for restaurant records.
// It is assigned from a database sequence when a record is stored.
type ID uint64

// Restaurant is a single row of the restaurant dataset.
// Rate, Location and Cuisines are guaranteed present by the dataset producer;
// Votes, Cost and RestType may be missing.
type Restaurant struct {
	Id       ID
	Name     string
	Location string
	Cuisines string   // Free-text, comma separated (e.g. "North Indian, Chinese")
	Rate     float64  // 0-5
	Votes    *int     // nil when the dataset has no vote count
	Cost     *float64 // Approximate cost for two people, nil when unknown
	RestType string   // e.g. "Casual Dining", empty when unknown
	Address  string
}

// NameKey returns the normalized key used to detect duplicate restaurants.
func (r *Restaurant) NameKey() string {
	return strings.TrimSpace(r.Name)
}

// HasCost reports whether the approximate cost for two is known.
func (r *Restaurant) HasCost() bool {
	return r.Cost != nil
}

// Candidate is a restaurant that survived filtering, ranking and
// deduplication, enriched with its synthesized description.
// Candidates are created by value and never modified afterwards.
type Candidate struct {
	Restaurant  Restaurant
	Description string
	Score       float64 // Similarity to the query; zero unless semantic ranking is enabled
}

// Preferences are the user's filters for a single query.
type Preferences struct {
	// Place is matched as a case-insensitive substring of the location.
	// Empty disables the location filter.
	Place string

	// Cuisines are OR-ed together; each one is matched as a case-insensitive
	// substring of the record's cuisine string. Empty disables the filter.
	Cuisines []string

	// MinPrice is an exclusive lower bound on the cost for two. Nil disables it.
	MinPrice *float64

	// MaxPrice is an inclusive upper bound on the cost for two. Nil disables it.
	MaxPrice *float64

	// MinRating is an inclusive lower bound on the rating. Zero disables it.
	MinRating float64

	// Budget is the price band the bounds were derived from, used for display.
	Budget PriceBand
}

// DefaultMinRating is the rating floor applied when the user does not pick one.
const DefaultMinRating = 4.0

// NewPreferences builds Preferences with the price bounds taken from band.
func NewPreferences(place string, cuisines []string, band PriceBand, minRating float64) *Preferences {
	minPrice, maxPrice := band.Bounds()
	return &Preferences{
		Place:     place,
		Cuisines:  cuisines,
		MinPrice:  minPrice,
		MaxPrice:  maxPrice,
		MinRating: minRating,
		Budget:    band,
	}
}

// QueryText returns the free-text form of the preferences used for embedding,
// e.g. "Italian and Chinese food in Koramangala".
func (p *Preferences) QueryText() string {
	return strings.Join(p.Cuisines, " and ") + " food in " + p.Place
}
