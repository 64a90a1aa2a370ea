package core

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// Currency prefixes the cost in descriptions.
	Currency = "Rs."

	// DefaultRestType is substituted when a record has no establishment type.
	DefaultRestType = "various dining options"

	// UnknownCost is substituted when a record has no cost for two.
	UnknownCost = "N/A"
)

// Describe builds the natural-language summary of a restaurant that is handed
// to the generation backend. Missing votes render as 0, a missing cost as N/A
// and a missing establishment type as DefaultRestType.
func Describe(r *Restaurant) string {
	votes := 0
	if r.Votes != nil {
		votes = *r.Votes
	}

	cost := UnknownCost
	if r.HasCost() {
		cost = FormatAmount(*r.Cost)
	}

	restType := r.RestType
	if restType == "" {
		restType = DefaultRestType
	}

	return fmt.Sprintf("The restaurant %s is located in %s. It specializes in %s cuisines. "+
		"It has a rating of %s/5.0 based on %d votes. "+
		"The approximate cost for two people is %s %s. "+
		"Known for its great vibe, it offers %s.",
		r.NameKey(), r.Location, r.Cuisines,
		FormatRating(r.Rate), votes,
		Currency, cost,
		restType)
}

// Summary is the short description used for similarity scoring.
func Summary(r *Restaurant) string {
	return fmt.Sprintf("The restaurant %s is located in %s. It specializes in %s cuisines.",
		r.NameKey(), r.Location, r.Cuisines)
}

// FormatRating formats a rating as the shortest plain decimal, keeping one
// decimal place for whole numbers: 4.0, 4.5, 4.25.
func FormatRating(rate float64) string {
	s := strconv.FormatFloat(rate, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// FormatAmount formats a currency amount as the shortest plain decimal, e.g. 800 or 1250.5.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
