package ingestion

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/poiesic/shortlist/core"
)

// unratedMarkers are rate values the dataset uses for restaurants without a rating.
var unratedMarkers = map[string]struct{}{
	"":    {},
	"NEW": {},
	"-":   {},
}

// CleanRow converts a raw row into a validated record.
//
// Rates such as "4.1/5" become 4.1; rows that are unrated ("NEW", "-" or
// blank) are rejected. Costs and votes may contain thousands separators
// ("1,200"); blank values become missing. Cuisines are split on commas,
// trimmed and rejoined with ", ". Rows that fail any step wrap ErrMalformedRow.
func CleanRow(raw RawRow) (core.Restaurant, error) {
	r := core.Restaurant{
		Name:     strings.TrimSpace(raw.Name),
		Location: strings.TrimSpace(raw.Location),
		Cuisines: normalizeCuisines(raw.Cuisines),
		RestType: strings.TrimSpace(raw.RestType),
		Address:  strings.TrimSpace(raw.Address),
	}

	rate, err := parseRate(raw.Rate)
	if err != nil {
		return core.Restaurant{}, fmt.Errorf("%w: %w", ErrMalformedRow, err)
	}
	r.Rate = rate

	if r.Cost, err = parseCost(raw.Cost); err != nil {
		return core.Restaurant{}, fmt.Errorf("%w: %w", ErrMalformedRow, err)
	}
	if r.Votes, err = parseVotes(raw.Votes); err != nil {
		return core.Restaurant{}, fmt.Errorf("%w: %w", ErrMalformedRow, err)
	}

	if err := core.ValidateRestaurant(&r); err != nil {
		return core.Restaurant{}, fmt.Errorf("%w: %w", ErrMalformedRow, err)
	}
	return r, nil
}

func parseRate(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if _, unrated := unratedMarkers[strings.ToUpper(s)]; unrated {
		return 0, fmt.Errorf("unrated (%q)", s)
	}
	head, _, _ := strings.Cut(s, "/")
	rate, err := parseFinite(strings.TrimSpace(head))
	if err != nil {
		return 0, fmt.Errorf("rate %q: %w", s, err)
	}
	return rate, nil
}

func parseCost(s string) (*float64, error) {
	s = stripNumber(s)
	if s == "" {
		return nil, nil
	}
	cost, err := parseFinite(s)
	if err != nil {
		return nil, fmt.Errorf("cost %q: %w", s, err)
	}
	return &cost, nil
}

func parseVotes(s string) (*int, error) {
	s = stripNumber(s)
	if s == "" {
		return nil, nil
	}
	votes, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("votes %q: %w", s, err)
	}
	return &votes, nil
}

// parseFinite parses a float and rejects NaN and infinities.
func parseFinite(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a finite number")
	}
	return v, nil
}

func stripNumber(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), ",", "")
}

func normalizeCuisines(s string) string {
	parts := strings.Split(s, ",")
	kept := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}
