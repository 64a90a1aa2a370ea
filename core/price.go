package core

import (
	"fmt"
	"strings"
)

// PriceBand is one of the enumerated budget categories offered to users.
type PriceBand int

const (
	// PriceBandAny applies no price bounds.
	PriceBandAny PriceBand = iota
	// PriceBandBudget is anything up to and including 500.
	PriceBandBudget
	// PriceBandStandard is above 500 and up to and including 1500.
	PriceBandStandard
	// PriceBandLuxury is anything above 1500.
	PriceBandLuxury
)

const (
	budgetCeiling   = 500.0
	standardCeiling = 1500.0
)

// Bounds returns the (exclusive minimum, inclusive maximum) cost pair for the band.
// A nil pointer means the bound is not applied.
func (b PriceBand) Bounds() (minPrice, maxPrice *float64) {
	switch b {
	case PriceBandBudget:
		return nil, price(budgetCeiling)
	case PriceBandStandard:
		return price(budgetCeiling), price(standardCeiling)
	case PriceBandLuxury:
		return price(standardCeiling), nil
	default:
		return nil, nil
	}
}

// Label returns the human readable band name shown to the generation backend.
func (b PriceBand) Label() string {
	switch b {
	case PriceBandBudget:
		return "Budget (Under ₹500)"
	case PriceBandStandard:
		return "Standard (₹500 - ₹1500)"
	case PriceBandLuxury:
		return "Luxury (Above ₹1500)"
	default:
		return "Any"
	}
}

// String implements fmt.Stringer.
func (b PriceBand) String() string {
	switch b {
	case PriceBandBudget:
		return "budget"
	case PriceBandStandard:
		return "standard"
	case PriceBandLuxury:
		return "luxury"
	default:
		return "any"
	}
}

// ParsePriceBand parses a band name (budget, standard, luxury, any) or one of
// the numeric codes used by the web frontend (500, 1500, 99999).
// An empty string yields PriceBandAny.
func ParsePriceBand(s string) (PriceBand, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "any":
		return PriceBandAny, nil
	case "budget", "500":
		return PriceBandBudget, nil
	case "standard", "1500":
		return PriceBandStandard, nil
	case "luxury", "99999":
		return PriceBandLuxury, nil
	default:
		return PriceBandAny, fmt.Errorf("%w: %q", ErrInvalidPriceBand, s)
	}
}

func price(v float64) *float64 {
	return &v
}
