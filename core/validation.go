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


package core

import (
	"fmt"
	"strings"
)

const (
	// MinSelectableRating and MaxSelectableRating bound the rating floor a user may pick.
	MinSelectableRating = 1.0
	MaxSelectableRating = 5.0

	maxRate = 5.0
)

// ValidateRestaurant validates a Restaurant according to dataset rules.
//
// Validation rules:
//   - Name, Location and Cuisines must not be blank
//   - Rate must be within [0, 5]
//   - Cost, when present, must not be negative
//
// NOT validated (optional display fields):
//   - Votes, RestType, Address
func ValidateRestaurant(r *Restaurant) error {
	if r == nil {
		return fmt.Errorf("%w: restaurant is nil", ErrInvalidRestaurant)
	}

	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRestaurant, ErrEmptyName)
	}

	if strings.TrimSpace(r.Location) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRestaurant, ErrEmptyLocation)
	}

	if strings.TrimSpace(r.Cuisines) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRestaurant, ErrEmptyCuisines)
	}

	if r.Rate < 0 || r.Rate > maxRate {
		return fmt.Errorf("%w: %w: %v", ErrInvalidRestaurant, ErrRatingOutOfRange, r.Rate)
	}

	if r.Cost != nil && *r.Cost < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidRestaurant, ErrNegativePrice)
	}

	return nil
}

// ValidatePreferences validates query preferences.
//
// Validation rules:
//   - MinRating is either 0 (unset) or within [1.0, 5.0]
//   - MinPrice and MaxPrice, when set, are not negative
//
// MinPrice <= MaxPrice is the caller's responsibility and is not checked.
func ValidatePreferences(p *Preferences) error {
	if p == nil {
		return fmt.Errorf("%w: preferences are nil", ErrInvalidPreferences)
	}

	if p.MinRating != 0 && (p.MinRating < MinSelectableRating || p.MinRating > MaxSelectableRating) {
		return fmt.Errorf("%w: %w: %v", ErrInvalidPreferences, ErrRatingOutOfRange, p.MinRating)
	}

	if p.MinPrice != nil && *p.MinPrice < 0 {
		return fmt.Errorf("%w: %w: min price", ErrInvalidPreferences, ErrNegativePrice)
	}

	if p.MaxPrice != nil && *p.MaxPrice < 0 {
		return fmt.Errorf("%w: %w: max price", ErrInvalidPreferences, ErrNegativePrice)
	}

	return nil
}
