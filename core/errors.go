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

import "errors"

// Domain validation errors
var (
	// ErrInvalidRestaurant indicates a Restaurant failed validation.
	ErrInvalidRestaurant = errors.New("invalid restaurant")

	// ErrInvalidPreferences indicates query Preferences failed validation.
	ErrInvalidPreferences = errors.New("invalid preferences")

	// ErrEmptyName indicates the Name field is empty.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrEmptyLocation indicates the Location field is empty.
	ErrEmptyLocation = errors.New("location cannot be empty")

	// ErrEmptyCuisines indicates the Cuisines field is empty.
	ErrEmptyCuisines = errors.New("cuisines cannot be empty")

	// ErrRatingOutOfRange indicates a rating outside the accepted range.
	ErrRatingOutOfRange = errors.New("rating out of range")

	// ErrNegativePrice indicates a negative price or price bound.
	ErrNegativePrice = errors.New("price cannot be negative")

	// ErrInvalidPriceBand indicates an unknown price band name.
	ErrInvalidPriceBand = errors.New("invalid price band")
)
