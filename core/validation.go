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

import "fmt"

// ValidateGlassGroup validates a GlassGroup according to domain rules.
//
// Validation rules:
//   - Name must not be empty
//
// NOT validated:
//   - ExternalId (optional, only meaningful for spreadsheet imports)
//   - ID (0 is valid from database sequences)
func ValidateGlassGroup(group *GlassGroup) error {
	if group == nil {
		return fmt.Errorf("%w: group is nil", ErrInvalidGroup)
	}

	if group.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidGroup, ErrEmptyGroupName)
	}

	return nil
}

// ValidateGlass validates a Glass according to domain rules.
//
// Validation rules:
//   - Name must not be empty
//   - GroupId must be set
func ValidateGlass(glass *Glass) error {
	if glass == nil {
		return fmt.Errorf("%w: glass is nil", ErrInvalidGlass)
	}

	if glass.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidGlass, ErrEmptyGlassName)
	}

	if glass.GroupId == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidGlass, ErrMissingGroup)
	}

	return nil
}

// ValidateGlassAlias validates a GlassAlias according to domain rules.
//
// Validation rules:
//   - Alias must not normalize to the empty string
//   - GlassId must be set
//
// NOT validated:
//   - NormalizedAlias (recomputed on every write)
//   - ID (derived from content)
func ValidateGlassAlias(alias *GlassAlias) error {
	if alias == nil {
		return fmt.Errorf("%w: alias is nil", ErrInvalidAlias)
	}

	if Normalize(alias.Alias) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidAlias, ErrEmptyAlias)
	}

	if alias.GlassId == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidAlias, ErrMissingGlass)
	}

	return nil
}

// ValidatePremiumPlan validates a PremiumPlan according to domain rules.
func ValidatePremiumPlan(plan *PremiumPlan) error {
	if plan == nil {
		return fmt.Errorf("%w: plan is nil", ErrInvalidPlan)
	}
	if plan.Code == "" {
		return fmt.Errorf("%w: code cannot be empty", ErrInvalidPlan)
	}
	if plan.PriceStars <= 0 {
		return fmt.Errorf("%w: price must be positive", ErrInvalidPlan)
	}
	if plan.DurationDays <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidPlan)
	}
	return nil
}
