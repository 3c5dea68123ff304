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
	// ErrInvalidGroup indicates a GlassGroup failed validation.
	ErrInvalidGroup = errors.New("invalid glass group")

	// ErrInvalidGlass indicates a Glass failed validation.
	ErrInvalidGlass = errors.New("invalid glass")

	// ErrInvalidAlias indicates a GlassAlias failed validation.
	ErrInvalidAlias = errors.New("invalid glass alias")

	// ErrEmptyGroupName indicates the group Name field is empty.
	ErrEmptyGroupName = errors.New("group name cannot be empty")

	// ErrEmptyGlassName indicates the glass Name field is empty.
	ErrEmptyGlassName = errors.New("glass name cannot be empty")

	// ErrEmptyAlias indicates the Alias field is empty after normalization.
	ErrEmptyAlias = errors.New("alias cannot be empty")

	// ErrMissingGroup indicates a glass does not reference a group.
	ErrMissingGroup = errors.New("glass must belong to a group")

	// ErrMissingGlass indicates an alias does not reference a glass.
	ErrMissingGlass = errors.New("alias must belong to a glass")

	// ErrInvalidPlan indicates a PremiumPlan failed validation.
	ErrInvalidPlan = errors.New("invalid premium plan")
)
