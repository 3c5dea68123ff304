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


// Package match resolves free-text device queries against a catalog corpus.
//
// The Resolver type implements a multi-stage pipeline:
//   - Scan classifies every corpus entry into one of five confidence tiers
//   - Aggregate keeps the single best match per compatibility group
//   - Rank orders groups: shared-brand groups first, then match tier, then
//     group ID as a stable tie-break
//
// The pipeline is synchronous, stateless, and side-effect-free: it operates
// on a read-only corpus snapshot and never mutates shared state. A query
// that matches nothing is a successful response with Found=false, not an
// error; only an empty query is rejected.
package match
