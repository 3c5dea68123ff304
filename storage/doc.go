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


// Package storage defines the persistence contracts for the glass catalog,
// bot users, and analytics events, together with the MUS serialization
// helpers shared by all backends.
//
// The match pipeline never touches a repository directly: it consumes the
// read-only Corpus snapshot produced by CatalogRepository.ActiveCorpus and
// the active-group metadata from GetActiveGroups. Mutation is entirely the
// backends' concern.
package storage
