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


// Package search turns a user's preferences into a short, deduplicated list
// of candidate restaurants.
//
// The Searcher runs three stages per query:
//   - Filtering of the injected dataset (see catalog.Filter)
//   - Optional semantic ordering of the overscan window by cosine similarity
//     between the query text and each record's summary
//   - Ranking and deduplication by trimmed restaurant name, with a description
//     synthesized for every accepted record
//
// Semantic ordering is off by default, in which case candidates keep dataset
// order and the embedder is never consulted.
package search
