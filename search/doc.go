// Copyright 2026 Colliderlab
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


// Package search provides physics-aware retrieval over stored chunks.
//
// The Searcher type implements a two-stage algorithm:
//   - Semantic retrieval using vector embeddings
//   - Deterministic feature-boost re-ranking from query and chunk metadata
//
// Query features are derived from fixed keyword tables, and boost rules
// multiply the base similarity in a declared order, so equal inputs always
// produce equal rankings.
package search
