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


// Package ai provides abstractions for the embedding services used by
// physrag.
//
// The core pipeline depends only on the Embedder and Provider interfaces
// defined here, never on a concrete client. Two implementation sub-packages
// exist:
//
//   - ai/openai: production implementation using OpenAI-compatible APIs
//   - ai/mock: deterministic test doubles for unit testing without a server
//
// Production constructors return interface types to keep callers decoupled
// from the client library; mock constructors return concrete types so tests
// can inject behavior and assert call counts.
package ai
