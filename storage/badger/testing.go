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


package badger

import "github.com/colliderlab/physrag/storage"

// NewRepository creates a chunk repository backed by a database at path.
// Returns the repository and the backend; the caller must close both when
// done.
func NewRepository(path string) (storage.ChunkRepository, *Backend, error) {
	return newRepository(path, false)
}

// NewMemoryRepository creates an in-memory chunk repository for testing.
// Caller must close the repo and backend when done.
func NewMemoryRepository() (storage.ChunkRepository, *Backend, error) {
	return newRepository("", true)
}

func newRepository(path string, inMemory bool) (storage.ChunkRepository, *Backend, error) {
	backend, err := OpenBackend(path, inMemory)
	if err != nil {
		return nil, nil, err
	}

	repo, err := NewChunkRepository(backend)
	if err != nil {
		backend.Close()
		return nil, nil, err
	}

	return repo, backend, nil
}
