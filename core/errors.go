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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidDocument indicates a Document failed validation.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrInvalidChunk indicates a Chunk failed validation.
	ErrInvalidChunk = errors.New("invalid chunk")

	// ErrEmptyContent indicates the text content is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrEmptySource indicates the source identifier is empty.
	ErrEmptySource = errors.New("source cannot be empty")

	// ErrInvalidChunkType indicates an invalid ChunkType value.
	ErrInvalidChunkType = errors.New("invalid chunk type")

	// ErrInvalidCharRange indicates a chunk character range is inverted
	// or negative.
	ErrInvalidCharRange = errors.New("invalid character range")

	// ErrInvalidSection indicates a section's offsets do not lie within
	// the document content.
	ErrInvalidSection = errors.New("invalid section offsets")
)
