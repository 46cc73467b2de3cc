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

import "fmt"

// ValidateDocument validates a Document according to domain rules.
//
// Validation rules:
//   - ID and Source must not be empty
//   - Content must not be empty
//   - Section offsets must lie within the content and not be inverted
func ValidateDocument(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}

	if doc.ID == "" || doc.Source == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptySource)
	}

	if doc.Content == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyContent)
	}

	for _, section := range doc.Sections {
		if section.Start < 0 || section.End < section.Start || section.End > len(doc.Content) {
			return fmt.Errorf("%w: %w: %q [%d,%d)", ErrInvalidDocument,
				ErrInvalidSection, section.Title, section.Start, section.End)
		}
	}

	return nil
}

// ValidateChunk validates a Chunk according to domain rules.
//
// Validation rules:
//   - Text must not be empty
//   - SourceID must not be empty
//   - Character range must not be inverted or negative
//   - Type must be a valid ChunkType
//
// NOT validated (populated by processors):
//   - Vector (can be empty until the embedding processor runs)
func ValidateChunk(chunk *Chunk) error {
	if chunk == nil {
		return fmt.Errorf("%w: chunk is nil", ErrInvalidChunk)
	}

	if chunk.Text == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyContent)
	}

	if chunk.SourceID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptySource)
	}

	if chunk.StartChar < 0 || chunk.EndChar < chunk.StartChar {
		return fmt.Errorf("%w: %w: [%d,%d)", ErrInvalidChunk,
			ErrInvalidCharRange, chunk.StartChar, chunk.EndChar)
	}

	if err := ValidateChunkType(chunk.Type); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, err)
	}

	return nil
}

// ValidateChunkType validates that a ChunkType has a valid value.
func ValidateChunkType(t ChunkType) error {
	switch t {
	case ChunkTypeTheory, ChunkTypeCode, ChunkTypeCalculation, ChunkTypeDetector, ChunkTypeMixed:
		return nil
	default:
		return fmt.Errorf("%w: value %d", ErrInvalidChunkType, t)
	}
}
