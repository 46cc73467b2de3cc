package storage

import (
	"context"

	"github.com/colliderlab/physrag/core"
)

// Repository provides common storage operations shared across repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// FindSimilar finds chunks similar to the given vector.
	// Returns matches with similarity >= minSimilarity, up to limit results.
	// Results are ordered by similarity score (highest first).
	FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.SimilarityMatch, error)

	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// The context passed to fn may contain transaction state.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// ChunkRepository provides operations for managing stored chunks.
type ChunkRepository interface {
	Repository

	// AddChunks adds one or more chunks to storage.
	// For chunks with ID=0, derives the ID from source and char range.
	// Sets InsertedAt and UpdatedAt timestamps.
	// Returns the chunks with IDs and timestamps populated.
	AddChunks(ctx context.Context, chunks ...*core.Chunk) ([]*core.Chunk, error)

	// UpdateChunks updates existing chunks.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any chunk doesn't exist.
	UpdateChunks(ctx context.Context, chunks ...*core.Chunk) ([]*core.Chunk, error)

	// DeleteChunks removes chunks by their IDs.
	// Also removes associated indices.
	// Returns ErrNotFound if any chunk doesn't exist.
	DeleteChunks(ctx context.Context, ids ...core.ID) error

	// GetChunk retrieves a single chunk by ID.
	// Returns ErrNotFound if the chunk doesn't exist.
	GetChunk(ctx context.Context, id core.ID) (*core.Chunk, error)

	// GetChunks retrieves multiple chunks by their IDs.
	// Returns only the chunks that exist (no error for missing chunks).
	GetChunks(ctx context.Context, ids ...core.ID) ([]*core.Chunk, error)

	// GetChunksBySource retrieves all chunks of a source document,
	// ordered by character range.
	GetChunksBySource(ctx context.Context, sourceID string) ([]*core.Chunk, error)

	// GetChunkIDsByTag retrieves IDs of chunks carrying the given tag.
	// Returns only chunk IDs, not full chunks.
	GetChunkIDsByTag(ctx context.Context, tag string) ([]core.ID, error)

	// ListChunks visits every stored chunk. The visit function is called
	// once per chunk; returning an error stops the walk and is returned
	// to the caller.
	ListChunks(ctx context.Context, visit func(chunk *core.Chunk) error) error
}
