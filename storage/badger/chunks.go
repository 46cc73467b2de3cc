package badger

import (
	"bytes"
	"context"
	"slices"
	"time"

	"github.com/colliderlab/physrag/core"
	"github.com/colliderlab/physrag/storage"
	"github.com/dgraph-io/badger/v4"
)

// ChunkRepository implements storage.ChunkRepository for BadgerDB.
type ChunkRepository struct {
	backend *Backend
}

var _ storage.ChunkRepository = (*ChunkRepository)(nil)

// NewChunkRepository creates a new ChunkRepository.
func NewChunkRepository(backend *Backend) (*ChunkRepository, error) {
	return &ChunkRepository{backend: backend}, nil
}

// Close is a no-op; the backend owns the database lifecycle.
func (r *ChunkRepository) Close() error {
	return nil
}

// FindSimilar delegates to the backend.
func (r *ChunkRepository) FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.SimilarityMatch, error) {
	return r.backend.FindSimilar(ctx, vector, minSimilarity, limit)
}

// WithTransaction delegates to the backend.
func (r *ChunkRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddChunks adds one or more chunks to storage. IDs are content-derived,
// so re-adding the same chunk overwrites its previous record in place.
func (r *ChunkRepository) AddChunks(ctx context.Context, chunks ...*core.Chunk) ([]*core.Chunk, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, chunk := range chunks {
			if chunk.Id == 0 {
				chunk.Id = core.ChunkID(chunk.SourceID, chunk.StartChar, chunk.EndChar)
			}

			chunk.InsertedAt = time.Now().UTC()
			chunk.UpdatedAt = chunk.InsertedAt

			// Store primary record
			key := makeChunkKey(chunk.Id)
			value := storage.MarshalChunk(chunk)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Update source index
			sourceKey := makeChunkSourceKey(chunk.SourceID, chunk.Id)
			if err := tx.Set(sourceKey, storage.MarshalID(chunk.Id)); err != nil {
				return err
			}

			// Update tag index
			if err := r.updateTagIndex(tx, chunk); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return chunks, err
}

// UpdateChunks updates existing chunks.
func (r *ChunkRepository) UpdateChunks(ctx context.Context, chunks ...*core.Chunk) ([]*core.Chunk, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, chunk := range chunks {
			key := makeChunkKey(chunk.Id)

			// Read old chunk to detect index changes
			old, err := r.readChunk(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			chunk.InsertedAt = old.InsertedAt
			chunk.UpdatedAt = time.Now().UTC()

			value := storage.MarshalChunk(chunk)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Update source index if the source changed
			if old.SourceID != chunk.SourceID {
				oldSourceKey := makeChunkSourceKey(old.SourceID, old.Id)
				if err := tx.Delete(oldSourceKey); err != nil {
					return err
				}
				newSourceKey := makeChunkSourceKey(chunk.SourceID, chunk.Id)
				if err := tx.Set(newSourceKey, storage.MarshalID(chunk.Id)); err != nil {
					return err
				}
			}

			// Update tag index if the tags changed
			if !slices.Equal(old.Tags, chunk.Tags) {
				if err := r.deleteTagIndex(tx, old); err != nil {
					return err
				}
				if err := r.updateTagIndex(tx, chunk); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)

	return chunks, err
}

// DeleteChunks removes chunks by their IDs.
func (r *ChunkRepository) DeleteChunks(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeChunkKey(id)

			// Read chunk to get metadata for index cleanup
			chunk, err := r.readChunk(tx, key)
			if err != nil {
				return err
			}
			if chunk == nil {
				return storage.ErrNotFound
			}

			sourceKey := makeChunkSourceKey(chunk.SourceID, chunk.Id)
			if err := tx.Delete(sourceKey); err != nil {
				return err
			}

			if err := r.deleteTagIndex(tx, chunk); err != nil {
				return err
			}

			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetChunk retrieves a single chunk by ID.
func (r *ChunkRepository) GetChunk(ctx context.Context, id core.ID) (*core.Chunk, error) {
	var result *core.Chunk
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeChunkKey(id)
		var err error
		result, err = r.readChunk(tx, key)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetChunks retrieves multiple chunks by their IDs.
func (r *ChunkRepository) GetChunks(ctx context.Context, ids ...core.ID) ([]*core.Chunk, error) {
	var result []*core.Chunk
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeChunkKey(id)
			chunk, err := r.readChunk(tx, key)
			if err != nil {
				return err
			}
			if chunk != nil {
				result = append(result, chunk)
			}
		}
		return nil
	}, false)
	return result, err
}

// GetChunksBySource retrieves all chunks of a source document, ordered by
// character range.
func (r *ChunkRepository) GetChunksBySource(ctx context.Context, sourceID string) ([]*core.Chunk, error) {
	var results []*core.Chunk
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialChunkSourceKey(sourceID)
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if !bytes.HasPrefix(key, startKey) {
				break
			}

			var chunkID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				chunkID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			chunk, err := r.readChunk(tx, makeChunkKey(chunkID))
			if err != nil {
				return err
			}
			if chunk != nil {
				results = append(results, chunk)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(results, func(a, b *core.Chunk) int {
		if a.StartChar != b.StartChar {
			return a.StartChar - b.StartChar
		}
		return a.EndChar - b.EndChar
	})
	return results, nil
}

// GetChunkIDsByTag retrieves IDs of chunks carrying the given tag.
func (r *ChunkRepository) GetChunkIDsByTag(ctx context.Context, tag string) ([]core.ID, error) {
	var chunkIDs []core.ID
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialChunkTagKey(tag)
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if !bytes.HasPrefix(key, startKey) {
				break
			}

			var chunkID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				chunkID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}
			chunkIDs = append(chunkIDs, chunkID)
		}
		return nil
	}, false)

	return chunkIDs, err
}

// ListChunks visits every stored chunk.
func (r *ChunkRepository) ListChunks(ctx context.Context, visit func(chunk *core.Chunk) error) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(chunkRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var chunk *core.Chunk
			err := iter.Item().Value(func(val []byte) error {
				var err error
				chunk, err = storage.UnmarshalChunk(val)
				return err
			})
			if err != nil {
				return err
			}
			if chunk == nil {
				continue
			}
			if err := visit(chunk); err != nil {
				return err
			}
		}
		return nil
	}, false)
}

// Helper methods

// readChunk reads a chunk from the transaction.
func (r *ChunkRepository) readChunk(tx *badger.Txn, key []byte) (*core.Chunk, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var chunk *core.Chunk
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		chunk, unmarshalErr = storage.UnmarshalChunk(val)
		return unmarshalErr
	})
	return chunk, err
}

// updateTagIndex adds tag index entries for a chunk.
func (r *ChunkRepository) updateTagIndex(tx *badger.Txn, chunk *core.Chunk) error {
	for _, tag := range chunk.Tags {
		key := makeChunkTagKey(tag, chunk.Id)
		if err := tx.Set(key, storage.MarshalID(chunk.Id)); err != nil {
			return err
		}
	}
	return nil
}

// deleteTagIndex removes tag index entries for a chunk.
func (r *ChunkRepository) deleteTagIndex(tx *badger.Txn, chunk *core.Chunk) error {
	for _, tag := range chunk.Tags {
		key := makeChunkTagKey(tag, chunk.Id)
		if err := tx.Delete(key); err != nil {
			return err
		}
	}
	return nil
}
