package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/colliderlab/physrag/ai"
	"github.com/colliderlab/physrag/core"
	"github.com/colliderlab/physrag/storage"
)

// embeddingProcessor generates embeddings for stored chunks.
type embeddingProcessor struct {
	chunkRepository storage.ChunkRepository
	embedder        ai.Embedder
	logger          *slog.Logger
}

var _ processor = (*embeddingProcessor)(nil)

// newEmbeddingProcessor creates a new embedding processor.
func newEmbeddingProcessor(chunkRepository storage.ChunkRepository, embedder ai.Embedder, logger *slog.Logger) (processor, error) {
	if chunkRepository == nil {
		return nil, fmt.Errorf("chunk repository required")
	}
	if embedder == nil {
		return nil, fmt.Errorf("embedder required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &embeddingProcessor{
		chunkRepository: chunkRepository,
		embedder:        embedder,
		logger:          logger.With("processor", "embeddings"),
	}, nil
}

// process generates embeddings for the specified chunks.
func (ep *embeddingProcessor) process(ctx context.Context, ids ...core.ID) error {
	ep.logger.Info("processing chunks for embeddings", "chunks", len(ids))

	slices.Sort(ids)

	chunks, err := ep.chunkRepository.GetChunks(ctx, ids...)
	if err != nil {
		ep.logger.Error("error retrieving chunks", "err", err)
		return err
	}
	if len(chunks) == 0 {
		return nil
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}

	ep.logger.Debug("generating embeddings for chunks", "chunks", len(texts))
	embeddings, err := ep.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		ep.logger.Error("error generating embeddings", "err", err)
		return err
	}

	if len(embeddings) != len(chunks) {
		return fmt.Errorf("embedding result mismatch. expected %d, received %d", len(chunks), len(embeddings))
	}

	for i := range embeddings {
		chunks[i].Vector = embeddings[i]
	}

	_, err = ep.chunkRepository.UpdateChunks(ctx, chunks...)
	return err
}
