package ingestion

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"github.com/colliderlab/physrag/ai"
	"github.com/colliderlab/physrag/chunker"
	"github.com/colliderlab/physrag/core"
	"github.com/colliderlab/physrag/storage"
	"github.com/panjf2000/ants/v2"
)

// Pipeline orchestrates the ingestion and processing of documents.
// It chunks documents, stores the chunks and manages concurrent
// embedding generation.
type Pipeline struct {
	chunkRepository storage.ChunkRepository
	chunker         *chunker.Chunker
	chunkerConfig   chunker.Config
	embeddingPool   *ants.Pool
	embeddingProc   processor
	pending         sync.WaitGroup
	logger          *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent processing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.embeddingPool != nil {
			p.embeddingPool.Release()
		}

		embeddingPool, err := ants.NewPool(size)
		if err != nil {
			return err
		}

		p.embeddingPool = embeddingPool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithChunkerConfig sets the chunking configuration.
// Default is chunker.DefaultConfig().
func WithChunkerConfig(config chunker.Config) Option {
	return func(p *Pipeline) error {
		if err := config.Validate(); err != nil {
			return err
		}
		p.chunkerConfig = config
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	chunkRepository storage.ChunkRepository,
	provider ai.Provider,
	opts ...Option,
) (*Pipeline, error) {
	if chunkRepository == nil {
		return nil, ErrChunkRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	// Default pool size
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	embeddingPool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	// Create pipeline with defaults
	p := &Pipeline{
		chunkRepository: chunkRepository,
		chunkerConfig:   chunker.DefaultConfig(),
		embeddingPool:   embeddingPool,
		logger:          slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	// Create the chunker and processor after options are applied
	// (so they get final config)
	ck, err := chunker.New(p.chunkerConfig, chunker.WithLogger(p.logger))
	if err != nil {
		p.Release()
		return nil, err
	}
	p.chunker = ck

	embeddingProc, err := newEmbeddingProcessor(chunkRepository, provider.Embedder(), p.logger)
	if err != nil {
		p.Release()
		return nil, err
	}
	p.embeddingProc = embeddingProc

	return p, nil
}

// Ingest chunks the documents, stores the chunks and submits them for
// asynchronous embedding. Errors during async processing are logged but
// do not fail the ingestion. Returns the number of chunks stored.
func (p *Pipeline) Ingest(ctx context.Context, docs ...*core.Document) (int, error) {
	chunks, err := p.chunker.ChunkDocuments(docs...)
	if err != nil {
		return 0, err
	}
	if len(chunks) == 0 {
		return 0, nil
	}

	added, err := p.chunkRepository.AddChunks(ctx, chunks...)
	if err != nil {
		return 0, err
	}
	if len(added) == 0 {
		return 0, nil
	}

	ids := make([]core.ID, len(added))
	for i, chunk := range added {
		ids[i] = chunk.Id
	}

	// Submit for async processing
	p.pending.Add(1)
	submitErr := p.embeddingPool.Submit(func() {
		defer p.pending.Done()
		if err := p.embeddingProc.process(context.Background(), ids...); err != nil {
			p.logger.Error("error processing embeddings", "err", err)
		}
	})
	if submitErr != nil {
		p.pending.Done()
		return len(added), submitErr
	}

	return len(added), nil
}

// IngestDirectory loads every markdown and text file under dir and
// ingests the resulting documents. Returns the number of chunks stored.
func (p *Pipeline) IngestDirectory(ctx context.Context, dir string) (int, error) {
	docs, err := LoadDirectory(dir)
	if err != nil {
		return 0, err
	}
	if len(docs) == 0 {
		return 0, nil
	}
	return p.Ingest(ctx, docs...)
}

// Wait blocks until all submitted embedding work has finished.
func (p *Pipeline) Wait() {
	p.pending.Wait()
}

// Release waits for pending work and releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	p.pending.Wait()
	if p.embeddingPool != nil {
		p.embeddingPool.Release()
	}
}
