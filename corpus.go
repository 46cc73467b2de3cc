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

package physrag

import (
	"context"
	"io"
	"log/slog"

	"github.com/colliderlab/physrag/ai"
	"github.com/colliderlab/physrag/ai/openai"
	"github.com/colliderlab/physrag/core"
	"github.com/colliderlab/physrag/ingestion"
	"github.com/colliderlab/physrag/reembed"
	"github.com/colliderlab/physrag/search"
	"github.com/colliderlab/physrag/storage"
	"github.com/colliderlab/physrag/storage/badger"
)

// Corpus bundles a chunk store with an embedding provider. It is the
// top-level entry point for ingesting documents and searching them.
type Corpus struct {
	backend   *badger.Backend
	chunkRepo storage.ChunkRepository
	provider  ai.Provider
	logger    *slog.Logger
}

// CorpusOption configures a Corpus.
type CorpusOption func(*corpusOptions)

type corpusOptions struct {
	aiConfig *ai.Config
	provider ai.Provider
}

// WithAIConfig sets the embedding service configuration.
func WithAIConfig(config *ai.Config) CorpusOption {
	return func(o *corpusOptions) {
		o.aiConfig = config
	}
}

// WithProvider supplies a pre-built AI provider, bypassing the default
// OpenAI-compatible client. Useful for tests and custom backends.
func WithProvider(provider ai.Provider) CorpusOption {
	return func(o *corpusOptions) {
		o.provider = provider
	}
}

// Open opens or creates a corpus database at the given path.
func Open(filePath string, opts ...CorpusOption) (*Corpus, error) {
	options := &corpusOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	chunkRepo, err := badger.NewChunkRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			chunkRepo.Close()
			backend.Close()
			return nil, err
		}
	}

	return &Corpus{
		backend:   backend,
		chunkRepo: chunkRepo,
		provider:  provider,
		logger:    slog.Default(),
	}, nil
}

// Close releases the provider and the underlying store.
func (c *Corpus) Close() error {
	if err := c.provider.Close(); err != nil {
		c.logger.Error("error closing AI provider", "err", err)
	}

	if err := c.chunkRepo.Close(); err != nil {
		c.logger.Error("error closing chunk repository", "err", err)
		return err
	}

	if err := c.backend.Close(); err != nil {
		c.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// ChunkRepository exposes the underlying chunk store.
func (c *Corpus) ChunkRepository() storage.ChunkRepository {
	return c.chunkRepo
}

// NewIngestionPipeline creates an ingestion pipeline bound to this corpus.
func (c *Corpus) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(c.chunkRepo, c.provider, opts...)
}

// NewSearcher creates a searcher bound to this corpus.
func (c *Corpus) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(c.chunkRepo, c.provider, opts...)
}

// IngestDirectory loads and ingests every markdown and text file under
// dir, blocking until embedding has finished. Returns the number of
// chunks stored.
func (c *Corpus) IngestDirectory(ctx context.Context, dir string, opts ...ingestion.Option) (int, error) {
	pipeline, err := c.NewIngestionPipeline(opts...)
	if err != nil {
		return 0, err
	}
	defer pipeline.Release()

	count, err := pipeline.IngestDirectory(ctx, dir)
	if err != nil {
		return count, err
	}
	pipeline.Wait()
	return count, nil
}

// Ingest chunks, stores and embeds the given documents, blocking until
// embedding has finished. Returns the number of chunks stored.
func (c *Corpus) Ingest(ctx context.Context, docs ...*core.Document) (int, error) {
	pipeline, err := c.NewIngestionPipeline()
	if err != nil {
		return 0, err
	}
	defer pipeline.Release()

	count, err := pipeline.Ingest(ctx, docs...)
	if err != nil {
		return count, err
	}
	pipeline.Wait()
	return count, nil
}

// Search retrieves chunks relevant to the query, ranked by the boosted
// score.
func (c *Corpus) Search(ctx context.Context, query string, opts ...search.Option) ([]core.Candidate, error) {
	searcher, err := c.NewSearcher(opts...)
	if err != nil {
		return nil, err
	}
	return searcher.Search(ctx, query)
}

// Reembed regenerates the embedding of every stored chunk, reporting
// progress to the given writer.
func (c *Corpus) Reembed(ctx context.Context, config *reembed.Config, progress io.Writer) error {
	reembedder := reembed.NewReembedder(c.chunkRepo, c.provider.Embedder(), config, progress)
	return reembedder.Run(ctx)
}
