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


package search

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/colliderlab/physrag/ai"
	"github.com/colliderlab/physrag/core"
	"github.com/colliderlab/physrag/storage"
)

// Config holds the retrieval parameters.
type Config struct {
	// RetrievalK is the candidate pool size fetched from the vector store
	// before re-ranking.
	RetrievalK int

	// FinalK is the number of results returned after re-ranking.
	FinalK int

	// MinSimilarity drops candidates whose base similarity is below this
	// threshold before re-ranking.
	MinSimilarity float32
}

// DefaultConfig returns the standard retrieval parameters.
func DefaultConfig() Config {
	return Config{
		RetrievalK:    50,
		FinalK:        10,
		MinSimilarity: 0.25,
	}
}

// Validate checks that the configuration is coherent.
func (c Config) Validate() error {
	if c.RetrievalK <= 0 {
		return fmt.Errorf("%w: RetrievalK must be positive, got %d", ErrInvalidConfig, c.RetrievalK)
	}
	if c.FinalK <= 0 {
		return fmt.Errorf("%w: FinalK must be positive, got %d", ErrInvalidConfig, c.FinalK)
	}
	if c.MinSimilarity < 0 || c.MinSimilarity > 1 {
		return fmt.Errorf("%w: MinSimilarity must lie in [0, 1], got %g", ErrInvalidConfig, c.MinSimilarity)
	}
	return nil
}

// Searcher retrieves chunks by vector similarity and re-ranks them with
// deterministic feature boosts.
type Searcher struct {
	chunkRepository storage.ChunkRepository
	embedder        ai.Embedder
	config          Config
	boosts          BoostConfig
	logger          *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithConfig sets the retrieval parameters.
func WithConfig(config Config) Option {
	return func(s *Searcher) error {
		if err := config.Validate(); err != nil {
			return err
		}
		s.config = config
		return nil
	}
}

// WithBoostConfig sets the re-ranking weights.
func WithBoostConfig(boosts BoostConfig) Option {
	return func(s *Searcher) error {
		if err := boosts.Validate(); err != nil {
			return err
		}
		s.boosts = boosts
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(
	chunkRepository storage.ChunkRepository,
	provider ai.Provider,
	opts ...Option,
) (*Searcher, error) {
	if chunkRepository == nil {
		return nil, ErrChunkRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	s := &Searcher{
		chunkRepository: chunkRepository,
		embedder:        provider.Embedder(),
		config:          DefaultConfig(),
		boosts:          DefaultBoostConfig(),
		logger:          slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search retrieves chunks relevant to the query, ranked by the boosted
// score. Returns up to FinalK results.
func (s *Searcher) Search(ctx context.Context, query string) ([]core.Candidate, error) {
	return s.SearchWithMonitor(ctx, query, nil)
}

// SearchWithMonitor searches with monitoring. The monitor receives
// callbacks at each stage of the search process.
func (s *Searcher) SearchWithMonitor(ctx context.Context, query string, monitor SearchMonitor) ([]core.Candidate, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(query)

	features := ExtractQueryFeatures(query)
	monitor.AfterFeatureExtraction(features)

	embedding, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		s.logger.Error("error generating embedding for query", "query", query, "err", err)
		return nil, err
	}

	matches, err := s.chunkRepository.FindSimilar(ctx, embedding, s.config.MinSimilarity, s.config.RetrievalK)
	if err != nil {
		s.logger.Error("error querying for similar chunks", "err", err)
		return nil, err
	}
	monitor.AfterVectorSearch(matches)

	if len(matches) == 0 {
		monitor.Finish(nil)
		return nil, nil
	}

	ids := make([]core.ID, 0, len(matches))
	for _, match := range matches {
		ids = append(ids, match.ChunkId)
	}

	chunks, err := s.chunkRepository.GetChunks(ctx, ids...)
	if err != nil {
		s.logger.Error("error retrieving matched chunks", "err", err)
		return nil, err
	}
	monitor.AfterChunkRetrieval(chunks)

	byID := make(map[core.ID]*core.Chunk, len(chunks))
	for _, chunk := range chunks {
		byID[chunk.Id] = chunk
	}

	candidates := make([]core.Candidate, 0, len(matches))
	for _, match := range matches {
		chunk, ok := byID[match.ChunkId]
		if !ok {
			// Deleted between the vector search and the fetch.
			continue
		}
		candidates = append(candidates, core.Candidate{
			Chunk:     chunk,
			BaseScore: clampScore(match.Score),
		})
	}

	results := Rerank(features, candidates, s.boosts, s.config.FinalK)
	for _, result := range results {
		for _, rule := range result.AppliedBoosts {
			monitor.BoostApplied(result.Chunk.Id, rule)
		}
	}

	s.logger.Debug("search complete", "query", query, "candidates", len(candidates), "results", len(results))
	monitor.Finish(results)
	return results, nil
}

// clampScore bounds a similarity into [0, 1] before it enters re-ranking.
func clampScore(score float32) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return float64(score)
}
