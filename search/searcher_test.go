package search

import (
	"context"
	"log/slog"
	"testing"

	"github.com/colliderlab/physrag/ai/mock"
	"github.com/colliderlab/physrag/core"
	"github.com/colliderlab/physrag/storage"
	"github.com/colliderlab/physrag/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRepository(t *testing.T) storage.ChunkRepository {
	chunkRepo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		chunkRepo.Close()
		backend.Close()
	})
	return chunkRepo
}

func TestNewSearcher(t *testing.T) {
	chunkRepo := setupTestRepository(t)
	provider := mock.NewMockProvider()

	t.Run("valid configuration", func(t *testing.T) {
		searcher, err := NewSearcher(chunkRepo, provider)
		require.NoError(t, err)
		assert.NotNil(t, searcher)
	})

	t.Run("with custom logger", func(t *testing.T) {
		logger := slog.Default()
		searcher, err := NewSearcher(chunkRepo, provider, WithLogger(logger))
		require.NoError(t, err)
		assert.NotNil(t, searcher)
	})

	t.Run("with nil logger falls back to default", func(t *testing.T) {
		searcher, err := NewSearcher(chunkRepo, provider, WithLogger(nil))
		require.NoError(t, err)
		assert.NotNil(t, searcher)
	})

	t.Run("with config", func(t *testing.T) {
		config := Config{RetrievalK: 20, FinalK: 5, MinSimilarity: 0.5}
		searcher, err := NewSearcher(chunkRepo, provider, WithConfig(config))
		require.NoError(t, err)
		assert.Equal(t, config, searcher.config)
	})

	t.Run("with invalid config", func(t *testing.T) {
		_, err := NewSearcher(chunkRepo, provider, WithConfig(Config{RetrievalK: 0, FinalK: 5}))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("with invalid boost config", func(t *testing.T) {
		boosts := DefaultBoostConfig()
		boosts.Ceiling = 0
		_, err := NewSearcher(chunkRepo, provider, WithBoostConfig(boosts))
		require.Error(t, err)
	})

	t.Run("nil chunk repository", func(t *testing.T) {
		_, err := NewSearcher(nil, provider)
		assert.Equal(t, ErrChunkRepositoryRequired, err)
	})

	t.Run("nil provider", func(t *testing.T) {
		_, err := NewSearcher(chunkRepo, nil)
		assert.Equal(t, ErrAIProviderRequired, err)
	})
}

func TestSearch_EmptyDatabase(t *testing.T) {
	chunkRepo := setupTestRepository(t)
	provider := mock.NewMockProvider()

	searcher, err := NewSearcher(chunkRepo, provider)
	require.NoError(t, err)

	results, err := searcher.Search(context.Background(), "higgs boson mass")
	require.NoError(t, err)
	assert.Empty(t, results)
}

// seedChunks stores chunks with pre-assigned unit vectors so similarity
// against the fixed query vector {1, 0, 0} is the first vector component.
func seedChunks(t *testing.T, chunkRepo storage.ChunkRepository, chunks ...*core.Chunk) []*core.Chunk {
	t.Helper()
	added, err := chunkRepo.AddChunks(context.Background(), chunks...)
	require.NoError(t, err)
	require.Len(t, added, len(chunks))
	return added
}

func fixedQueryEmbedder() *mock.MockEmbedder {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{1, 0, 0}, nil
	}
	return embedder
}

func TestSearch_OrdersBySimilarity(t *testing.T) {
	chunkRepo := setupTestRepository(t)
	provider := mock.NewMockProviderWithEmbedder(fixedQueryEmbedder())

	seedChunks(t, chunkRepo,
		&core.Chunk{SourceID: "a.md", Text: "Close match", StartChar: 0, EndChar: 11, Vector: []float32{0.95, 0.3122, 0}},
		&core.Chunk{SourceID: "b.md", Text: "Exact match", StartChar: 0, EndChar: 11, Vector: []float32{1, 0, 0}},
		&core.Chunk{SourceID: "c.md", Text: "Unrelated", StartChar: 0, EndChar: 9, Vector: []float32{0, 0, 1}},
	)

	searcher, err := NewSearcher(chunkRepo, provider)
	require.NoError(t, err)

	// A query with no physics keywords applies no boosts.
	results, err := searcher.Search(context.Background(), "something entirely unrelated")
	require.NoError(t, err)
	require.Len(t, results, 2, "below-threshold chunk should be dropped")

	assert.Equal(t, "Exact match", results[0].Chunk.Text)
	assert.Equal(t, "Close match", results[1].Chunk.Text)
	assert.InDelta(t, 1.0, results[0].BaseScore, 1e-3)
	assert.InDelta(t, 0.95, results[1].BaseScore, 1e-3)
	assert.Empty(t, results[0].AppliedBoosts)
}

func TestSearch_BoostReordersResults(t *testing.T) {
	chunkRepo := setupTestRepository(t)
	provider := mock.NewMockProviderWithEmbedder(fixedQueryEmbedder())

	// The prose chunk scores higher on raw similarity, but the formula
	// chunk wins after the latex boost for a math query.
	seedChunks(t, chunkRepo,
		&core.Chunk{SourceID: "prose.md", Text: "The mass was measured.", StartChar: 0, EndChar: 22, Vector: []float32{0.9, 0.4359, 0}},
		&core.Chunk{SourceID: "formula.md", Text: "$m_H = 125.1$ GeV", StartChar: 0, EndChar: 17, HasLatex: true, Vector: []float32{0.8, 0.6, 0}},
	)

	searcher, err := NewSearcher(chunkRepo, provider)
	require.NoError(t, err)

	results, err := searcher.Search(context.Background(), "derive the mass formula")
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "formula.md", results[0].Chunk.SourceID)
	assert.InDelta(t, 0.8*1.2, results[0].RerankScore, 1e-3)
	assert.Contains(t, results[0].AppliedBoosts, "latex")

	assert.Equal(t, "prose.md", results[1].Chunk.SourceID)
	assert.InDelta(t, 0.9, results[1].RerankScore, 1e-3)
}

func TestSearch_RespectsFinalK(t *testing.T) {
	chunkRepo := setupTestRepository(t)
	provider := mock.NewMockProviderWithEmbedder(fixedQueryEmbedder())

	chunks := make([]*core.Chunk, 5)
	for i := range chunks {
		chunks[i] = &core.Chunk{
			SourceID:  "doc.md",
			Text:      "Chunk text",
			StartChar: i * 10,
			EndChar:   i*10 + 10,
			Vector:    []float32{1 - float32(i)*0.05, 0, 0},
		}
	}
	seedChunks(t, chunkRepo, chunks...)

	searcher, err := NewSearcher(chunkRepo, provider,
		WithConfig(Config{RetrievalK: 10, FinalK: 3, MinSimilarity: 0.25}))
	require.NoError(t, err)

	results, err := searcher.Search(context.Background(), "anything")
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestSearch_EmbedderError(t *testing.T) {
	chunkRepo := setupTestRepository(t)

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, assert.AnError
	}
	provider := mock.NewMockProviderWithEmbedder(embedder)

	searcher, err := NewSearcher(chunkRepo, provider)
	require.NoError(t, err)

	_, err = searcher.Search(context.Background(), "higgs")
	require.Error(t, err)
}

// recordingMonitor captures the callbacks of a single search.
type recordingMonitor struct {
	started  string
	features QueryFeatures
	matches  int
	chunks   int
	boosts   []string
	finished int
}

func (r *recordingMonitor) Start(query string)                         { r.started = query }
func (r *recordingMonitor) AfterFeatureExtraction(f QueryFeatures)     { r.features = f }
func (r *recordingMonitor) AfterVectorSearch(m []*core.SimilarityMatch) { r.matches = len(m) }
func (r *recordingMonitor) AfterChunkRetrieval(c []*core.Chunk)        { r.chunks = len(c) }
func (r *recordingMonitor) BoostApplied(_ core.ID, rule string)        { r.boosts = append(r.boosts, rule) }
func (r *recordingMonitor) Finish(results []core.Candidate)            { r.finished = len(results) }

func TestSearchWithMonitor(t *testing.T) {
	chunkRepo := setupTestRepository(t)
	provider := mock.NewMockProviderWithEmbedder(fixedQueryEmbedder())

	seedChunks(t, chunkRepo,
		&core.Chunk{SourceID: "formula.md", Text: "$E = mc^2$", StartChar: 0, EndChar: 10, HasLatex: true, Vector: []float32{1, 0, 0}},
	)

	searcher, err := NewSearcher(chunkRepo, provider)
	require.NoError(t, err)

	monitor := &recordingMonitor{}
	results, err := searcher.SearchWithMonitor(context.Background(), "mass formula", monitor)
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, "mass formula", monitor.started)
	assert.True(t, monitor.features.IsMath)
	assert.Equal(t, 1, monitor.matches)
	assert.Equal(t, 1, monitor.chunks)
	assert.Contains(t, monitor.boosts, "latex")
	assert.Equal(t, 1, monitor.finished)
}

func TestSearchWithMonitor_NilMonitor(t *testing.T) {
	chunkRepo := setupTestRepository(t)
	provider := mock.NewMockProvider()

	searcher, err := NewSearcher(chunkRepo, provider)
	require.NoError(t, err)

	results, err := searcher.SearchWithMonitor(context.Background(), "anything", nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}
