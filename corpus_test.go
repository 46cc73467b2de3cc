package physrag

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/colliderlab/physrag/ai/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	t.Run("create new corpus", func(t *testing.T) {
		tmpDir := filepath.Join(t.TempDir(), "test_db")
		corpus, err := Open(tmpDir)
		require.NoError(t, err)
		require.NotNil(t, corpus)
		defer corpus.Close()

		// Verify components are initialized
		assert.NotNil(t, corpus.ChunkRepository())
		assert.NotNil(t, corpus.backend)
		assert.NotNil(t, corpus.logger)
	})

	t.Run("error with invalid path", func(t *testing.T) {
		// Try to create a corpus at a file path instead of directory
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		err := os.WriteFile(tmpFile, []byte("test"), 0644)
		require.NoError(t, err)

		corpus, err := Open(tmpFile)
		assert.Error(t, err)
		assert.Nil(t, corpus)
	})
}

func TestCorpus_Close(t *testing.T) {
	corpus, err := Open(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, corpus)

	err = corpus.Close()
	assert.NoError(t, err)
}

func TestCorpus_FactoryMethods(t *testing.T) {
	corpus, err := Open(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, corpus)
	defer corpus.Close()

	t.Run("can create ingestion pipeline", func(t *testing.T) {
		pipeline, err := corpus.NewIngestionPipeline()
		require.NoError(t, err)
		require.NotNil(t, pipeline)
		pipeline.Release()
	})

	t.Run("can create searcher", func(t *testing.T) {
		searcher, err := corpus.NewSearcher()
		require.NoError(t, err)
		require.NotNil(t, searcher)
	})
}

func TestCorpus_IngestAndSearch(t *testing.T) {
	corpus, err := Open(t.TempDir(), WithProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	defer corpus.Close()

	dir := t.TempDir()
	content := "# Higgs Boson\n\nThe Higgs boson mass is $m_H = 125.1$ GeV, measured by ATLAS and CMS.\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "higgs.md"), []byte(content), 0644))

	ctx := context.Background()
	count, err := corpus.IngestDirectory(ctx, dir)
	require.NoError(t, err)
	require.Greater(t, count, 0)

	// The mock embedder is deterministic, so the chunk's own text is its
	// own nearest neighbor.
	results, err := corpus.Search(ctx, content)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "higgs.md", results[0].Chunk.SourceID)
}

func TestCorpus_Reembed(t *testing.T) {
	corpus, err := Open(t.TempDir(), WithProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	defer corpus.Close()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("# Notes\n\nMuon tracking.\n"), 0644))

	ctx := context.Background()
	count, err := corpus.IngestDirectory(ctx, dir)
	require.NoError(t, err)
	require.Greater(t, count, 0)

	var progress discardWriter
	require.NoError(t, corpus.Reembed(ctx, nil, &progress))
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
