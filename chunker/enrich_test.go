package chunker

import (
	"testing"

	"github.com/colliderlab/physrag/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		hasLatex bool
		hasCode  bool
		want     core.ChunkType
	}{
		{
			name:    "pure code",
			text:    "```python\nimport numpy\n```",
			hasCode: true,
			want:    core.ChunkTypeCode,
		},
		{
			name:    "code mentioning a detector",
			text:    "```python\n# ATLAS event loop\n```",
			hasCode: true,
			want:    core.ChunkTypeDetector,
		},
		{
			name:     "code mixed with formulas",
			text:     "compare $E = mc^2$ with the snippet ```python\npass\n```",
			hasLatex: true,
			hasCode:  true,
			want:     core.ChunkTypeMixed,
		},
		{
			name:     "calculation verb with formulas",
			text:     "we calculate the cross section $\\sigma = 42$ pb",
			hasLatex: true,
			want:     core.ChunkTypeCalculation,
		},
		{
			name:     "formulas without calculation verbs",
			text:     "the Lagrangian $\\mathcal{L}$ of the standard model",
			hasLatex: true,
			want:     core.ChunkTypeTheory,
		},
		{
			name: "detector prose",
			text: "the CMS calorimeter resolution",
			want: core.ChunkTypeDetector,
		},
		{
			name:     "detector outranks formulas",
			text:     "ATLAS observed $m_H = 125.1$ GeV",
			hasLatex: true,
			want:     core.ChunkTypeDetector,
		},
		{
			name: "plain prose",
			text: "an introduction to the standard model",
			want: core.ChunkTypeMixed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.text, tt.hasLatex, tt.hasCode)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractTags(t *testing.T) {
	t.Run("dictionary groups in order", func(t *testing.T) {
		tags := extractTags("CMS measured the Higgs boson decay")
		assert.Equal(t, []string{"higgs", "boson", "cms", "decay"}, tags)
	})

	t.Run("no matches", func(t *testing.T) {
		assert.Empty(t, extractTags("nothing of note here"))
	})

	t.Run("case insensitive with canonical casing", func(t *testing.T) {
		tags := extractTags("The MUON system near the TRACKER")
		assert.Equal(t, []string{"muon", "tracker"}, tags)
	})
}

func TestEnrich(t *testing.T) {
	t.Run("latex flag from intersecting span", func(t *testing.T) {
		spans := []core.ProtectedSpan{
			{Start: 10, End: 20, Kind: core.SpanInlineMath},
		}
		chunk := &core.Chunk{Text: "some text"}
		enrich(chunk, spans, 15, 40)
		assert.True(t, chunk.HasLatex)
		assert.False(t, chunk.HasCode)
	})

	t.Run("span outside the range is ignored", func(t *testing.T) {
		spans := []core.ProtectedSpan{
			{Start: 50, End: 60, Kind: core.SpanInlineMath},
		}
		chunk := &core.Chunk{Text: "some text"}
		enrich(chunk, spans, 0, 50)
		assert.False(t, chunk.HasLatex)
	})

	t.Run("language from first intersecting code span", func(t *testing.T) {
		spans := []core.ProtectedSpan{
			{Start: 0, End: 20, Kind: core.SpanCode, Language: "python"},
			{Start: 30, End: 50, Kind: core.SpanCode, Language: "go"},
		}
		chunk := &core.Chunk{Text: "some text"}
		enrich(chunk, spans, 0, 60)
		assert.True(t, chunk.HasCode)
		assert.Equal(t, "python", chunk.Language)
	})
}

func TestChunkDocument_Enrichment(t *testing.T) {
	content := "ATLAS and CMS measured the Higgs boson decay width $\\Gamma_H$ at the LHC."
	c, err := New(DefaultConfig())
	require.NoError(t, err)

	chunks, err := c.ChunkDocument(newTestDocument(content))
	require.NoError(t, err)
	require.Len(t, chunks, 1)

	chunk := chunks[0]
	assert.True(t, chunk.HasLatex)
	assert.False(t, chunk.HasCode)
	assert.Equal(t, core.ChunkTypeDetector, chunk.Type)
	assert.Contains(t, chunk.Tags, "higgs")
	assert.Contains(t, chunk.Tags, "atlas")
	assert.Contains(t, chunk.Tags, "cms")
	assert.Contains(t, chunk.Tags, "lhc")
	assert.Contains(t, chunk.Tags, "decay")
}
