package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractQueryFeatures(t *testing.T) {
	t.Run("mass question is a math query", func(t *testing.T) {
		features := ExtractQueryFeatures("What is the Higgs boson mass?")
		assert.True(t, features.IsMath)
		assert.False(t, features.IsCode)
		assert.False(t, features.IsDetector)
		assert.False(t, features.IsProcess)
		assert.Equal(t, []string{"higgs", "boson", "mass"}, features.KeyTerms)
		assert.Equal(t, []string{"higgs", "boson"}, features.Particles)
	})

	t.Run("code query", func(t *testing.T) {
		features := ExtractQueryFeatures("ROOT script for reading ntuples")
		assert.True(t, features.IsCode)
		assert.False(t, features.IsMath)
	})

	t.Run("detector query", func(t *testing.T) {
		features := ExtractQueryFeatures("CMS calorimeter resolution")
		assert.True(t, features.IsDetector)
	})

	t.Run("process query", func(t *testing.T) {
		features := ExtractQueryFeatures("tau pair production at colliders")
		assert.True(t, features.IsProcess)
		assert.Contains(t, features.Particles, "tau")
	})

	t.Run("keyword matching is case-insensitive", func(t *testing.T) {
		features := ExtractQueryFeatures("CALCULATE the branching ratio")
		assert.True(t, features.IsMath)
	})

	t.Run("empty query", func(t *testing.T) {
		features := ExtractQueryFeatures("")
		assert.False(t, features.IsMath)
		assert.Empty(t, features.KeyTerms)
		assert.Empty(t, features.Particles)
	})
}

func TestKeyTerms(t *testing.T) {
	t.Run("short tokens and stop words dropped", func(t *testing.T) {
		terms := keyTerms("What does the W boson decay to?")
		assert.Equal(t, []string{"boson", "decay"}, terms)
	})

	t.Run("punctuation splits tokens", func(t *testing.T) {
		terms := keyTerms("cross-section (measured), preliminary!")
		assert.Equal(t, []string{"cross", "section", "measured", "preliminary"}, terms)
	})

	t.Run("duplicates removed preserving first appearance", func(t *testing.T) {
		terms := keyTerms("muon muon chamber")
		assert.Equal(t, []string{"muon", "chamber"}, terms)
	})

	t.Run("token length counts runes not bytes", func(t *testing.T) {
		// "πιο" is three runes across six bytes and must be dropped like
		// any other short token; "μιόνιο" has six runes and stays.
		terms := keyTerms("πιο μιόνιο decay")
		assert.Equal(t, []string{"μιόνιο", "decay"}, terms)
	})
}
