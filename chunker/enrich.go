package chunker

import "github.com/colliderlab/physrag/core"

// enrich populates a chunk's classification metadata from the protected
// spans intersecting its section-local range and from the static term
// dictionaries.
//
// HasLatex and HasCode are true iff any span of the relevant kind
// intersects the chunk; Language is the language of the first intersecting
// code span. Classification follows a fixed priority order, first match
// wins.
func enrich(chunk *core.Chunk, spans []core.ProtectedSpan, start, end int) {
	for _, span := range spans {
		if span.Start >= end {
			break
		}
		if !span.Overlaps(start, end) {
			continue
		}
		switch {
		case span.IsMath():
			chunk.HasLatex = true
		case span.Kind == core.SpanCode:
			chunk.HasCode = true
			if chunk.Language == "" {
				chunk.Language = span.Language
			}
		}
	}

	chunk.Tags = extractTags(chunk.Text)
	chunk.Type = classify(chunk.Text, chunk.HasLatex, chunk.HasCode)
}

// extractTags scans the chunk text against the particle, detector and
// process dictionaries. The result keeps dictionary order and canonical
// lower-case terms.
func extractTags(text string) []string {
	var tags []string
	tags = append(tags, core.MatchTerms(text, core.ParticleTerms)...)
	tags = append(tags, core.MatchTerms(text, core.DetectorTerms)...)
	tags = append(tags, core.MatchTerms(text, core.ProcessTerms)...)
	return tags
}

// classify assigns the chunk type. The clauses are evaluated in this fixed
// order; the first that matches decides.
func classify(text string, hasLatex, hasCode bool) core.ChunkType {
	hasDetector := core.ContainsAnyTerm(text, core.DetectorTerms)
	hasCalcVerb := core.ContainsAnyTerm(text, core.CalculationVerbs)

	switch {
	case hasCode && !hasLatex && !hasDetector:
		return core.ChunkTypeCode
	case hasCalcVerb && hasLatex:
		return core.ChunkTypeCalculation
	case hasDetector:
		return core.ChunkTypeDetector
	case hasLatex && !hasCode:
		return core.ChunkTypeTheory
	default:
		return core.ChunkTypeMixed
	}
}
