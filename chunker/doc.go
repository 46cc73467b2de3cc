// Package chunker segments documents into retrieval-sized chunks without
// splitting embedded LaTeX math or fenced code blocks.
//
// The Chunker type implements a sliding-window segmentation that:
//   - Locates protected spans (inline math, display math, fenced code)
//   - Never places a chunk boundary strictly inside a protected span
//   - Emits a single oversized chunk when a span cannot fit the size limits
//   - Enriches each chunk with a content classification and dictionary tags
//
// Chunking is a pure function of (text, config): identical inputs always
// yield identical boundaries and chunk IDs, regardless of scheduling.
package chunker
