package core

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated by content-based hashing, never by insertion order,
// so identical inputs always produce identical IDs.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// ChunkID derives the deterministic ID for a chunk from its source document
// and character range. The ID is stable across runs and across concurrent
// ingestion order.
func ChunkID(sourceID string, startChar, endChar int) ID {
	return IDFromContent(fmt.Sprintf("%s:%d-%d", sourceID, startChar, endChar))
}

// SpanKind identifies the kind of a protected span.
type SpanKind int

const (
	// SpanInlineMath is inline LaTeX math delimited by single dollar signs.
	SpanInlineMath SpanKind = iota + 1
	// SpanDisplayMath is display LaTeX math delimited by double dollar signs.
	SpanDisplayMath
	// SpanCode is a fenced code block.
	SpanCode
)

// String returns the lower-case name of the span kind.
func (k SpanKind) String() string {
	switch k {
	case SpanInlineMath:
		return "inline_math"
	case SpanDisplayMath:
		return "display_math"
	case SpanCode:
		return "code"
	default:
		return "unknown"
	}
}

// ProtectedSpan is a half-open interval [Start, End) of text that must never
// be split by a chunk boundary. A boundary exactly at Start or End lies
// outside the span and is legal.
type ProtectedSpan struct {
	Start    int
	End      int
	Kind     SpanKind
	Language string // Fence language for SpanCode, empty otherwise
}

// IsMath reports whether the span is inline or display math.
func (s ProtectedSpan) IsMath() bool {
	return s.Kind == SpanInlineMath || s.Kind == SpanDisplayMath
}

// Contains reports whether the position lies strictly inside the span.
func (s ProtectedSpan) Contains(pos int) bool {
	return pos > s.Start && pos < s.End
}

// Overlaps reports whether the span intersects the half-open range [start, end).
func (s ProtectedSpan) Overlaps(start, end int) bool {
	return s.Start < end && s.End > start
}

// Section is a titled region of a document, identified by character offsets
// into the document content.
type Section struct {
	Title string
	Start int
	End   int
}

// Document is an immutable source text with an ordered list of sections.
// Documents are created once at ingest and never mutated afterward.
type Document struct {
	ID       string
	Source   string // Path or identifier of the original file
	Content  string
	Title    string
	Sections []Section
}

// ChunkType classifies the content of a chunk.
type ChunkType int

const (
	// ChunkTypeTheory is prose containing math but no code.
	ChunkTypeTheory ChunkType = iota + 1
	// ChunkTypeCode is code without math or detector terminology.
	ChunkTypeCode
	// ChunkTypeCalculation is math accompanied by a calculation verb.
	ChunkTypeCalculation
	// ChunkTypeDetector mentions detector terminology.
	ChunkTypeDetector
	// ChunkTypeMixed is everything else.
	ChunkTypeMixed
)

// String returns the lower-case name of the chunk type.
func (t ChunkType) String() string {
	switch t {
	case ChunkTypeTheory:
		return "theory"
	case ChunkTypeCode:
		return "code"
	case ChunkTypeCalculation:
		return "calculation"
	case ChunkTypeDetector:
		return "detector"
	case ChunkTypeMixed:
		return "mixed"
	default:
		return "unknown"
	}
}

// Chunk is a contiguous slice of a document section, the unit of retrieval.
// Chunks are created once at ingest and are immutable afterward; the Vector
// field is populated asynchronously by the embedding processor.
type Chunk struct {
	Id         ID
	SourceID   string
	Source     string
	Section    string
	Text       string
	StartChar  int // Offset of the chunk in the document content
	EndChar    int
	Type       ChunkType
	Tags       []string // Matched dictionary terms, in dictionary order
	HasLatex   bool
	HasCode    bool
	Language   string // Language of the first intersecting code span, if any
	Oversized  bool   // True when the chunk had to exceed MaxChunkSize to keep a span whole
	Vector     []float32
	InsertedAt time.Time
	UpdatedAt  time.Time
}

// Len returns the chunk length in bytes.
func (c *Chunk) Len() int {
	return c.EndChar - c.StartChar
}

// SimilarityMatch is a chunk match from vector similarity search.
type SimilarityMatch struct {
	ChunkId ID
	Score   float32
}

// Candidate is a retrieved chunk together with its scores. Candidates are
// created per query and discarded after the response completes.
type Candidate struct {
	Chunk     *Chunk
	BaseScore float64 // Similarity supplied by the upstream search stage, in [0,1]
	// RerankScore is BaseScore after multiplicative feature boosts and clamping.
	RerankScore float64
	// AppliedBoosts records the labels of the boost rules that fired, in rule
	// order. It explains the score and never affects it.
	AppliedBoosts []string
}
