package chunker

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/colliderlab/physrag/core"
)

// Config holds the segmentation size parameters, in characters.
type Config struct {
	// ChunkSize is the target chunk length.
	ChunkSize int

	// Overlap is the number of characters shared by adjacent chunks.
	Overlap int

	// MinChunkSize is the smallest acceptable chunk length. A boundary is
	// only pulled back to a span start when the remaining chunk stays at
	// least this long.
	MinChunkSize int

	// MaxChunkSize is the largest acceptable chunk length. Only a chunk
	// that must contain a whole protected span may exceed it.
	MaxChunkSize int
}

// DefaultConfig returns a Config with the standard sizes.
func DefaultConfig() Config {
	return Config{
		ChunkSize:    1000,
		Overlap:      100,
		MinChunkSize: 200,
		MaxChunkSize: 2000,
	}
}

// Validate checks that the configuration is coherent. Invalid configuration
// is reported once at setup time, never per document.
func (c Config) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("%w: ChunkSize must be positive, got %d", ErrInvalidConfig, c.ChunkSize)
	}
	if c.Overlap < 0 {
		return fmt.Errorf("%w: Overlap must not be negative, got %d", ErrInvalidConfig, c.Overlap)
	}
	if c.MinChunkSize < 0 {
		return fmt.Errorf("%w: MinChunkSize must not be negative, got %d", ErrInvalidConfig, c.MinChunkSize)
	}
	if c.MinChunkSize > c.ChunkSize {
		return fmt.Errorf("%w: MinChunkSize %d exceeds ChunkSize %d", ErrInvalidConfig, c.MinChunkSize, c.ChunkSize)
	}
	if c.ChunkSize > c.MaxChunkSize {
		return fmt.Errorf("%w: ChunkSize %d exceeds MaxChunkSize %d", ErrInvalidConfig, c.ChunkSize, c.MaxChunkSize)
	}
	return nil
}

// stepFloor is the minimum advance per emitted chunk. It guarantees a
// strictly increasing position even when Overlap >= ChunkSize.
func (c Config) stepFloor() int {
	floor := 1
	if step := c.ChunkSize - c.Overlap; step > floor {
		floor = step
	}
	if half := c.MinChunkSize / 2; half > floor {
		floor = half
	}
	return floor
}

// Chunker segments documents into chunks that respect protected spans.
// A Chunker is stateless apart from its configuration and is safe for
// concurrent use across independent documents.
type Chunker struct {
	config Config
	logger *slog.Logger
}

// Option configures a Chunker.
type Option func(*Chunker) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Chunker) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// New creates a Chunker with the given configuration.
func New(config Config, opts ...Option) (*Chunker, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	c := &Chunker{
		config: config,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Config returns the chunker's configuration.
func (c *Chunker) Config() Config {
	return c.config
}

// ChunkDocument segments a document into ordered, enriched chunks. Each
// section is segmented independently; a document without sections is
// treated as a single untitled section covering the whole content.
// An empty document yields no chunks.
func (c *Chunker) ChunkDocument(doc *core.Document) ([]*core.Chunk, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: document is nil", core.ErrInvalidDocument)
	}
	if doc.Content == "" {
		return nil, nil
	}
	if err := core.ValidateDocument(doc); err != nil {
		return nil, err
	}

	sections := doc.Sections
	if len(sections) == 0 {
		sections = []core.Section{{Title: doc.Title, Start: 0, End: len(doc.Content)}}
	}

	var chunks []*core.Chunk
	for _, section := range sections {
		text := doc.Content[section.Start:section.End]
		spans := ExtractSpans(text)

		for _, seg := range c.segment(text, spans) {
			chunk := c.buildChunk(doc, section, text, spans, seg)
			chunks = append(chunks, chunk)
		}
	}

	c.logger.Debug("chunked document", "source", doc.Source, "chunks", len(chunks))
	return chunks, nil
}

// ChunkDocuments segments multiple documents, preserving document order.
func (c *Chunker) ChunkDocuments(docs ...*core.Document) ([]*core.Chunk, error) {
	var chunks []*core.Chunk
	for _, doc := range docs {
		docChunks, err := c.ChunkDocument(doc)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, docChunks...)
	}
	return chunks, nil
}

// segmentRange is a chunk boundary pair in section-local coordinates.
type segmentRange struct {
	start     int
	end       int
	oversized bool
}

// segment walks the section text producing ordered boundary pairs. No
// emitted boundary lies strictly inside a protected span; a span too long
// to fit produces a single oversized segment containing the whole span.
func (c *Chunker) segment(text string, spans []core.ProtectedSpan) []segmentRange {
	var segments []segmentRange
	n := len(text)
	floor := c.config.stepFloor()

	position := 0
	for position < n {
		targetEnd := position + c.config.ChunkSize
		end := targetEnd
		oversized := false

		if targetEnd >= n {
			end = n
		} else if span, ok := spanContaining(spans, targetEnd); ok {
			back := span.Start
			if back > position && back-position >= c.config.MinChunkSize {
				end = back
			} else {
				end = span.End
				if end > n {
					end = n
				}
				if end-position > c.config.MaxChunkSize {
					oversized = true
				}
			}
		}

		// Boundaries are byte offsets; a target end landing inside a
		// multibyte rune would split it, so snap to the rune start. Span
		// boundaries and n are delimiter or terminal positions and are
		// left unchanged.
		end = snapToRuneStart(text, end)
		if end <= position {
			// A rune wider than the remaining budget. Emit it whole.
			end = nextRuneStart(text, position+1)
		}

		if strings.TrimSpace(text[position:end]) != "" {
			segments = append(segments, segmentRange{start: position, end: end, oversized: oversized})
		}

		next := end - c.config.Overlap
		if m := position + floor; m > next {
			next = m
		}
		// Never advance past the emitted end: a chunk pulled back for a span
		// can be shorter than the floor step, and skipping would leave a gap.
		if next > end {
			next = end
		}
		// Snapping backward keeps next a rune boundary without passing end;
		// if that lands at or before the current position, the emitted end
		// is the nearest boundary that still makes progress.
		next = snapToRuneStart(text, next)
		if next <= position {
			next = end
		}
		// The overlap must not start a chunk strictly inside a span. Any span
		// containing the next position ends at or before the emitted end, so
		// moving to its end keeps the position strictly increasing without
		// skipping uncovered text.
		if span, ok := spanContaining(spans, next); ok {
			next = span.End
		}
		position = next
	}

	return segments
}

// snapToRuneStart moves a byte offset left to the start of the rune
// containing it. Offsets already on a rune boundary, including len(text),
// are returned unchanged.
func snapToRuneStart(text string, i int) int {
	for i > 0 && i < len(text) && !utf8.RuneStart(text[i]) {
		i--
	}
	return i
}

// nextRuneStart moves a byte offset right to the nearest rune boundary at
// or after it.
func nextRuneStart(text string, i int) int {
	for i < len(text) && !utf8.RuneStart(text[i]) {
		i++
	}
	return i
}

// spanContaining returns the span strictly containing the position, if any.
// Positions exactly at a span start or end are outside it.
func spanContaining(spans []core.ProtectedSpan, position int) (core.ProtectedSpan, bool) {
	i := sort.Search(len(spans), func(i int) bool {
		return spans[i].End > position
	})
	if i < len(spans) && spans[i].Contains(position) {
		return spans[i], true
	}
	return core.ProtectedSpan{}, false
}

// buildChunk assembles a Chunk for a section-local segment, attaching
// metadata and the deterministic content-derived ID.
func (c *Chunker) buildChunk(doc *core.Document, section core.Section, text string, spans []core.ProtectedSpan, seg segmentRange) *core.Chunk {
	startChar := section.Start + seg.start
	endChar := section.Start + seg.end

	chunk := &core.Chunk{
		Id:        core.ChunkID(doc.ID, startChar, endChar),
		SourceID:  doc.ID,
		Source:    doc.Source,
		Section:   section.Title,
		Text:      text[seg.start:seg.end],
		StartChar: startChar,
		EndChar:   endChar,
		Oversized: seg.oversized,
	}
	enrich(chunk, spans, seg.start, seg.end)
	return chunk
}
