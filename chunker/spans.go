package chunker

import (
	"strings"

	"github.com/colliderlab/physrag/core"
)

// ExtractSpans locates protected intervals in a section text and returns
// them as an ordered, non-overlapping list.
//
// Display math ($$...$$) is extracted first; inline math ($...$) spans that
// overlap an accepted display span are discarded. Fenced code blocks are
// extracted independently; when a code span overlaps a math span, the
// earlier-starting (then longer) span wins. Unterminated delimiters never
// produce a span. All scans advance monotonically through the input, so
// extraction is linear in the text length.
func ExtractSpans(text string) []core.ProtectedSpan {
	display := extractDisplayMath(text)
	inline := extractInlineMath(text, display)
	code := extractCodeFences(text)

	math := mergeSorted(display, inline)
	return resolveOverlaps(mergeSorted(math, code))
}

// extractDisplayMath finds $$...$$ spans.
func extractDisplayMath(text string) []core.ProtectedSpan {
	var spans []core.ProtectedSpan
	pos := 0
	for {
		rel := strings.Index(text[pos:], "$$")
		if rel < 0 {
			break
		}
		open := pos + rel
		closeRel := strings.Index(text[open+2:], "$$")
		if closeRel < 0 {
			// Unterminated opener, treated as plain text.
			break
		}
		end := open + 2 + closeRel + 2
		spans = append(spans, core.ProtectedSpan{
			Start: open,
			End:   end,
			Kind:  core.SpanDisplayMath,
		})
		pos = end
	}
	return spans
}

// extractInlineMath finds $...$ spans, skipping regions covered by display
// spans and discarding candidates that overlap one.
func extractInlineMath(text string, display []core.ProtectedSpan) []core.ProtectedSpan {
	var spans []core.ProtectedSpan
	next := 0 // index of the next display span not yet passed
	pos := 0
	for pos < len(text) {
		// Jump over display spans.
		for next < len(display) && pos >= display[next].End {
			next++
		}
		if next < len(display) && pos >= display[next].Start {
			pos = display[next].End
			continue
		}

		if text[pos] != '$' {
			pos++
			continue
		}
		if pos+1 < len(text) && text[pos+1] == '$' {
			// Leftover of an unterminated display opener.
			pos += 2
			continue
		}

		closeRel := strings.IndexByte(text[pos+1:], '$')
		if closeRel < 0 {
			// Unterminated inline delimiter; nothing further can match.
			break
		}
		end := pos + 1 + closeRel + 1

		// pos is before display[next] here, so the candidate overlaps a
		// display span exactly when it reaches past that span's start.
		if next < len(display) && display[next].Start < end {
			pos = end
			continue
		}
		spans = append(spans, core.ProtectedSpan{
			Start: pos,
			End:   end,
			Kind:  core.SpanInlineMath,
		})
		pos = end
	}
	return spans
}

// extractCodeFences finds ```lang\n...\n``` spans.
func extractCodeFences(text string) []core.ProtectedSpan {
	var spans []core.ProtectedSpan
	pos := 0
	for {
		rel := strings.Index(text[pos:], "```")
		if rel < 0 {
			break
		}
		open := pos + rel
		nl := strings.IndexByte(text[open+3:], '\n')
		if nl < 0 {
			// Opening fence without a body.
			break
		}
		language := strings.TrimSpace(text[open+3 : open+3+nl])
		bodyStart := open + 3 + nl + 1
		closeRel := strings.Index(text[bodyStart:], "\n```")
		if closeRel < 0 {
			// Unterminated fence, treated as plain text.
			break
		}
		end := bodyStart + closeRel + 4
		spans = append(spans, core.ProtectedSpan{
			Start:    open,
			End:      end,
			Kind:     core.SpanCode,
			Language: language,
		})
		pos = end
	}
	return spans
}

// mergeSorted merges two span lists sorted by start position.
func mergeSorted(a, b []core.ProtectedSpan) []core.ProtectedSpan {
	merged := make([]core.ProtectedSpan, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if a[i].Start < b[j].Start ||
			(a[i].Start == b[j].Start && a[i].End >= b[j].End) {
			merged = append(merged, a[i])
			i++
		} else {
			merged = append(merged, b[j])
			j++
		}
	}
	merged = append(merged, a[i:]...)
	merged = append(merged, b[j:]...)
	return merged
}

// resolveOverlaps drops spans that overlap an earlier-accepted span. The
// input is sorted by (start ascending, length descending), so the
// earlier-starting, then longer, span wins.
func resolveOverlaps(spans []core.ProtectedSpan) []core.ProtectedSpan {
	if len(spans) < 2 {
		return spans
	}
	accepted := spans[:1]
	for _, span := range spans[1:] {
		last := accepted[len(accepted)-1]
		if span.Start < last.End {
			continue
		}
		accepted = append(accepted, span)
	}
	return accepted
}
