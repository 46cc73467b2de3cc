package ingestion

import (
	"bytes"

	"github.com/colliderlab/physrag/core"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ExtractSections splits markdown content into heading-delimited sections
// with document-absolute character offsets. Each section runs from the
// start of its heading line to the start of the next heading line, so the
// sections form a gap-free cover of the content. Text before the first
// heading becomes an untitled leading section.
//
// The returned title is the text of the first heading, used as the
// document title.
func ExtractSections(content string) (string, []core.Section) {
	if content == "" {
		return "", nil
	}

	src := []byte(content)
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	var title string
	var sections []core.Section

	appendSection := func(sectionTitle string, start int) {
		if len(sections) > 0 {
			sections[len(sections)-1].End = start
		} else if start > 0 {
			// Preamble before the first heading
			sections = append(sections, core.Section{Start: 0, End: start})
		}
		sections = append(sections, core.Section{Title: sectionTitle, Start: start})
	}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		heading, ok := n.(*ast.Heading)
		if !ok || heading.Lines().Len() == 0 {
			continue
		}

		seg := heading.Lines().At(0)
		lineStart := bytes.LastIndexByte(src[:seg.Start], '\n') + 1
		headingTitle := string(heading.Text(src))

		if title == "" {
			title = headingTitle
		}
		appendSection(headingTitle, lineStart)
	}

	if len(sections) == 0 {
		// No headings: the whole document is one untitled section.
		return "", []core.Section{{Start: 0, End: len(content)}}
	}

	sections[len(sections)-1].End = len(content)
	return title, sections
}
