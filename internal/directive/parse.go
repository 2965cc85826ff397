package directive

import (
	"sort"
	"strings"

	"erbsmith/internal/template"
)

// Parse scans the parsed document for directive comments and builds
// the table. It is a pure function of the document; the result is
// read-only for the rest of the lint pass.
func Parse(doc *template.Document) *Table {
	t := &Table{byLine: make(map[int]*Disable)}
	s := &scanner{doc: doc, table: t}
	template.Walk(s, doc)
	t.lines = make([]int, 0, len(t.byLine))
	for line := range t.byLine {
		t.lines = append(t.lines, line)
	}
	sort.Ints(t.lines)
	return t
}

type scanner struct {
	template.BaseVisitor
	doc   *template.Document
	table *Table
}

func (s *scanner) VisitComment(c *template.Comment) {
	s.scan(c.Inner, c.InnerSpan)
}

func (s *scanner) VisitERB(e *template.ERB) {
	if e.Mode == template.ERBComment {
		s.scan(e.Code, e.CodeSpan)
	}
}

// scan inspects one comment body. content is the comment's inner text
// and span its byte range in the source.
func (s *scanner) scan(content string, span template.Span) {
	if strings.TrimSpace(content) == KeywordIgnore {
		s.table.ignoreFile = true
		return
	}

	idx := strings.Index(content, KeywordDisable)
	if idx < 0 {
		return
	}

	d := &Disable{
		Line: s.doc.LineOf(span.Start),
		Raw:  strings.TrimSpace(content),
		ContentSpan: template.Span{
			Start: span.Start + idx,
			End:   span.End,
		},
	}

	rest := content[idx+len(KeywordDisable):]
	restBase := span.Start + idx + len(KeywordDisable)

	switch {
	case strings.TrimSpace(rest) == "":
		d.markMalformed("missing rule list")
	case rest[0] != ' ' && rest[0] != '\t':
		d.markMalformed("missing space after " + KeywordDisable)
	}

	parseNames(d, rest, restBase)

	if prev, ok := s.table.byLine[d.Line]; ok {
		// Two directives on one line merge into the earlier entry.
		prev.Names = append(prev.Names, d.Names...)
		if d.Malformed && !prev.Malformed {
			prev.Malformed = true
			prev.MalformedReason = d.MalformedReason
		}
		return
	}
	s.table.byLine[d.Line] = d
}

func (d *Disable) markMalformed(reason string) {
	if d.Malformed {
		return
	}
	d.Malformed = true
	d.MalformedReason = reason
}

// parseNames splits rest on commas, recording each trimmed token with
// its exact sub-span. Empty segments mean a stray leading, trailing,
// or doubled comma and flag the directive as malformed.
func parseNames(d *Disable, rest string, base int) {
	if strings.TrimSpace(rest) == "" {
		return
	}
	offset := 0
	for _, seg := range strings.Split(rest, ",") {
		trimmed := strings.TrimSpace(seg)
		if trimmed == "" {
			d.markMalformed("stray comma in rule list")
		} else {
			lead := strings.Index(seg, trimmed)
			start := base + offset + lead
			d.Names = append(d.Names, Name{
				Text: trimmed,
				Span: template.Span{Start: start, End: start + len(trimmed)},
			})
		}
		offset += len(seg) + 1 // account for the comma
	}
}
