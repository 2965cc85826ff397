package lint

import (
	"bytes"

	"erbsmith/internal/template"
)

// Context carries everything a rule check needs: the parsed document,
// the raw source, and the resolved per-rule severities. One Context is
// built per file per lint pass and is read-only during the pass.
type Context struct {
	Path   string
	Source []byte
	// Lines is Source split on newlines. Line i of the file (1-indexed)
	// is Lines[i-1].
	Lines [][]byte
	Doc   *template.Document

	severities  map[string]Severity
	lineOffsets []int
}

// NewContext builds a Context. severities holds configuration
// overrides keyed by rule name; rules not present fall back to their
// own default.
func NewContext(path string, source []byte, doc *template.Document, severities map[string]Severity) *Context {
	lines := bytes.Split(source, []byte("\n"))
	offsets := make([]int, len(lines))
	pos := 0
	for i, line := range lines {
		offsets[i] = pos
		pos += len(line) + 1
	}
	return &Context{
		Path:        path,
		Source:      source,
		Lines:       lines,
		Doc:         doc,
		severities:  severities,
		lineOffsets: offsets,
	}
}

// OffsetOfLine returns the byte offset of the first byte of the
// 1-indexed line.
func (c *Context) OffsetOfLine(line int) int {
	return c.lineOffsets[line-1]
}

// LineSpan returns the byte span of the 1-indexed line, excluding the
// trailing newline.
func (c *Context) LineSpan(line int) template.Span {
	start := c.lineOffsets[line-1]
	return template.Span{Start: start, End: start + len(c.Lines[line-1])}
}

// Severity resolves the effective severity for a rule: the configured
// override if present, else the rule's default.
func (c *Context) Severity(ruleName string, def Severity) Severity {
	if s, ok := c.severities[ruleName]; ok {
		return s
	}
	return def
}

// Offense builds an offense at the given byte span, resolving the
// severity through the context. All rules report through this helper.
func (c *Context) Offense(ruleName string, def Severity, span template.Span, message string, fix *Fix) Offense {
	return Offense{
		Rule:     ruleName,
		Severity: c.Severity(ruleName, def),
		Message:  message,
		Location: c.Doc.Locate(span),
		Fix:      fix,
	}
}
