// Package template parses HTML templates with embedded ERB scripting
// tags into a syntax tree with byte-accurate source spans. Parsing is
// best-effort: malformed input produces ParseError records and a
// recovered tree rather than a failure.
package template

// Node is a single node in the parsed template tree.
type Node interface {
	// Span returns the byte range the node covers in the source.
	Span() Span
	// Broken reports whether this node or any descendant contains a
	// parse error.
	Broken() bool
}

// node carries the fields shared by all concrete node types.
type node struct {
	span   Span
	broken bool
}

func (n *node) Span() Span   { return n.span }
func (n *node) Broken() bool { return n.broken }

// ParseError records a recoverable syntax error with its source span.
type ParseError struct {
	Message string
	Span    Span
}

// Document is the root of a parsed template.
type Document struct {
	node
	Children []Node
	Errors   []ParseError

	source []byte
	lines  *lineIndex
}

// Source returns the raw source the document was parsed from.
func (d *Document) Source() []byte { return d.source }

// HasErrors reports whether parsing recorded any errors.
func (d *Document) HasErrors() bool { return len(d.Errors) > 0 }

// PositionOf converts a byte offset into a 1-indexed Position.
func (d *Document) PositionOf(offset int) Position {
	return d.lines.position(offset)
}

// Locate converts a byte span into a line/column Location.
func (d *Document) Locate(s Span) Location {
	return Location{Start: d.lines.position(s.Start), End: d.lines.position(s.End)}
}

// LineOf returns the 1-indexed line containing the byte offset.
func (d *Document) LineOf(offset int) int { return d.lines.lineOf(offset) }

// Doctype is a `<!DOCTYPE ...>` declaration.
type Doctype struct {
	node
	Text string
}

// Element is an HTML element, covering its open tag through its close
// tag (or just the open tag for void and self-closing elements).
type Element struct {
	node
	Name       string
	NameSpan   Span
	Attributes []*Attribute
	// Embedded holds ERB tags appearing inside the open tag itself,
	// outside any attribute value.
	Embedded    []*ERB
	Children    []Node
	OpenSpan    Span // the `<name ...>` open tag
	CloseSpan   Span // the `</name>` close tag; empty if none
	SelfClosing bool
	Void        bool
}

// Attribute returns the named attribute, or nil.
func (e *Element) Attribute(name string) *Attribute {
	for _, a := range e.Attributes {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// Attribute is a single attribute inside an open tag.
type Attribute struct {
	node
	Name      string
	NameSpan  Span
	HasValue  bool
	Value     string
	ValueSpan Span // excludes quotes
	Quote     byte // '"', '\'' or 0 for unquoted/absent
}

// Text is a run of literal markup text.
type Text struct {
	node
	Content string
}

// Comment is an HTML comment. Inner excludes the `<!--`/`-->` markers.
type Comment struct {
	node
	Inner     string
	InnerSpan Span
}

// ERBMode distinguishes the three ERB tag forms.
type ERBMode int

const (
	ERBControl ERBMode = iota // <% ... %>
	ERBOutput                 // <%= ... %>
	ERBComment                // <%# ... %>
)

// ERB is an embedded scripting tag.
type ERB struct {
	node
	Mode     ERBMode
	Code     string
	CodeSpan Span // excludes the tag markers
}
