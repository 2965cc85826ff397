package template

import (
	"bytes"
	"fmt"
	"strings"
)

// voidElements never take children or a close tag.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// Parse parses source as an HTML+ERB template. It always returns a
// document; syntax problems are recorded as ParseError entries and the
// surrounding nodes are marked broken.
func Parse(source []byte) *Document {
	doc := &Document{
		source: source,
		lines:  newLineIndex(source),
	}
	doc.span = Span{Start: 0, End: len(source)}
	p := &parser{src: source, doc: doc}
	doc.Children = p.parseNodes(nil)
	doc.broken = len(doc.Errors) > 0
	return doc
}

type parser struct {
	src []byte
	pos int
	doc *Document
}

func (p *parser) errorf(s Span, format string, args ...any) {
	p.doc.Errors = append(p.doc.Errors, ParseError{
		Message: fmt.Sprintf(format, args...),
		Span:    s,
	})
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) hasPrefix(s string) bool {
	return bytes.HasPrefix(p.src[p.pos:], []byte(s))
}

// parseNodes parses sibling nodes until EOF or until a close tag for
// any element in the enclosing stack is seen. A close tag that matches
// an enclosing element is left unconsumed for the owner to take.
func (p *parser) parseNodes(enclosing []string) []Node {
	var nodes []Node
	for !p.eof() {
		switch {
		case p.hasPrefix("<%"):
			nodes = append(nodes, p.parseERB())
		case p.hasPrefix("<!--"):
			nodes = append(nodes, p.parseComment())
		case p.hasPrefix("</"):
			name := p.peekCloseName()
			if closesEnclosing(name, enclosing) {
				return nodes
			}
			start := p.pos
			p.skipCloseTag()
			p.errorf(Span{Start: start, End: p.pos}, "unexpected close tag </%s>", name)
		case p.hasPrefix("<!"):
			nodes = append(nodes, p.parseDoctype())
		case p.src[p.pos] == '<' && p.pos+1 < len(p.src) && isNameStart(p.src[p.pos+1]):
			nodes = append(nodes, p.parseElement(enclosing))
		default:
			nodes = append(nodes, p.parseText())
		}
	}
	return nodes
}

func closesEnclosing(name string, enclosing []string) bool {
	for _, e := range enclosing {
		if e == name {
			return true
		}
	}
	return false
}

func isNameStart(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

func isNameChar(b byte) bool {
	return isNameStart(b) || b >= '0' && b <= '9' || b == '-' || b == '_' || b == ':'
}

// peekCloseName reads the tag name of a `</...>` without consuming it.
func (p *parser) peekCloseName() string {
	i := p.pos + 2
	start := i
	for i < len(p.src) && isNameChar(p.src[i]) {
		i++
	}
	return strings.ToLower(string(p.src[start:i]))
}

// skipCloseTag consumes a `</...>` through the closing `>` (or EOF).
func (p *parser) skipCloseTag() {
	for !p.eof() && p.src[p.pos] != '>' {
		p.pos++
	}
	if !p.eof() {
		p.pos++
	}
}

func (p *parser) parseText() *Text {
	start := p.pos
	p.pos++ // at least one byte of progress
	for !p.eof() && p.src[p.pos] != '<' {
		p.pos++
	}
	t := &Text{Content: string(p.src[start:p.pos])}
	t.span = Span{Start: start, End: p.pos}
	return t
}

func (p *parser) parseERB() *ERB {
	start := p.pos
	p.pos += 2 // <%
	mode := ERBControl
	if !p.eof() {
		switch p.src[p.pos] {
		case '=':
			mode = ERBOutput
			p.pos++
		case '#':
			mode = ERBComment
			p.pos++
		}
	}
	codeStart := p.pos
	idx := bytes.Index(p.src[p.pos:], []byte("%>"))
	e := &ERB{Mode: mode}
	if idx < 0 {
		p.pos = len(p.src)
		e.CodeSpan = Span{Start: codeStart, End: p.pos}
		e.span = Span{Start: start, End: p.pos}
		e.broken = true
		p.errorf(e.span, "unterminated ERB tag")
	} else {
		e.CodeSpan = Span{Start: codeStart, End: codeStart + idx}
		p.pos = codeStart + idx + 2
		e.span = Span{Start: start, End: p.pos}
	}
	e.Code = string(p.src[e.CodeSpan.Start:e.CodeSpan.End])
	return e
}

func (p *parser) parseComment() *Comment {
	start := p.pos
	p.pos += 4 // <!--
	innerStart := p.pos
	idx := bytes.Index(p.src[p.pos:], []byte("-->"))
	c := &Comment{}
	if idx < 0 {
		p.pos = len(p.src)
		c.InnerSpan = Span{Start: innerStart, End: p.pos}
		c.span = Span{Start: start, End: p.pos}
		c.broken = true
		p.errorf(c.span, "unterminated comment")
	} else {
		c.InnerSpan = Span{Start: innerStart, End: innerStart + idx}
		p.pos = innerStart + idx + 3
		c.span = Span{Start: start, End: p.pos}
	}
	c.Inner = string(p.src[c.InnerSpan.Start:c.InnerSpan.End])
	return c
}

func (p *parser) parseDoctype() *Doctype {
	start := p.pos
	p.pos += 2 // <!
	for !p.eof() && p.src[p.pos] != '>' {
		p.pos++
	}
	d := &Doctype{}
	if p.eof() {
		d.broken = true
		d.span = Span{Start: start, End: p.pos}
		p.errorf(d.span, "unterminated declaration")
	} else {
		p.pos++
		d.span = Span{Start: start, End: p.pos}
	}
	d.Text = string(p.src[d.span.Start:d.span.End])
	return d
}

func (p *parser) parseElement(enclosing []string) *Element {
	start := p.pos
	p.pos++ // <
	nameStart := p.pos
	for !p.eof() && isNameChar(p.src[p.pos]) {
		p.pos++
	}
	el := &Element{
		Name:     string(p.src[nameStart:p.pos]),
		NameSpan: Span{Start: nameStart, End: p.pos},
	}
	lower := strings.ToLower(el.Name)
	el.Void = voidElements[lower]

	// Open tag body: attributes and embedded ERB until `>` or `/>`.
	closed := false
	for !p.eof() {
		p.skipSpace()
		if p.eof() {
			break
		}
		switch {
		case p.src[p.pos] == '>':
			p.pos++
			closed = true
		case p.hasPrefix("/>"):
			p.pos += 2
			el.SelfClosing = true
			closed = true
		case p.hasPrefix("<%"):
			el.Embedded = append(el.Embedded, p.parseERB())
			continue
		case p.src[p.pos] == '<':
			// A fresh tag start means this open tag never closed.
		default:
			el.Attributes = append(el.Attributes, p.parseAttribute())
			continue
		}
		break
	}
	el.OpenSpan = Span{Start: start, End: p.pos}
	if !closed {
		el.broken = true
		p.errorf(el.OpenSpan, "unterminated open tag <%s>", el.Name)
		el.span = el.OpenSpan
		return el
	}

	if el.Void || el.SelfClosing {
		el.span = el.OpenSpan
		return el
	}

	el.Children = p.parseNodes(append(enclosing, lower))
	for _, c := range el.Children {
		if c.Broken() {
			el.broken = true
		}
	}

	if p.hasPrefix("</") && p.peekCloseName() == lower {
		closeStart := p.pos
		p.skipCloseTag()
		el.CloseSpan = Span{Start: closeStart, End: p.pos}
		el.span = Span{Start: start, End: p.pos}
		return el
	}

	// EOF or a close tag belonging to an ancestor.
	el.broken = true
	el.span = Span{Start: start, End: p.pos}
	p.errorf(el.OpenSpan, "missing close tag for <%s>", el.Name)
	return el
}

func (p *parser) skipSpace() {
	for !p.eof() {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) parseAttribute() *Attribute {
	start := p.pos
	nameStart := p.pos
	for !p.eof() {
		b := p.src[p.pos]
		if b == '=' || b == '>' || b == '<' || b == '/' || b == ' ' || b == '\t' || b == '\n' || b == '\r' {
			break
		}
		p.pos++
	}
	a := &Attribute{
		Name:     string(p.src[nameStart:p.pos]),
		NameSpan: Span{Start: nameStart, End: p.pos},
	}
	if a.Name == "" {
		// Stray byte (e.g. a lone `/` mid-tag); consume it so the
		// open-tag loop makes progress.
		p.pos++
		a.NameSpan.End = p.pos
		a.span = Span{Start: start, End: p.pos}
		a.broken = true
		p.errorf(a.span, "malformed attribute")
		return a
	}

	mark := p.pos
	p.skipSpace()
	if p.eof() || p.src[p.pos] != '=' {
		p.pos = mark
		a.span = Span{Start: start, End: p.pos}
		return a
	}
	p.pos++ // =
	p.skipSpace()
	a.HasValue = true

	if p.eof() {
		a.broken = true
		a.span = Span{Start: start, End: p.pos}
		p.errorf(a.span, "attribute %q is missing a value", a.Name)
		return a
	}

	if q := p.src[p.pos]; q == '"' || q == '\'' {
		a.Quote = q
		p.pos++
		valStart := p.pos
		idx := bytes.IndexByte(p.src[p.pos:], q)
		if idx < 0 {
			p.pos = len(p.src)
			a.ValueSpan = Span{Start: valStart, End: p.pos}
			a.broken = true
			a.span = Span{Start: start, End: p.pos}
			p.errorf(a.span, "unterminated quoted value for %q", a.Name)
		} else {
			a.ValueSpan = Span{Start: valStart, End: valStart + idx}
			p.pos = valStart + idx + 1
			a.span = Span{Start: start, End: p.pos}
		}
	} else {
		valStart := p.pos
		for !p.eof() {
			b := p.src[p.pos]
			if b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '>' || b == '<' {
				break
			}
			p.pos++
		}
		a.ValueSpan = Span{Start: valStart, End: p.pos}
		a.span = Span{Start: start, End: p.pos}
	}
	a.Value = string(p.src[a.ValueSpan.Start:a.ValueSpan.End])
	return a
}
