package template

// Visitor receives one callback per node kind during a Walk. Embed
// BaseVisitor to opt in to only the kinds a caller cares about.
type Visitor interface {
	VisitDocument(*Document)
	VisitDoctype(*Doctype)
	VisitElement(*Element)
	VisitAttribute(*Attribute)
	VisitText(*Text)
	VisitComment(*Comment)
	VisitERB(*ERB)
}

// BaseVisitor implements Visitor with no-ops for every node kind.
type BaseVisitor struct{}

func (BaseVisitor) VisitDocument(*Document)   {}
func (BaseVisitor) VisitDoctype(*Doctype)     {}
func (BaseVisitor) VisitElement(*Element)     {}
func (BaseVisitor) VisitAttribute(*Attribute) {}
func (BaseVisitor) VisitText(*Text)           {}
func (BaseVisitor) VisitComment(*Comment)     {}
func (BaseVisitor) VisitERB(*ERB)             {}

var _ Visitor = BaseVisitor{}

// Walk dispatches v over n and its descendants, depth-first, parents
// before children. Attributes and embedded ERB tags are visited before
// an element's children.
func Walk(v Visitor, n Node) {
	switch t := n.(type) {
	case *Document:
		v.VisitDocument(t)
		for _, c := range t.Children {
			Walk(v, c)
		}
	case *Doctype:
		v.VisitDoctype(t)
	case *Element:
		v.VisitElement(t)
		for _, a := range t.Attributes {
			Walk(v, a)
		}
		for _, e := range t.Embedded {
			Walk(v, e)
		}
		for _, c := range t.Children {
			Walk(v, c)
		}
	case *Attribute:
		v.VisitAttribute(t)
	case *Text:
		v.VisitText(t)
	case *Comment:
		v.VisitComment(t)
	case *ERB:
		v.VisitERB(t)
	}
}
