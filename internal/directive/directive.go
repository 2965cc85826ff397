// Package directive parses suppression comments out of a template:
// `erbsmith:disable rule-a, rule-b` (or the wildcard `all`) inside an
// HTML or ERB comment silences matching offenses on that comment's
// line, and `erbsmith:ignore` skips the whole file. Parsing never
// rejects malformed input; broken shapes are flagged so the directive
// checks can report on them.
package directive

import (
	"erbsmith/internal/template"
)

// Keywords recognized inside comments.
const (
	KeywordDisable = "erbsmith:disable"
	KeywordIgnore  = "erbsmith:ignore"
)

// Wildcard requests suppression of every rule on the line.
const Wildcard = "all"

// Name is one requested rule name with its exact source span, so a
// check can point at the specific token rather than the whole comment.
type Name struct {
	Text string
	Span template.Span
}

// Disable is one parsed disable comment.
type Disable struct {
	// Line is the 1-indexed line the comment starts on. Suppression
	// applies to offenses starting on this line.
	Line int
	// Raw is the comment content as matched.
	Raw string
	// ContentSpan covers the directive text inside the comment.
	ContentSpan template.Span
	// Names holds the requested rule names in order, wildcard included.
	Names []Name
	// Malformed records comment-syntax problems (missing space after
	// the keyword, stray commas, empty list). Malformed directives are
	// kept and still suppress whatever they managed to name.
	Malformed bool
	// MalformedReason describes the first problem found.
	MalformedReason string
}

// All reports whether the directive requests the wildcard.
func (d *Disable) All() bool {
	for _, n := range d.Names {
		if n.Text == Wildcard {
			return true
		}
	}
	return false
}

// Requests reports whether the directive names the given rule
// (wildcard does not count; use All for that).
func (d *Disable) Requests(rule string) bool {
	for _, n := range d.Names {
		if n.Text == rule {
			return true
		}
	}
	return false
}

// Table is the immutable directive table for one file.
type Table struct {
	ignoreFile bool
	byLine     map[int]*Disable
	lines      []int // sorted keys of byLine
}

// IgnoreFile reports whether any comment requested skipping the file.
func (t *Table) IgnoreFile() bool { return t.ignoreFile }

// DisabledAt reports whether the given rule is suppressed on the line,
// either by name or via the wildcard.
func (t *Table) DisabledAt(line int, rule string) bool {
	d, ok := t.byLine[line]
	if !ok {
		return false
	}
	return d.All() || d.Requests(rule)
}

// At returns the disable directive on the given line, or nil.
func (t *Table) At(line int) *Disable { return t.byLine[line] }

// Disables returns every disable directive in line order.
func (t *Table) Disables() []*Disable {
	result := make([]*Disable, 0, len(t.lines))
	for _, line := range t.lines {
		result = append(result, t.byLine[line])
	}
	return result
}
