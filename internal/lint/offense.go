package lint

import "erbsmith/internal/template"

// Offense represents a single rule violation. Offenses are built once
// by a rule check and never mutated afterwards.
type Offense struct {
	// Rule is the name of the rule that reported the offense. Synthetic
	// offenses (parser failures, directive checks) use reserved names
	// that are never present in the catalog.
	Rule     string
	Severity Severity
	Message  string
	// Location is the 1-indexed, end-exclusive source region.
	Location template.Location
	// Fix is the proposed correction, if the rule can offer one.
	Fix *Fix
}

// Fixable reports whether the offense carries a fix permitted under
// the given mode.
func (o Offense) Fixable(includeUnsafe bool) bool {
	if o.Fix == nil {
		return false
	}
	return o.Fix.Safe || includeUnsafe
}

// Line returns the 1-indexed line the offense starts on. Suppression
// directives match on this line.
func (o Offense) Line() int { return o.Location.Start.Line }

// Fix describes a single textual edit in the original source.
type Fix struct {
	// Span is the byte range to replace, in the original source.
	Span template.Span
	// Replacement substitutes the span's text.
	Replacement string
	// Safe marks purely cosmetic corrections. Unsafe fixes may change
	// rendered output and are only applied on request.
	Safe bool
	// Expected, when non-empty, is the exact original text the fixer
	// must find at Span before applying. A mismatch skips the fix.
	Expected string
}
