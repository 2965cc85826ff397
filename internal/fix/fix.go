// Package fix applies the corrections attached to offenses back onto
// the source text.
package fix

import (
	"bytes"
	"fmt"
	"sort"

	"erbsmith/internal/lint"
)

// Mode selects which fix safety classes are applied.
type Mode int

const (
	// SafeOnly applies only fixes tagged safe.
	SafeOnly Mode = iota
	// IncludeUnsafe applies unsafe fixes as well.
	IncludeUnsafe
)

// Skip records one fix that was not applied, with the reason.
type Skip struct {
	Rule   string
	Reason string
}

// Result is the outcome of an autofix run over one source text.
type Result struct {
	// Source is the corrected text. Equal to the input when nothing
	// was applied.
	Source  []byte
	Applied int
	Skipped []Skip
}

// Apply rewrites source with the fixes carried by offenses. Edits are
// applied latest-in-file first, so each edit operates on text whose
// downstream bytes are still at their original offsets; no offset
// translation is needed. A fix whose verification snippet no longer
// matches the source at its span is skipped, not an error.
func Apply(source []byte, offenses []lint.Offense, mode Mode) *Result {
	res := &Result{Source: source}

	var candidates []lint.Offense
	for _, o := range offenses {
		if o.Fix == nil {
			continue
		}
		if !o.Fix.Safe && mode != IncludeUnsafe {
			res.Skipped = append(res.Skipped, Skip{Rule: o.Rule, Reason: "unsafe fix not requested"})
			continue
		}
		candidates = append(candidates, o)
	}
	if len(candidates) == 0 {
		return res
	}

	// Descending span order. Overlapping spans are a rule-authoring
	// bug; the verification check below catches the second one.
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i].Fix.Span, candidates[j].Fix.Span
		if a.Start != b.Start {
			return a.Start > b.Start
		}
		return a.End > b.End
	})

	out := append([]byte(nil), source...)
	for _, o := range candidates {
		f := o.Fix
		// Bounds are checked against out, not source: a shrinking edit
		// applied further down the file can leave an overlapping span
		// past the end of the remaining text.
		if f.Span.Start < 0 || f.Span.End > len(out) || f.Span.Start > f.Span.End {
			res.Skipped = append(res.Skipped, Skip{Rule: o.Rule,
				Reason: fmt.Sprintf("span %s out of range", f.Span)})
			continue
		}
		if f.Expected != "" && !bytes.Equal(out[f.Span.Start:f.Span.End], []byte(f.Expected)) {
			res.Skipped = append(res.Skipped, Skip{Rule: o.Rule,
				Reason: fmt.Sprintf("text at %s no longer matches", f.Span)})
			continue
		}
		var next []byte
		next = append(next, out[:f.Span.Start]...)
		next = append(next, f.Replacement...)
		next = append(next, out[f.Span.End:]...)
		out = next
		res.Applied++
	}

	res.Source = out
	return res
}
