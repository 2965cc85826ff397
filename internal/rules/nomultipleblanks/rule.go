package nomultipleblanks

import (
	"bytes"
	"fmt"

	"erbsmith/internal/lint"
	"erbsmith/internal/rule"
)

// Rule checks that there are no more than Max consecutive blank lines.
// Default Max is 1. This is a source-text rule: the tree does not
// model blank runs.
type Rule struct {
	Max int
}

func New() *Rule { return &Rule{Max: 1} }

func (r *Rule) Name() string        { return "no-multiple-blank-lines" }
func (r *Rule) Description() string { return "avoid runs of consecutive blank lines" }

func (r *Rule) DefaultSeverity() lint.Severity { return lint.Warning }
func (r *Rule) EnabledByDefault() bool         { return true }
func (r *Rule) SafeAutofixable() bool          { return true }
func (r *Rule) UnsafeAutofixable() bool        { return false }

func isBlank(line []byte) bool {
	return len(bytes.TrimSpace(line)) == 0
}

func (r *Rule) maxBlanks() int {
	if r.Max <= 0 {
		return 1
	}
	return r.Max
}

// Check implements rule.Rule. Each extra blank line is reported
// separately with a fix deleting that line; the spans are disjoint, so
// the fixes compose in one pass.
func (r *Rule) Check(ctx *lint.Context) []lint.Offense {
	var offenses []lint.Offense
	max := r.maxBlanks()
	consecutive := 0
	lines := ctx.Lines
	// A trailing newline yields an empty final segment; it is not a
	// line of the file.
	if len(ctx.Source) > 0 && ctx.Source[len(ctx.Source)-1] == '\n' {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lineNum := i + 1
		if !isBlank(line) {
			consecutive = 0
			continue
		}
		consecutive++
		if consecutive <= max {
			continue
		}
		span := ctx.LineSpan(lineNum)
		// Delete the line including its newline when one follows.
		delSpan := span
		if delSpan.End < len(ctx.Source) && ctx.Source[delSpan.End] == '\n' {
			delSpan.End++
		}
		fix := &lint.Fix{
			Span:        delSpan,
			Replacement: "",
			Safe:        true,
			Expected:    string(ctx.Source[delSpan.Start:delSpan.End]),
		}
		offenses = append(offenses, ctx.Offense(r.Name(), r.DefaultSeverity(),
			span, "multiple consecutive blank lines", fix))
	}
	return offenses
}

// ApplySettings implements rule.Configurable.
func (r *Rule) ApplySettings(settings map[string]any) error {
	for k, v := range settings {
		switch k {
		case "max":
			n, ok := toInt(v)
			if !ok {
				return fmt.Errorf("max must be an integer, got %T", v)
			}
			r.Max = n
		default:
			return fmt.Errorf("unknown setting %q", k)
		}
	}
	return nil
}

// DefaultSettings implements rule.Configurable.
func (r *Rule) DefaultSettings() map[string]any {
	return map[string]any{"max": 1}
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}

var _ rule.Configurable = (*Rule)(nil)
