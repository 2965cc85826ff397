package nohardtabs

import (
	"fmt"
	"strings"

	"erbsmith/internal/lint"
	"erbsmith/internal/rule"
	"erbsmith/internal/template"
)

// Rule checks for hard tab characters. Each tab is reported and fixed
// independently so the spans stay disjoint.
type Rule struct {
	Width int // spaces substituted per tab (default: 2)
}

func New() *Rule { return &Rule{Width: 2} }

func (r *Rule) Name() string        { return "no-hard-tabs" }
func (r *Rule) Description() string { return "use spaces instead of hard tabs" }

func (r *Rule) DefaultSeverity() lint.Severity { return lint.Warning }
func (r *Rule) EnabledByDefault() bool         { return true }
func (r *Rule) SafeAutofixable() bool          { return true }
func (r *Rule) UnsafeAutofixable() bool        { return false }

func (r *Rule) width() int {
	if r.Width <= 0 {
		return 2
	}
	return r.Width
}

// Check implements rule.Rule.
func (r *Rule) Check(ctx *lint.Context) []lint.Offense {
	var offenses []lint.Offense
	replacement := strings.Repeat(" ", r.width())
	for i, line := range ctx.Lines {
		lineStart := ctx.OffsetOfLine(i + 1)
		for col, b := range line {
			if b != '\t' {
				continue
			}
			span := template.Span{Start: lineStart + col, End: lineStart + col + 1}
			fix := &lint.Fix{
				Span:        span,
				Replacement: replacement,
				Safe:        true,
				Expected:    "\t",
			}
			offenses = append(offenses, ctx.Offense(r.Name(), r.DefaultSeverity(),
				span, "hard tab", fix))
		}
	}
	return offenses
}

// ApplySettings implements rule.Configurable.
func (r *Rule) ApplySettings(settings map[string]any) error {
	for k, v := range settings {
		switch k {
		case "width":
			n, ok := toInt(v)
			if !ok {
				return fmt.Errorf("width must be an integer, got %T", v)
			}
			r.Width = n
		default:
			return fmt.Errorf("unknown setting %q", k)
		}
	}
	return nil
}

// DefaultSettings implements rule.Configurable.
func (r *Rule) DefaultSettings() map[string]any {
	return map[string]any{"width": 2}
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
