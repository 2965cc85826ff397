package attributequotes

import (
	"fmt"

	"erbsmith/internal/lint"
	"erbsmith/internal/rule"
	"erbsmith/internal/template"
)

// Rule checks that attribute values are quoted. The fix wraps the
// value in double quotes and is safe; the original value text is
// carried as the verification snippet so a stale span is skipped
// rather than misquoted.
type Rule struct{}

func New() *Rule { return &Rule{} }

func (r *Rule) Name() string        { return "attribute-value-quotes" }
func (r *Rule) Description() string { return "attribute values must be quoted" }

func (r *Rule) DefaultSeverity() lint.Severity { return lint.Warning }
func (r *Rule) EnabledByDefault() bool         { return true }
func (r *Rule) SafeAutofixable() bool          { return true }
func (r *Rule) UnsafeAutofixable() bool        { return false }

// Check implements rule.Rule.
func (r *Rule) Check(ctx *lint.Context) []lint.Offense {
	v := &visitor{ctx: ctx, rule: r}
	rule.Visit(ctx, v)
	return v.offenses
}

type visitor struct {
	template.BaseVisitor
	ctx      *lint.Context
	rule     *Rule
	offenses []lint.Offense
}

func (v *visitor) VisitAttribute(a *template.Attribute) {
	if !a.HasValue || a.Quote != 0 || a.Broken() || a.Value == "" {
		return
	}
	fix := &lint.Fix{
		Span:        a.ValueSpan,
		Replacement: `"` + a.Value + `"`,
		Safe:        true,
		Expected:    a.Value,
	}
	v.offenses = append(v.offenses, v.ctx.Offense(v.rule.Name(), v.rule.DefaultSeverity(),
		a.Span(), fmt.Sprintf("value of %q attribute should be quoted", a.Name), fix))
}
