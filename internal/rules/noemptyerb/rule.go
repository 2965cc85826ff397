package noemptyerb

import (
	"strings"

	"erbsmith/internal/lint"
	"erbsmith/internal/rule"
	"erbsmith/internal/template"
)

// Rule checks for ERB tags with no code in them (`<% %>`, `<%= %>`).
// The fix removes the tag and carries its full text as the
// verification snippet.
type Rule struct{}

func New() *Rule { return &Rule{} }

func (r *Rule) Name() string        { return "no-empty-erb" }
func (r *Rule) Description() string { return "ERB tags must not be empty" }

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

func (v *visitor) VisitERB(e *template.ERB) {
	if e.Mode == template.ERBComment || e.Broken() {
		return
	}
	if strings.TrimSpace(e.Code) != "" {
		return
	}
	span := e.Span()
	fix := &lint.Fix{
		Span:        span,
		Replacement: "",
		Safe:        true,
		Expected:    string(v.ctx.Source[span.Start:span.End]),
	}
	v.offenses = append(v.offenses, v.ctx.Offense(v.rule.Name(), v.rule.DefaultSeverity(),
		span, "empty ERB tag", fix))
}
