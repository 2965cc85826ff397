package noselfclosingvoid

import (
	"fmt"

	"erbsmith/internal/lint"
	"erbsmith/internal/rule"
	"erbsmith/internal/template"
)

// Rule checks that void elements are not written self-closing
// (`<br/>`); HTML ignores the slash.
type Rule struct{}

func New() *Rule { return &Rule{} }

func (r *Rule) Name() string        { return "no-self-closing-void" }
func (r *Rule) Description() string { return "void elements should not use self-closing syntax" }

func (r *Rule) DefaultSeverity() lint.Severity { return lint.Info }
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

func (v *visitor) VisitElement(el *template.Element) {
	if !el.Void || !el.SelfClosing {
		return
	}
	fix := &lint.Fix{
		Span:        template.Span{Start: el.OpenSpan.End - 2, End: el.OpenSpan.End},
		Replacement: ">",
		Safe:        true,
		Expected:    "/>",
	}
	v.offenses = append(v.offenses, v.ctx.Offense(v.rule.Name(), v.rule.DefaultSeverity(),
		el.OpenSpan, fmt.Sprintf("void element <%s> should not self-close", el.Name), fix))
}
