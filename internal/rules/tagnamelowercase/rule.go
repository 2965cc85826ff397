package tagnamelowercase

import (
	"fmt"
	"strings"

	"erbsmith/internal/lint"
	"erbsmith/internal/rule"
	"erbsmith/internal/template"
)

// Rule checks that tag names are written in lowercase.
type Rule struct{}

func New() *Rule { return &Rule{} }

func (r *Rule) Name() string        { return "tag-name-lowercase" }
func (r *Rule) Description() string { return "tag names should be lowercase" }

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
	lower := strings.ToLower(el.Name)
	if el.Name == lower {
		return
	}
	fix := &lint.Fix{
		Span:        el.NameSpan,
		Replacement: lower,
		Safe:        true,
		Expected:    el.Name,
	}
	v.offenses = append(v.offenses, v.ctx.Offense(v.rule.Name(), v.rule.DefaultSeverity(),
		el.NameSpan, fmt.Sprintf("tag name <%s> should be lowercase", el.Name), fix))
}
