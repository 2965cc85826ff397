package noduplicateattributes

import (
	"fmt"
	"strings"

	"erbsmith/internal/lint"
	"erbsmith/internal/rule"
	"erbsmith/internal/template"
)

// Rule checks that no element declares the same attribute twice.
// There is no fix: dropping either occurrence could change behavior.
type Rule struct{}

func New() *Rule { return &Rule{} }

func (r *Rule) Name() string        { return "no-duplicate-attributes" }
func (r *Rule) Description() string { return "elements must not repeat an attribute" }

func (r *Rule) DefaultSeverity() lint.Severity { return lint.Error }
func (r *Rule) EnabledByDefault() bool         { return true }
func (r *Rule) SafeAutofixable() bool          { return false }
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
	seen := make(map[string]bool, len(el.Attributes))
	for _, a := range el.Attributes {
		name := strings.ToLower(a.Name)
		if seen[name] {
			v.offenses = append(v.offenses, v.ctx.Offense(v.rule.Name(), v.rule.DefaultSeverity(),
				a.NameSpan, fmt.Sprintf("attribute %q appears more than once", a.Name), nil))
		}
		seen[name] = true
	}
}
