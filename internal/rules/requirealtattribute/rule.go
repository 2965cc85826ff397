package requirealtattribute

import (
	"strings"

	"erbsmith/internal/lint"
	"erbsmith/internal/rule"
	"erbsmith/internal/template"
)

// Rule checks that every <img> element carries an alt attribute.
// Elements whose open tag embeds ERB are skipped, since the attribute
// may be emitted at render time.
type Rule struct{}

func New() *Rule { return &Rule{} }

func (r *Rule) Name() string        { return "require-alt-attribute" }
func (r *Rule) Description() string { return "img elements must have an alt attribute" }

func (r *Rule) DefaultSeverity() lint.Severity { return lint.Error }
func (r *Rule) EnabledByDefault() bool         { return true }
func (r *Rule) SafeAutofixable() bool          { return false }
func (r *Rule) UnsafeAutofixable() bool        { return true }

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
	if !strings.EqualFold(el.Name, "img") {
		return
	}
	if el.Attribute("alt") != nil || len(el.Embedded) > 0 {
		return
	}

	// Insert ` alt=""` just before the open tag's closing bracket.
	// Inserting an empty alt changes accessibility semantics, so the
	// fix is unsafe.
	at := el.OpenSpan.End - 1
	if el.SelfClosing {
		at--
	}
	fix := &lint.Fix{
		Span:        template.Span{Start: at, End: at},
		Replacement: ` alt=""`,
		Safe:        false,
	}
	v.offenses = append(v.offenses, v.ctx.Offense(v.rule.Name(), v.rule.DefaultSeverity(),
		el.OpenSpan, "missing alt attribute on <img>", fix))
}
