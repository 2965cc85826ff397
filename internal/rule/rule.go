package rule

import (
	"erbsmith/internal/lint"
	"erbsmith/internal/template"
)

// Rule is a single lint rule. The two concrete shapes — tree-visiting
// rules and source-text rules — share this one contract and differ
// only in which part of the Context their Check reads.
type Rule interface {
	Name() string
	Description() string
	DefaultSeverity() lint.Severity
	EnabledByDefault() bool
	// SafeAutofixable reports whether the rule can emit safe fixes.
	SafeAutofixable() bool
	// UnsafeAutofixable reports whether the rule can emit unsafe fixes.
	UnsafeAutofixable() bool
	Check(ctx *lint.Context) []lint.Offense
}

// Visit walks the parsed document with the given visitor. Tree rules
// implement their Check by declaring a visitor for the node kinds they
// care about and handing it here.
func Visit(ctx *lint.Context, v template.Visitor) {
	template.Walk(v, ctx.Doc)
}

// Configurable is implemented by rules that have user-tunable settings.
type Configurable interface {
	ApplySettings(settings map[string]any) error
	DefaultSettings() map[string]any
}
