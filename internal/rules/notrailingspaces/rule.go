package notrailingspaces

import (
	"erbsmith/internal/lint"
	"erbsmith/internal/template"
)

// Rule checks for trailing spaces and tabs at line ends.
type Rule struct{}

func New() *Rule { return &Rule{} }

func (r *Rule) Name() string        { return "no-trailing-whitespace" }
func (r *Rule) Description() string { return "lines must not end with whitespace" }

func (r *Rule) DefaultSeverity() lint.Severity { return lint.Warning }
func (r *Rule) EnabledByDefault() bool         { return true }
func (r *Rule) SafeAutofixable() bool          { return true }
func (r *Rule) UnsafeAutofixable() bool        { return false }

// Check implements rule.Rule.
func (r *Rule) Check(ctx *lint.Context) []lint.Offense {
	var offenses []lint.Offense
	for i, line := range ctx.Lines {
		trimmed := len(line)
		for trimmed > 0 && (line[trimmed-1] == ' ' || line[trimmed-1] == '\t') {
			trimmed--
		}
		if trimmed == len(line) {
			continue
		}
		lineStart := ctx.OffsetOfLine(i + 1)
		span := template.Span{Start: lineStart + trimmed, End: lineStart + len(line)}
		fix := &lint.Fix{
			Span:        span,
			Replacement: "",
			Safe:        true,
			Expected:    string(line[trimmed:]),
		}
		offenses = append(offenses, ctx.Offense(r.Name(), r.DefaultSeverity(),
			span, "trailing whitespace", fix))
	}
	return offenses
}
