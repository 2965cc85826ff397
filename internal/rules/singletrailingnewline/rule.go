package singletrailingnewline

import (
	"erbsmith/internal/lint"
	"erbsmith/internal/template"
)

// Rule checks that the file ends with exactly one newline.
type Rule struct{}

func New() *Rule { return &Rule{} }

func (r *Rule) Name() string        { return "single-trailing-newline" }
func (r *Rule) Description() string { return "files must end with exactly one newline" }

func (r *Rule) DefaultSeverity() lint.Severity { return lint.Warning }
func (r *Rule) EnabledByDefault() bool         { return true }
func (r *Rule) SafeAutofixable() bool          { return true }
func (r *Rule) UnsafeAutofixable() bool        { return false }

// Check implements rule.Rule.
func (r *Rule) Check(ctx *lint.Context) []lint.Offense {
	src := ctx.Source
	if len(src) == 0 {
		return nil
	}

	if src[len(src)-1] != '\n' {
		end := len(src)
		fix := &lint.Fix{
			Span:        template.Span{Start: end, End: end},
			Replacement: "\n",
			Safe:        true,
		}
		return []lint.Offense{ctx.Offense(r.Name(), r.DefaultSeverity(),
			template.Span{Start: end - 1, End: end}, "missing trailing newline", fix)}
	}

	// Count the trailing newline run.
	i := len(src)
	for i > 0 && src[i-1] == '\n' {
		i--
	}
	if len(src)-i <= 1 {
		return nil
	}
	span := template.Span{Start: i, End: len(src)}
	fix := &lint.Fix{
		Span:        span,
		Replacement: "\n",
		Safe:        true,
		Expected:    string(src[span.Start:span.End]),
	}
	return []lint.Offense{ctx.Offense(r.Name(), r.DefaultSeverity(),
		span, "multiple trailing newlines", fix)}
}
