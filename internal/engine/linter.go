// Package engine orchestrates a lint pass: parse, run enabled rules,
// resolve suppression directives, validate the directives themselves,
// and report what survives.
package engine

import (
	"fmt"
	"sort"

	"erbsmith/internal/config"
	"erbsmith/internal/directive"
	"erbsmith/internal/lint"
	"erbsmith/internal/rule"
	"erbsmith/internal/template"
)

// Reserved rule names for synthetic offenses. They are never present
// in the catalog and cannot be suppressed by directives.
const (
	RuleParseError     = "parse-error"
	RuleInternalError  = "internal-rule-error"
	RuleMalformed      = "malformed-directive"
	RuleEmptyDirective = "empty-directive"
	RuleDuplicateName  = "duplicate-disable-rule"
	RuleRedundantName  = "redundant-disable-rule"
	RuleUnknownName    = "unknown-disable-rule"
	RuleUnnecessary    = "unnecessary-directive"
)

// Linter runs the catalog against single files. It holds no per-file
// state; one Linter may serve many files, concurrently, as long as the
// catalog is no longer being mutated.
type Linter struct {
	Catalog *rule.Catalog
	Config  *config.Config
}

// Result is the outcome of linting one file.
type Result struct {
	Path string
	// Ignored is true when a file-level ignore comment was found; all
	// other fields are empty in that case.
	Ignored bool
	// Offenses are the kept offenses, ordered by position.
	Offenses []lint.Offense
	// Suppressed holds offenses removed by disable directives. They
	// are retained for unnecessary-directive analysis and reporting.
	Suppressed []lint.Offense
}

// MaxSeverity returns the highest severity among kept offenses; ok is
// false when there are none.
func (r *Result) MaxSeverity() (lint.Severity, bool) {
	if len(r.Offenses) == 0 {
		return 0, false
	}
	max := r.Offenses[0].Severity
	for _, o := range r.Offenses[1:] {
		if o.Severity > max {
			max = o.Severity
		}
	}
	return max, true
}

// CountAtOrAbove returns how many kept offenses have severity at or
// above the threshold.
func (r *Result) CountAtOrAbove(threshold lint.Severity) int {
	n := 0
	for _, o := range r.Offenses {
		if o.Severity >= threshold {
			n++
		}
	}
	return n
}

// Lint runs the whole pipeline on one source text.
func (l *Linter) Lint(path string, source []byte) *Result {
	res := &Result{Path: path}

	doc := template.Parse(source)
	severities := l.Config.Severities()
	ctx := lint.NewContext(path, source, doc, severities)

	if doc.HasErrors() {
		// Parser-unusable input: one synthetic offense, no rules run.
		first := doc.Errors[0]
		msg := first.Message
		if n := len(doc.Errors); n > 1 {
			msg = fmt.Sprintf("%s (and %d more parse errors)", msg, n-1)
		}
		res.Offenses = append(res.Offenses, ctx.Offense(RuleParseError, lint.Error, first.Span, msg, nil))
		return res
	}

	table := directive.Parse(doc)
	if table.IgnoreFile() {
		res.Ignored = true
		return res
	}

	offenses := l.runRules(ctx)

	// Partition into suppressed and kept by the directive table.
	for _, o := range offenses {
		if table.DisabledAt(o.Line(), o.Rule) {
			res.Suppressed = append(res.Suppressed, o)
		} else {
			res.Offenses = append(res.Offenses, o)
		}
	}

	// Directive checks run after suppression and are never themselves
	// suppressible, not even by `all`.
	res.Offenses = append(res.Offenses, l.checkDirectives(ctx, table)...)
	res.Offenses = append(res.Offenses, unnecessaryDirectives(ctx, table, res.Suppressed)...)

	sortOffenses(res.Offenses)
	sortOffenses(res.Suppressed)
	return res
}

// runRules invokes every enabled rule, isolating panics so one broken
// rule cannot abort the pass.
func (l *Linter) runRules(ctx *lint.Context) []lint.Offense {
	var offenses []lint.Offense
	for _, r := range l.Catalog.All() {
		if !l.Config.Enabled(r) {
			continue
		}
		inst, err := l.configured(r)
		if err != nil {
			offenses = append(offenses, ctx.Offense(RuleInternalError, lint.Error,
				template.Span{}, err.Error(), nil))
			continue
		}
		offenses = append(offenses, l.checkRule(ctx, inst)...)
	}
	return offenses
}

// configured returns a per-pass rule instance with config settings
// applied, leaving the catalog's instance untouched.
func (l *Linter) configured(r rule.Rule) (rule.Rule, error) {
	settings := l.Config.Settings(r.Name())
	if len(settings) == 0 {
		return r, nil
	}
	clone := rule.Clone(r)
	c, ok := clone.(rule.Configurable)
	if !ok {
		return nil, fmt.Errorf("rule %s does not accept settings", r.Name())
	}
	if err := c.ApplySettings(settings); err != nil {
		return nil, fmt.Errorf("rule %s: %v", r.Name(), err)
	}
	return clone, nil
}

// checkRule runs one rule, converting a panic into a synthetic offense
// attributed to that rule.
func (l *Linter) checkRule(ctx *lint.Context, r rule.Rule) (offenses []lint.Offense) {
	defer func() {
		if p := recover(); p != nil {
			offenses = []lint.Offense{ctx.Offense(RuleInternalError, lint.Error,
				template.Span{}, fmt.Sprintf("rule %s panicked: %v", r.Name(), p), nil)}
		}
	}()
	return r.Check(ctx)
}

// sortOffenses orders offenses by start position, then rule name for a
// stable tie-break.
func sortOffenses(offenses []lint.Offense) {
	sort.SliceStable(offenses, func(i, j int) bool {
		a, b := offenses[i], offenses[j]
		if a.Location.Start.Line != b.Location.Start.Line {
			return a.Location.Start.Line < b.Location.Start.Line
		}
		if a.Location.Start.Column != b.Location.Start.Column {
			return a.Location.Start.Column < b.Location.Start.Column
		}
		return a.Rule < b.Rule
	})
}
