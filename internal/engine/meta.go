package engine

import (
	"fmt"

	"erbsmith/internal/directive"
	"erbsmith/internal/lint"
)

// checkDirectives validates the disable comments themselves: comment
// syntax, duplicate and redundant names, and names that match no known
// rule (with a closest-match suggestion).
func (l *Linter) checkDirectives(ctx *lint.Context, table *directive.Table) []lint.Offense {
	known := l.Catalog.Names()
	var offenses []lint.Offense

	for _, d := range table.Disables() {
		if d.Malformed {
			name := RuleMalformed
			if len(d.Names) == 0 {
				name = RuleEmptyDirective
			}
			offenses = append(offenses, ctx.Offense(name, lint.Warning, d.ContentSpan,
				fmt.Sprintf("malformed disable comment: %s", d.MalformedReason), nil))
		}

		seen := make(map[string]bool)
		hasAll := d.All()
		for _, n := range d.Names {
			switch {
			case seen[n.Text]:
				offenses = append(offenses, ctx.Offense(RuleDuplicateName, lint.Warning, n.Span,
					fmt.Sprintf("rule %q is listed more than once", n.Text), nil))
			case n.Text == directive.Wildcard:
				// The wildcard itself is always valid.
			case hasAll:
				offenses = append(offenses, ctx.Offense(RuleRedundantName, lint.Warning, n.Span,
					fmt.Sprintf("rule %q is redundant alongside %q", n.Text, directive.Wildcard), nil))
			case !contains(known, n.Text):
				msg := fmt.Sprintf("unknown rule %q", n.Text)
				if s := closest(n.Text, known); s != "" {
					msg = fmt.Sprintf("%s; did you mean %q?", msg, s)
				}
				offenses = append(offenses, ctx.Offense(RuleUnknownName, lint.Warning, n.Span, msg, nil))
			}
			seen[n.Text] = true
		}
	}
	return offenses
}

// unnecessaryDirectives warns on disable comments that suppressed
// nothing they asked for.
func unnecessaryDirectives(ctx *lint.Context, table *directive.Table, suppressed []lint.Offense) []lint.Offense {
	byLine := make(map[int][]lint.Offense)
	for _, o := range suppressed {
		byLine[o.Line()] = append(byLine[o.Line()], o)
	}

	var offenses []lint.Offense
	for _, d := range table.Disables() {
		at := byLine[d.Line]
		if d.All() {
			if len(at) == 0 {
				offenses = append(offenses, ctx.Offense(RuleUnnecessary, lint.Warning, d.ContentSpan,
					"this comment suppresses nothing", nil))
			}
			continue
		}
		used := false
		for _, o := range at {
			if d.Requests(o.Rule) {
				used = true
				break
			}
		}
		if !used {
			offenses = append(offenses, ctx.Offense(RuleUnnecessary, lint.Warning, d.ContentSpan,
				"this comment suppresses nothing", nil))
		}
	}
	return offenses
}

func contains(names []string, s string) bool {
	for _, n := range names {
		if n == s {
			return true
		}
	}
	return false
}

// closest returns the known name nearest to s by edit distance, or ""
// when nothing is within a third of the name's length.
func closest(s string, known []string) string {
	best := ""
	bestDist := len(s)/3 + 1
	for _, k := range known {
		if d := editDistance(s, k); d < bestDist {
			best, bestDist = k, d
		}
	}
	return best
}

// editDistance is the Levenshtein distance between a and b.
func editDistance(a, b string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
