package engine

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// gitignoreMatcher checks paths against .gitignore rules collected
// from a walk root and its subdirectories, including negation
// patterns. Later rules override earlier ones, as git does.
type gitignoreMatcher struct {
	rules []ignoreRule
}

type ignoreRule struct {
	// base is the directory containing the .gitignore defining the rule.
	base    string
	pattern string
	negate  bool
	dirOnly bool
	// anchored means the pattern matches against the path relative to
	// base rather than any path component.
	anchored bool
}

// newGitignoreMatcher collects .gitignore files under root.
func newGitignoreMatcher(root string) *gitignoreMatcher {
	m := &gitignoreMatcher{}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return m
	}
	_ = filepath.Walk(absRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() && info.Name() == ".gitignore" {
			m.rules = append(m.rules, parseGitignore(path)...)
		}
		return nil
	})
	return m
}

func parseGitignore(path string) []ignoreRule {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer func() { _ = f.Close() }()

	base := filepath.Dir(path)
	var rules []ignoreRule

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		r := ignoreRule{base: base}
		if strings.HasPrefix(line, "!") {
			r.negate = true
			line = line[1:]
		}
		if strings.HasSuffix(line, "/") {
			r.dirOnly = true
			line = strings.TrimSuffix(line, "/")
		}
		if strings.HasPrefix(line, "/") {
			line = line[1:]
			r.anchored = true
		} else {
			r.anchored = strings.Contains(line, "/")
		}
		r.pattern = line
		rules = append(rules, r)
	}
	return rules
}

// ignored reports whether path should be skipped.
func (m *gitignoreMatcher) ignored(path string, isDir bool) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	result := false
	for _, r := range m.rules {
		if r.dirOnly && !isDir {
			continue
		}
		if r.matches(abs) {
			result = !r.negate
		}
	}
	return result
}

func (r ignoreRule) matches(abs string) bool {
	rel, err := filepath.Rel(r.base, abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		return false
	}
	rel = filepath.ToSlash(rel)

	if r.anchored {
		ok, err := doublestar.Match(r.pattern, rel)
		return err == nil && ok
	}
	// Unanchored patterns match any path component.
	ok, err := doublestar.Match(r.pattern, filepath.Base(rel))
	if err == nil && ok {
		return true
	}
	ok, err = doublestar.Match("**/"+r.pattern, rel)
	return err == nil && ok
}
