package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// isTemplate reports whether the path looks like an ERB template.
func isTemplate(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, ".erb") || strings.HasSuffix(lower, ".rhtml")
}

// hasGlobChars reports whether the string contains glob meta-characters.
func hasGlobChars(s string) bool {
	return strings.ContainsAny(s, "*?[{")
}

// ResolveOpts controls file resolution.
type ResolveOpts struct {
	// UseGitignore filters directory walks by .gitignore rules.
	// Explicitly named files are never filtered. Defaults to true.
	UseGitignore *bool
}

// DefaultResolveOpts returns options with defaults applied.
func DefaultResolveOpts() ResolveOpts {
	t := true
	return ResolveOpts{UseGitignore: &t}
}

func (o ResolveOpts) useGitignore() bool {
	if o.UseGitignore == nil {
		return true
	}
	return *o.UseGitignore
}

// ResolveFiles expands positional arguments into deduplicated, sorted
// template paths. Arguments may be files, directories (recursive), or
// glob patterns (doublestar `**` supported). Nonexistent non-glob
// paths are an error.
func ResolveFiles(args []string, opts ResolveOpts) ([]string, error) {
	seen := make(map[string]bool)
	var result []string

	addFile := func(path string) {
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		if !seen[abs] {
			seen[abs] = true
			result = append(result, path)
		}
	}

	for _, arg := range args {
		if err := resolveArg(arg, opts, addFile); err != nil {
			return nil, err
		}
	}

	sort.Strings(result)
	return result, nil
}

func resolveArg(arg string, opts ResolveOpts, addFile func(string)) error {
	if hasGlobChars(arg) {
		return resolveGlob(arg, opts, addFile)
	}

	info, err := os.Stat(arg)
	if err != nil {
		return fmt.Errorf("cannot access %q: %w", arg, err)
	}

	if info.IsDir() {
		return addDirFiles(arg, opts, addFile)
	}

	// Explicitly named files are taken as-is, extension regardless.
	addFile(arg)
	return nil
}

func resolveGlob(pattern string, opts ResolveOpts, addFile func(string)) error {
	if !doublestar.ValidatePattern(pattern) {
		return fmt.Errorf("invalid glob pattern %q", pattern)
	}
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return fmt.Errorf("expanding glob %q: %w", pattern, err)
	}
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			continue
		}
		if info.IsDir() {
			if err := addDirFiles(m, opts, addFile); err != nil {
				return err
			}
		} else if isTemplate(m) {
			addFile(m)
		}
	}
	return nil
}

func addDirFiles(dir string, opts ResolveOpts, addFile func(string)) error {
	var matcher *gitignoreMatcher
	if opts.useGitignore() {
		matcher = newGitignoreMatcher(dir)
	}

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if matcher != nil && matcher.ignored(path, info.IsDir()) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !info.IsDir() && isTemplate(path) {
			addFile(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walking directory %q: %w", dir, err)
	}
	return nil
}
