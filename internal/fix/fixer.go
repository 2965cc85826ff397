package fix

import (
	"bytes"
	"fmt"
	"os"

	"erbsmith/internal/engine"
)

// Fixer lints files and writes corrected source back to disk.
type Fixer struct {
	Linter *engine.Linter
	Mode   Mode
	// DryRun computes fixes without writing anything back.
	DryRun bool
}

// FileFix is the per-file outcome of a fix run.
type FileFix struct {
	Path string
	// Before and After hold the source around the fix pass. They are
	// equal when nothing was applied.
	Before  []byte
	After   []byte
	Applied int
	Skipped []Skip
	// Result is the lint result the fixes were drawn from.
	Result *engine.Result
}

// Changed reports whether the fix pass altered the source.
func (f *FileFix) Changed() bool { return !bytes.Equal(f.Before, f.After) }

// FixResult aggregates a fix run over many files.
type FixResult struct {
	Files    []*FileFix
	Modified []string
	Errors   []error
}

// Fix lints each path and applies the eligible fixes from the kept
// offense set. Files are written back in place unless DryRun is set.
func (f *Fixer) Fix(paths []string) *FixResult {
	res := &FixResult{}

	for _, path := range paths {
		if f.Linter.Config.IsIgnored(path) {
			continue
		}

		source, err := os.ReadFile(path)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("reading %q: %w", path, err))
			continue
		}
		info, err := os.Stat(path)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("stat %q: %w", path, err))
			continue
		}

		lr := f.Linter.Lint(path, source)
		ff := &FileFix{Path: path, Before: source, After: source, Result: lr}
		if !lr.Ignored {
			applied := Apply(source, lr.Offenses, f.Mode)
			ff.After = applied.Source
			ff.Applied = applied.Applied
			ff.Skipped = applied.Skipped
		}
		res.Files = append(res.Files, ff)

		if ff.Changed() && !f.DryRun {
			if err := os.WriteFile(path, ff.After, info.Mode()); err != nil {
				res.Errors = append(res.Errors, fmt.Errorf("writing %q: %w", path, err))
				continue
			}
			res.Modified = append(res.Modified, path)
		}
	}

	return res
}
