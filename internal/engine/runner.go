package engine

import (
	"fmt"
	"os"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
)

// Runner lints many files. Files are independent units of work, so
// they run in parallel; the catalog must be fully loaded before Run is
// called.
type Runner struct {
	Linter *Linter
}

// RunResult aggregates per-file results and read errors.
type RunResult struct {
	Results []*Result
	Errors  []error
}

// MaxSeverity returns the highest kept-offense severity across all
// files; ok is false when every file is clean.
func (r *RunResult) MaxSeverity() (max int, ok bool) {
	for _, res := range r.Results {
		if s, has := res.MaxSeverity(); has {
			if !ok || int(s) > max {
				max, ok = int(s), true
			}
		}
	}
	return max, ok
}

// Run lints the files at the given paths. Results come back ordered by
// path regardless of scheduling.
func (r *Runner) Run(paths []string) *RunResult {
	res := &RunResult{}

	results := make([]*Result, len(paths))
	errs := make([]error, len(paths))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		i, path := i, path
		if r.Linter.Config.IsIgnored(path) {
			continue
		}
		g.Go(func() error {
			source, err := os.ReadFile(path)
			if err != nil {
				errs[i] = fmt.Errorf("reading %q: %w", path, err)
				return nil
			}
			results[i] = r.Linter.Lint(path, source)
			return nil
		})
	}
	_ = g.Wait()

	for i := range paths {
		if errs[i] != nil {
			res.Errors = append(res.Errors, errs[i])
		}
		if results[i] != nil {
			res.Results = append(res.Results, results[i])
		}
	}
	sort.Slice(res.Results, func(i, j int) bool {
		return res.Results[i].Path < res.Results[j].Path
	})
	return res
}
