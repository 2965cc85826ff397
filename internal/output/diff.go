package output

import (
	"fmt"
	"io"

	godiffpatch "github.com/sourcegraph/go-diff-patch"

	"erbsmith/internal/fix"
)

// DiffFormatter renders the edits a fix run would make as unified
// diffs, without touching any file. Used by `erbsmith fix --diff`.
type DiffFormatter struct{}

// Format writes one patch per changed file.
func (f *DiffFormatter) Format(w io.Writer, fixes []*fix.FileFix) error {
	for _, ff := range fixes {
		if !ff.Changed() {
			continue
		}
		patch := godiffpatch.GeneratePatch(ff.Path, string(ff.Before), string(ff.After))
		if _, err := fmt.Fprint(w, patch); err != nil {
			return err
		}
	}
	return nil
}
