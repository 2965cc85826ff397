package output

import (
	"io"

	"erbsmith/internal/engine"
)

// Formatter defines the interface for rendering lint results.
type Formatter interface {
	Format(w io.Writer, results []*engine.Result) error
}
