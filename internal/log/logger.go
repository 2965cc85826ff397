// Package log provides the verbose progress trace of the erbsmith CLI.
package log

import (
	"fmt"
	"io"
)

// Logger writes progress lines for lint and fix runs when Enabled is
// true. Lines carry the "erbsmith:" prefix so verbose output reads
// like the CLI's other stderr messages.
type Logger struct {
	Enabled bool
	W       io.Writer
}

// Printf writes one prefixed line to W. It is a no-op when Enabled is
// false.
func (l *Logger) Printf(format string, args ...any) {
	if !l.Enabled {
		return
	}
	_, _ = fmt.Fprintf(l.W, "erbsmith: "+format+"\n", args...)
}
