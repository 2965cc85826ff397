package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"erbsmith/internal/engine"
	"erbsmith/internal/lint"
)

// TextFormatter renders results in human-readable text, one offense
// per line: file:line:col severity rule message.
type TextFormatter struct {
	Color bool
}

var (
	locColor     = color.New(color.FgCyan)
	ruleColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
	warningColor = color.New(color.FgMagenta)
)

func (f *TextFormatter) severity(s lint.Severity) string {
	if !f.Color {
		return s.String()
	}
	switch s {
	case lint.Error:
		return errorColor.Sprint(s)
	case lint.Warning:
		return warningColor.Sprint(s)
	}
	return s.String()
}

// Format writes every kept offense, skipping ignored files.
func (f *TextFormatter) Format(w io.Writer, results []*engine.Result) error {
	for _, res := range results {
		if res.Ignored {
			continue
		}
		for _, o := range res.Offenses {
			loc := fmt.Sprintf("%s:%d:%d", res.Path, o.Location.Start.Line, o.Location.Start.Column)
			ruleName := o.Rule
			if f.Color {
				loc = locColor.Sprint(loc)
				ruleName = ruleColor.Sprint(ruleName)
			}
			if _, err := fmt.Fprintf(w, "%s %s %s %s\n", loc, f.severity(o.Severity), ruleName, o.Message); err != nil {
				return err
			}
		}
	}
	return nil
}
