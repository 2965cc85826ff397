package output

import (
	"bytes"
	"strings"
	"testing"

	"erbsmith/internal/engine"
	"erbsmith/internal/lint"
	"erbsmith/internal/template"
)

func sampleResults() []*engine.Result {
	return []*engine.Result{
		{
			Path: "app/views/index.html.erb",
			Offenses: []lint.Offense{
				{
					Rule:     "require-alt-attribute",
					Severity: lint.Error,
					Message:  "missing alt attribute on <img>",
					Location: template.Location{
						Start: template.Position{Line: 3, Column: 5},
						End:   template.Position{Line: 3, Column: 22},
					},
				},
				{
					Rule:     "no-trailing-whitespace",
					Severity: lint.Warning,
					Message:  "trailing whitespace",
					Location: template.Location{
						Start: template.Position{Line: 7, Column: 12},
						End:   template.Position{Line: 7, Column: 14},
					},
				},
			},
		},
		{Path: "app/views/clean.html.erb"},
	}
}

func TestTextFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	f := &TextFormatter{}
	if err := f.Format(&buf, sampleResults()); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d:\n%s", len(lines), out)
	}
	want := "app/views/index.html.erb:3:5 error require-alt-attribute missing alt attribute on <img>"
	if lines[0] != want {
		t.Errorf("unexpected first line\n got %q\nwant %q", lines[0], want)
	}
	if !strings.Contains(lines[1], ":7:12 warning no-trailing-whitespace") {
		t.Errorf("unexpected second line %q", lines[1])
	}
}

func TestTextFormatter_SkipsIgnoredFiles(t *testing.T) {
	results := []*engine.Result{
		{
			Path:    "skipped.html.erb",
			Ignored: true,
			Offenses: []lint.Offense{
				{Rule: "mock", Severity: lint.Error, Message: "should not appear"},
			},
		},
	}

	var buf bytes.Buffer
	f := &TextFormatter{}
	if err := f.Format(&buf, results); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("ignored file produced output: %q", buf.String())
	}
}

func TestTextFormatter_CleanResultsSilent(t *testing.T) {
	var buf bytes.Buffer
	f := &TextFormatter{}
	if err := f.Format(&buf, []*engine.Result{{Path: "clean.html.erb"}}); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("clean result produced output: %q", buf.String())
	}
}
