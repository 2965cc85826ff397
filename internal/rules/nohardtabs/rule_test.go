package nohardtabs

import (
	"testing"

	"erbsmith/internal/fix"
	"erbsmith/internal/lint"
	"erbsmith/internal/template"
)

func check(t *testing.T, r *Rule, source string) []lint.Offense {
	t.Helper()
	src := []byte(source)
	doc := template.Parse(src)
	if doc.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", doc.Errors)
	}
	ctx := lint.NewContext("test.html.erb", src, doc, nil)
	return r.Check(ctx)
}

func TestCheck_TabsReportedIndividually(t *testing.T) {
	offenses := check(t, New(), "\t<p>a</p>\n\t\t<p>b</p>\n")
	if len(offenses) != 3 {
		t.Fatalf("expected 3 offenses, got %d", len(offenses))
	}
	if offenses[0].Line() != 1 || offenses[1].Line() != 2 {
		t.Errorf("unexpected lines %d, %d", offenses[0].Line(), offenses[1].Line())
	}
}

func TestCheck_NoTabs(t *testing.T) {
	if offenses := check(t, New(), "  <p>a</p>\n"); len(offenses) != 0 {
		t.Errorf("expected no offenses, got %+v", offenses)
	}
}

func TestFix_DefaultWidth(t *testing.T) {
	src := []byte("\t<p>a</p>\n")
	offenses := check(t, New(), string(src))

	res := fix.Apply(src, offenses, fix.SafeOnly)
	want := "  <p>a</p>\n"
	if string(res.Source) != want {
		t.Errorf("expected %q, got %q", want, res.Source)
	}
}

func TestFix_ConfiguredWidth(t *testing.T) {
	r := New()
	if err := r.ApplySettings(map[string]any{"width": 4}); err != nil {
		t.Fatal(err)
	}
	src := []byte("\t<p>a</p>\n")
	offenses := check(t, r, string(src))

	res := fix.Apply(src, offenses, fix.SafeOnly)
	want := "    <p>a</p>\n"
	if string(res.Source) != want {
		t.Errorf("expected %q, got %q", want, res.Source)
	}
}

func TestApplySettings_Invalid(t *testing.T) {
	r := New()
	if err := r.ApplySettings(map[string]any{"width": "wide"}); err == nil {
		t.Error("expected error for non-integer width")
	}
	if err := r.ApplySettings(map[string]any{"tabstop": 8}); err == nil {
		t.Error("expected error for unknown setting")
	}
}
