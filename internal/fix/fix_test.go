package fix

import (
	"testing"

	"erbsmith/internal/lint"
	"erbsmith/internal/template"
)

func fixOffense(rule string, span template.Span, replacement string, safe bool, expected string) lint.Offense {
	return lint.Offense{
		Rule: rule,
		Fix: &lint.Fix{
			Span:        span,
			Replacement: replacement,
			Safe:        safe,
			Expected:    expected,
		},
	}
}

func TestApply_SingleEdit(t *testing.T) {
	src := []byte("hello world")
	res := Apply(src, []lint.Offense{
		fixOffense("r", template.Span{Start: 6, End: 11}, "there", true, "world"),
	}, SafeOnly)

	if string(res.Source) != "hello there" {
		t.Errorf("unexpected result %q", res.Source)
	}
	if res.Applied != 1 {
		t.Errorf("expected 1 applied, got %d", res.Applied)
	}
	if len(res.Skipped) != 0 {
		t.Errorf("unexpected skips %+v", res.Skipped)
	}
}

func TestApply_DisjointEditsOrderIndependent(t *testing.T) {
	src := []byte("aaa bbb ccc")
	a := fixOffense("r1", template.Span{Start: 0, End: 3}, "XX", true, "aaa")
	b := fixOffense("r2", template.Span{Start: 8, End: 11}, "YYYY", true, "ccc")

	forward := Apply(src, []lint.Offense{a, b}, SafeOnly)
	reverse := Apply(src, []lint.Offense{b, a}, SafeOnly)

	want := "XX bbb YYYY"
	if string(forward.Source) != want {
		t.Errorf("forward order produced %q", forward.Source)
	}
	if string(reverse.Source) != string(forward.Source) {
		t.Errorf("edit order changed the result: %q vs %q", forward.Source, reverse.Source)
	}
}

func TestApply_EarlierSpansUnaffectedByLaterEdits(t *testing.T) {
	// A growth at the front must not shift the later edit, because
	// edits are applied back-to-front against original offsets.
	src := []byte("ab")
	grow := fixOffense("r1", template.Span{Start: 0, End: 1}, "aaaa", true, "a")
	tail := fixOffense("r2", template.Span{Start: 1, End: 2}, "B", true, "b")

	res := Apply(src, []lint.Offense{grow, tail}, SafeOnly)
	if string(res.Source) != "aaaaB" {
		t.Errorf("unexpected result %q", res.Source)
	}
	if res.Applied != 2 {
		t.Errorf("expected 2 applied, got %d", res.Applied)
	}
}

func TestApply_VerificationMismatchSkips(t *testing.T) {
	src := []byte("hello world")
	res := Apply(src, []lint.Offense{
		fixOffense("r", template.Span{Start: 6, End: 11}, "there", true, "WORLD"),
	}, SafeOnly)

	if string(res.Source) != "hello world" {
		t.Errorf("mismatched fix must not be applied, got %q", res.Source)
	}
	if res.Applied != 0 {
		t.Errorf("expected 0 applied, got %d", res.Applied)
	}
	if len(res.Skipped) != 1 || res.Skipped[0].Rule != "r" {
		t.Fatalf("expected 1 skip for r, got %+v", res.Skipped)
	}
}

func TestApply_OverlappingSecondEditSkipped(t *testing.T) {
	// Both fixes carry verification snippets; after the first apply the
	// second snippet no longer matches and is skipped, not misapplied.
	src := []byte("abcdef")
	outer := fixOffense("r1", template.Span{Start: 1, End: 5}, "X", true, "bcde")
	inner := fixOffense("r2", template.Span{Start: 2, End: 4}, "Y", true, "cd")

	res := Apply(src, []lint.Offense{outer, inner}, SafeOnly)
	if res.Applied != 1 {
		t.Errorf("expected 1 applied, got %d", res.Applied)
	}
	if len(res.Skipped) != 1 {
		t.Errorf("expected 1 skipped, got %+v", res.Skipped)
	}
}

func TestApply_OverlapPastShrunkenTailSkipped(t *testing.T) {
	// A deletion at the tail shortens the text; an overlapping earlier
	// fix whose span now runs past the end must be skipped, whether or
	// not it carries a verification snippet.
	src := []byte("abcdef")
	del := fixOffense("r1", template.Span{Start: 3, End: 6}, "", true, "def")

	for name, overlap := range map[string]lint.Offense{
		"no snippet":   fixOffense("r2", template.Span{Start: 1, End: 5}, "X", true, ""),
		"with snippet": fixOffense("r2", template.Span{Start: 1, End: 5}, "X", true, "bcde"),
	} {
		res := Apply(src, []lint.Offense{del, overlap}, SafeOnly)
		if string(res.Source) != "abc" {
			t.Errorf("%s: unexpected result %q", name, res.Source)
		}
		if res.Applied != 1 {
			t.Errorf("%s: expected 1 applied, got %d", name, res.Applied)
		}
		if len(res.Skipped) != 1 || res.Skipped[0].Rule != "r2" {
			t.Errorf("%s: expected 1 skip for r2, got %+v", name, res.Skipped)
		}
	}
}

func TestApply_UnsafeSkippedInSafeOnlyMode(t *testing.T) {
	src := []byte("x")
	res := Apply(src, []lint.Offense{
		fixOffense("r", template.Span{Start: 0, End: 1}, "y", false, "x"),
	}, SafeOnly)

	if string(res.Source) != "x" {
		t.Errorf("unsafe fix applied in safe-only mode: %q", res.Source)
	}
	if len(res.Skipped) != 1 || res.Skipped[0].Reason != "unsafe fix not requested" {
		t.Errorf("unexpected skips %+v", res.Skipped)
	}
}

func TestApply_UnsafeAppliedWhenRequested(t *testing.T) {
	src := []byte("x")
	res := Apply(src, []lint.Offense{
		fixOffense("r", template.Span{Start: 0, End: 1}, "y", false, "x"),
	}, IncludeUnsafe)

	if string(res.Source) != "y" {
		t.Errorf("unsafe fix not applied: %q", res.Source)
	}
}

func TestApply_OffensesWithoutFixesIgnored(t *testing.T) {
	src := []byte("x")
	res := Apply(src, []lint.Offense{{Rule: "r"}}, IncludeUnsafe)
	if res.Applied != 0 || len(res.Skipped) != 0 {
		t.Errorf("fixless offense counted: %+v", res)
	}
	if string(res.Source) != "x" {
		t.Errorf("source changed: %q", res.Source)
	}
}

func TestApply_OutOfRangeSpanSkipped(t *testing.T) {
	src := []byte("abc")
	res := Apply(src, []lint.Offense{
		fixOffense("r", template.Span{Start: 1, End: 99}, "x", true, ""),
	}, SafeOnly)

	if string(res.Source) != "abc" {
		t.Errorf("out-of-range fix applied: %q", res.Source)
	}
	if len(res.Skipped) != 1 {
		t.Fatalf("expected 1 skip, got %+v", res.Skipped)
	}
}

func TestApply_InsertionAtZeroWidthSpan(t *testing.T) {
	src := []byte("ab")
	res := Apply(src, []lint.Offense{
		fixOffense("r", template.Span{Start: 2, End: 2}, "\n", true, ""),
	}, SafeOnly)

	if string(res.Source) != "ab\n" {
		t.Errorf("unexpected result %q", res.Source)
	}
}

func TestApply_Idempotent(t *testing.T) {
	src := []byte("hello  world  ")
	offenses := []lint.Offense{
		fixOffense("r1", template.Span{Start: 5, End: 7}, " ", true, "  "),
		fixOffense("r2", template.Span{Start: 12, End: 14}, "", true, "  "),
	}

	first := Apply(src, offenses, SafeOnly)
	if string(first.Source) != "hello world" {
		t.Fatalf("unexpected first pass %q", first.Source)
	}

	// Re-running the same fixes against the corrected text must be a
	// no-op: every span now fails verification.
	second := Apply(first.Source, offenses, SafeOnly)
	if string(second.Source) != string(first.Source) {
		t.Errorf("second pass changed the text: %q", second.Source)
	}
	if second.Applied != 0 {
		t.Errorf("second pass applied %d fixes", second.Applied)
	}
}

func TestApply_NoCandidatesReturnsInputSlice(t *testing.T) {
	src := []byte("abc")
	res := Apply(src, nil, SafeOnly)
	if string(res.Source) != "abc" || res.Applied != 0 {
		t.Errorf("unexpected result %+v", res)
	}
}
