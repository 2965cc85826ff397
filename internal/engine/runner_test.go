package engine

import (
	"os"
	"path/filepath"
	"testing"

	"erbsmith/internal/config"
	"erbsmith/internal/lint"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestRun_ResultsOrderedByPath(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"c.html.erb": "<p>x</p>\n",
		"a.html.erb": "<p>x</p>\n",
		"b.html.erb": "<p>x</p>\n",
	})

	r := &Runner{Linter: newLinter(nil)}
	paths := []string{
		filepath.Join(dir, "c.html.erb"),
		filepath.Join(dir, "a.html.erb"),
		filepath.Join(dir, "b.html.erb"),
	}
	res := r.Run(paths)
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	if len(res.Results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(res.Results))
	}
	for i := 1; i < len(res.Results); i++ {
		if res.Results[i-1].Path > res.Results[i].Path {
			t.Fatalf("results not sorted: %s before %s", res.Results[i-1].Path, res.Results[i].Path)
		}
	}
}

func TestRun_UnreadableFileBecomesError(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.html.erb": "<p>x</p>\n"})

	r := &Runner{Linter: newLinter(nil)}
	res := r.Run([]string{
		filepath.Join(dir, "a.html.erb"),
		filepath.Join(dir, "missing.html.erb"),
	})
	if len(res.Errors) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(res.Errors), res.Errors)
	}
	if len(res.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(res.Results))
	}
}

func TestRun_IgnoredPathsSkipped(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.html.erb":      "<p>x</p>\n",
		"vendor.html.erb": "<p>x</p>\n",
	})

	cfg := &config.Config{Ignore: []string{"vendor.html.erb"}}
	r := &Runner{Linter: newLinter(cfg)}
	res := r.Run([]string{
		filepath.Join(dir, "a.html.erb"),
		filepath.Join(dir, "vendor.html.erb"),
	})
	if len(res.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(res.Results))
	}
	if filepath.Base(res.Results[0].Path) != "a.html.erb" {
		t.Errorf("unexpected result %s", res.Results[0].Path)
	}
}

func TestRun_ManyFilesInParallel(t *testing.T) {
	files := make(map[string]string)
	for i := 0; i < 50; i++ {
		files[string(rune('a'+i%26))+string(rune('0'+i/26))+".html.erb"] = "<p>x</p>\n"
	}
	dir := writeFiles(t, files)

	r := &mockRule{name: "mock-a", severity: lint.Warning}
	r.check = offenseOnLine("mock-a", lint.Warning, 1)
	runner := &Runner{Linter: newLinter(nil, r)}

	var paths []string
	for name := range files {
		paths = append(paths, filepath.Join(dir, name))
	}
	res := runner.Run(paths)
	if len(res.Results) != len(files) {
		t.Fatalf("expected %d results, got %d", len(files), len(res.Results))
	}
	for _, lr := range res.Results {
		if len(lr.Offenses) != 1 {
			t.Errorf("%s: expected 1 offense, got %d", lr.Path, len(lr.Offenses))
		}
	}
}
