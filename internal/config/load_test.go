package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"erbsmith/internal/lint"
	"erbsmith/internal/rule"
)

// fakeRule is a minimal rule for config tests.
type fakeRule struct {
	name    string
	enabled bool
}

func (r *fakeRule) Name() string                         { return r.name }
func (r *fakeRule) Description() string                  { return "fake" }
func (r *fakeRule) DefaultSeverity() lint.Severity       { return lint.Warning }
func (r *fakeRule) EnabledByDefault() bool               { return r.enabled }
func (r *fakeRule) SafeAutofixable() bool                { return false }
func (r *fakeRule) UnsafeAutofixable() bool              { return false }
func (r *fakeRule) Check(_ *lint.Context) []lint.Offense { return nil }

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".erbsmith.yml")
	data := "rules:\n  rule-a: false\nignore:\n  - vendor/**\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Rules["rule-a"].Enabled {
		t.Error("rule-a should be disabled")
	}
	if len(cfg.Ignore) != 1 || cfg.Ignore[0] != "vendor/**" {
		t.Errorf("unexpected ignore %v", cfg.Ignore)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/no/such/.erbsmith.yml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".erbsmith.yml")
	if err := os.WriteFile(path, []byte("rules: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestDiscover_FindsConfigInParent(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "app", "views")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(root, configFileName)
	if err := os.WriteFile(want, []byte("rules: {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Discover(sub)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("Discover = %q, want %q", got, want)
	}
}

func TestDiscover_StopsAtGitRoot(t *testing.T) {
	root := t.TempDir()
	// Config above the repo root must not be found.
	if err := os.WriteFile(filepath.Join(root, configFileName), []byte("rules: {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	repo := filepath.Join(root, "repo")
	sub := filepath.Join(repo, "views")
	if err := os.MkdirAll(filepath.Join(repo, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := Discover(sub)
	if err != nil {
		t.Fatal(err)
	}
	if got != "" {
		t.Errorf("expected no config, found %q", got)
	}
}

func TestDefaults(t *testing.T) {
	c := rule.NewCatalog()
	c.Register(&fakeRule{name: "rule-a", enabled: true})
	c.Register(&fakeRule{name: "rule-b", enabled: false})

	cfg := Defaults(c)
	if !cfg.Rules["rule-a"].Enabled {
		t.Error("rule-a should default on")
	}
	if cfg.Rules["rule-b"].Enabled {
		t.Error("rule-b should default off")
	}
}

func TestDumpDefaults(t *testing.T) {
	c := rule.NewCatalog()
	c.Register(&fakeRule{name: "rule-a", enabled: true})

	data, err := DumpDefaults(c)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	for _, want := range []string{"rule-a", "severity: warning", "enabled: true", "fail-level: error"} {
		if !strings.Contains(out, want) {
			t.Errorf("dump missing %q:\n%s", want, out)
		}
	}

	// The dump must itself be loadable.
	dir := t.TempDir()
	path := filepath.Join(dir, configFileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("dumped config does not load: %v", err)
	}
	if !loaded.Rules["rule-a"].Enabled {
		t.Error("round-tripped rule-a should be enabled")
	}
	if loaded.FailSeverity() != lint.Error {
		t.Errorf("round-tripped fail level = %v", loaded.FailSeverity())
	}
}
