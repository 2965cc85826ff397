package config

import (
	"testing"

	"gopkg.in/yaml.v3"

	"erbsmith/internal/lint"
)

func TestRuleCfg_BareBool(t *testing.T) {
	var cfg Config
	data := []byte("rules:\n  rule-a: true\n  rule-b: false\n")
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		t.Fatal(err)
	}
	if !cfg.Rules["rule-a"].Enabled {
		t.Error("rule-a should be enabled")
	}
	if cfg.Rules["rule-b"].Enabled {
		t.Error("rule-b should be disabled")
	}
}

func TestRuleCfg_Mapping(t *testing.T) {
	var cfg Config
	data := []byte(`
rules:
  rule-a:
    severity: hint
    max: 3
  rule-b:
    enabled: false
`)
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		t.Fatal(err)
	}

	a := cfg.Rules["rule-a"]
	if !a.Enabled {
		t.Error("mapping without enabled key should default to enabled")
	}
	if a.Severity == nil || *a.Severity != lint.Hint {
		t.Errorf("unexpected severity %v", a.Severity)
	}
	if got, ok := a.Settings["max"].(int); !ok || got != 3 {
		t.Errorf("unexpected settings %v", a.Settings)
	}

	b := cfg.Rules["rule-b"]
	if b.Enabled {
		t.Error("rule-b should be disabled")
	}
}

func TestRuleCfg_InvalidShapes(t *testing.T) {
	for _, data := range []string{
		"rules:\n  rule-a: [1, 2]\n",
		"rules:\n  rule-a:\n    severity: fatal\n",
		"rules:\n  rule-a:\n    enabled: maybe\n",
	} {
		var cfg Config
		if err := yaml.Unmarshal([]byte(data), &cfg); err == nil {
			t.Errorf("expected error for %q", data)
		}
	}
}

func TestConfig_FailLevel(t *testing.T) {
	var cfg Config
	if err := yaml.Unmarshal([]byte("fail-level: warning\n"), &cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.FailSeverity() != lint.Warning {
		t.Errorf("unexpected fail severity %v", cfg.FailSeverity())
	}

	empty := Config{}
	if empty.FailSeverity() != lint.Error {
		t.Errorf("default fail severity should be error, got %v", empty.FailSeverity())
	}
}

func TestConfig_Severities(t *testing.T) {
	info := lint.Info
	cfg := Config{Rules: map[string]RuleCfg{
		"rule-a": {Enabled: true, Severity: &info},
		"rule-b": {Enabled: true},
	}}
	sevs := cfg.Severities()
	if len(sevs) != 1 {
		t.Fatalf("expected 1 override, got %d", len(sevs))
	}
	if sevs["rule-a"] != lint.Info {
		t.Errorf("unexpected severity %v", sevs["rule-a"])
	}
}

func TestConfig_IsIgnored(t *testing.T) {
	cfg := Config{Ignore: []string{"vendor/**", "*.generated.erb"}}
	tests := []struct {
		path string
		want bool
	}{
		{"vendor/layout.html.erb", true},
		{"app/form.generated.erb", true},
		{"app/form.html.erb", false},
	}
	for _, tt := range tests {
		if got := cfg.IsIgnored(tt.path); got != tt.want {
			t.Errorf("IsIgnored(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestConfig_EnabledFallsBackToRuleDefault(t *testing.T) {
	cfg := Config{}
	on := &fakeRule{name: "on-by-default", enabled: true}
	off := &fakeRule{name: "off-by-default", enabled: false}
	if !cfg.Enabled(on) {
		t.Error("expected default-enabled rule to run")
	}
	if cfg.Enabled(off) {
		t.Error("expected default-disabled rule to stay off")
	}

	cfg.Rules = map[string]RuleCfg{"off-by-default": {Enabled: true}}
	if !cfg.Enabled(off) {
		t.Error("config should override the rule default")
	}
}
