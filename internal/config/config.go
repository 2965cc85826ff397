package config

import (
	"fmt"
	"path/filepath"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"

	"erbsmith/internal/lint"
	"erbsmith/internal/rule"
)

// Config is the top-level configuration.
type Config struct {
	Rules      map[string]RuleCfg `yaml:"rules"`
	Ignore     []string           `yaml:"ignore"`
	Extensions []string           `yaml:"extensions"`
	// FailLevel is the severity threshold for a failing exit code.
	// Nil means error-or-above.
	FailLevel *lint.Severity `yaml:"fail-level"`
}

// RuleCfg is a YAML union: a bare bool enables or disables the rule; a
// mapping may carry `enabled`, `severity`, and rule-specific settings.
type RuleCfg struct {
	Enabled  bool
	Severity *lint.Severity
	Settings map[string]any
}

// UnmarshalYAML implements the union:
//   - false            -> Enabled=false
//   - true             -> Enabled=true
//   - {severity: ...,} -> Enabled=true unless `enabled: false`,
//     remaining keys become Settings
func (r *RuleCfg) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var b bool
		if err := value.Decode(&b); err == nil {
			*r = RuleCfg{Enabled: b}
			return nil
		}
	}

	if value.Kind == yaml.MappingNode {
		var m map[string]any
		if err := value.Decode(&m); err != nil {
			return fmt.Errorf("invalid rule config: %w", err)
		}
		r.Enabled = true
		for k, v := range m {
			switch k {
			case "enabled":
				b, ok := v.(bool)
				if !ok {
					return fmt.Errorf("enabled must be a bool, got %T", v)
				}
				r.Enabled = b
			case "severity":
				s, ok := v.(string)
				if !ok {
					return fmt.Errorf("severity must be a string, got %T", v)
				}
				sev, err := lint.ParseSeverity(s)
				if err != nil {
					return err
				}
				r.Severity = &sev
			default:
				if r.Settings == nil {
					r.Settings = make(map[string]any)
				}
				r.Settings[k] = v
			}
		}
		return nil
	}

	return fmt.Errorf("rule config must be a bool or a mapping, got %v", value.Kind)
}

// Enabled reports whether the rule should run: the config override if
// one exists, else the rule's own default.
func (c *Config) Enabled(r rule.Rule) bool {
	if cfg, ok := c.Rules[r.Name()]; ok {
		return cfg.Enabled
	}
	return r.EnabledByDefault()
}

// Severities returns the per-rule severity overrides.
func (c *Config) Severities() map[string]lint.Severity {
	out := make(map[string]lint.Severity)
	for name, cfg := range c.Rules {
		if cfg.Severity != nil {
			out[name] = *cfg.Severity
		}
	}
	return out
}

// Settings returns the configured settings for a rule, or nil.
func (c *Config) Settings(name string) map[string]any {
	return c.Rules[name].Settings
}

// FailSeverity returns the severity threshold for exit-code purposes.
func (c *Config) FailSeverity() lint.Severity {
	if c.FailLevel != nil {
		return *c.FailLevel
	}
	return lint.Error
}

// IsIgnored reports whether the path matches a configured ignore glob.
func (c *Config) IsIgnored(path string) bool {
	cleanPath := filepath.Clean(path)
	for _, pattern := range c.Ignore {
		g, err := glob.Compile(pattern)
		if err != nil {
			continue
		}
		if g.Match(path) || g.Match(cleanPath) || g.Match(filepath.Base(path)) {
			return true
		}
	}
	return false
}
