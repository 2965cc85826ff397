package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"erbsmith/internal/rule"
)

const configFileName = ".erbsmith.yml"

// Load reads and parses a config file at the given path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return &cfg, nil
}

// Discover walks up the directory tree from startDir looking for a
// .erbsmith.yml config file. It stops searching at the repository root
// (the first directory containing .git) or the filesystem root.
// Returns "" if none was found.
func Discover(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving absolute path: %w", err)
	}

	for {
		candidate := filepath.Join(dir, configFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		gitDir := filepath.Join(dir, ".git")
		if info, err := os.Stat(gitDir); err == nil && info.IsDir() {
			return "", nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Defaults returns a Config enabling every catalog rule according to
// its own default.
func Defaults(catalog *rule.Catalog) *Config {
	rules := make(map[string]RuleCfg)
	for _, r := range catalog.All() {
		rules[r.Name()] = RuleCfg{Enabled: r.EnabledByDefault()}
	}
	return &Config{Rules: rules}
}

// DumpDefaults renders a default config file for `erbsmith init`:
// every rule with its default severity and, for configurable rules,
// its default settings.
func DumpDefaults(catalog *rule.Catalog) ([]byte, error) {
	type ruleDump struct {
		Severity string         `yaml:"severity"`
		Enabled  bool           `yaml:"enabled"`
		Settings map[string]any `yaml:",inline,omitempty"`
	}
	rules := make(map[string]ruleDump)
	for _, r := range catalog.All() {
		d := ruleDump{
			Severity: r.DefaultSeverity().String(),
			Enabled:  r.EnabledByDefault(),
		}
		if c, ok := r.(rule.Configurable); ok {
			d.Settings = c.DefaultSettings()
		}
		rules[r.Name()] = d
	}
	out := map[string]any{
		"rules":      rules,
		"fail-level": "error",
	}
	return yaml.Marshal(out)
}
