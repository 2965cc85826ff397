package rule

import (
	"fmt"
	"path/filepath"
	"plugin"
)

// RegisterSymbol is the function an extension plugin must export:
//
//	func RegisterRules(c *rule.Catalog)
//
// The loader calls it once per plugin; the plugin registers its rules
// directly. Plugins are built from the erbsmith source tree (Go's
// plugin mechanism requires matching package versions in any case).
const RegisterSymbol = "RegisterRules"

// LoadExtensions opens each identifier as a Go plugin and invokes its
// registration hook. A missing or malformed plugin is a fatal error
// for the invocation. Loading the same identifier twice is a no-op; a
// plugin that registers no rules is also a no-op.
func (c *Catalog) LoadExtensions(identifiers []string) error {
	for _, id := range identifiers {
		clean := filepath.Clean(id)

		c.mu.Lock()
		done := c.loaded[clean]
		c.mu.Unlock()
		if done {
			continue
		}

		p, err := plugin.Open(clean)
		if err != nil {
			return fmt.Errorf("loading extension %q: %w", id, err)
		}
		sym, err := p.Lookup(RegisterSymbol)
		if err != nil {
			return fmt.Errorf("extension %q: %w", id, err)
		}
		register, ok := sym.(func(*Catalog))
		if !ok {
			return fmt.Errorf("extension %q: %s must be func(*rule.Catalog), got %T", id, RegisterSymbol, sym)
		}
		register(c)

		c.mu.Lock()
		c.loaded[clean] = true
		c.mu.Unlock()
	}
	return nil
}
