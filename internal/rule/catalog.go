package rule

import "sync"

// Catalog holds the known rule implementations. It is safe for
// concurrent reads; registration and extension loading must complete
// before concurrent linting begins.
type Catalog struct {
	mu     sync.RWMutex
	byName map[string]int
	order  []Rule
	loaded map[string]bool // extension identifiers already loaded
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		byName: make(map[string]int),
		loaded: make(map[string]bool),
	}
}

// Register adds a rule keyed by its name. Re-registering a name
// replaces the earlier rule in place, so a user-supplied rule can
// shadow a built-in without disturbing catalog order.
func (c *Catalog) Register(r Rule) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i, ok := c.byName[r.Name()]; ok {
		c.order[i] = r
		return
	}
	c.byName[r.Name()] = len(c.order)
	c.order = append(c.order, r)
}

// All returns every registered rule in registration order. The slice
// is a copy.
func (c *Catalog) All() []Rule {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make([]Rule, len(c.order))
	copy(result, c.order)
	return result
}

// Get returns the rule with the given name.
func (c *Catalog) Get(name string) (Rule, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.byName[name]
	if !ok {
		return nil, false
	}
	return c.order[i], true
}

// Names returns every registered rule name in registration order.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, len(c.order))
	for i, r := range c.order {
		names[i] = r.Name()
	}
	return names
}

// Len returns the number of registered rules.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}
