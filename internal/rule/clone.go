package rule

import "reflect"

// Clone creates an independent copy of a rule so that per-file
// settings can be applied without mutating the catalog's instance.
// Configurable rules are rebuilt from a zero value plus their default
// settings; other pointer rules get a reflect-based shallow copy.
func Clone(r Rule) Rule {
	if c, ok := r.(Configurable); ok {
		rv := reflect.ValueOf(r)
		if rv.Kind() == reflect.Ptr {
			clone := reflect.New(rv.Elem().Type()).Interface().(Rule)
			if cc, ok := clone.(Configurable); ok {
				_ = cc.ApplySettings(c.DefaultSettings())
			}
			return clone
		}
	}

	rv := reflect.ValueOf(r)
	if rv.Kind() == reflect.Ptr {
		ptr := reflect.New(rv.Elem().Type())
		ptr.Elem().Set(rv.Elem())
		return ptr.Interface().(Rule)
	}

	// Value type — already a copy.
	return r
}
