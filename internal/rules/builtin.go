// Package rules assembles the built-in rule catalog.
package rules

import (
	"erbsmith/internal/rule"
	"erbsmith/internal/rules/attributequotes"
	"erbsmith/internal/rules/noduplicateattributes"
	"erbsmith/internal/rules/noemptyerb"
	"erbsmith/internal/rules/nohardtabs"
	"erbsmith/internal/rules/nomultipleblanks"
	"erbsmith/internal/rules/noselfclosingvoid"
	"erbsmith/internal/rules/notrailingspaces"
	"erbsmith/internal/rules/requirealtattribute"
	"erbsmith/internal/rules/singletrailingnewline"
	"erbsmith/internal/rules/tagnamelowercase"
)

// NewCatalog returns a catalog with every built-in rule registered.
// Extension loading, if any, happens on top of this and must finish
// before linting starts.
func NewCatalog() *rule.Catalog {
	c := rule.NewCatalog()
	c.Register(requirealtattribute.New())
	c.Register(attributequotes.New())
	c.Register(tagnamelowercase.New())
	c.Register(noduplicateattributes.New())
	c.Register(noselfclosingvoid.New())
	c.Register(noemptyerb.New())
	c.Register(nomultipleblanks.New())
	c.Register(singletrailingnewline.New())
	c.Register(notrailingspaces.New())
	c.Register(nohardtabs.New())
	return c
}
