package goml

import (
	"github.com/vk/gomlgo/internal/convert"
)

// Catalog resolves the declarations and converters a tree is built from.
// Queries follow nsdict lookup rules. The registry implements it.
type Catalog interface {
	ComponentDeclaration(query any) (*ComponentDeclaration, error)
	Converter(query any) (*convert.Converter, error)
}

// InstanceTracker is implemented by catalogs that keep a lookup of live
// instances. NewNode and GenerateInstance report every instance they create.
type InstanceTracker interface {
	TrackNode(n *Node)
	TrackComponent(c *Component)
}
