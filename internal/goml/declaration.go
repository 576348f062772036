package goml

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/vk/gomlgo/internal/errors"
	"github.com/vk/gomlgo/internal/nsdict"
	"github.com/vk/gomlgo/internal/nsid"
)

// MessageHandler handles one message delivered to a component.
type MessageHandler func(c *Component, args any)

// ComponentDefinition is what a component type is registered from.
//
// A definition is either a plain handler table or carries a Constructor that
// builds per-instance state, stored in Component.State. Init runs once per
// instance after its attributes exist. Base names a registered component
// whose attributes and handlers are included first; entries of this
// definition win on conflicts, while base Init hooks run before this one.
type ComponentDefinition struct {
	Attributes  map[string]AttributeDeclaration
	Handlers    map[string]MessageHandler
	Constructor func() any
	Init        func(c *Component)
	Base        string
}

type attributeEntry struct {
	key         string
	declaration AttributeDeclaration
}

// ComponentDeclaration is the flattened, immutable blueprint of a component
// type.
type ComponentDeclaration struct {
	name        nsid.Identity
	base        *nsid.Identity
	attributes  []attributeEntry
	handlers    map[string]MessageHandler
	constructor func() any
	inits       []func(*Component)
}

// NewComponentDeclaration flattens def on top of base, which may be nil.
// Base attributes come first; an attribute redeclared by def keeps its
// position and takes def's declaration.
func NewComponentDeclaration(name nsid.Identity, def ComponentDefinition, base *ComponentDeclaration) *ComponentDeclaration {
	d := &ComponentDeclaration{
		name:        name,
		handlers:    make(map[string]MessageHandler),
		constructor: def.Constructor,
	}

	positions := make(map[string]int)
	if base != nil {
		baseName := base.name
		d.base = &baseName
		for _, e := range base.attributes {
			positions[e.key] = len(d.attributes)
			d.attributes = append(d.attributes, e)
		}
		for msg, h := range base.handlers {
			d.handlers[msg] = h
		}
		if d.constructor == nil {
			d.constructor = base.constructor
		}
		d.inits = append(d.inits, base.inits...)
	}
	if def.Init != nil {
		d.inits = append(d.inits, def.Init)
	}

	keys := make([]string, 0, len(def.Attributes))
	for key := range def.Attributes {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		entry := attributeEntry{key: key, declaration: def.Attributes[key]}
		if i, ok := positions[key]; ok {
			d.attributes[i] = entry
			continue
		}
		positions[key] = len(d.attributes)
		d.attributes = append(d.attributes, entry)
	}

	for msg, h := range def.Handlers {
		d.handlers[strings.TrimPrefix(msg, "$")] = h
	}
	return d
}

// Name returns the component type identity.
func (d *ComponentDeclaration) Name() nsid.Identity { return d.name }

// Base returns the identity of the included base component, if any.
func (d *ComponentDeclaration) Base() (nsid.Identity, bool) {
	if d.base == nil {
		return nsid.Identity{}, false
	}
	return *d.base, true
}

// AttributeKeys returns the declared attribute keys in declaration order.
func (d *ComponentDeclaration) AttributeKeys() []string {
	keys := make([]string, len(d.attributes))
	for i, e := range d.attributes {
		keys[i] = e.key
	}
	return keys
}

// Attribute returns the declaration of key.
func (d *ComponentDeclaration) Attribute(key string) (AttributeDeclaration, bool) {
	for _, e := range d.attributes {
		if e.key == key {
			return e.declaration, true
		}
	}
	return AttributeDeclaration{}, false
}

// HasHandler reports whether message has a handler. A leading "$" is ignored.
func (d *ComponentDeclaration) HasHandler(message string) bool {
	_, ok := d.handlers[strings.TrimPrefix(message, "$")]
	return ok
}

// GenerateInstance creates a new, unattached component. A nil element gets an
// in-memory element named after the component type.
func (d *ComponentDeclaration) GenerateInstance(catalog Catalog, element Element) (*Component, error) {
	if element == nil {
		element = NewElement(d.name.Namespace, d.name.Name)
	}
	c := &Component{
		id:          uuid.NewString(),
		name:        d.name,
		declaration: d,
		element:     element,
		enabled:     true,
		attributes:  nsdict.New[*Attribute](),
	}
	if d.constructor != nil {
		c.State = d.constructor()
	}
	for _, e := range d.attributes {
		if _, err := GenerateAttributeForComponent(e.key, e.declaration, c, catalog); err != nil {
			return nil, errors.Wrapf(err, "component %s", d.name.FQN())
		}
	}
	for _, fn := range d.inits {
		fn(c)
	}
	if tracker, ok := catalog.(InstanceTracker); ok {
		tracker.TrackComponent(c)
	}
	return c, nil
}

// NodeDefinition is what a node type is registered from.
type NodeDefinition struct {
	// DefaultComponents are instantiated for every node of this type.
	DefaultComponents []string
	// DefaultAttributes override attribute declaration defaults. Bare keys
	// are placed in the node's namespace.
	DefaultAttributes map[string]any
	// SuperNode names a registered node type to inherit from.
	SuperNode string
	// Constraints are checked when a tree containing the node is mounted as
	// a root.
	Constraints []TreeConstraint
}

// NodeDeclaration is the flattened, immutable blueprint of a node type.
type NodeDeclaration struct {
	name              nsid.Identity
	superNode         *nsid.Identity
	defaultComponents []nsid.Identity
	defaultAttributes *nsdict.Dictionary[any]
	constraints       []TreeConstraint
}

// NewNodeDeclaration flattens def on top of super, which may be nil. Super
// default components come first, own defaults override super defaults and
// constraints accumulate.
func NewNodeDeclaration(name nsid.Identity, def NodeDefinition, super *NodeDeclaration) (*NodeDeclaration, error) {
	d := &NodeDeclaration{
		name:              name,
		defaultAttributes: nsdict.New[any](),
	}

	seen := make(map[nsid.Identity]bool)
	if super != nil {
		superName := super.name
		d.superNode = &superName
		for _, id := range super.defaultComponents {
			seen[id] = true
			d.defaultComponents = append(d.defaultComponents, id)
		}
		for _, e := range super.defaultAttributes.Entries() {
			d.defaultAttributes.Set(e.ID, e.Value)
		}
		d.constraints = append(d.constraints, super.constraints...)
	}

	for _, raw := range def.DefaultComponents {
		id, err := nsid.Parse(raw)
		if err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "node %s: default component", name.FQN()), errors.ErrInvalidOperation)
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		d.defaultComponents = append(d.defaultComponents, id)
	}

	keys := make([]string, 0, len(def.DefaultAttributes))
	for key := range def.DefaultAttributes {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		id, err := attributeKey(name.Namespace, key)
		if err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "node %s: default attribute", name.FQN()), errors.ErrInvalidOperation)
		}
		d.defaultAttributes.Set(id, def.DefaultAttributes[key])
	}

	d.constraints = append(d.constraints, def.Constraints...)
	return d, nil
}

func attributeKey(namespace, key string) (nsid.Identity, error) {
	if strings.Contains(key, ".") {
		return nsid.Parse(key)
	}
	if _, err := nsid.Parse(key); err != nil {
		return nsid.Identity{}, err
	}
	return nsid.New(namespace, key), nil
}

// Name returns the node type identity.
func (d *NodeDeclaration) Name() nsid.Identity { return d.name }

// SuperNode returns the identity of the inherited node type, if any.
func (d *NodeDeclaration) SuperNode() (nsid.Identity, bool) {
	if d.superNode == nil {
		return nsid.Identity{}, false
	}
	return *d.superNode, true
}

// DefaultComponents returns the default component identities in order.
func (d *NodeDeclaration) DefaultComponents() []nsid.Identity {
	return append([]nsid.Identity(nil), d.defaultComponents...)
}

// DefaultAttributes returns a copy of the node-level attribute defaults.
func (d *NodeDeclaration) DefaultAttributes() *nsdict.Dictionary[any] {
	return d.defaultAttributes.Clone()
}
