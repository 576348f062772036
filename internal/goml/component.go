package goml

import (
	"strings"

	"github.com/vk/gomlgo/internal/nsdict"
	"github.com/vk/gomlgo/internal/nsid"
)

// Component is a behavior unit attached to at most one node for its whole
// lifetime.
type Component struct {
	id          string
	name        nsid.Identity
	declaration *ComponentDeclaration
	node        *Node
	attributes  *nsdict.Dictionary[*Attribute]
	enabled     bool
	element     Element

	// State holds the per-instance value built by the declaration's
	// constructor, if any.
	State any
}

// ID returns the unique instance id.
func (c *Component) ID() string { return c.id }

// Name returns the component type identity.
func (c *Component) Name() nsid.Identity { return c.name }

// Declaration returns the blueprint the component was generated from.
func (c *Component) Declaration() *ComponentDeclaration { return c.declaration }

// Node returns the owning node, or nil before attachment.
func (c *Component) Node() *Node { return c.node }

// Element returns the component's markup handle.
func (c *Component) Element() Element { return c.element }

// Attributes returns the component's attribute dictionary.
func (c *Component) Attributes() *nsdict.Dictionary[*Attribute] { return c.attributes }

// Attribute resolves a single attribute.
func (c *Component) Attribute(query any) (*Attribute, error) {
	return c.attributes.Get(query)
}

// GetValue returns the current value of an attribute.
func (c *Component) GetValue(query any) (any, error) {
	attr, err := c.attributes.Get(query)
	if err != nil {
		return nil, err
	}
	return attr.Value(), nil
}

// SetValue converts and stores an attribute value.
func (c *Component) SetValue(query any, raw any) error {
	attr, err := c.attributes.Get(query)
	if err != nil {
		return err
	}
	return attr.SetValue(raw)
}

// Enabled reports whether the component receives messages.
func (c *Component) Enabled() bool { return c.enabled }

// SetEnabled toggles message delivery.
func (c *Component) SetEnabled(enabled bool) { c.enabled = enabled }

// Attach attaches the component to n. See Node.AddComponent.
func (c *Component) Attach(n *Node) error {
	return n.AddComponent(c)
}

// SendMessage delivers message to the component. It reports false, without
// calling anything, when the component is disabled. A message without a
// handler is accepted as a no-op. A leading "$" on message is ignored.
func (c *Component) SendMessage(message string, args any) bool {
	if !c.enabled {
		return false
	}
	if h, ok := c.declaration.handlers[strings.TrimPrefix(message, "$")]; ok {
		h(c, args)
	}
	return true
}
