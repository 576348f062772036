package goml

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/vk/gomlgo/internal/errors"
	"github.com/vk/gomlgo/internal/nsdict"
	"github.com/vk/gomlgo/internal/nsid"
)

// RootMarker is the companion key a registry sets on the nodes it tracks as
// tree roots. Such nodes cannot become children of another tree.
var RootMarker = nsid.New("", "rootNodeId")

// Node is a single element of the component tree.
type Node struct {
	id                string
	declaration       *NodeDeclaration
	element           Element
	componentsElement *BasicElement

	children []*Node
	parent   *Node
	root     *Node

	attributes *nsdict.Dictionary[*Attribute]
	components *nsdict.Dictionary[*Component]
	// attached keeps attachment order, including components sharing a type.
	attached []*Component
	unawoken []*Component

	enabled bool
	mounted bool

	shared    *nsdict.Dictionary[any]
	companion *nsdict.Dictionary[any]
}

// NewNode creates a detached root node of the given type and instantiates
// its default components. A nil element gets an in-memory element named
// after the declaration.
func NewNode(decl *NodeDeclaration, element Element, catalog Catalog) (*Node, error) {
	if decl == nil {
		return nil, errors.InvalidOperationf("node declaration must not be nil")
	}
	if element == nil {
		element = NewElement(decl.name.Namespace, decl.name.Name)
	}

	n := &Node{
		id:                uuid.NewString(),
		declaration:       decl,
		element:           element,
		componentsElement: NewElement("", "COMPONENTS"),
		attributes:        nsdict.New[*Attribute](),
		components:        nsdict.New[*Component](),
		enabled:           true,
		shared:            nsdict.New[any](),
		companion:         nsdict.New[any](),
	}
	n.root = n
	if tracker, ok := catalog.(InstanceTracker); ok {
		tracker.TrackNode(n)
	}

	for _, id := range decl.defaultComponents {
		cd, err := catalog.ComponentDeclaration(id)
		if err != nil {
			return nil, errors.Wrapf(err, "node %s: default component %s", decl.name.FQN(), id.FQN())
		}
		c, err := cd.GenerateInstance(catalog, nil)
		if err != nil {
			return nil, errors.Wrapf(err, "node %s", decl.name.FQN())
		}
		if err := n.AddComponent(c); err != nil {
			return nil, err
		}
		for _, e := range c.attributes.Entries() {
			n.attributes.Set(e.ID, e.Value)
		}
	}
	return n, nil
}

// ID returns the unique node id.
func (n *Node) ID() string { return n.id }

// Name returns the node type identity.
func (n *Node) Name() nsid.Identity { return n.declaration.name }

// Declaration returns the node type blueprint.
func (n *Node) Declaration() *NodeDeclaration { return n.declaration }

// Element returns the node's markup handle.
func (n *Node) Element() Element { return n.element }

// ComponentsElement returns the container holding component elements.
func (n *Node) ComponentsElement() *BasicElement { return n.componentsElement }

// Parent returns the parent node, or nil for a root.
func (n *Node) Parent() *Node { return n.parent }

// Root returns the root of the tree the node belongs to.
func (n *Node) Root() *Node { return n.root }

// Children returns a snapshot of the child list.
func (n *Node) Children() []*Node { return append([]*Node(nil), n.children...) }

// Index returns the position of the node in its parent's child list, or -1
// for a root.
func (n *Node) Index() int {
	if n.parent == nil {
		return -1
	}
	for i, c := range n.parent.children {
		if c == n {
			return i
		}
	}
	return -1
}

// Mounted reports whether the node is part of the live tree.
func (n *Node) Mounted() bool { return n.mounted }

// Enabled reports whether the node delivers messages.
func (n *Node) Enabled() bool { return n.enabled }

// SetEnabled toggles message delivery for the node.
func (n *Node) SetEnabled(enabled bool) { n.enabled = enabled }

// SharedObject returns the key/value store shared by every node of the tree.
func (n *Node) SharedObject() *nsdict.Dictionary[any] { return n.shared }

// Companion returns the node's private key/value store.
func (n *Node) Companion() *nsdict.Dictionary[any] { return n.companion }

// Attributes returns the attributes of the node's default components.
func (n *Node) Attributes() *nsdict.Dictionary[*Attribute] { return n.attributes }

// Attribute resolves a single node attribute.
func (n *Node) Attribute(query any) (*Attribute, error) {
	return n.attributes.Get(query)
}

// GetValue returns the current value of a node attribute.
func (n *Node) GetValue(query any) (any, error) {
	attr, err := n.attributes.Get(query)
	if err != nil {
		return nil, errors.Wrapf(err, "node %s: attribute", n.Name().FQN())
	}
	return attr.Value(), nil
}

// SetValue converts and stores a node attribute value, or reports
// ErrNotFound when the node has no such attribute.
func (n *Node) SetValue(query any, raw any) error {
	attr, err := n.attributes.Get(query)
	if err != nil {
		return errors.Wrapf(err, "node %s: attribute", n.Name().FQN())
	}
	return attr.SetValue(raw)
}

// Components returns the attached components in attachment order.
func (n *Node) Components() []*Component { return append([]*Component(nil), n.attached...) }

// Component resolves an attached component by type name. When several
// components share a type the last attached one is returned.
func (n *Node) Component(query any) (*Component, error) {
	return n.components.Get(query)
}

// AddComponent attaches c to the node. A component belongs to a single node
// for its lifetime, so attaching an owned component is an invalid operation
// that leaves both nodes unchanged. If the node is mounted, c is awoken
// immediately, otherwise it is queued until the next mount.
func (n *Node) AddComponent(c *Component) error {
	if c == nil {
		return errors.InvalidOperationf("cannot attach a nil component")
	}
	if c.node != nil {
		return errors.WithHint(
			errors.InvalidOperationf("component %s (%s) is already attached to node %s", c.name.FQN(), c.id, c.node.id),
			"a component is attached to one node only and never moves",
		)
	}

	n.componentsElement.AppendChild(c.element)
	n.components.Set(c.name, c)
	n.attached = append(n.attached, c)
	c.node = n

	if !n.mounted || !c.SendMessage(MessageAwake, nil) {
		n.unawoken = append(n.unawoken, c)
	}
	return nil
}

// AddChild inserts child at index, or appends it when index is -1. The child
// must be a detached root. The child's subtree takes the node's mounted
// state: it is mounted parent-first under a mounted node and unmounted under
// an unmounted one.
func (n *Node) AddChild(child *Node, index int) error {
	if child == nil {
		return errors.InvalidOperationf("cannot add a nil child")
	}
	if child.parent != nil {
		return errors.InvalidOperationf("node %s already has a parent; remove it first", child.Path())
	}
	if child.companion.HasExact(RootMarker) {
		return errors.InvalidOperationf("node %s is a registered tree root", child.Path())
	}
	for a := n; a != nil; a = a.parent {
		if a == child {
			return errors.InvalidOperationf("node %s cannot be added to its own subtree", child.Path())
		}
	}
	if index < -1 || index > len(n.children) {
		return errors.InvalidOperationf("insert index %d is out of range [0, %d]", index, len(n.children))
	}
	if index == -1 {
		index = len(n.children)
	}

	child.parent = n
	child.setTree(n.root, n.shared)
	n.children = append(n.children[:index], append([]*Node{child}, n.children[index:]...)...)

	if tree, ok := n.element.(ElementTree); ok && child.element != nil {
		tree.InsertChild(index, child.element)
	}

	child.SetMounted(n.mounted)
	return nil
}

// AddChildAt is AddChild with an untyped index: nil appends, an int inserts
// and anything else is an invalid operation.
func (n *Node) AddChildAt(child *Node, index any) error {
	switch i := index.(type) {
	case nil:
		return n.AddChild(child, -1)
	case int:
		return n.AddChild(child, i)
	default:
		return errors.InvalidOperationf("insert index should be a number or nil, got %T", index)
	}
}

// RemoveChild detaches child. A mounted child is unmounted first; afterwards
// it becomes the root of its own tree with a fresh shared store.
func (n *Node) RemoveChild(child *Node) error {
	if child == nil || child.parent != n {
		return errors.NotFoundf("node is not a child of %s", n.Path())
	}

	if child.mounted {
		child.SetMounted(false)
		if child.parent != n {
			// an unmount handler already detached it
			return nil
		}
	}

	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			break
		}
	}
	if tree, ok := n.element.(ElementTree); ok && child.element != nil {
		tree.RemoveChild(child.element)
	}
	child.parent = nil
	child.setTree(child, nsdict.New[any]())
	return nil
}

// Remove detaches the node from its parent. Removing a root is an invalid
// operation and leaves the tree unchanged.
func (n *Node) Remove() error {
	if n.parent == nil {
		return errors.InvalidOperationf("root node %s cannot be removed", n.Path())
	}
	return n.parent.RemoveChild(n)
}

// Destroy unmounts and detaches the node, delivers "dispose" to every
// component of the subtree, children first, and disables the subtree.
func (n *Node) Destroy() error {
	if n.parent != nil {
		if err := n.parent.RemoveChild(n); err != nil {
			return err
		}
	} else {
		n.SetMounted(false)
	}
	n.callPostOrder(func(x *Node) {
		x.SendMessage(MessageDispose, x)
		x.enabled = false
		for _, c := range x.attached {
			c.enabled = false
		}
	})
	return nil
}

func (n *Node) setTree(root *Node, shared *nsdict.Dictionary[any]) {
	n.root = root
	n.shared = shared
	for _, c := range n.children {
		c.setTree(root, shared)
	}
}

// CallRecursively calls fn for the node and its descendants, parent first.
func (n *Node) CallRecursively(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children() {
		c.CallRecursively(fn)
	}
}

func (n *Node) callPostOrder(fn func(*Node)) {
	for _, c := range n.Children() {
		c.callPostOrder(fn)
	}
	fn(n)
}

// Find returns the nodes of the subtree matching pred, in pre-order.
func (n *Node) Find(pred func(*Node) bool) []*Node {
	var found []*Node
	n.CallRecursively(func(x *Node) {
		if pred(x) {
			found = append(found, x)
		}
	})
	return found
}

// Path describes the node's position from its root, e.g.
// "goml.scene/goml.mesh[1]".
func (n *Node) Path() string {
	var segments []string
	for x := n; x != nil; x = x.parent {
		segment := x.Name().FQN()
		if x.parent != nil {
			segment = fmt.Sprintf("%s[%d]", segment, x.Index())
		}
		segments = append(segments, segment)
	}
	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}
	return strings.Join(segments, "/")
}

// String implements fmt.Stringer.
func (n *Node) String() string {
	return n.Path()
}
