package goml

import (
	"strings"

	"github.com/vk/gomlgo/internal/errors"
)

// ResolveAttributesValue initializes every attribute of every attached
// component. Each value comes from the first source that has one:
//
//  1. the component's own markup element, then the node's element, matched
//     by uppercased attribute name; empty markup values count as absent;
//  2. the node declaration's default for the attribute;
//  3. the attribute declaration's default.
//
// Values always pass through the attribute's converter. It runs once per node
// after the tree is assembled and before the first mount; the first failure
// is returned.
func (n *Node) ResolveAttributesValue() error {
	nodeMarkup := markupValues(n.element)

	for _, c := range n.Components() {
		var componentMarkup map[string]string
		if c.element != n.element {
			componentMarkup = markupValues(c.element)
		}

		for _, attr := range c.attributes.Values() {
			key := strings.ToUpper(attr.name.Name)
			if raw, ok := componentMarkup[key]; ok && raw != "" {
				if err := attr.SetValue(raw); err != nil {
					return errors.Wrapf(err, "node %s: component markup", n.Path())
				}
				continue
			}
			if raw, ok := nodeMarkup[key]; ok && raw != "" {
				if err := attr.SetValue(raw); err != nil {
					return errors.Wrapf(err, "node %s: markup", n.Path())
				}
				continue
			}

			def, err := n.declaration.defaultAttributes.Get(attr.name)
			switch {
			case err == nil:
				if err := attr.SetValue(def); err != nil {
					return errors.Wrapf(err, "node %s: node default", n.Path())
				}
				continue
			case !errors.IsNotFound(err):
				return errors.Wrapf(err, "node %s: node default for %s", n.Path(), attr.name.FQN())
			}

			if err := attr.SetValue(attr.declaration.Default); err != nil {
				return errors.Wrapf(err, "node %s: attribute default", n.Path())
			}
		}
	}
	return nil
}

// ResolveTree runs ResolveAttributesValue for the node and its descendants,
// parent first, stopping at the first failure.
func (n *Node) ResolveTree() error {
	if err := n.ResolveAttributesValue(); err != nil {
		return err
	}
	for _, child := range n.Children() {
		if err := child.ResolveTree(); err != nil {
			return err
		}
	}
	return nil
}
