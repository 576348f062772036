// Package loader builds node trees from markup elements.
package loader

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"

	"github.com/vk/gomlgo/internal/ctxlog"
	"github.com/vk/gomlgo/internal/errors"
	"github.com/vk/gomlgo/internal/goml"
	"github.com/vk/gomlgo/internal/markup"
	"github.com/vk/gomlgo/internal/registry"
)

// Source is an element that also lists nested node elements and component
// elements. Elements that do not implement it build leaf nodes with default
// components only.
type Source interface {
	goml.Element
	Children() []goml.Element
	Components() []goml.Element
}

// Loader resolves element names against a registry.
type Loader struct {
	registry *registry.Registry
}

// New returns a Loader backed by r.
func New(r *registry.Registry) *Loader {
	return &Loader{registry: r}
}

// Build creates the detached node tree for el and resolves the attribute
// values of every node. The tree is not mounted.
func (l *Loader) Build(ctx context.Context, el goml.Element) (*goml.Node, error) {
	root, err := l.build(ctx, el)
	if err != nil {
		return nil, err
	}
	if err := root.ResolveTree(); err != nil {
		return nil, errors.Wrap(err, "resolving attributes")
	}
	return root, nil
}

// Mount builds the tree for el and registers it as a root node, which
// checks tree constraints and mounts it.
func (l *Loader) Mount(ctx context.Context, el goml.Element) (*goml.Node, error) {
	root, err := l.Build(ctx, el)
	if err != nil {
		return nil, errors.Wrapf(err, "mounting %s", describe(el))
	}
	id, err := l.registry.AddRootNode(root)
	if err != nil {
		return nil, errors.Wrapf(err, "mounting %s", describe(el))
	}
	ctxlog.FromContext(ctx).Debug("Tree mounted.", "root", root.Path(), "id", id)
	return root, nil
}

// MountDocument mounts every root of doc in order and stops at the first
// failure.
func (l *Loader) MountDocument(ctx context.Context, doc *markup.Document) ([]*goml.Node, error) {
	ctx = ctxlog.With(ctx, "files", doc.Files)
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Mounting document.", "roots", len(doc.Roots))

	roots := make([]*goml.Node, 0, len(doc.Roots))
	for _, el := range doc.Roots {
		root, err := l.Mount(ctx, el)
		if err != nil {
			return roots, err
		}
		roots = append(roots, root)
	}
	logger.Info("Document mounted.", "roots", len(roots))
	return roots, nil
}

func (l *Loader) build(ctx context.Context, el goml.Element) (*goml.Node, error) {
	node, err := l.registry.NewNode(el, el)
	if err != nil {
		return nil, errors.Wrapf(err, "element %s", describe(el))
	}

	src, ok := el.(Source)
	if !ok {
		return node, nil
	}

	for _, compEl := range src.Components() {
		c, err := l.registry.NewComponent(compEl, compEl)
		if err != nil {
			return nil, errors.Wrapf(err, "component %s", describe(compEl))
		}
		if err := node.AddComponent(c); err != nil {
			return nil, err
		}
	}

	for _, childEl := range src.Children() {
		child, err := l.build(ctx, childEl)
		if err != nil {
			return nil, err
		}
		if err := node.AddChild(child, -1); err != nil {
			return nil, errors.Wrapf(err, "element %s", describe(childEl))
		}
	}

	ctxlog.FromContext(ctx).Debug("Node built.", "node", node.Name().FQN(), "components", len(node.Components()), "children", len(node.Children()))
	return node, nil
}

// describe names an element for error messages, with its source position
// when known.
func describe(el goml.Element) string {
	name := el.LocalName()
	if ns := el.NamespaceURI(); ns != "" {
		name = ns + "." + name
	}
	if r, ok := el.(interface{ Range() hcl.Range }); ok {
		return fmt.Sprintf("%s (%s)", name, r.Range())
	}
	return name
}
