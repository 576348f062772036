package registry

import (
	"github.com/vk/gomlgo/internal/errors"
	"github.com/vk/gomlgo/internal/goml"
)

// AddRootNode checks the tree constraints of every node under root and, if
// all hold, marks root as a registered root, mounts it, broadcasts
// "treeInitialized" and runs the OnTreeInitialized hooks. All constraint
// failures are reported together in one errors.ConstraintViolations and the
// tree is left unmounted.
func (r *Registry) AddRootNode(root *goml.Node) (string, error) {
	if root == nil {
		return "", errors.InvalidOperationf("root node must not be nil")
	}
	if root.Parent() != nil {
		return "", errors.InvalidOperationf("node %s has a parent and cannot be a root", root.Path())
	}
	if _, ok := r.roots[root.ID()]; ok {
		return "", errors.InvalidOperationf("node %s is already a registered root", root.ID())
	}

	if err := errors.NewConstraintViolations(root.CheckTreeConstraints()); err != nil {
		r.logger.Debug("Root node rejected by tree constraints.", "root", root.Path(), "error", err)
		return "", err
	}

	root.Companion().Set(goml.RootMarker, root.ID())
	r.roots[root.ID()] = root
	r.rootOrder = append(r.rootOrder, root.ID())

	root.SetMounted(true)
	root.BroadcastMessage(goml.MessageTreeInitialized, root)
	r.logger.Debug("Root node mounted.", "id", root.ID(), "root", root.Path())
	for _, fn := range append(([]func(string))(nil), r.onInitialized...) {
		fn(root.ID())
	}
	return root.ID(), nil
}

// OnTreeInitialized registers fn to run after every successful AddRootNode,
// once the tree is mounted and "treeInitialized" was broadcast. Hooks run in
// registration order.
func (r *Registry) OnTreeInitialized(fn func(rootID string)) {
	r.onInitialized = append(r.onInitialized, fn)
}

// RootNode returns the registered root with the given id.
func (r *Registry) RootNode(id string) (*goml.Node, error) {
	root, ok := r.roots[id]
	if !ok {
		return nil, errors.NotFoundf("root node %q is not registered", id)
	}
	return root, nil
}

// RootNodes returns the registered roots in registration order.
func (r *Registry) RootNodes() []*goml.Node {
	roots := make([]*goml.Node, 0, len(r.rootOrder))
	for _, id := range r.rootOrder {
		roots = append(roots, r.roots[id])
	}
	return roots
}
