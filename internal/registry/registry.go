package registry

import (
	"log/slog"

	"github.com/vk/gomlgo/internal/convert"
	"github.com/vk/gomlgo/internal/errors"
	"github.com/vk/gomlgo/internal/goml"
	"github.com/vk/gomlgo/internal/nsdict"
	"github.com/vk/gomlgo/internal/nsid"
)

// Module is the interface that all bundled modules implement to be
// registered. Register usually queues a Plugin with Use.
type Module interface {
	Name() string
	Register(r *Registry) error
}

// Registry holds the declarations, converters, root nodes and pending plugin
// tasks of a single application instance.
type Registry struct {
	logger *slog.Logger

	nodes      *nsdict.Dictionary[*goml.NodeDeclaration]
	components *nsdict.Dictionary[*goml.ComponentDeclaration]
	converters *nsdict.Dictionary[*convert.Converter]

	roots     map[string]*goml.Node
	rootOrder []string

	liveNodes      map[string]*goml.Node
	liveComponents map[string]*goml.Component
	onInitialized  []func(rootID string)

	tasks   []PluginTask
	plugins []Plugin
}

var (
	_ goml.Catalog         = (*Registry)(nil)
	_ goml.InstanceTracker = (*Registry)(nil)
)

// New creates a Registry holding the built-in converters, components and
// nodes. A nil logger discards registry logs.
func New(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	r := &Registry{logger: logger}
	r.reset()
	return r
}

// Clear drops every registration, root node, tracked instance, tree
// initialization hook and pending task, then registers
// the built-ins again.
func (r *Registry) Clear() {
	r.logger.Debug("Clearing registry.", "roots", len(r.rootOrder), "pending_tasks", len(r.tasks))
	r.reset()
}

func (r *Registry) reset() {
	r.nodes = nsdict.New[*goml.NodeDeclaration]()
	r.components = nsdict.New[*goml.ComponentDeclaration]()
	r.converters = nsdict.New[*convert.Converter]()
	r.roots = make(map[string]*goml.Node)
	r.rootOrder = nil
	r.liveNodes = make(map[string]*goml.Node)
	r.liveComponents = make(map[string]*goml.Component)
	r.onInitialized = nil
	r.tasks = nil
	r.plugins = nil

	if err := r.registerBuiltins(); err != nil {
		// The built-in set is fixed, so this only fires on a programming error.
		panic(err)
	}
}

// RegisterConverter registers fn under name.
func (r *Registry) RegisterConverter(name string, fn convert.Func) error {
	id, err := parseName("converter", name)
	if err != nil {
		return err
	}
	if fn == nil {
		return errors.InvalidOperationf("converter %s has no function", id.FQN())
	}
	if r.converters.HasExact(id) {
		return errors.InvalidOperationf("converter %s is already registered", id.FQN())
	}
	r.converters.Set(id, &convert.Converter{Name: id, Convert: fn})
	r.logger.Debug("Registering converter.", "name", id.FQN())
	return nil
}

// RegisterComponent flattens def into a declaration and registers it under
// name. A definition with a Base composes the registered base declaration.
func (r *Registry) RegisterComponent(name string, def goml.ComponentDefinition) error {
	id, err := parseName("component", name)
	if err != nil {
		return err
	}
	if r.components.HasExact(id) {
		return errors.InvalidOperationf("component %s is already registered", id.FQN())
	}

	var base *goml.ComponentDeclaration
	if def.Base != "" {
		base, err = r.components.Get(def.Base)
		if err != nil {
			return errors.Wrapf(err, "component %s: base", id.FQN())
		}
	}

	decl := goml.NewComponentDeclaration(id, def, base)
	r.components.Set(id, decl)
	r.logger.Debug("Registering component.", "name", id.FQN(), "base", def.Base, "attributes", decl.AttributeKeys())
	return nil
}

// RegisterNode flattens def into a declaration and registers it under name.
// A definition with a SuperNode inherits the registered node declaration.
func (r *Registry) RegisterNode(name string, def goml.NodeDefinition) error {
	id, err := parseName("node", name)
	if err != nil {
		return err
	}
	if r.nodes.HasExact(id) {
		return errors.InvalidOperationf("node %s is already registered", id.FQN())
	}

	var super *goml.NodeDeclaration
	if def.SuperNode != "" {
		super, err = r.nodes.Get(def.SuperNode)
		if err != nil {
			return errors.Wrapf(err, "node %s: super node", id.FQN())
		}
	}

	decl, err := goml.NewNodeDeclaration(id, def, super)
	if err != nil {
		return err
	}
	r.nodes.Set(id, decl)
	r.logger.Debug("Registering node.", "name", id.FQN(), "super", def.SuperNode, "components", len(decl.DefaultComponents()))
	return nil
}

// ComponentDeclaration resolves a registered component declaration.
func (r *Registry) ComponentDeclaration(query any) (*goml.ComponentDeclaration, error) {
	return r.components.Get(query)
}

// NodeDeclaration resolves a registered node declaration.
func (r *Registry) NodeDeclaration(query any) (*goml.NodeDeclaration, error) {
	return r.nodes.Get(query)
}

// Converter resolves a registered converter.
func (r *Registry) Converter(query any) (*convert.Converter, error) {
	return r.converters.Get(query)
}

// Components returns the registered component names in registration order.
func (r *Registry) Components() []nsid.Identity { return r.components.Keys() }

// Nodes returns the registered node names in registration order.
func (r *Registry) Nodes() []nsid.Identity { return r.nodes.Keys() }

// Converters returns the registered converter names in registration order.
func (r *Registry) Converters() []nsid.Identity { return r.converters.Keys() }

// NewNode instantiates the node type resolved by query. A nil element gets
// an in-memory one.
func (r *Registry) NewNode(query any, element goml.Element) (*goml.Node, error) {
	decl, err := r.nodes.Get(query)
	if err != nil {
		return nil, errors.Wrap(err, "node declaration")
	}
	return goml.NewNode(decl, element, r)
}

// NewComponent instantiates the component type resolved by query.
func (r *Registry) NewComponent(query any, element goml.Element) (*goml.Component, error) {
	decl, err := r.components.Get(query)
	if err != nil {
		return nil, errors.Wrap(err, "component declaration")
	}
	return decl.GenerateInstance(r, element)
}

// TrackNode implements goml.InstanceTracker.
func (r *Registry) TrackNode(n *goml.Node) { r.liveNodes[n.ID()] = n }

// TrackComponent implements goml.InstanceTracker.
func (r *Registry) TrackComponent(c *goml.Component) { r.liveComponents[c.ID()] = c }

// NodeByID returns a node created through the registry.
func (r *Registry) NodeByID(id string) (*goml.Node, error) {
	n, ok := r.liveNodes[id]
	if !ok {
		return nil, errors.NotFoundf("node %q is not known to the registry", id)
	}
	return n, nil
}

// ComponentByID returns a component created through the registry.
func (r *Registry) ComponentByID(id string) (*goml.Component, error) {
	c, ok := r.liveComponents[id]
	if !ok {
		return nil, errors.NotFoundf("component %q is not known to the registry", id)
	}
	return c, nil
}

func parseName(kind, name string) (nsid.Identity, error) {
	id, err := nsid.Parse(name)
	if err != nil {
		return nsid.Identity{}, errors.Mark(errors.Wrapf(err, "%s name", kind), errors.ErrInvalidOperation)
	}
	return id, nil
}
