package goml

import (
	"github.com/vk/gomlgo/internal/convert"
	"github.com/vk/gomlgo/internal/errors"
	"github.com/vk/gomlgo/internal/nsid"
)

// AttributeDeclaration describes an attribute of a component type.
type AttributeDeclaration struct {
	// Converter names the registered converter, bare or fully-qualified.
	Converter string
	// Default is the raw value used when neither markup nor the node
	// declaration provide one.
	Default any
}

// Watcher observes attribute value changes.
type Watcher func(newValue, oldValue any, attr *Attribute)

// Attribute is a typed property owned by exactly one component.
type Attribute struct {
	name        nsid.Identity
	declaration AttributeDeclaration
	converter   *convert.Converter
	component   *Component
	value       any

	watchers []*watcher
}

type watcher struct {
	fn Watcher
}

// GenerateAttributeForComponent creates the attribute key of owner, bound to
// decl's converter and default, and registers it in owner's attributes. The
// initial value is the converted declaration default.
func GenerateAttributeForComponent(key string, decl AttributeDeclaration, owner *Component, catalog Catalog) (*Attribute, error) {
	if owner == nil {
		return nil, errors.InvalidOperationf("attribute %q needs an owner component", key)
	}
	name := nsid.New(owner.name.Namespace, key)

	conv, err := catalog.Converter(decl.Converter)
	if err != nil {
		return nil, errors.Wrapf(err, "attribute %s: converter %q", name.FQN(), decl.Converter)
	}

	attr := &Attribute{
		name:        name,
		declaration: decl,
		converter:   conv,
		component:   owner,
	}
	value, err := conv.Apply(decl.Default)
	if err != nil {
		return nil, errors.Wrapf(err, "attribute %s: default value", name.FQN())
	}
	attr.value = value

	owner.attributes.Set(name, attr)
	return attr, nil
}

// Name returns the attribute identity.
func (a *Attribute) Name() nsid.Identity { return a.name }

// Declaration returns the declaration the attribute was generated from.
func (a *Attribute) Declaration() AttributeDeclaration { return a.declaration }

// Converter returns the converter bound to the attribute.
func (a *Attribute) Converter() *convert.Converter { return a.converter }

// Component returns the owning component.
func (a *Attribute) Component() *Component { return a.component }

// Value returns the current converted value.
func (a *Attribute) Value() any { return a.value }

// SetValue converts raw and stores the result, notifying watchers. On a
// conversion failure the previous value is kept.
func (a *Attribute) SetValue(raw any) error {
	value, err := a.converter.Apply(raw)
	if err != nil {
		return errors.Wrapf(err, "attribute %s", a.name.FQN())
	}
	old := a.value
	a.value = value
	for _, w := range append([]*watcher(nil), a.watchers...) {
		w.fn(value, old, a)
	}
	return nil
}

// Watch registers fn for value changes. When immediate is true fn is also
// called once right away with the current value. The returned function
// removes the watcher.
func (a *Attribute) Watch(fn Watcher, immediate bool) (unwatch func()) {
	w := &watcher{fn: fn}
	a.watchers = append(a.watchers, w)
	if immediate {
		fn(a.value, nil, a)
	}
	return func() {
		for i, existing := range a.watchers {
			if existing == w {
				a.watchers = append(a.watchers[:i], a.watchers[i+1:]...)
				return
			}
		}
	}
}
