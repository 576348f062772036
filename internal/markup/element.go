package markup

import (
	"github.com/hashicorp/hcl/v2"

	"github.com/vk/gomlgo/internal/goml"
)

// Element is a markup element parsed from one HCL block.
type Element struct {
	namespace  string
	name       string
	attrs      []goml.Attr
	children   []goml.Element
	components []goml.Element
	rng        hcl.Range
}

var _ goml.ElementTree = (*Element)(nil)

// NamespaceURI implements goml.Element.
func (e *Element) NamespaceURI() string { return e.namespace }

// LocalName implements goml.Element.
func (e *Element) LocalName() string { return e.name }

// Attrs implements goml.Element.
func (e *Element) Attrs() []goml.Attr { return append([]goml.Attr(nil), e.attrs...) }

// Attr returns the raw value of the named attribute.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Children returns the nested node elements in source order.
func (e *Element) Children() []goml.Element { return append([]goml.Element(nil), e.children...) }

// Components returns the elements listed in the "components" block.
func (e *Element) Components() []goml.Element {
	return append([]goml.Element(nil), e.components...)
}

// Range returns the source range of the block header.
func (e *Element) Range() hcl.Range { return e.rng }

// InsertChild implements goml.ElementTree. A child that is already present
// is moved, so building a tree from its own elements leaves them in place.
func (e *Element) InsertChild(index int, child goml.Element) {
	e.RemoveChild(child)
	if index < 0 || index >= len(e.children) {
		e.children = append(e.children, child)
		return
	}
	e.children = append(e.children[:index], append([]goml.Element{child}, e.children[index:]...)...)
}

// RemoveChild implements goml.ElementTree.
func (e *Element) RemoveChild(child goml.Element) bool {
	for i, c := range e.children {
		if c == child {
			e.children = append(e.children[:i], e.children[i+1:]...)
			return true
		}
	}
	return false
}

func attr(name, value string) goml.Attr {
	return goml.Attr{Name: name, Value: value}
}
