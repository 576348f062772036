package goml

import (
	"strings"
)

// Attr is a raw markup attribute.
type Attr struct {
	Namespace string
	Name      string
	Value     string
}

// NamespaceURI implements nsdict.Ref.
func (a Attr) NamespaceURI() string { return a.Namespace }

// LocalName implements nsdict.Ref.
func (a Attr) LocalName() string { return a.Name }

// Element is a markup element handle supplied by a front-end.
type Element interface {
	NamespaceURI() string
	LocalName() string
	Attrs() []Attr
}

// ElementTree is implemented by elements whose child list the tree keeps in
// sync with node children.
type ElementTree interface {
	Element
	InsertChild(index int, child Element)
	RemoveChild(child Element) bool
}

// BasicElement is an in-memory Element used when no front-end element exists.
type BasicElement struct {
	namespace string
	name      string
	attrs     []Attr
	children  []Element
}

// NewElement creates an in-memory element.
func NewElement(namespace, name string, attrs ...Attr) *BasicElement {
	return &BasicElement{namespace: namespace, name: name, attrs: attrs}
}

// NamespaceURI implements Element.
func (e *BasicElement) NamespaceURI() string { return e.namespace }

// LocalName implements Element.
func (e *BasicElement) LocalName() string { return e.name }

// Attrs implements Element.
func (e *BasicElement) Attrs() []Attr { return append([]Attr(nil), e.attrs...) }

// Children returns a snapshot of the child elements.
func (e *BasicElement) Children() []Element { return append([]Element(nil), e.children...) }

// SetAttr sets or replaces the attribute with the given name.
func (e *BasicElement) SetAttr(name, value string) {
	for i := range e.attrs {
		if e.attrs[i].Name == name {
			e.attrs[i].Value = value
			return
		}
	}
	e.attrs = append(e.attrs, Attr{Name: name, Value: value})
}

// AppendChild adds child at the end of the child list.
func (e *BasicElement) AppendChild(child Element) {
	e.children = append(e.children, child)
}

// InsertChild implements ElementTree. Out of range indexes append.
func (e *BasicElement) InsertChild(index int, child Element) {
	if index < 0 || index >= len(e.children) {
		e.children = append(e.children, child)
		return
	}
	e.children = append(e.children[:index], append([]Element{child}, e.children[index:]...)...)
}

// RemoveChild implements ElementTree.
func (e *BasicElement) RemoveChild(child Element) bool {
	for i, c := range e.children {
		if c == child {
			e.children = append(e.children[:i], e.children[i+1:]...)
			return true
		}
	}
	return false
}

// markupValues indexes raw attribute values by uppercased local name.
func markupValues(el Element) map[string]string {
	if el == nil {
		return nil
	}
	attrs := el.Attrs()
	values := make(map[string]string, len(attrs))
	for _, a := range attrs {
		values[strings.ToUpper(a.Name)] = a.Value
	}
	return values
}
