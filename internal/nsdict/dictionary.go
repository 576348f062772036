package nsdict

import (
	"fmt"
	"strings"

	"github.com/vk/gomlgo/internal/errors"
	"github.com/vk/gomlgo/internal/nsid"
)

// Ref is an external markup reference, such as an element or an attribute
// node, that a name can be extracted from. An empty namespace URI makes the
// lookup a bare-name lookup.
type Ref interface {
	NamespaceURI() string
	LocalName() string
}

// Entry is a single key/value pair of a Dictionary snapshot.
type Entry[V any] struct {
	ID    nsid.Identity
	Value V
}

// Dictionary maps namespaced identities to values, preserving insertion order.
// The zero value is not usable; call New.
type Dictionary[V any] struct {
	index   map[nsid.Identity]int
	entries []Entry[V]
}

// New creates an empty Dictionary.
func New[V any]() *Dictionary[V] {
	return &Dictionary[V]{index: make(map[nsid.Identity]int)}
}

// Set stores value under id. An existing exact key keeps its position and has
// its value replaced.
func (d *Dictionary[V]) Set(id nsid.Identity, value V) {
	if i, ok := d.index[id]; ok {
		d.entries[i].Value = value
		return
	}
	d.index[id] = len(d.entries)
	d.entries = append(d.entries, Entry[V]{ID: id, Value: value})
}

// Get resolves query, which must be an nsid.Identity, a string (bare or
// fully-qualified) or a Ref.
func (d *Dictionary[V]) Get(query any) (V, error) {
	_, v, err := d.Lookup(query)
	return v, err
}

// Lookup is like Get but also returns the identity the query resolved to.
func (d *Dictionary[V]) Lookup(query any) (nsid.Identity, V, error) {
	var zero V
	var i int
	var err error

	switch q := query.(type) {
	case nsid.Identity:
		i, err = d.resolve(q.Namespace, q.Name, q.FQN())
	case *nsid.Identity:
		if q == nil {
			return nsid.Identity{}, zero, errors.InvalidOperationf("nil identity query")
		}
		i, err = d.resolve(q.Namespace, q.Name, q.FQN())
	case string:
		ns, name := nsid.Split(q)
		i, err = d.resolve(ns, name, q)
	case Ref:
		i, err = d.resolve(q.NamespaceURI(), q.LocalName(), describeRef(q))
	default:
		return nsid.Identity{}, zero, errors.InvalidOperationf("unsupported dictionary query of type %T", query)
	}
	if err != nil {
		return nsid.Identity{}, zero, err
	}
	e := d.entries[i]
	return e.ID, e.Value, nil
}

// GetIdentity resolves an identity query.
func (d *Dictionary[V]) GetIdentity(id nsid.Identity) (V, error) {
	return d.Get(id)
}

// GetName resolves a bare or fully-qualified name.
func (d *Dictionary[V]) GetName(name string) (V, error) {
	return d.Get(name)
}

// GetRef resolves the name carried by a markup reference.
func (d *Dictionary[V]) GetRef(ref Ref) (V, error) {
	return d.Get(ref)
}

// Has reports whether query resolves to exactly one entry.
func (d *Dictionary[V]) Has(query any) bool {
	_, err := d.Get(query)
	return err == nil
}

// HasExact reports whether id is stored as an exact key.
func (d *Dictionary[V]) HasExact(id nsid.Identity) bool {
	_, ok := d.index[id]
	return ok
}

// Delete removes the exact key id and reports whether it existed.
func (d *Dictionary[V]) Delete(id nsid.Identity) bool {
	i, ok := d.index[id]
	if !ok {
		return false
	}
	d.entries = append(d.entries[:i], d.entries[i+1:]...)
	delete(d.index, id)
	for j := i; j < len(d.entries); j++ {
		d.index[d.entries[j].ID] = j
	}
	return true
}

// Len returns the number of entries.
func (d *Dictionary[V]) Len() int {
	return len(d.entries)
}

// Entries returns a snapshot of all entries in insertion order.
func (d *Dictionary[V]) Entries() []Entry[V] {
	return append([]Entry[V](nil), d.entries...)
}

// Keys returns a snapshot of all identities in insertion order.
func (d *Dictionary[V]) Keys() []nsid.Identity {
	keys := make([]nsid.Identity, len(d.entries))
	for i, e := range d.entries {
		keys[i] = e.ID
	}
	return keys
}

// Values returns a snapshot of all values in insertion order.
func (d *Dictionary[V]) Values() []V {
	values := make([]V, len(d.entries))
	for i, e := range d.entries {
		values[i] = e.Value
	}
	return values
}

// Each calls fn for every entry of a snapshot taken before the first call.
func (d *Dictionary[V]) Each(fn func(id nsid.Identity, value V)) {
	for _, e := range d.Entries() {
		fn(e.ID, e.Value)
	}
}

// Clear removes all entries.
func (d *Dictionary[V]) Clear() {
	d.index = make(map[nsid.Identity]int)
	d.entries = nil
}

// Clone returns a shallow copy.
func (d *Dictionary[V]) Clone() *Dictionary[V] {
	c := New[V]()
	for _, e := range d.entries {
		c.Set(e.ID, e.Value)
	}
	return c
}

// resolve returns the entry index for (namespace, name). An empty namespace
// is a bare-name query.
func (d *Dictionary[V]) resolve(namespace, name, query string) (int, error) {
	if namespace != "" {
		if i, ok := d.index[nsid.Identity{Namespace: namespace, Name: name}]; ok {
			return i, nil
		}
	}

	var byName, bySuffix []int
	for i, e := range d.entries {
		if e.ID.Name != name {
			continue
		}
		byName = append(byName, i)
		if namespace != "" && (e.ID.Namespace == namespace || strings.HasSuffix(e.ID.Namespace, "."+namespace)) {
			bySuffix = append(bySuffix, i)
		}
	}

	candidates := byName
	if len(bySuffix) > 0 {
		candidates = bySuffix
	}

	switch len(candidates) {
	case 0:
		return -1, errors.NotFoundf("%q is not found", query)
	case 1:
		return candidates[0], nil
	default:
		fqns := make([]string, len(candidates))
		for j, i := range candidates {
			fqns[j] = d.entries[i].ID.FQN()
		}
		err := errors.Ambiguousf("%q is ambiguous: it matches %s", query, strings.Join(fqns, ", "))
		return -1, errors.WithHint(err, "use a fully-qualified name to pick one namespace")
	}
}

func describeRef(ref Ref) string {
	if ref.NamespaceURI() == "" {
		return ref.LocalName()
	}
	return fmt.Sprintf("%s.%s", ref.NamespaceURI(), ref.LocalName())
}
