// Package registry provides the central "glue" between declarations and
// live trees.
//
// The Registry stores the node declarations, component declarations and
// converters that markup names refer to, tracks the root nodes it mounted,
// and runs plugin tasks that extend those catalogs. Each App owns its own
// Registry, so tests never share state.
//
// Registration happens once at startup, before any tree is built. Names are
// fully-qualified or bare; bare names land in the default namespace and are
// resolved with the dictionary lookup rules of package nsdict.
package registry
