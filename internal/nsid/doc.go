/*
Package nsid provides the namespaced identity used to name nodes, components,
attributes and converters.

An identity is a (namespace, name) pair written in its fully-qualified form as
`namespace.name`. The namespace is everything before the last dot, so
namespaces may themselves contain dots, e.g. `gl.grimoire.core.Transform`.
A bare name such as `Transform` is placed in DefaultNamespace.

Identities are plain comparable values: two identities are the same key iff
both fields match case-sensitively.
*/
package nsid
