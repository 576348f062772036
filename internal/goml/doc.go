// Package goml provides the live component tree: nodes, the components
// attached to them and the attributes those components declare.
//
// # Core Concepts
//
//   - Node: a tree element owning ordered child nodes and attached components.
//     A node becomes part of the live tree when it is mounted; mounting
//     cascades parent-first through the subtree.
//
//   - Component: a behavior unit owned by exactly one node for its whole
//     lifetime. Behavior is a table of message handlers keyed by message
//     name; a component receives "awake" once, the first time its node is
//     mounted while the component is enabled.
//
//   - Attribute: a typed, converter-backed, observable property of a
//     component. Attribute values are resolved from markup, then from the
//     node declaration's defaults, then from the attribute declaration's
//     default, always through the attribute's converter.
//
//   - Element: an opaque markup handle supplied by a front-end. The tree only
//     reads its qualified name and raw attribute values.
//
// # Lifecycle
//
// Mounting a node delivers, in order: "awake" to components of that node not
// yet awoken, "mount" to the node itself, then the same sequence to each
// child in list order. A component's awake therefore always completes before
// any descendant receives "mount".
//
// All operations are synchronous and single-threaded. Message handlers may
// mutate the tree while a traversal is running; traversals iterate over
// snapshots of child and component lists.
package goml
