// Package nsdict provides an ordered dictionary keyed by namespaced
// identities.
//
// Lookups accept an exact nsid.Identity, a bare name, a fully-qualified name
// or a markup reference (Ref). Every lookup follows the same precedence:
//
//  1. an exact (namespace, name) match wins;
//  2. otherwise the entries sharing the queried name are candidates. When a
//     namespace was supplied and some stored namespaces end with it, only
//     those suffix matches are candidates. A single candidate wins;
//  3. no candidate is ErrNotFound, several candidates are ErrAmbiguous.
//
// Bare names never take the exact path: "test" is ambiguous as soon as two
// namespaces hold a "test" entry.
package nsdict
