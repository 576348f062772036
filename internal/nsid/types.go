package nsid

// DefaultNamespace is the namespace given to bare names.
const DefaultNamespace = "goml"

// Identity is the canonical (namespace, name) pair.
type Identity struct {
	Namespace string
	Name      string
}

// New creates an identity. An empty namespace is normalized to DefaultNamespace.
func New(namespace, name string) Identity {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return Identity{Namespace: namespace, Name: name}
}

// NS returns a helper that builds identities inside a single namespace.
//
//	core := nsid.NS("gl.core")
//	core("Transform") // gl.core.Transform
func NS(namespace string) func(name string) Identity {
	return func(name string) Identity {
		return New(namespace, name)
	}
}

// FQN returns the fully-qualified form `namespace.name`.
func (id Identity) FQN() string {
	if id.Namespace == "" {
		return id.Name
	}
	return id.Namespace + "." + id.Name
}

// String implements fmt.Stringer.
func (id Identity) String() string {
	return id.FQN()
}

// IsZero reports whether the identity was never set.
func (id Identity) IsZero() bool {
	return id.Namespace == "" && id.Name == ""
}
