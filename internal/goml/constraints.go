package goml

import (
	"fmt"
	"strings"

	"github.com/vk/gomlgo/internal/errors"
	"github.com/vk/gomlgo/internal/nsid"
)

// TreeConstraint checks a structural rule for a node. A non-nil error
// describes the violation.
type TreeConstraint func(n *Node) error

// CheckTreeConstraints evaluates the constraints of every node in the
// subtree and returns one message per violation, in pre-order.
func (n *Node) CheckTreeConstraints() []string {
	var messages []string
	n.CallRecursively(func(x *Node) {
		for _, check := range x.declaration.constraints {
			if err := check(x); err != nil {
				messages = append(messages, fmt.Sprintf("%s: %v", x.Path(), err))
			}
		}
	})
	return messages
}

// RequireParent requires the node's parent to be one of the named node types.
func RequireParent(names ...string) TreeConstraint {
	allowed := newNameSet(names)
	return func(n *Node) error {
		if n.parent == nil {
			return errors.Newf("must have a parent of type %v", names)
		}
		if !allowed.Has(n.parent.Name()) {
			return errors.Newf("parent %s is not one of %v", n.parent.Name().FQN(), names)
		}
		return nil
	}
}

// RequireRoot requires the node to be the root of its tree.
func RequireRoot() TreeConstraint {
	return func(n *Node) error {
		if n.parent != nil {
			return errors.New("must be the root node")
		}
		return nil
	}
}

// MaxChildren limits the number of direct children.
func MaxChildren(limit int) TreeConstraint {
	return func(n *Node) error {
		if len(n.children) > limit {
			return errors.Newf("has %d children, at most %d allowed", len(n.children), limit)
		}
		return nil
	}
}

// AllowChildren restricts direct children to the named node types.
func AllowChildren(names ...string) TreeConstraint {
	allowed := newNameSet(names)
	return func(n *Node) error {
		for _, c := range n.children {
			if !allowed.Has(c.Name()) {
				return errors.Newf("child %s is not one of %v", c.Name().FQN(), names)
			}
		}
		return nil
	}
}

// nameSet matches node type names. Qualified names match exactly, bare names
// match the local name in any namespace.
type nameSet struct {
	qualified map[nsid.Identity]bool
	bare      map[string]bool
}

func newNameSet(names []string) nameSet {
	set := nameSet{qualified: make(map[nsid.Identity]bool), bare: make(map[string]bool)}
	for _, name := range names {
		if strings.Contains(name, ".") {
			set.qualified[nsid.MustParse(name)] = true
			continue
		}
		set.bare[name] = true
	}
	return set
}

func (s nameSet) Has(id nsid.Identity) bool {
	return s.qualified[id] || s.bare[id.Name]
}
