package goml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/gomlgo/internal/nsid"
)

func TestCheckTreeConstraints(t *testing.T) {
	cat := newTestCatalog()
	node := func(name string, constraints ...TreeConstraint) *Node {
		decl, err := NewNodeDeclaration(nsid.MustParse(name), NodeDefinition{Constraints: constraints}, nil)
		require.NoError(t, err)
		n, err := NewNode(decl, nil, cat)
		require.NoError(t, err)
		return n
	}

	t.Run("satisfied", func(t *testing.T) {
		root := node("scene", RequireRoot(), AllowChildren("mesh"), MaxChildren(2))
		require.NoError(t, root.AddChild(node("mesh", RequireParent("scene")), -1))
		assert.Empty(t, root.CheckTreeConstraints())
	})

	t.Run("every violation is reported", func(t *testing.T) {
		root := node("scene", AllowChildren("mesh"), MaxChildren(1))
		inner := node("scene", RequireRoot())
		orphan := node("mesh", RequireParent("scene"))
		require.NoError(t, root.AddChild(node("mesh", RequireParent("scene")), -1))
		require.NoError(t, root.AddChild(inner, -1))

		messages := root.CheckTreeConstraints()
		require.Len(t, messages, 3)
		assert.Contains(t, messages[0], "child goml.scene is not one of [mesh]")
		assert.Contains(t, messages[1], "has 2 children, at most 1 allowed")
		assert.Equal(t, "goml.scene/goml.scene[1]: must be the root node", messages[2])

		assert.Equal(t, []string{"goml.mesh: must have a parent of type [scene]"}, orphan.CheckTreeConstraints())
	})

	t.Run("qualified parent names", func(t *testing.T) {
		root := node("gl.scene")
		child := node("mesh", RequireParent("gl.scene"))
		require.NoError(t, root.AddChild(child, -1))
		assert.Empty(t, root.CheckTreeConstraints())

		other := node("scene")
		stray := node("mesh", RequireParent("gl.scene"))
		require.NoError(t, other.AddChild(stray, -1))
		assert.Equal(t, []string{"goml.scene/goml.mesh[0]: parent goml.scene is not one of [gl.scene]"}, other.CheckTreeConstraints())
	})
}
