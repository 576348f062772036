package goml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/gomlgo/internal/errors"
)

func TestComponent_AttachOnce(t *testing.T) {
	cat := newTestCatalog()
	decl := cat.component("Tag", ComponentDefinition{})
	first := cat.node(t, "first", NodeDefinition{})
	second := cat.node(t, "second", NodeDefinition{})

	c, err := decl.GenerateInstance(cat, nil)
	require.NoError(t, err)
	require.NoError(t, c.Attach(first))

	err = c.Attach(second)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidOperation(err))
	assert.NotEmpty(t, errors.GetAllHints(err))

	assert.Same(t, first, c.Node())
	assert.Empty(t, second.Components())
	assert.Equal(t, []*Component{c}, first.Components())
	assert.Equal(t, []Element{c.Element()}, first.ComponentsElement().Children())
}

func TestComponent_AwakeRetry(t *testing.T) {
	cat := newTestCatalog()
	rec := &recorder{}
	decl := cat.component("Recorder", ComponentDefinition{Handlers: rec.handlers(MessageAwake)})
	n := cat.node(t, "host", NodeDefinition{})

	c, err := decl.GenerateInstance(cat, nil)
	require.NoError(t, err)
	c.SetEnabled(false)
	require.NoError(t, n.AddComponent(c))

	n.SetMounted(true)
	assert.Empty(t, rec.events)
	assert.Equal(t, []*Component{c}, n.AwaitingAwake(), "disabled components stay queued")

	n.SetMounted(false)
	c.SetEnabled(true)
	n.SetMounted(true)
	assert.Equal(t, []string{"host:awake"}, rec.events)
	assert.Empty(t, n.AwaitingAwake())

	n.SetMounted(false)
	n.SetMounted(true)
	assert.Equal(t, []string{"host:awake"}, rec.events, "awake is delivered at most once")
}

func TestComponent_AttachToMountedNode(t *testing.T) {
	cat := newTestCatalog()
	rec := &recorder{}
	decl := cat.component("Recorder", ComponentDefinition{Handlers: rec.handlers(MessageAwake, MessageMount)})
	n := cat.node(t, "host", NodeDefinition{})
	n.SetMounted(true)

	c, err := decl.GenerateInstance(cat, nil)
	require.NoError(t, err)
	require.NoError(t, n.AddComponent(c))
	assert.Equal(t, []string{"host:awake"}, rec.events, "mount is not replayed")
	assert.Empty(t, n.AwaitingAwake())

	disabled, err := decl.GenerateInstance(cat, nil)
	require.NoError(t, err)
	disabled.SetEnabled(false)
	require.NoError(t, n.AddComponent(disabled))
	assert.Equal(t, []*Component{disabled}, n.AwaitingAwake())
}

func TestComponent_Constructor(t *testing.T) {
	type counter struct{ hits int }

	cat := newTestCatalog()
	decl := cat.component("Counter", ComponentDefinition{
		Constructor: func() any { return &counter{} },
		Handlers: map[string]MessageHandler{
			"hit": func(c *Component, args any) { c.State.(*counter).hits++ },
		},
	})

	a, err := decl.GenerateInstance(cat, nil)
	require.NoError(t, err)
	b, err := decl.GenerateInstance(cat, nil)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID(), b.ID())

	assert.True(t, a.SendMessage("hit", nil))
	assert.True(t, a.SendMessage("$hit", nil))
	assert.Equal(t, 2, a.State.(*counter).hits)
	assert.Equal(t, 0, b.State.(*counter).hits, "state is per instance")

	a.SetEnabled(false)
	assert.False(t, a.SendMessage("hit", nil))
	assert.Equal(t, 2, a.State.(*counter).hits)
}

func TestComponent_Values(t *testing.T) {
	cat := newTestCatalog()
	decl := cat.component("Label", ComponentDefinition{Attributes: map[string]AttributeDeclaration{
		"text":  {Converter: "String", Default: "hello"},
		"lines": {Converter: "Integer"},
	}})
	c, err := decl.GenerateInstance(cat, nil)
	require.NoError(t, err)

	v, err := c.GetValue("text")
	require.NoError(t, err)
	assert.Equal(t, "hello", v)

	v, err = c.GetValue("lines")
	require.NoError(t, err)
	assert.Nil(t, v, "missing default converts to nil")

	require.NoError(t, c.SetValue("goml.lines", "3"))
	v, _ = c.GetValue("lines")
	assert.Equal(t, 3, v)

	assert.True(t, errors.IsNotFound(c.SetValue("color", "red")))
}

func TestComponent_UnknownConverter(t *testing.T) {
	cat := newTestCatalog()
	decl := cat.component("Broken", ComponentDefinition{Attributes: map[string]AttributeDeclaration{
		"tint": {Converter: "Color"},
	}})
	_, err := decl.GenerateInstance(cat, nil)
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}
