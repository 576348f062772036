package goml

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/gomlgo/internal/convert"
	"github.com/vk/gomlgo/internal/nsdict"
	"github.com/vk/gomlgo/internal/nsid"
)

// testCatalog is a minimal Catalog backed by dictionaries.
type testCatalog struct {
	components *nsdict.Dictionary[*ComponentDeclaration]
	converters *nsdict.Dictionary[*convert.Converter]
}

func newTestCatalog() *testCatalog {
	c := &testCatalog{
		components: nsdict.New[*ComponentDeclaration](),
		converters: nsdict.New[*convert.Converter](),
	}
	for _, b := range convert.Builtins() {
		id := nsid.New("", b.Name)
		c.converters.Set(id, &convert.Converter{Name: id, Convert: b.Func})
	}
	return c
}

func (c *testCatalog) ComponentDeclaration(query any) (*ComponentDeclaration, error) {
	return c.components.Get(query)
}

func (c *testCatalog) Converter(query any) (*convert.Converter, error) {
	return c.converters.Get(query)
}

func (c *testCatalog) component(name string, def ComponentDefinition) *ComponentDeclaration {
	var base *ComponentDeclaration
	if def.Base != "" {
		base, _ = c.components.Get(def.Base)
	}
	d := NewComponentDeclaration(nsid.MustParse(name), def, base)
	c.components.Set(d.Name(), d)
	return d
}

func (c *testCatalog) node(t *testing.T, name string, def NodeDefinition) *Node {
	t.Helper()
	decl, err := NewNodeDeclaration(nsid.MustParse(name), def, nil)
	require.NoError(t, err)
	n, err := NewNode(decl, nil, c)
	require.NoError(t, err)
	return n
}

// recorder collects "<node>:<message>" events.
type recorder struct {
	events []string
}

func (r *recorder) handlers(messages ...string) map[string]MessageHandler {
	hs := make(map[string]MessageHandler, len(messages))
	for _, m := range messages {
		m := m
		hs[m] = func(c *Component, args any) {
			r.events = append(r.events, c.Node().Name().Name+":"+m)
		}
	}
	return hs
}

func (r *recorder) reset() {
	r.events = nil
}
