package print

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/gomlgo/internal/ctxlog"
	"github.com/vk/gomlgo/internal/goml"
	"github.com/vk/gomlgo/internal/registry"
)

func TestPrintOnTreeInitialized(t *testing.T) {
	out := &bytes.Buffer{}
	logs := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(logs, nil))
	ctx := ctxlog.WithLogger(context.Background(), logger)

	r := registry.New(logger)
	m := &Module{Out: out}
	require.NoError(t, m.Register(r))
	require.NoError(t, r.ResolvePlugins(ctx))

	el := goml.NewElement("", "print",
		goml.Attr{Name: "message", Value: "Printing input"},
		goml.Attr{Name: "values", Value: `{ b = "2", a = 1 }`},
	)
	n, err := r.NewNode("print", el)
	require.NoError(t, err)
	require.NoError(t, n.ResolveAttributesValue())
	assert.Empty(t, out.String(), "nothing is printed before the tree is initialized")

	_, err = r.AddRootNode(n)
	require.NoError(t, err)
	assert.Equal(t, "Printing input\n      a = 1\n      b = 2\n", out.String())
	assert.Contains(t, logs.String(), "Printing component values.")
}

func TestPrintDefaultsToPath(t *testing.T) {
	out := &bytes.Buffer{}
	r := registry.New(nil)
	require.NoError(t, (&Module{Out: out}).Register(r))
	require.NoError(t, r.ResolvePlugins(context.Background()))

	n, err := r.NewNode(NodeName, nil)
	require.NoError(t, err)
	_, err = r.AddRootNode(n)
	require.NoError(t, err)
	assert.Equal(t, "print.print\n", out.String())
}
