package print

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/vk/gomlgo/internal/ctxlog"
	"github.com/vk/gomlgo/internal/goml"
	"github.com/vk/gomlgo/internal/registry"
)

const (
	// ComponentName is the component printing its attributes.
	ComponentName = "print.Print"
	// NodeName is a node type carrying the Print component.
	NodeName = "print.print"
)

// Module implements the registry.Module interface for this package.
type Module struct {
	// Out receives the printed lines. Defaults to os.Stdout.
	Out io.Writer
}

// Name implements registry.Module.
func (m *Module) Name() string { return "print" }

// Register queues the print plugin.
func (m *Module) Register(r *registry.Registry) error {
	return r.Use(registry.Plugin{
		Name:     m.Name(),
		Version:  "1.0.0",
		Requires: "^1.0",
		Load:     m.load,
	})
}

func (m *Module) load(ctx context.Context, r *registry.Registry) error {
	logger := ctxlog.FromContext(ctx)
	out := m.Out
	if out == nil {
		out = os.Stdout
	}

	err := r.RegisterComponent(ComponentName, goml.ComponentDefinition{
		Attributes: map[string]goml.AttributeDeclaration{
			"message": {Converter: "String"},
			"values":  {Converter: "Object"},
		},
		Handlers: map[string]goml.MessageHandler{
			goml.MessageTreeInitialized: func(c *goml.Component, _ any) {
				logger.Info("Printing component values.", "node", c.Node().Path())
				printValues(out, c)
			},
		},
	})
	if err != nil {
		return err
	}
	return r.RegisterNode(NodeName, goml.NodeDefinition{
		SuperNode:         registry.NodeBaseNode,
		DefaultComponents: []string{ComponentName},
	})
}

// printValues writes the message followed by the values map in sorted key
// order.
func printValues(out io.Writer, c *goml.Component) {
	message, _ := c.GetValue("message")
	if message == nil {
		message = c.Node().Path()
	}
	fmt.Fprintf(out, "%v\n", message)

	raw, _ := c.GetValue("values")
	values, ok := raw.(map[string]any)
	if !ok {
		if raw != nil {
			fmt.Fprintf(out, "      %v\n", raw)
		}
		return
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Fprintf(out, "      %s = %v\n", k, values[k])
	}
}
