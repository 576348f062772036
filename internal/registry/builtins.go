package registry

import (
	"github.com/vk/gomlgo/internal/convert"
	"github.com/vk/gomlgo/internal/goml"
)

const (
	// NodeBaseComponent is the component every built-in node type carries.
	NodeBaseComponent = "NodeBase"
	// NodeBaseNode is the node type other node types usually inherit from.
	NodeBaseNode = "node-base"
)

func (r *Registry) registerBuiltins() error {
	for _, b := range convert.Builtins() {
		if err := r.RegisterConverter(b.Name, b.Func); err != nil {
			return err
		}
	}
	if err := r.RegisterComponent(NodeBaseComponent, nodeBase()); err != nil {
		return err
	}
	return r.RegisterNode(NodeBaseNode, goml.NodeDefinition{
		DefaultComponents: []string{NodeBaseComponent},
	})
}

// nodeBase declares the id, class and enabled attributes. Once awoken, the
// enabled attribute drives the node's enabled flag.
func nodeBase() goml.ComponentDefinition {
	return goml.ComponentDefinition{
		Attributes: map[string]goml.AttributeDeclaration{
			"id":      {Converter: "String"},
			"class":   {Converter: "StringArray"},
			"enabled": {Converter: "Boolean", Default: true},
		},
		Handlers: map[string]goml.MessageHandler{
			goml.MessageAwake: func(c *goml.Component, _ any) {
				attr, err := c.Attribute("enabled")
				if err != nil {
					return
				}
				attr.Watch(func(value, _ any, _ *goml.Attribute) {
					if enabled, ok := value.(bool); ok {
						c.Node().SetEnabled(enabled)
					}
				}, true)
			},
		},
	}
}
