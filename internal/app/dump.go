package app

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vk/gomlgo/internal/goml"
	"github.com/vk/gomlgo/internal/nsid"
)

// NodeDump is the serializable view of a mounted node.
type NodeDump struct {
	Node       string          `yaml:"node"`
	Enabled    bool            `yaml:"enabled"`
	Mounted    bool            `yaml:"mounted"`
	Components []ComponentDump `yaml:"components,omitempty"`
	Children   []NodeDump      `yaml:"children,omitempty"`
}

// ComponentDump is the serializable view of an attached component.
type ComponentDump struct {
	Component  string         `yaml:"component"`
	Enabled    bool           `yaml:"enabled"`
	Attributes map[string]any `yaml:"attributes,omitempty"`
}

// DumpNode captures n and its subtree.
func DumpNode(n *goml.Node) NodeDump {
	d := NodeDump{
		Node:    n.Name().FQN(),
		Enabled: n.Enabled(),
		Mounted: n.Mounted(),
	}
	for _, c := range n.Components() {
		cd := ComponentDump{Component: c.Name().FQN(), Enabled: c.Enabled()}
		for _, attr := range c.Attributes().Values() {
			if attr.Value() == nil {
				continue
			}
			if cd.Attributes == nil {
				cd.Attributes = make(map[string]any)
			}
			cd.Attributes[attr.Name().Name] = dumpValue(attr.Value())
		}
		d.Components = append(d.Components, cd)
	}
	for _, child := range n.Children() {
		d.Children = append(d.Children, DumpNode(child))
	}
	return d
}

func dumpValue(v any) any {
	switch v := v.(type) {
	case nsid.Identity:
		return v.FQN()
	case fmt.Stringer:
		return v.String()
	default:
		return v
	}
}

func (a *App) dump(roots []*goml.Node) error {
	dumps := make([]NodeDump, 0, len(roots))
	for _, root := range roots {
		dumps = append(dumps, DumpNode(root))
	}
	if a.config.Output == OutputYAML {
		return writeYAML(a.outW, dumps)
	}
	return writeText(a.outW, dumps)
}

func writeYAML(w io.Writer, dumps []NodeDump) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(dumps); err != nil {
		return err
	}
	return enc.Close()
}

// writeText prints one line per node and per component, indented by depth:
//
//	goml.scene
//	  - goml.NodeBase enabled=true id=main
func writeText(w io.Writer, dumps []NodeDump) error {
	var b strings.Builder
	for _, d := range dumps {
		writeTextNode(&b, d, 0)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeTextNode(b *strings.Builder, d NodeDump, depth int) {
	indent := strings.Repeat("  ", depth)
	b.WriteString(indent + d.Node)
	if !d.Enabled {
		b.WriteString(" (disabled)")
	}
	b.WriteByte('\n')

	for _, c := range d.Components {
		b.WriteString(indent + "  - " + c.Component)
		keys := make([]string, 0, len(c.Attributes))
		for k := range c.Attributes {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(b, " %s=%v", k, c.Attributes[k])
		}
		b.WriteByte('\n')
	}
	for _, child := range d.Children {
		writeTextNode(b, child, depth+1)
	}
}
