package env_vars

import (
	"context"
	"os"
	"strings"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/gomlgo/internal/errors"
	"github.com/vk/gomlgo/internal/registry"
)

// ConverterName expands $VAR and ${VAR} references in string values.
const ConverterName = "env.Expand"

// Module implements the registry.Module interface for this package.
type Module struct {
	// Lookup overrides os.LookupEnv, mainly for tests.
	Lookup func(key string) (string, bool)
	// Environ overrides os.Environ, mainly for tests.
	Environ func() []string
}

// Name implements registry.Module.
func (m *Module) Name() string { return "env_vars" }

// Register queues the env_vars plugin.
func (m *Module) Register(r *registry.Registry) error {
	return r.Use(registry.Plugin{
		Name:     m.Name(),
		Version:  "1.0.0",
		Requires: "^1.0",
		Load: func(ctx context.Context, r *registry.Registry) error {
			return r.RegisterConverter(ConverterName, m.Expand)
		},
	})
}

// Expand is the env.Expand converter. Unset variables expand to "".
func (m *Module) Expand(raw any) (any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		return os.Expand(v, func(key string) string {
			value, _ := m.lookup(key)
			return value
		}), nil
	default:
		return nil, errors.InvalidOperationf("cannot expand %#v (%T): not a string", raw, raw)
	}
}

// Variables exposes the environment to markup expressions as "env", e.g.
// `title = "hello ${env.USER}"`.
func (m *Module) Variables() map[string]cty.Value {
	all := make(map[string]cty.Value)
	for _, e := range m.environ() {
		pair := strings.SplitN(e, "=", 2)
		if len(pair) == 2 && pair[0] != "" {
			all[pair[0]] = cty.StringVal(pair[1])
		}
	}
	return map[string]cty.Value{"env": cty.ObjectVal(all)}
}

func (m *Module) lookup(key string) (string, bool) {
	if m.Lookup != nil {
		return m.Lookup(key)
	}
	return os.LookupEnv(key)
}

func (m *Module) environ() []string {
	if m.Environ != nil {
		return m.Environ()
	}
	return os.Environ()
}
