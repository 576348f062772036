package env_vars

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/gomlgo/internal/errors"
	"github.com/vk/gomlgo/internal/registry"
)

func testModule() *Module {
	env := map[string]string{"HOME": "/home/ada", "SHELL": "/bin/sh"}
	return &Module{
		Lookup: func(key string) (string, bool) {
			v, ok := env[key]
			return v, ok
		},
		Environ: func() []string {
			return []string{"HOME=/home/ada", "SHELL=/bin/sh", "EMPTY=", "=C:=C:\\"}
		},
	}
}

func TestExpand(t *testing.T) {
	m := testModule()

	testCases := []struct {
		name     string
		input    any
		expected any
	}{
		{name: "nil", input: nil, expected: nil},
		{name: "plain", input: "no vars", expected: "no vars"},
		{name: "dollar", input: "$HOME/bin", expected: "/home/ada/bin"},
		{name: "braces", input: "${SHELL} -c", expected: "/bin/sh -c"},
		{name: "unset", input: "[$MISSING]", expected: "[]"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := m.Expand(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}

	_, err := m.Expand(42)
	assert.True(t, errors.IsInvalidOperation(err))
}

func TestVariables(t *testing.T) {
	vars := testModule().Variables()
	env := vars["env"]
	require.True(t, env.Type().IsObjectType())
	assert.Equal(t, cty.StringVal("/home/ada"), env.GetAttr("HOME"))
	assert.Equal(t, cty.StringVal(""), env.GetAttr("EMPTY"))
	assert.False(t, env.Type().HasAttribute(""))
}

func TestRegister(t *testing.T) {
	r := registry.New(nil)
	require.NoError(t, testModule().Register(r))
	require.NoError(t, r.ResolvePlugins(context.Background()))

	conv, err := r.Converter("Expand")
	require.NoError(t, err)
	got, err := conv.Apply("$HOME")
	require.NoError(t, err)
	assert.Equal(t, "/home/ada", got)
}
