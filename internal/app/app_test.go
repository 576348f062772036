package app_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vk/gomlgo/internal/app"
	"github.com/vk/gomlgo/internal/registry"
	"github.com/vk/gomlgo/internal/testutil"
	"github.com/vk/gomlgo/modules/env_vars"
	"github.com/vk/gomlgo/modules/print"
)

const greetingDoc = `
print "greeting" {
  message = "hello ${env.USER}"
  values  = { count = 2 }

  node-base "inner" {
    class = ["a", "b"]
  }
}
`

func testModules(out *bytes.Buffer) []registry.Module {
	return []registry.Module{
		&env_vars.Module{Environ: func() []string { return []string{"USER=ada"} }},
		&print.Module{Out: out},
	}
}

func TestRun_TextOutput(t *testing.T) {
	printed := &bytes.Buffer{}
	result := testutil.RunIntegrationTest(t, map[string]string{"main.hcl": greetingDoc}, app.OutputText, testModules(printed)...)
	require.NoError(t, result.Err)

	assert.Equal(t, "hello ada\n      count = 2\n", printed.String())
	assert.Equal(t, `print.print
  - goml.NodeBase enabled=true id=greeting
  - print.Print message=hello ada values=map[count:2]
  goml.node-base
    - goml.NodeBase class=[a b] enabled=true id=inner
`, result.Output)

	testutil.AssertLogContains(t, result, "Registry ready.")
	testutil.AssertLogContains(t, result, "Document mounted.")

	roots := result.App.Roots()
	require.Len(t, roots, 1)
	testutil.AssertValue(t, roots[0], "message", "hello ada")
	testutil.AssertValue(t, roots[0].Children()[0], "class", []string{"a", "b"})
}

func TestRun_YAMLOutput(t *testing.T) {
	result := testutil.RunIntegrationTest(t, map[string]string{"main.hcl": greetingDoc}, app.OutputYAML, testModules(&bytes.Buffer{})...)
	require.NoError(t, result.Err)

	var dumps []app.NodeDump
	require.NoError(t, yaml.Unmarshal([]byte(result.Output), &dumps))
	require.Len(t, dumps, 1)

	root := dumps[0]
	assert.Equal(t, "print.print", root.Node)
	assert.True(t, root.Mounted)
	require.Len(t, root.Components, 2)
	assert.Equal(t, "print.Print", root.Components[1].Component)
	assert.Equal(t, "hello ada", root.Components[1].Attributes["message"])
	assert.Equal(t, map[string]any{"count": 2}, root.Components[1].Attributes["values"])

	require.Len(t, root.Children, 1)
	assert.Equal(t, "goml.node-base", root.Children[0].Node)
	assert.Equal(t, []any{"a", "b"}, root.Children[0].Components[0].Attributes["class"])
}

func TestRun_Errors(t *testing.T) {
	testCases := []struct {
		name        string
		files       map[string]string
		errContains string
	}{
		{name: "unknown element", files: map[string]string{"a.hcl": `scene {}`}, errContains: "failed to mount document"},
		{name: "syntax error", files: map[string]string{"a.hcl": `print {`}, errContains: "failed to load document"},
		{name: "unknown variable", files: map[string]string{"a.hcl": `print { message = var.x }`}, errContains: "failed to load document"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := testutil.RunIntegrationTest(t, tc.files, app.OutputText, testModules(&bytes.Buffer{})...)
			require.Error(t, result.Err)
			assert.Contains(t, result.Err.Error(), tc.errContains)
			assert.Empty(t, result.Output)
		})
	}
}

func TestRun_EmptyDocument(t *testing.T) {
	result := testutil.RunIntegrationTest(t, map[string]string{"notes.txt": "not markup"}, app.OutputText, testModules(&bytes.Buffer{})...)
	require.NoError(t, result.Err)
	assert.Empty(t, result.Output)
	testutil.AssertLogContains(t, result, "No elements found in document")
}

func TestNewApp_ModuleRegistrationPanics(t *testing.T) {
	out := &bytes.Buffer{}
	result := testutil.RunIntegrationTest(t, map[string]string{"a.hcl": `print {}`}, app.OutputText,
		&print.Module{Out: out}, &print.Module{Out: out},
	)
	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "application startup panicked")
	assert.Contains(t, result.Err.Error(), "plugin print is already in use")
}

func TestNewConfig(t *testing.T) {
	cfg, err := app.NewConfig(app.Config{DocumentPath: "a.hcl"})
	require.NoError(t, err)
	assert.Equal(t, app.OutputText, cfg.Output)

	_, err = app.NewConfig(app.Config{})
	assert.Error(t, err)

	_, err = app.NewConfig(app.Config{DocumentPath: "a.hcl", Output: "xml"})
	assert.Error(t, err)

	_, err = app.NewConfig(app.Config{DocumentPath: "a.hcl", Modules: []string{"socketio"}})
	assert.ErrorContains(t, err, "unknown module")

	_, err = app.NewConfig(app.Config{DocumentPath: "a.hcl", Modules: app.ModuleNames()})
	assert.NoError(t, err)
}
