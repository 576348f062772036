package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/gomlgo/internal/goml"
)

// AssertLogContains checks the captured log output of a run.
func AssertLogContains(t *testing.T, result *HarnessResult, substr string) {
	t.Helper()
	require.Contains(t, result.LogOutput, substr, "expected log output was not found")
}

// AssertValue checks the current value of a node attribute.
func AssertValue(t *testing.T, n *goml.Node, attribute string, expected any) {
	t.Helper()
	v, err := n.GetValue(attribute)
	require.NoError(t, err, "attribute %q of %s", attribute, n.Path())
	assert.Equal(t, expected, v, "attribute %q of %s", attribute, n.Path())
}
