package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evalAll(t *testing.T, c *Conditions) map[string]bool {
	t.Helper()
	out := make(map[string]bool)
	require.NoError(t, c.Eval(func(name string, value bool) { out[name] = value }))
	return out
}

func TestConditions_EvalTracksFacts(t *testing.T) {
	c := NewConditions()
	c.DeclareFact("height", 0.0)
	c.DeclareFact("on_ground", true)

	require.NoError(t, c.Define("airborne", "!on_ground && height > 1.0"))
	require.NoError(t, c.Define("grounded", "on_ground"))

	got := evalAll(t, c)
	assert.False(t, got["airborne"])
	assert.True(t, got["grounded"])

	require.NoError(t, c.SetFact("on_ground", false))
	require.NoError(t, c.SetFact("height", 2.5))

	got = evalAll(t, c)
	assert.True(t, got["airborne"])
	assert.False(t, got["grounded"])
}

func TestConditions_StdlibModules(t *testing.T) {
	c := NewConditions()
	c.DeclareFact("vx", -3.0)

	require.NoError(t, c.Define("moving", `import("math").abs(vx) > 0.5`))

	got := evalAll(t, c)
	assert.True(t, got["moving"])
}

func TestConditions_DefineErrors(t *testing.T) {
	c := NewConditions()
	c.DeclareFact("x", 1)
	require.NoError(t, c.Define("ok", "x > 0"))

	assert.Error(t, c.Define("", "true"), "empty name")
	assert.Error(t, c.Define("ok", "true"), "duplicate name")
	assert.Error(t, c.Define("broken", "x >"), "parse error")
}

func TestConditions_SetUndeclaredFact(t *testing.T) {
	c := NewConditions()
	assert.Error(t, c.SetFact("ghost", 1))
}
