package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	keyA = iota + 1
	keyB
	keyC
	keyD
)

// collector records every emitted detection
type collector struct {
	events []DetectedInput
}

func (c *collector) add(in DetectedInput) { c.events = append(c.events, in) }

func (c *collector) reset() { c.events = nil }

// presses returns the identifiers of collected press events, in order
func (c *collector) presses() []string {
	var ids []string
	for _, ev := range c.events {
		if ev.Pressed {
			ids = append(ids, ev.ID)
		}
	}
	return ids
}

func newTestEngine(t *testing.T, dev *fakeDevice) (*Engine, *collector) {
	t.Helper()
	e := NewEngine(0.03)
	require.NoError(t, e.Bind("a", NewKeyBind(dev, keyA)))
	require.NoError(t, e.Bind("b", NewKeyBind(dev, keyB)))
	c := &collector{}
	e.Subscribe(c.add)
	return e, c
}

func TestEngine_RegistrationErrors(t *testing.T) {
	dev := newFakeDevice()

	setup := func(t *testing.T) *Engine {
		e := NewEngine(0)
		require.NoError(t, e.Bind("a", NewKeyBind(dev, keyA)))
		require.NoError(t, e.Bind("b", NewKeyBind(dev, keyB)))
		require.NoError(t, e.RegisterCombination("ab", []string{"a", "b"}, Synchronous, false))
		require.NoError(t, e.RegisterConditional("cond", "a", nil))
		return e
	}

	tests := []struct {
		name     string
		register func(e *Engine) error
	}{
		{"empty bind id", func(e *Engine) error {
			return e.Bind("", NewKeyBind(dev, keyC))
		}},
		{"nil bind", func(e *Engine) error {
			return e.Bind("c", nil)
		}},
		{"bind id reused by bind", func(e *Engine) error {
			return e.Bind("a", NewKeyBind(dev, keyC))
		}},
		{"bind id reused by combination", func(e *Engine) error {
			return e.Bind("ab", NewKeyBind(dev, keyC))
		}},
		{"bind id reused by conditional", func(e *Engine) error {
			return e.Bind("cond", NewKeyBind(dev, keyC))
		}},
		{"combination id reused", func(e *Engine) error {
			return e.RegisterCombination("a", []string{"a", "b"}, Synchronous, false)
		}},
		{"combination references itself", func(e *Engine) error {
			return e.RegisterCombination("c", []string{"a", "c"}, Synchronous, false)
		}},
		{"combination under-sized", func(e *Engine) error {
			return e.RegisterCombination("c", []string{"a"}, Synchronous, false)
		}},
		{"combination component unbound", func(e *Engine) error {
			return e.RegisterCombination("c", []string{"a", "missing"}, Synchronous, false)
		}},
		{"combination component is a combination", func(e *Engine) error {
			return e.RegisterCombination("c", []string{"a", "ab"}, Synchronous, false)
		}},
		{"combination component is a conditional", func(e *Engine) error {
			return e.RegisterCombination("c", []string{"a", "cond"}, Synchronous, false)
		}},
		{"conditional id reused", func(e *Engine) error {
			return e.RegisterConditional("ab", "a", nil)
		}},
		{"conditional default unregistered", func(e *Engine) error {
			return e.RegisterConditional("c", "missing", nil)
		}},
		{"conditional references itself", func(e *Engine) error {
			return e.RegisterConditional("c", "c", nil)
		}},
		{"conditional case references itself", func(e *Engine) error {
			return e.RegisterConditional("c", "a", []ConditionalCase{{Condition: "x", InputID: "c"}})
		}},
		{"conditional case references conditional", func(e *Engine) error {
			return e.RegisterConditional("c", "a", []ConditionalCase{{Condition: "x", InputID: "cond"}})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := setup(t)
			assert.Error(t, tt.register(e))
		})
	}
}

func TestEngine_FailedRegistrationLeavesNoTrace(t *testing.T) {
	dev := newFakeDevice()
	e := NewEngine(0)
	require.NoError(t, e.Bind("a", NewKeyBind(dev, keyA)))

	require.Error(t, e.RegisterCombination("combo", []string{"a", "missing"}, Synchronous, false))

	// the failed identifier stays free
	require.NoError(t, e.Bind("combo", NewKeyBind(dev, keyB)))
}

func TestEngine_PrimitivePressAndRelease(t *testing.T) {
	dev := newFakeDevice()
	e, c := newTestEngine(t, dev)

	dev.keys[keyA] = true
	e.Update(0)

	require.Len(t, c.events, 1)
	assert.Equal(t, "a", c.events[0].ID)
	assert.True(t, c.events[0].Pressed)
	assert.Equal(t, 0.0, c.events[0].At)
	require.Len(t, c.events[0].Binds, 1)
	assert.True(t, c.events[0].Binds[0].Pressed)
	assert.True(t, e.IsPressed("a"))

	// held presses do not re-emit
	c.reset()
	e.Update(0.1)
	assert.Empty(t, c.events)

	dev.keys[keyA] = false
	e.Update(0.4)

	require.Len(t, c.events, 1)
	release := c.events[0]
	assert.False(t, release.Pressed)
	assert.Equal(t, "a", release.ID)
	assert.InDelta(t, 0.5, release.Held, 1e-9)
	assert.False(t, e.IsPressed("a"))
}

func TestEngine_OrderedCombination(t *testing.T) {
	dev := newFakeDevice()
	e, c := newTestEngine(t, dev)
	require.NoError(t, e.RegisterCombination("ab", []string{"a", "b"}, Ordered, false))

	dev.keys[keyA] = true
	e.Update(0)
	assert.Equal(t, []string{"a"}, c.presses())

	c.reset()
	dev.keys[keyB] = true
	e.Update(0.02)

	// only the combination emits; a and b emit nothing this frame
	assert.Equal(t, []string{"ab"}, c.presses())
	assert.True(t, e.IsPressed("ab"))
}

func TestEngine_OrderedCombination_OrderViolated(t *testing.T) {
	dev := newFakeDevice()
	e, c := newTestEngine(t, dev)
	require.NoError(t, e.RegisterCombination("ab", []string{"a", "b"}, Ordered, false))

	dev.keys[keyB] = true
	e.Update(0)
	c.reset()

	dev.keys[keyA] = true
	e.Update(0.02)

	// the combination does not fire, and a still emits independently
	assert.Equal(t, []string{"a"}, c.presses())
	assert.False(t, e.IsPressed("ab"))
}

func TestEngine_OrderedCombination_TooSlow(t *testing.T) {
	dev := newFakeDevice()
	e, c := newTestEngine(t, dev)
	require.NoError(t, e.RegisterCombination("ab", []string{"a", "b"}, Ordered, false))

	dev.keys[keyA] = true
	e.Update(0)
	c.reset()

	dev.keys[keyB] = true
	e.Update(0.1)

	assert.Equal(t, []string{"b"}, c.presses())
	assert.False(t, e.IsPressed("ab"))
}

func TestEngine_SynchronousCombination(t *testing.T) {
	dev := newFakeDevice()
	e, c := newTestEngine(t, dev)
	require.NoError(t, e.RegisterCombination("ab", []string{"a", "b"}, Synchronous, false))

	// same-frame press in either declaration order satisfies synchronous
	dev.keys[keyB] = true
	dev.keys[keyA] = true
	e.Update(0)

	assert.Equal(t, []string{"ab"}, c.presses())
}

func TestEngine_SynchronousCombination_MeanPairwiseGap(t *testing.T) {
	dev := newFakeDevice()
	e, c := newTestEngine(t, dev)
	require.NoError(t, e.Bind("c", NewKeyBind(dev, keyC)))
	require.NoError(t, e.RegisterCombination("abc", []string{"a", "b", "c"}, Synchronous, false))

	// stamps 0, 0.02, 0.04: the total spread exceeds the 0.03 tolerance
	// but the mean consecutive gap 0.02 does not
	dev.keys[keyA] = true
	e.Update(0)
	dev.keys[keyB] = true
	e.Update(0.02)
	c.reset()
	dev.keys[keyC] = true
	e.Update(0.02)

	assert.Equal(t, []string{"abc"}, c.presses())
}

func TestEngine_CombinationRelease(t *testing.T) {
	dev := newFakeDevice()
	e, c := newTestEngine(t, dev)
	require.NoError(t, e.RegisterCombination("ab", []string{"a", "b"}, Synchronous, false))

	dev.keys[keyA] = true
	dev.keys[keyB] = true
	e.Update(0)
	c.reset()

	dev.keys[keyA] = false
	e.Update(0.05)

	var released []string
	for _, ev := range c.events {
		if !ev.Pressed {
			released = append(released, ev.ID)
		}
	}
	assert.Equal(t, []string{"a", "ab"}, released)
	assert.Empty(t, c.presses(), "held component stays absorbed without release propagation")
	assert.False(t, e.IsPressed("ab"))
	assert.True(t, e.IsPressed("b"))
}

func TestEngine_ReleasePropagate(t *testing.T) {
	dev := newFakeDevice()
	e, c := newTestEngine(t, dev)
	require.NoError(t, e.RegisterCombination("ab", []string{"a", "b"}, Synchronous, true))

	dev.keys[keyA] = true
	dev.keys[keyB] = true
	e.Update(0)
	c.reset()

	dev.keys[keyA] = false
	e.Update(0.05)

	// the still-held component reads as freshly pressed at the break time
	assert.Equal(t, []string{"b"}, c.presses())
	var press DetectedInput
	for _, ev := range c.events {
		if ev.Pressed {
			press = ev
		}
	}
	assert.Equal(t, 0.05, press.At)
}

func TestEngine_IgnoreSetClearsOnRelease(t *testing.T) {
	dev := newFakeDevice()
	e, c := newTestEngine(t, dev)
	require.NoError(t, e.RegisterCombination("ab", []string{"a", "b"}, Synchronous, false))

	dev.keys[keyA] = true
	dev.keys[keyB] = true
	e.Update(0)

	dev.keys[keyA] = false
	dev.keys[keyB] = false
	e.Update(0.05)
	c.reset()

	// a fresh solo press emits again
	dev.keys[keyA] = true
	e.Update(0.05)
	assert.Equal(t, []string{"a"}, c.presses())
}

func TestEngine_Conditional_EmitsOwnEvents(t *testing.T) {
	dev := newFakeDevice()
	e, c := newTestEngine(t, dev)
	require.NoError(t, e.RegisterConditional("attack", "a", []ConditionalCase{
		{Condition: "crouching", InputID: "b"},
	}))

	dev.keys[keyA] = true
	e.Update(0)
	assert.Equal(t, []string{"a", "attack"}, c.presses())

	c.reset()
	dev.keys[keyA] = false
	e.Update(0.2)

	var released []string
	for _, ev := range c.events {
		if !ev.Pressed {
			released = append(released, ev.ID)
		}
	}
	assert.Equal(t, []string{"a", "attack"}, released)
}

func TestEngine_Conditional_SelectionChangesNextTick(t *testing.T) {
	dev := newFakeDevice()
	e, c := newTestEngine(t, dev)
	require.NoError(t, e.RegisterConditional("attack", "a", []ConditionalCase{
		{Condition: "crouching", InputID: "b"},
	}))

	e.Update(0)
	assert.Equal(t, "a", e.CurrentInput("attack"))

	// a condition flipped between frames retargets only after the next tick
	e.SetCondition("crouching", true)
	assert.Equal(t, "a", e.CurrentInput("attack"))

	// this tick still detects on the old selection
	dev.keys[keyB] = true
	e.Update(0.016)
	assert.Equal(t, []string{"b"}, c.presses())
	assert.Equal(t, "b", e.CurrentInput("attack"))

	// next tick the new selection is live: the held b now reads pressed
	c.reset()
	e.Update(0.016)
	assert.Equal(t, []string{"attack"}, c.presses())
}

func TestEngine_Conditions(t *testing.T) {
	e := NewEngine(0)

	e.SetCondition("airborne", true)
	assert.True(t, e.Condition("airborne"))
	assert.False(t, e.Condition("unknown"))

	e.SetConditions(map[string]bool{"grounded": true})
	assert.False(t, e.Condition("airborne"))
	assert.True(t, e.Condition("grounded"))

	e.ClearConditions()
	assert.False(t, e.Condition("grounded"))
}

func TestEngine_UnknownQueries(t *testing.T) {
	e := NewEngine(0)
	assert.False(t, e.IsPressed("nope"))
	assert.Equal(t, "", e.CurrentInput("nope"))
}

// stubMatcher reports a fixed match whenever a configured id is pressed
type stubMatcher struct {
	trigger string
	match   Match
	fed     []string
}

func (m *stubMatcher) Feed(in DetectedInput) []Match {
	m.fed = append(m.fed, in.ID)
	if in.Pressed && in.ID == m.trigger {
		return []Match{m.match}
	}
	return nil
}

func TestEngine_MatcherSeesEventsBeforeObservers(t *testing.T) {
	dev := newFakeDevice()
	e, c := newTestEngine(t, dev)
	m := &stubMatcher{
		trigger: "b",
		match:   Match{Name: "double", Sequence: []string{"a", "b"}},
	}
	e.SetMatcher(m)

	dev.keys[keyA] = true
	e.Update(0)
	dev.keys[keyB] = true
	e.Update(0.05)

	assert.Equal(t, []string{"a", "b"}, m.fed)

	// the match is published after its completing button event
	require.Len(t, c.events, 3)
	assert.Equal(t, "b", c.events[1].ID)
	seq := c.events[2]
	assert.Equal(t, KindSequence, seq.Kind)
	assert.Equal(t, "double", seq.ID)
	assert.True(t, seq.Pressed)
	assert.Equal(t, []string{"a", "b"}, seq.Sequence)
}
