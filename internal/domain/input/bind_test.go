package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeDevice is an in-memory device for tests
type fakeDevice struct {
	actions map[string]bool
	keys    map[int]bool
	mouse   map[int]bool
	joyBtns map[[2]int]bool
	axes    map[[2]int]float64
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{
		actions: make(map[string]bool),
		keys:    make(map[int]bool),
		mouse:   make(map[int]bool),
		joyBtns: make(map[[2]int]bool),
		axes:    make(map[[2]int]float64),
	}
}

func (d *fakeDevice) ActionPressed(name string) bool { return d.actions[name] }
func (d *fakeDevice) KeyPressed(key int) bool        { return d.keys[key] }
func (d *fakeDevice) MouseButtonPressed(b int) bool  { return d.mouse[b] }
func (d *fakeDevice) JoyButtonPressed(dev, b int) bool {
	return d.joyBtns[[2]int{dev, b}]
}
func (d *fakeDevice) JoyAxisValue(dev, axis int) float64 {
	return d.axes[[2]int{dev, axis}]
}

func TestBind_EdgeDetection(t *testing.T) {
	dev := newFakeDevice()
	b := NewKeyBind(dev, 7)

	assert.False(t, b.IsPressed())
	assert.False(t, b.IsJustPressed())

	dev.keys[7] = true
	assert.True(t, b.IsPressed())
	assert.True(t, b.IsJustPressed())
	assert.False(t, b.IsJustReleased())

	b.Poll()
	assert.True(t, b.IsPressed())
	assert.False(t, b.IsJustPressed(), "edge must clear after poll")

	dev.keys[7] = false
	assert.False(t, b.IsPressed())
	assert.True(t, b.IsJustReleased())

	b.Poll()
	assert.False(t, b.IsJustReleased())
}

func TestBind_Kinds(t *testing.T) {
	dev := newFakeDevice()
	dev.actions["jump"] = true
	dev.keys[3] = true
	dev.mouse[0] = true
	dev.joyBtns[[2]int{1, 2}] = true

	tests := []struct {
		name    string
		bind    *Bind
		kind    BindKind
		pressed bool
	}{
		{"action", NewActionBind(dev, "jump"), BindAction, true},
		{"action unbound", NewActionBind(dev, "crouch"), BindAction, false},
		{"key", NewKeyBind(dev, 3), BindKey, true},
		{"mouse", NewMouseButtonBind(dev, 0), BindMouseButton, true},
		{"joy button", NewJoyButtonBind(dev, 1, 2), BindJoyButton, true},
		{"joy button other pad", NewJoyButtonBind(dev, 0, 2), BindJoyButton, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.bind.Kind())
			assert.Equal(t, tt.pressed, tt.bind.IsPressed())
		})
	}
}

func TestBind_JoyAxisDeadzone(t *testing.T) {
	dev := newFakeDevice()

	tests := []struct {
		name     string
		value    float64
		positive bool
		pressed  bool
	}{
		{"inside deadzone positive", 0.3, true, false},
		{"past deadzone positive", 0.7, true, true},
		{"wrong sign positive", -0.9, true, false},
		{"past deadzone negative", -0.7, false, true},
		{"inside deadzone negative", -0.3, false, false},
		{"wrong sign negative", 0.9, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev.axes[[2]int{0, 0}] = tt.value
			b := NewJoyAxisBind(dev, 0, 0, 0.5, tt.positive)
			assert.Equal(t, tt.pressed, b.IsPressed())
		})
	}
}

func TestBind_NilDevice(t *testing.T) {
	b := NewKeyBind(nil, 1)
	assert.False(t, b.IsPressed())
	assert.False(t, b.IsJustPressed())
	assert.False(t, b.IsJustReleased())
	b.Poll()
	assert.False(t, b.IsJustReleased())
}

func TestBindKind_String(t *testing.T) {
	tests := []struct {
		kind     BindKind
		expected string
	}{
		{BindAction, "Action"},
		{BindKey, "Key"},
		{BindMouseButton, "MouseButton"},
		{BindJoyButton, "JoyButton"},
		{BindJoyAxis, "JoyAxis"},
		{BindKind(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.kind.String())
		})
	}
}
