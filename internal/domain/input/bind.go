// Package input classifies raw per-frame device signals into detected
// combat inputs: primitive binds, combinations, conditionals, and the
// four-phase detection protocol that emits them.
package input

// Device is the physical polling layer the binds read from. Implementations
// query the real hardware each frame; the core never caches device state.
type Device interface {
	ActionPressed(name string) bool
	KeyPressed(key int) bool
	MouseButtonPressed(button int) bool
	JoyButtonPressed(device, button int) bool
	JoyAxisValue(device, axis int) float64
}

// BindKind identifies the physical source a bind reads
type BindKind int

const (
	BindAction BindKind = iota
	BindKey
	BindMouseButton
	BindJoyButton
	BindJoyAxis
)

// String returns the string representation of the bind kind
func (k BindKind) String() string {
	switch k {
	case BindAction:
		return "Action"
	case BindKey:
		return "Key"
	case BindMouseButton:
		return "MouseButton"
	case BindJoyButton:
		return "JoyButton"
	case BindJoyAxis:
		return "JoyAxis"
	default:
		return "Unknown"
	}
}

// Bind adapts one physical input source into pressed / just-pressed /
// just-released queries. It keeps the previous frame's pressed state to
// derive edges; Poll must be called exactly once per frame, after all
// queries for that frame.
type Bind struct {
	kind   BindKind
	device Device

	action    string
	key       int
	button    int
	joyDevice int
	axis      int
	deadzone  float64
	positive  bool

	wasPressed bool
}

// NewActionBind creates a bind over a named device action
func NewActionBind(device Device, action string) *Bind {
	return &Bind{kind: BindAction, device: device, action: action}
}

// NewKeyBind creates a bind over a keyboard key code
func NewKeyBind(device Device, key int) *Bind {
	return &Bind{kind: BindKey, device: device, key: key}
}

// NewMouseButtonBind creates a bind over a mouse button
func NewMouseButtonBind(device Device, button int) *Bind {
	return &Bind{kind: BindMouseButton, device: device, button: button}
}

// NewJoyButtonBind creates a bind over a gamepad button
func NewJoyButtonBind(device Device, joyDevice, button int) *Bind {
	return &Bind{kind: BindJoyButton, device: device, joyDevice: joyDevice, button: button}
}

// NewJoyAxisBind creates a bind over one direction of a gamepad axis.
// The bind reads pressed while the axis value, signed by positive, exceeds
// the deadzone.
func NewJoyAxisBind(device Device, joyDevice, axis int, deadzone float64, positive bool) *Bind {
	return &Bind{
		kind:      BindJoyAxis,
		device:    device,
		joyDevice: joyDevice,
		axis:      axis,
		deadzone:  deadzone,
		positive:  positive,
	}
}

// Kind returns the bind's physical source kind
func (b *Bind) Kind() BindKind {
	return b.kind
}

// IsPressed reports whether the underlying source is currently active.
// A bind without a device is permanently unpressed.
func (b *Bind) IsPressed() bool {
	if b.device == nil {
		return false
	}

	switch b.kind {
	case BindAction:
		return b.device.ActionPressed(b.action)
	case BindKey:
		return b.device.KeyPressed(b.key)
	case BindMouseButton:
		return b.device.MouseButtonPressed(b.button)
	case BindJoyButton:
		return b.device.JoyButtonPressed(b.joyDevice, b.button)
	case BindJoyAxis:
		v := b.device.JoyAxisValue(b.joyDevice, b.axis)
		if b.positive {
			return v > b.deadzone
		}
		return v < -b.deadzone
	default:
		return false
	}
}

// IsJustPressed reports a not-pressed to pressed edge this frame
func (b *Bind) IsJustPressed() bool {
	return b.IsPressed() && !b.wasPressed
}

// IsJustReleased reports a pressed to not-pressed edge this frame
func (b *Bind) IsJustReleased() bool {
	return !b.IsPressed() && b.wasPressed
}

// Poll commits the current pressed state as the previous-frame state
func (b *Bind) Poll() {
	b.wasPressed = b.IsPressed()
}
