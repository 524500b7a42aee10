// Package device adapts ebiten's keyboard, mouse, and gamepad polling to
// the input core's Device interface.
package device

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Ebiten polls ebiten for physical input state. Named actions are bound to
// one or more keys and read pressed while any of them is down.
type Ebiten struct {
	actions map[string][]ebiten.Key
}

// NewEbiten creates an ebiten-backed device
func NewEbiten() *Ebiten {
	return &Ebiten{actions: make(map[string][]ebiten.Key)}
}

// BindAction maps an action name to the keys that activate it
func (d *Ebiten) BindAction(name string, keys ...ebiten.Key) {
	d.actions[name] = append(d.actions[name], keys...)
}

// ActionPressed reports whether any key bound to the action is down
func (d *Ebiten) ActionPressed(name string) bool {
	for _, k := range d.actions[name] {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

// KeyPressed reports whether the key code is down
func (d *Ebiten) KeyPressed(key int) bool {
	return ebiten.IsKeyPressed(ebiten.Key(key))
}

// MouseButtonPressed reports whether the mouse button is down
func (d *Ebiten) MouseButtonPressed(button int) bool {
	return ebiten.IsMouseButtonPressed(ebiten.MouseButton(button))
}

// JoyButtonPressed reports whether the standard-layout gamepad button is
// down
func (d *Ebiten) JoyButtonPressed(device, button int) bool {
	return ebiten.IsStandardGamepadButtonPressed(ebiten.GamepadID(device), ebiten.StandardGamepadButton(button))
}

// JoyAxisValue returns the standard-layout gamepad axis value in [-1, 1]
func (d *Ebiten) JoyAxisValue(device, axis int) float64 {
	return ebiten.StandardGamepadAxisValue(ebiten.GamepadID(device), ebiten.StandardGamepadAxis(axis))
}
