package device

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
)

func TestKeyFromName(t *testing.T) {
	tests := []struct {
		name string
		want ebiten.Key
	}{
		{"A", ebiten.KeyA},
		{"j", ebiten.KeyJ},
		{"z", ebiten.KeyZ},
		{"0", ebiten.KeyDigit0},
		{"7", ebiten.KeyDigit7},
		{"F1", ebiten.KeyF1},
		{"f12", ebiten.KeyF12},
		{"space", ebiten.KeySpace},
		{" Enter ", ebiten.KeyEnter},
		{"SHIFT", ebiten.KeyShiftLeft},
		{"rctrl", ebiten.KeyControlRight},
		{"up", ebiten.KeyArrowUp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := KeyFromName(tt.name)
			assert.True(t, ok)
			assert.Equal(t, int(tt.want), got)
		})
	}

	for _, bad := range []string{"", "?", "F13", "F0", "NUMPAD5"} {
		_, ok := KeyFromName(bad)
		assert.False(t, ok, bad)
	}
}

func TestMouseButtonFromName(t *testing.T) {
	got, ok := MouseButtonFromName("left")
	assert.True(t, ok)
	assert.Equal(t, int(ebiten.MouseButtonLeft), got)

	got, ok = MouseButtonFromName("MOUSE2")
	assert.True(t, ok)
	assert.Equal(t, int(ebiten.MouseButtonRight), got)

	_, ok = MouseButtonFromName("back")
	assert.False(t, ok)
}
