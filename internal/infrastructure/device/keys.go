package device

import (
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// KeyFromName converts a canonical key name (letter, digit, F-key, or
// named key) to an ebiten key code. Names are case-insensitive.
func KeyFromName(name string) (int, bool) {
	canonical := strings.ToUpper(strings.TrimSpace(name))
	if canonical == "" {
		return 0, false
	}

	if len(canonical) == 1 {
		ch := canonical[0]
		switch {
		case ch >= 'A' && ch <= 'Z':
			return int(ebiten.KeyA) + int(ch-'A'), true
		case ch >= '0' && ch <= '9':
			return int(ebiten.KeyDigit0) + int(ch-'0'), true
		}
		return 0, false
	}

	if strings.HasPrefix(canonical, "F") {
		if n, err := strconv.Atoi(canonical[1:]); err == nil && n >= 1 && n <= 12 {
			return int(ebiten.KeyF1) + n - 1, true
		}
	}

	switch canonical {
	case "SPACE":
		return int(ebiten.KeySpace), true
	case "ENTER":
		return int(ebiten.KeyEnter), true
	case "ESCAPE":
		return int(ebiten.KeyEscape), true
	case "TAB":
		return int(ebiten.KeyTab), true
	case "BACKSPACE":
		return int(ebiten.KeyBackspace), true
	case "SHIFT", "LSHIFT":
		return int(ebiten.KeyShiftLeft), true
	case "RSHIFT":
		return int(ebiten.KeyShiftRight), true
	case "CTRL", "LCTRL":
		return int(ebiten.KeyControlLeft), true
	case "RCTRL":
		return int(ebiten.KeyControlRight), true
	case "ALT", "LALT":
		return int(ebiten.KeyAltLeft), true
	case "RALT":
		return int(ebiten.KeyAltRight), true
	case "UP":
		return int(ebiten.KeyArrowUp), true
	case "DOWN":
		return int(ebiten.KeyArrowDown), true
	case "LEFT":
		return int(ebiten.KeyArrowLeft), true
	case "RIGHT":
		return int(ebiten.KeyArrowRight), true
	default:
		return 0, false
	}
}

// MouseButtonFromName converts a mouse button name to an ebiten mouse
// button code
func MouseButtonFromName(name string) (int, bool) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "LEFT", "MOUSE1":
		return int(ebiten.MouseButtonLeft), true
	case "RIGHT", "MOUSE2":
		return int(ebiten.MouseButtonRight), true
	case "MIDDLE", "MOUSE3":
		return int(ebiten.MouseButtonMiddle), true
	default:
		return 0, false
	}
}
