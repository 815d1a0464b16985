package ui

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/bigfish/config"
	"github.com/pthm-cable/bigfish/game"
)

// namedKeys maps config key names that are not single letters or digits.
var namedKeys = map[string]int32{
	"UP":        rl.KeyUp,
	"DOWN":      rl.KeyDown,
	"LEFT":      rl.KeyLeft,
	"RIGHT":     rl.KeyRight,
	"SPACE":     rl.KeySpace,
	"ENTER":     rl.KeyEnter,
	"TAB":       rl.KeyTab,
	"LSHIFT":    rl.KeyLeftShift,
	"RSHIFT":    rl.KeyRightShift,
	"LCTRL":     rl.KeyLeftControl,
	"RCTRL":     rl.KeyRightControl,
	"SEMICOLON": rl.KeySemicolon,
	"SLASH":     rl.KeySlash,
	"KP8":       rl.KeyKp8,
	"KP2":       rl.KeyKp2,
	"KP4":       rl.KeyKp4,
	"KP6":       rl.KeyKp6,
}

// KeyFromName resolves a config key name (case-insensitive) to a key code.
// Letters and digits map to their ASCII codes.
func KeyFromName(name string) (int32, error) {
	n := strings.ToUpper(strings.TrimSpace(name))
	if len(n) == 1 {
		c := n[0]
		if (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			return int32(c), nil
		}
	}
	if k, ok := namedKeys[n]; ok {
		return k, nil
	}
	return 0, fmt.Errorf("unknown key %q", name)
}

// Binding holds the resolved key codes of one player.
type Binding struct {
	Up, Down, Left, Right int32
}

// Bindings resolves every player's controls, indexed by slot.
type Bindings []Binding

// NewBindings resolves the control names from the config.
func NewBindings(controls []config.ControlConfig) (Bindings, error) {
	b := make(Bindings, len(controls))
	for i, c := range controls {
		names := [4]string{c.Up, c.Down, c.Left, c.Right}
		var codes [4]int32
		for j, name := range names {
			code, err := KeyFromName(name)
			if err != nil {
				return nil, fmt.Errorf("controls[%d]: %w", i, err)
			}
			codes[j] = code
		}
		b[i] = Binding{Up: codes[0], Down: codes[1], Left: codes[2], Right: codes[3]}
	}
	return b, nil
}

// Uses reports whether any player is bound to key.
func (b Bindings) Uses(key int32) bool {
	for _, bind := range b {
		if bind.Up == key || bind.Down == key || bind.Left == key || bind.Right == key {
			return true
		}
	}
	return false
}

// Input builds the tick input from a key-state function.
func (b Bindings) Input(down func(key int32) bool) game.Input {
	var in game.Input
	for i, bind := range b {
		if i >= len(in.Players) {
			break
		}
		in.Players[i] = game.Directions{
			Up:    down(bind.Up),
			Down:  down(bind.Down),
			Left:  down(bind.Left),
			Right: down(bind.Right),
		}
	}
	return in
}

// Poll reads the held keys for this frame.
func (b Bindings) Poll() game.Input {
	return b.Input(rl.IsKeyDown)
}
