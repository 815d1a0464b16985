package ui

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/bigfish/config"
)

func TestKeyFromName(t *testing.T) {
	tests := []struct {
		name    string
		want    int32
		wantErr bool
	}{
		{"W", rl.KeyW, false},
		{"a", rl.KeyA, false},
		{"7", int32('7'), false},
		{"UP", rl.KeyUp, false},
		{" right ", rl.KeyRight, false},
		{"kp8", rl.KeyKp8, false},
		{"", 0, true},
		{"F13", 0, true},
		{"!", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := KeyFromName(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("KeyFromName(%q) = %d, want %d", tt.name, got, tt.want)
			}
		})
	}
}

func TestNewBindingsDefaults(t *testing.T) {
	b, err := NewBindings(config.Default().Controls)
	if err != nil {
		t.Fatalf("NewBindings: %v", err)
	}
	if len(b) != 2 {
		t.Fatalf("bindings = %d, want 2", len(b))
	}

	want := Binding{Up: rl.KeyW, Down: rl.KeyS, Left: rl.KeyA, Right: rl.KeyD}
	if b[0] != want {
		t.Errorf("slot 0 = %+v, want %+v", b[0], want)
	}
	if !b.Uses(rl.KeyLeft) || b.Uses(rl.KeyM) {
		t.Error("Uses reports wrong keys")
	}
}

func TestNewBindingsRejectsUnknownKey(t *testing.T) {
	controls := []config.ControlConfig{{Up: "W", Down: "S", Left: "A", Right: "NOPE"}}
	if _, err := NewBindings(controls); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestBindingsInput(t *testing.T) {
	b, err := NewBindings(config.Default().Controls)
	if err != nil {
		t.Fatalf("NewBindings: %v", err)
	}

	held := map[int32]bool{rl.KeyW: true, rl.KeyD: true, rl.KeyDown: true}
	in := b.Input(func(key int32) bool { return held[key] })

	p1 := in.Players[0]
	if !p1.Up || !p1.Right || p1.Down || p1.Left {
		t.Errorf("player 1 = %+v", p1)
	}
	p2 := in.Players[1]
	if !p2.Down || p2.Up || p2.Left || p2.Right {
		t.Errorf("player 2 = %+v", p2)
	}
}
