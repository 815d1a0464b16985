package ui

import (
	"testing"

	"github.com/pthm-cable/bigfish/game"
)

func TestScoreLine(t *testing.T) {
	tests := []struct {
		name string
		p    game.PlayerView
		want string
	}{
		{"alive", game.PlayerView{Name: "Dimi", Score: 4}, "Dimi: 4"},
		{"dead", game.PlayerView{Name: "Alice", Score: 12, Dead: true}, "Alice: 12 (DEAD)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScoreLine(tt.p); got != tt.want {
				t.Errorf("ScoreLine = %q, want %q", got, tt.want)
			}
		})
	}
}
