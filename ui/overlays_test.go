package ui

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/bigfish/config"
	"github.com/pthm-cable/bigfish/telemetry"
)

func TestOverlayToggle(t *testing.T) {
	r := NewOverlayRegistry()

	if r.IsEnabled(OverlayHitboxes) {
		t.Fatal("overlays start disabled")
	}
	if !r.Toggle(OverlayHitboxes) || !r.IsEnabled(OverlayHitboxes) {
		t.Error("toggle should enable")
	}
	if r.Toggle(OverlayHitboxes) {
		t.Error("second toggle should disable")
	}
	if r.Toggle("missing") {
		t.Error("unknown overlay toggled on")
	}
}

func TestOverlayExclusive(t *testing.T) {
	r := NewOverlayRegistry()
	r.Register(OverlayDescriptor{ID: "alt_colors", Name: "Alt", Category: "visual", Exclusive: []OverlayID{OverlayModeColors}})

	r.SetEnabled(OverlayModeColors, true)
	r.Toggle("alt_colors")
	if r.IsEnabled(OverlayModeColors) {
		t.Error("exclusive overlay left enabled")
	}
}

func TestOverlayHandleKeyPress(t *testing.T) {
	r := NewOverlayRegistry()

	id, on, ok := r.HandleKeyPress(rl.KeyM)
	if !ok || id != OverlayModeColors || !on {
		t.Errorf("HandleKeyPress(M) = %v, %v, %v", id, on, ok)
	}
	if _, _, ok := r.HandleKeyPress(rl.KeyZ); ok {
		t.Error("Z should not toggle anything")
	}
}

func TestOverlayKeysAvoidDefaultBindings(t *testing.T) {
	b, err := NewBindings(config.Default().Controls)
	if err != nil {
		t.Fatalf("NewBindings: %v", err)
	}
	for _, desc := range NewOverlayRegistry().All() {
		if b.Uses(desc.Key) {
			t.Errorf("overlay %s key collides with a player binding", desc.ID)
		}
	}
}

func TestOverlayCategories(t *testing.T) {
	r := NewOverlayRegistry()
	cats := r.Categories()
	want := []string{"visual", "behavior", "debug"}
	if len(cats) != len(want) {
		t.Fatalf("categories = %v, want %v", cats, want)
	}
	for i := range want {
		if cats[i] != want[i] {
			t.Errorf("categories[%d] = %q, want %q", i, cats[i], want[i])
		}
	}
	if n := len(r.ByCategory("behavior")); n != 2 {
		t.Errorf("behavior overlays = %d, want 2", n)
	}
}

func TestFieldRangeNormalize(t *testing.T) {
	r := FieldRange{Min: 10, Max: 20}
	tests := []struct {
		in, want float32
	}{
		{5, 0},
		{10, 0},
		{15, 0.5},
		{25, 1},
	}
	for _, tt := range tests {
		if got := r.Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if got := (FieldRange{}).Normalize(3); got != 0 {
		t.Errorf("empty range = %v, want 0", got)
	}
}

func TestMatchStatsSections(t *testing.T) {
	stats := telemetry.WindowStats{
		FishCount:    8,
		Eaten:        3,
		Pursuing:     2,
		FishSizeMean: 22.25,
	}

	fields := make(map[string]FieldDescriptor)
	for _, sd := range MatchStatsSections() {
		for _, fd := range sd.Fields {
			fields[fd.ID] = fd
		}
	}

	if got := FieldText(fields["eaten"], stats); got != "3" {
		t.Errorf("eaten = %q, want 3", got)
	}
	if got := FieldText(fields["size_mean"], &stats); got != "22.2" && got != "22.3" {
		t.Errorf("size_mean = %q", got)
	}
	if got := fields["pursuing"].Getter(stats); got != 0.25 {
		t.Errorf("pursuing share = %v, want 0.25", got)
	}
	if got := fields["pursuing"].Getter(nil); got != 0 {
		t.Errorf("pursuing share of nil = %v, want 0", got)
	}
}

func TestSectionVisibility(t *testing.T) {
	var sizes SectionDescriptor
	for _, sd := range MatchStatsSections() {
		if sd.ID == "sizes" {
			sizes = sd
		}
	}
	r := NewRenderer()
	if h := r.SectionHeight(sizes, telemetry.WindowStats{}); h != 0 {
		t.Errorf("empty window height = %d, want 0", h)
	}
	if h := r.SectionHeight(sizes, telemetry.WindowStats{FishCount: 1}); h == 0 {
		t.Error("populated window should show sizes")
	}
}
