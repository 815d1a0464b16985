package telemetry

import (
	"path/filepath"
	"testing"
)

func TestHallOfFameRanking(t *testing.T) {
	hof := NewHallOfFame(3)

	entries := []HallEntry{
		{Name: "a", Score: 2, Size: 40},
		{Name: "b", Score: 5, Size: 35},
		{Name: "c", Score: 2, Size: 50},
		{Name: "d", Score: 1, Size: 90},
	}
	added := []bool{true, true, true, false}
	for i, e := range entries {
		if got := hof.Consider(e); got != added[i] {
			t.Errorf("Consider(%s) = %v, want %v", e.Name, got, added[i])
		}
	}

	want := []string{"b", "c", "a"}
	got := hof.Entries()
	if len(got) != len(want) {
		t.Fatalf("entries = %d, want %d", len(got), len(want))
	}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("rank %d = %s, want %s", i, got[i].Name, name)
		}
	}
	if hof.TopScore() != 5 {
		t.Errorf("TopScore = %d, want 5", hof.TopScore())
	}

	// A better round pushes out the lowest.
	hof.Consider(HallEntry{Name: "e", Score: 3})
	if last := hof.Entries()[2].Name; last != "c" {
		t.Errorf("last after insert = %s, want c", last)
	}
}

func TestHallOfFameFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hof.json")

	hof := NewHallOfFame(5)
	hof.Consider(HallEntry{Name: "Dimi", Score: 7, Size: 44.5, SurvivalSec: 61.2, Session: "s1"})
	hof.Consider(HallEntry{Name: "Alice", Score: 3, Size: 31, SurvivalSec: 12, Session: "s1"})
	if err := hof.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile: %v", err)
	}

	loaded, err := LoadHallOfFameFromFile(path, 1)
	if err != nil {
		t.Fatalf("LoadHallOfFameFromFile: %v", err)
	}
	got := loaded.Entries()
	if len(got) != 1 || got[0] != hof.Entries()[0] {
		t.Errorf("loaded = %+v, want only the top entry", got)
	}
}

func TestLoadHallOfFameMissingFile(t *testing.T) {
	if _, err := LoadHallOfFameFromFile(filepath.Join(t.TempDir(), "nope.json"), 5); err == nil {
		t.Error("expected error for missing file")
	}
}
