package telemetry

import "testing"

func TestBookmarkPopulationCrash(t *testing.T) {
	bd := NewBookmarkDetector(5)

	bd.Check(WindowStats{WindowEndTick: 600, FishCount: 45})
	bms := bd.Check(WindowStats{WindowEndTick: 1200, FishCount: 20})

	if len(bms) != 1 || bms[0].Type != BookmarkPopulationCrash {
		t.Fatalf("bookmarks = %+v, want one population crash", bms)
	}
	if bms[0].Tick != 1200 {
		t.Errorf("tick = %d, want 1200", bms[0].Tick)
	}

	// Peak resets after a crash
	if bms := bd.Check(WindowStats{WindowEndTick: 1800, FishCount: 19}); len(bms) != 0 {
		t.Errorf("repeat crash bookmarks = %+v", bms)
	}
}

func TestBookmarkFeedingFrenzy(t *testing.T) {
	bd := NewBookmarkDetector(5)
	for i := 0; i < 3; i++ {
		bd.Check(WindowStats{FishCount: 30, Eaten: 1, Absorbed: 1})
	}

	bms := bd.Check(WindowStats{FishCount: 30, Eaten: 4, Absorbed: 3})
	if len(bms) != 1 || bms[0].Type != BookmarkFeedingFrenzy {
		t.Errorf("bookmarks = %+v, want one feeding frenzy", bms)
	}
}

func TestBookmarkLeadChange(t *testing.T) {
	bd := NewBookmarkDetector(5)

	steps := []struct {
		p1, p2 int
		want   bool
	}{
		{0, 0, false}, // tie, no leader yet
		{2, 1, false}, // first leader is not a change
		{3, 3, false}, // tie keeps the leader
		{3, 5, true},
		{4, 6, false},
	}
	for i, s := range steps {
		bms := bd.Check(WindowStats{FishCount: 20, P1Score: s.p1, P2Score: s.p2})
		got := false
		for _, b := range bms {
			if b.Type == BookmarkLeadChange {
				got = true
			}
		}
		if got != s.want {
			t.Errorf("step %d (%d-%d): lead change = %v, want %v", i, s.p1, s.p2, got, s.want)
		}
	}
}

func TestBookmarkLastSurvivorOnce(t *testing.T) {
	bd := NewBookmarkDetector(5)

	if bms := bd.Check(WindowStats{FishCount: 20, P1Dead: true}); len(bms) != 1 || bms[0].Type != BookmarkLastSurvivor {
		t.Fatalf("bookmarks = %+v, want last survivor", bms)
	}
	if bms := bd.Check(WindowStats{FishCount: 20, P1Dead: true}); len(bms) != 0 {
		t.Errorf("second check bookmarks = %+v, want none", bms)
	}
}
