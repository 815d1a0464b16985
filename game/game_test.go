package game

import (
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/pthm-cable/bigfish/config"
	"github.com/pthm-cable/bigfish/systems"
	"github.com/pthm-cable/bigfish/telemetry"
)

// newTestGame builds a game from the defaults, letting the caller tweak the
// config first.
func newTestGame(t *testing.T, tweak func(cfg *config.Config)) *Game {
	t.Helper()
	cfg := config.Default()
	if tweak != nil {
		tweak(cfg)
	}
	g, err := NewGame(cfg, Options{Seed: 1})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	return g
}

// noSpawn disables the spawn gate.
func noSpawn(cfg *config.Config) {
	cfg.Population.SpawnChance = 0
}

// placeFish drops a motionless fish at a position.
func placeFish(g *Game, x, y, size float64) {
	g.spawnFish(systems.FishPlan{
		X:            x,
		Y:            y,
		Size:         size,
		Direction:    1,
		BaseSpeed:    1,
		MaxSpeed:     g.cfg.Fish.MaxSpeed,
		MaxChaseTime: 180,
	})
}

// countEvents returns how many of the latest tick's events have type typ.
func countEvents(g *Game, typ telemetry.EventType) int {
	n := 0
	for _, ev := range g.Events() {
		if ev.Type == typ {
			n++
		}
	}
	return n
}

func TestNewGameStartsWithTwoPlayers(t *testing.T) {
	g := newTestGame(t, nil)
	v := g.View()

	if len(v.Players) != 2 {
		t.Fatalf("players = %d, want 2", len(v.Players))
	}
	if len(v.Fish) != 0 {
		t.Errorf("fish = %d, want 0", len(v.Fish))
	}
	if v.Tick != 0 || v.Terminal {
		t.Errorf("tick = %d terminal = %v, want 0 false", v.Tick, v.Terminal)
	}
	if v.Session == "" {
		t.Error("session id is empty")
	}

	w, h := g.cfg.Derived.Width, g.cfg.Derived.Height
	for i, p := range v.Players {
		start := g.cfg.Player.Starts[i]
		if p.Slot != uint8(i) || p.Name != start.Name {
			t.Errorf("player %d = slot %d name %q", i, p.Slot, p.Name)
		}
		if p.X != start.X*w || p.Y != start.Y*h {
			t.Errorf("player %d at (%v, %v), want (%v, %v)", i, p.X, p.Y, start.X*w, start.Y*h)
		}
		if p.Size != g.cfg.Player.InitialSize || p.Score != 0 || p.Dead {
			t.Errorf("player %d = %+v, want fresh player", i, p)
		}
	}
}

func TestStepMovesPlayerWithInput(t *testing.T) {
	g := newTestGame(t, noSpawn)
	before := g.View().Players[1].X

	var in Input
	in.Players[1].Right = true
	g.Step(in)

	v := g.View()
	if v.Tick != 1 {
		t.Errorf("tick = %d, want 1", v.Tick)
	}
	if got := v.Players[1].X; got != before+g.cfg.Player.Accel {
		t.Errorf("player 2 x = %v, want %v", got, before+g.cfg.Player.Accel)
	}
	if v.Players[0].VelX != 0 || v.Players[0].VelY != 0 {
		t.Errorf("player 1 moved without input: %+v", v.Players[0])
	}
}

func TestSpawnGate(t *testing.T) {
	t.Run("population never exceeds cap", func(t *testing.T) {
		g := newTestGame(t, func(cfg *config.Config) {
			cfg.Population.SpawnChance = 1
			cfg.Population.MaxFish = 3
		})

		g.Step(Input{})
		if got := countEvents(g, telemetry.EventFishSpawned); got != 1 {
			t.Errorf("spawned on first tick = %d, want 1", got)
		}

		for i := 0; i < 30; i++ {
			g.Step(Input{})
			if n := len(g.View().Fish); n > 3 {
				t.Fatalf("tick %d: %d fish, cap is 3", g.Tick(), n)
			}
			if g.numFish != len(g.View().Fish) {
				t.Fatalf("tick %d: counter %d, world has %d", g.Tick(), g.numFish, len(g.View().Fish))
			}
		}
	})

	t.Run("zero chance never spawns", func(t *testing.T) {
		g := newTestGame(t, noSpawn)
		for i := 0; i < 100; i++ {
			g.Step(Input{})
		}
		if n := len(g.View().Fish); n != 0 {
			t.Errorf("fish = %d, want 0", n)
		}
	})
}

func TestPlayerEatsFish(t *testing.T) {
	g := newTestGame(t, noSpawn)
	p := g.View().Players[0]
	placeFish(g, p.X, p.Y, 12)

	g.Step(Input{})

	if got := countEvents(g, telemetry.EventFishEaten); got != 1 {
		t.Fatalf("FishEaten events = %d, want 1", got)
	}
	if got := countEvents(g, telemetry.EventPlayerGrew); got != 1 {
		t.Errorf("PlayerGrew events = %d, want 1", got)
	}
	for _, ev := range g.Events() {
		if ev.Type == telemetry.EventFishEaten && ev.Slot != 0 {
			t.Errorf("FishEaten slot = %d, want 0", ev.Slot)
		}
	}

	v := g.View()
	if len(v.Fish) != 0 {
		t.Errorf("fish = %d, want 0", len(v.Fish))
	}
	if v.Players[0].Score != 1 {
		t.Errorf("score = %d, want 1", v.Players[0].Score)
	}
	want := g.cfg.Player.InitialSize + 12/g.cfg.Collision.PlayerGrowthDivisor
	if math.Abs(v.Players[0].Size-want) > 1e-9 {
		t.Errorf("size = %v, want %v", v.Players[0].Size, want)
	}
}

func TestFishAbsorbsSmallerFish(t *testing.T) {
	g := newTestGame(t, noSpawn)
	placeFish(g, 200, 200, 30)
	placeFish(g, 205, 200, 10)

	g.Step(Input{})

	if got := countEvents(g, telemetry.EventFishAbsorbed); got != 1 {
		t.Fatalf("FishAbsorbed events = %d, want 1", got)
	}

	v := g.View()
	if len(v.Fish) != 1 {
		t.Fatalf("fish = %d, want 1", len(v.Fish))
	}
	eater := v.Fish[0]
	want := 30 + g.cfg.Collision.FishGrowth
	if math.Abs(eater.Size-want) > 1e-9 {
		t.Errorf("eater size = %v, want %v", eater.Size, want)
	}
	if eater.HasTarget {
		t.Error("eater still chasing after absorbing")
	}
	for _, ev := range g.Events() {
		if ev.Type == telemetry.EventFishAbsorbed && ev.TargetID != eater.ID {
			t.Errorf("absorbed by #%d, want #%d", ev.TargetID, eater.ID)
		}
	}
}

func TestLastPlayerEatenEndsMatch(t *testing.T) {
	g := newTestGame(t, func(cfg *config.Config) {
		cfg.Population.SpawnChance = 1
	})
	g.playerMap.Get(g.playerEntities[1]).Dead = true

	p := g.View().Players[0]
	placeFish(g, p.X, p.Y, 100)

	g.Step(Input{})

	if !g.Terminal() {
		t.Fatal("match not terminal after last player died")
	}
	events := g.Events()
	if len(events) < 2 {
		t.Fatalf("events = %v, want PlayerDied then GameOver", events)
	}
	if events[len(events)-2].Type != telemetry.EventPlayerDied || events[len(events)-2].Slot != 0 {
		t.Errorf("second to last event = %+v, want PlayerDied slot 0", events[len(events)-2])
	}
	if events[len(events)-1].Type != telemetry.EventGameOver {
		t.Errorf("last event = %v, want GameOver", events[len(events)-1].Type)
	}
	if got := countEvents(g, telemetry.EventFishSpawned); got != 0 {
		t.Errorf("spawned %d fish on the terminal tick", got)
	}
}

func TestTerminalMatchIsFrozen(t *testing.T) {
	g := newTestGame(t, func(cfg *config.Config) {
		cfg.Population.SpawnChance = 1
	})
	for _, e := range g.playerEntities {
		g.playerMap.Get(e).Dead = true
	}

	g.Step(Input{})
	if got := countEvents(g, telemetry.EventGameOver); got != 1 {
		t.Fatalf("GameOver events = %d, want 1", got)
	}
	before := g.View()
	tick := g.Tick()

	for i := 0; i < 10; i++ {
		var in Input
		in.Players[0].Up = true
		g.Step(in)
		if len(g.Events()) != 0 {
			t.Fatalf("terminal tick emitted %v", g.Events())
		}
	}

	if g.Tick() != tick {
		t.Errorf("tick advanced from %d to %d while terminal", tick, g.Tick())
	}
	after := g.View()
	if !reflect.DeepEqual(before.Players, after.Players) || len(after.Fish) != len(before.Fish) {
		t.Error("world changed while terminal")
	}
	if n := len(g.HallOfFame()); n != 2 {
		t.Errorf("hall of fame entries = %d, want 2", n)
	}
}

func TestResetReplacesWorld(t *testing.T) {
	g := newTestGame(t, func(cfg *config.Config) {
		cfg.Population.SpawnChance = 1
	})
	for i := 0; i < 20; i++ {
		var in Input
		in.Players[0].Left = true
		g.Step(in)
	}
	for _, e := range g.playerEntities {
		g.playerMap.Get(e).Dead = true
	}
	g.Step(Input{})
	session := g.Session()

	g.Reset()

	if g.Session() == session {
		t.Error("reset kept the session id")
	}
	v := g.View()
	if v.Tick != 0 || v.Terminal || len(v.Fish) != 0 || g.numFish != 0 {
		t.Errorf("after reset: tick %d terminal %v fish %d", v.Tick, v.Terminal, len(v.Fish))
	}
	for i, p := range v.Players {
		if p.Dead || p.Score != 0 || p.Size != g.cfg.Player.InitialSize {
			t.Errorf("player %d not fresh after reset: %+v", i, p)
		}
	}

	g.Step(Input{})
	if g.Tick() != 1 {
		t.Errorf("tick after reset step = %d, want 1", g.Tick())
	}
}

func TestUpdateStepsAndPause(t *testing.T) {
	g := newTestGame(t, noSpawn)

	g.SetStepsPerUpdate(3)
	g.Update(Input{})
	if g.Tick() != 3 {
		t.Errorf("tick = %d, want 3", g.Tick())
	}

	g.SetPaused(true)
	g.Update(Input{})
	if g.Tick() != 3 {
		t.Errorf("tick while paused = %d, want 3", g.Tick())
	}

	g.SetStepsPerUpdate(0)
	if g.StepsPerUpdate() != 1 {
		t.Errorf("steps per update = %d, want floor of 1", g.StepsPerUpdate())
	}
}

func TestFrameEventsSpanAllSteps(t *testing.T) {
	g := newTestGame(t, noSpawn)
	g.SetStepsPerUpdate(3)
	p := g.View().Players[0]
	placeFish(g, p.X, p.Y, 12)

	g.Update(Input{})

	if got := countEvents(g, telemetry.EventFishEaten); got != 0 {
		t.Errorf("last tick FishEaten events = %d, want 0", got)
	}
	eaten := 0
	for _, ev := range g.FrameEvents() {
		if ev.Type == telemetry.EventFishEaten {
			eaten++
			if ev.Tick != 1 {
				t.Errorf("FishEaten tick = %d, want 1", ev.Tick)
			}
		}
	}
	if eaten != 1 {
		t.Errorf("frame FishEaten events = %d, want 1", eaten)
	}

	g.Update(Input{})
	if n := len(g.FrameEvents()); n != 0 {
		t.Errorf("quiet update kept %d events", n)
	}
}

func TestViewHidesDeadPlayerTarget(t *testing.T) {
	g := newTestGame(t, noSpawn)
	placeFish(g, 100, 100, 20)
	victim := g.playerEntities[1]

	fq := g.fishFilter.Query()
	for fq.Next() {
		_, _, _, _, fish := fq.Get()
		fish.Target = victim
	}

	if v := g.View(); !v.Fish[0].HasTarget {
		t.Fatal("fish chasing a live player shows no target")
	}

	g.playerMap.Get(victim).Dead = true
	if v := g.View(); v.Fish[0].HasTarget {
		t.Error("fish still shows a dead player as its target")
	}
}

func TestPerfPhasesFollowRegistry(t *testing.T) {
	g := newTestGame(t, nil)
	for i := 0; i < 5; i++ {
		g.Step(Input{})
	}

	stats := g.PerfStats()
	if !reflect.DeepEqual(stats.Phases, g.Registry().IDs()) {
		t.Errorf("perf phases = %v, want registry order %v", stats.Phases, g.Registry().IDs())
	}
	for _, id := range stats.Phases {
		if _, ok := g.Registry().Get(id); !ok {
			t.Errorf("phase %q is not registered", id)
		}
	}
}

func TestStatsWindowFlushes(t *testing.T) {
	cfg := config.Default()
	cfg.Population.SpawnChance = 1
	g, err := NewGame(cfg, Options{Seed: 3, StatsWindowSec: 0.1})
	if err != nil {
		t.Fatal(err)
	}

	var windows []telemetry.WindowStats
	g.SetStatsCallback(func(s telemetry.WindowStats) {
		windows = append(windows, s)
	})

	for i := 0; i < 12; i++ {
		g.Step(Input{})
	}

	if len(windows) != 2 {
		t.Fatalf("flushed %d windows, want 2", len(windows))
	}
	first := windows[0]
	if first.Session != g.Session() {
		t.Errorf("window session = %q, want %q", first.Session, g.Session())
	}
	if first.WindowEndTick != 6 || first.Spawned != 6 {
		t.Errorf("first window = end %d spawned %d, want 6 and 6", first.WindowEndTick, first.Spawned)
	}
	if first.FishCount == 0 {
		t.Error("first window sampled no fish")
	}
	if first.Patrolling+first.Pursuing+first.Fleeing != first.FishCount {
		t.Errorf("mode counts %d+%d+%d do not add up to %d fish",
			first.Patrolling, first.Pursuing, first.Fleeing, first.FishCount)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	g := newTestGame(t, func(cfg *config.Config) {
		cfg.Population.SpawnChance = 1
	})
	for i := 0; i < 40; i++ {
		var in Input
		in.Players[0].Down = true
		g.Step(in)
	}
	// A fish chasing a player survives the round trip as a slot reference.
	fq := g.fishFilter.Query()
	for fq.Next() {
		_, _, _, _, fish := fq.Get()
		fish.Target = g.playerEntities[1]
		fq.Close()
		break
	}

	snap := g.CaptureSnapshot(nil)
	path, err := telemetry.SaveSnapshot(snap, t.TempDir())
	if err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	loaded, err := telemetry.LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}

	restored := newTestGame(t, nil)
	if err := restored.Restore(loaded); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	again := restored.CaptureSnapshot(nil)
	if again.Tick != snap.Tick {
		t.Errorf("tick = %d, want %d", again.Tick, snap.Tick)
	}
	if !reflect.DeepEqual(again.Players, snap.Players) {
		t.Errorf("players differ:\n got %+v\nwant %+v", again.Players, snap.Players)
	}
	if !reflect.DeepEqual(again.Fish, snap.Fish) {
		t.Errorf("fish differ after restore")
	}
	if len(snap.Fish) == 0 || snap.Fish[0].TargetKind != telemetry.TargetPlayer || snap.Fish[0].TargetIndex != 1 {
		t.Errorf("first fish target = %q %d, want player 1", snap.Fish[0].TargetKind, snap.Fish[0].TargetIndex)
	}
	if restored.numFish != len(snap.Fish) {
		t.Errorf("fish counter = %d, want %d", restored.numFish, len(snap.Fish))
	}
}

func TestRestoreRejectsBadSnapshots(t *testing.T) {
	g := newTestGame(t, noSpawn)
	g.Step(Input{})

	tests := []struct {
		name   string
		modify func(s *telemetry.Snapshot)
	}{
		{"playfield mismatch", func(s *telemetry.Snapshot) { s.Width = 800 }},
		{"missing player", func(s *telemetry.Snapshot) { s.Players = s.Players[:1] }},
		{"duplicate slot", func(s *telemetry.Snapshot) { s.Players[1].Slot = 0 }},
		{"dangling fish target", func(s *telemetry.Snapshot) {
			s.Fish = append(s.Fish, telemetry.FishState{Size: 10, TargetKind: telemetry.TargetFish, TargetIndex: 5})
		}},
		{"unknown target kind", func(s *telemetry.Snapshot) {
			s.Fish = append(s.Fish, telemetry.FishState{Size: 10, TargetKind: "rock"})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := g.CaptureSnapshot(nil)
			tt.modify(snap)
			session := g.Session()
			if err := g.Restore(snap); err == nil {
				t.Error("Restore succeeded, want error")
			}
			if g.Session() != session {
				t.Error("failed restore replaced the match")
			}
		})
	}
}

func TestSwimmerSelection(t *testing.T) {
	g := newTestGame(t, noSpawn)
	placeFish(g, 100, 100, 20)

	e, ok := g.SwimmerAt(103, 98)
	if !ok {
		t.Fatal("no swimmer found at fish position")
	}
	ins, ok := g.Inspect(e)
	if !ok || ins.Fish == nil || ins.Player != nil {
		t.Fatalf("Inspect = %+v, want a fish", ins)
	}
	if ins.Body.Size != 20 {
		t.Errorf("size = %v, want 20", ins.Body.Size)
	}

	p := g.View().Players[1]
	e, ok = g.SwimmerAt(p.X, p.Y)
	if !ok {
		t.Fatal("no swimmer found at player position")
	}
	if ins, _ := g.Inspect(e); ins.Player == nil || ins.Player.Slot != 1 {
		t.Errorf("Inspect = %+v, want player 2", ins)
	}

	if _, ok := g.SwimmerAt(5, 1000); ok {
		t.Error("found a swimmer in empty water")
	}
}

func TestOutputFilesWritten(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Population.SpawnChance = 1
	g, err := NewGame(cfg, Options{Seed: 2, OutputDir: dir, StatsWindowSec: 0.05})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		g.Step(Input{})
	}
	if err := g.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	for _, name := range []string{"config.yaml", "telemetry.csv", "perf.csv", "events.csv", "hall_of_fame.json"} {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if name != "hall_of_fame.json" && info.Size() == 0 {
			t.Errorf("%s is empty", name)
		}
	}
}

func TestHallOfFamePersistsAcrossGames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hof.json")
	cfg := config.Default()

	g, err := NewGame(cfg, Options{Seed: 1, HallOfFamePath: path})
	if err != nil {
		t.Fatalf("NewGame with missing hall of fame: %v", err)
	}
	for _, e := range g.playerEntities {
		g.playerMap.Get(e).Dead = true
	}
	g.Step(Input{})
	if err := g.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	g2, err := NewGame(cfg, Options{Seed: 2, HallOfFamePath: path})
	if err != nil {
		t.Fatalf("NewGame reloading hall of fame: %v", err)
	}
	if n := len(g2.HallOfFame()); n != 2 {
		t.Errorf("reloaded entries = %d, want 2", n)
	}
}

func TestCorruptHallOfFameFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hof.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewGame(config.Default(), Options{HallOfFamePath: path}); err == nil {
		t.Error("expected error for corrupt hall of fame")
	}
}
