// Package game owns a match: the ECS world, the tick order, the events each
// tick emits and the read-only view handed to the presentation layer.
package game

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math/rand"

	"github.com/google/uuid"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/bigfish/components"
	"github.com/pthm-cable/bigfish/config"
	"github.com/pthm-cable/bigfish/systems"
	"github.com/pthm-cable/bigfish/telemetry"
)

// hallOfFameSize is how many finished rounds the hall of fame keeps.
const hallOfFameSize = 10

// bookmarkHistory is the number of stats windows the bookmark detector averages over.
const bookmarkHistory = 5

// Directions is one player's pressed directions for a tick.
type Directions = systems.Directions

// Input is the keyboard state for one tick, indexed by player slot.
type Input struct {
	Players [2]Directions
}

// Options configures a Game.
type Options struct {
	Seed           int64   // RNG seed
	LogStats       bool    // log window stats via slog
	StatsWindowSec float64 // stats window in seconds (0 = config)
	SnapshotDir    string  // where bookmark and game-over snapshots go ("" = disabled)
	OutputDir      string  // where CSV logs go ("" = disabled)
	HallOfFamePath string  // hall of fame JSON kept across runs ("" = in memory only)
	StepsPerUpdate int     // ticks per Update call
}

// Fish archetype components.
type fishMapper = ecs.Map5[
	components.Position,
	components.Velocity,
	components.Body,
	components.Heading,
	components.Fish,
]

// Player archetype components.
type playerMapper = ecs.Map5[
	components.Position,
	components.Velocity,
	components.Body,
	components.Heading,
	components.Player,
]

// Game holds the complete match state.
type Game struct {
	cfg     *config.Config
	rng     *rand.Rand
	rngSeed int64

	world        *ecs.World
	fishMapper   *fishMapper
	playerMapper *playerMapper
	fishFilter   *ecs.Filter5[components.Position, components.Velocity, components.Body, components.Heading, components.Fish]
	playerFilter *ecs.Filter5[components.Position, components.Velocity, components.Body, components.Heading, components.Player]
	posMap       *ecs.Map[components.Position]
	bodyMap      *ecs.Map[components.Body]
	fishMap      *ecs.Map[components.Fish]
	playerMap    *ecs.Map[components.Player]

	// Systems
	players   *systems.PlayerSystem
	behavior  *systems.BehaviorSystem
	physics   *systems.PhysicsSystem
	collision *systems.CollisionSystem
	spawner   *systems.Spawner
	registry  *systems.SystemRegistry

	// Per-tick scratch
	playerEntities []ecs.Entity // indexed by slot
	deathTicks     []int32      // indexed by slot
	resolution     systems.Resolution
	inputs         []systems.Directions
	events         []telemetry.Event
	frameEvents    []telemetry.Event // every tick of the latest Update
	fishView       []FishView

	// State
	session        uuid.UUID
	logger         *slog.Logger
	tick           int32
	totalTicks     int64 // across matches
	numFish        int
	terminal       bool
	paused         bool
	stepsPerUpdate int

	// Telemetry
	logStats         bool
	snapshotDir      string
	statsWindowSec   float64
	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	bookmarkDetector *telemetry.BookmarkDetector
	lifetimeTracker  *telemetry.LifetimeTracker
	hallOfFame       *telemetry.HallOfFame
	outputManager    *telemetry.OutputManager
	hallOfFamePath   string
	statsCallback    func(telemetry.WindowStats)
}

// NewGame creates a game with a fresh match: two players at their start
// positions and no fish.
func NewGame(cfg *config.Config, opts Options) (*Game, error) {
	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}
	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}

	registry := systems.NewSystemRegistry()
	g := &Game{
		cfg:            cfg,
		rng:            rand.New(rand.NewSource(opts.Seed)),
		rngSeed:        opts.Seed,
		registry:       registry,
		inputs:         make([]systems.Directions, len(cfg.Player.Starts)),
		stepsPerUpdate: steps,
		logStats:       opts.LogStats,
		snapshotDir:    opts.SnapshotDir,
		statsWindowSec: statsWindow,
		perfCollector:  telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow, registry.IDs()),
		hallOfFame:     telemetry.NewHallOfFame(hallOfFameSize),
		hallOfFamePath: opts.HallOfFamePath,
	}

	if opts.HallOfFamePath != "" {
		hof, err := telemetry.LoadHallOfFameFromFile(opts.HallOfFamePath, hallOfFameSize)
		switch {
		case err == nil:
			g.hallOfFame = hof
		case errors.Is(err, fs.ErrNotExist):
			// First run; the file is created on Close.
		default:
			return nil, fmt.Errorf("loading hall of fame: %w", err)
		}
	}

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			return nil, fmt.Errorf("creating output manager: %w", err)
		}
		if err := om.WriteConfig(cfg); err != nil {
			om.Close()
			return nil, fmt.Errorf("writing config snapshot: %w", err)
		}
		g.outputManager = om
	}

	g.newMatch()
	return g, nil
}

// newMatch replaces the ECS world and everything bound to it. Systems and
// filters hold world pointers, so they are rebuilt rather than cleared.
func (g *Game) newMatch() {
	cfg := g.cfg
	world := ecs.NewWorld()
	bounds := systems.Bounds{Width: cfg.Derived.Width, Height: cfg.Derived.Height}

	g.world = world
	g.fishMapper = ecs.NewMap5[components.Position, components.Velocity, components.Body, components.Heading, components.Fish](world)
	g.playerMapper = ecs.NewMap5[components.Position, components.Velocity, components.Body, components.Heading, components.Player](world)
	g.fishFilter = ecs.NewFilter5[components.Position, components.Velocity, components.Body, components.Heading, components.Fish](world)
	g.playerFilter = ecs.NewFilter5[components.Position, components.Velocity, components.Body, components.Heading, components.Player](world)
	g.posMap = ecs.NewMap[components.Position](world)
	g.bodyMap = ecs.NewMap[components.Body](world)
	g.fishMap = ecs.NewMap[components.Fish](world)
	g.playerMap = ecs.NewMap[components.Player](world)

	g.players = systems.NewPlayerSystem(world, bounds, systems.PlayerParams{
		Accel:   cfg.Player.Accel,
		Damping: cfg.Player.Damping,
	})
	g.behavior = systems.NewBehaviorSystem(world, systems.BehaviorParamsFromConfig(cfg),
		cfg.Derived.Height, cfg.Population.GridCellSize, g.rng)
	g.physics = systems.NewPhysicsSystem(world, bounds, cfg.Fish.Damping)
	g.collision = systems.NewCollisionSystem(world, bounds, systems.CollisionParams{
		SizeRatio:           cfg.Behavior.SizeRatio,
		PlayerGrowthDivisor: cfg.Collision.PlayerGrowthDivisor,
		FishGrowth:          cfg.Collision.FishGrowth,
		MinSize:             cfg.Population.MinSize,
	})
	g.spawner = systems.NewSpawner(systems.SpawnParamsFromConfig(cfg), g.rng)

	g.session = uuid.New()
	g.logger = slog.Default().With("session", g.session.String())
	g.tick = 0
	g.numFish = 0
	g.terminal = false
	g.events = g.events[:0]
	g.frameEvents = g.frameEvents[:0]
	g.resolution.Reset()

	g.collector = telemetry.NewCollector(g.statsWindowSec, cfg.Derived.DT, g.session.String())
	g.bookmarkDetector = telemetry.NewBookmarkDetector(bookmarkHistory)
	g.lifetimeTracker = telemetry.NewLifetimeTracker()

	g.playerEntities = g.playerEntities[:0]
	g.deathTicks = g.deathTicks[:0]
	for i, start := range cfg.Player.Starts {
		g.playerEntities = append(g.playerEntities, g.spawnPlayer(uint8(i), start))
		g.deathTicks = append(g.deathTicks, 0)
	}

	g.logger.Info("match started", "seed", g.rngSeed, "players", len(g.playerEntities))
}

// Reset discards the current match and starts a new one with a new session.
func (g *Game) Reset() {
	g.logger.Info("reset", "tick", g.tick, "terminal", g.terminal)
	g.newMatch()
}

// Tick returns the number of ticks simulated in the current match.
func (g *Game) Tick() int32 {
	return g.tick
}

// TotalTicks returns the number of ticks simulated across every match.
func (g *Game) TotalTicks() int64 {
	return g.totalTicks
}

// Terminal reports whether every player is dead.
func (g *Game) Terminal() bool {
	return g.terminal
}

// Session returns the current match's session id.
func (g *Game) Session() string {
	return g.session.String()
}

// Events returns the events emitted by the latest tick. The slice is reused
// by the next Step.
func (g *Game) Events() []telemetry.Event {
	return g.events
}

// FrameEvents returns the events of every tick run by the latest Update, in
// tick order. The slice is reused by the next Update that steps.
func (g *Game) FrameEvents() []telemetry.Event {
	return g.frameEvents
}

// Paused reports whether Update is currently skipping ticks.
func (g *Game) Paused() bool {
	return g.paused
}

// SetPaused pauses or resumes Update.
func (g *Game) SetPaused(paused bool) {
	g.paused = paused
}

// StepsPerUpdate returns how many ticks each Update call runs.
func (g *Game) StepsPerUpdate() int {
	return g.stepsPerUpdate
}

// SetStepsPerUpdate sets how many ticks each Update call runs. Values below 1 are raised to 1.
func (g *Game) SetStepsPerUpdate(n int) {
	g.stepsPerUpdate = max(n, 1)
}

// Registry returns the system registry shared with the debug panel.
func (g *Game) Registry() *systems.SystemRegistry {
	return g.registry
}

// PerfStats returns the rolling per-phase timing breakdown.
func (g *Game) PerfStats() telemetry.PerfStats {
	return g.perfCollector.Stats()
}

// RecordFrame records frame timing for the windowed loop.
func (g *Game) RecordFrame() {
	g.perfCollector.RecordFrame()
}

// HallOfFame returns the ranked finished rounds.
func (g *Game) HallOfFame() []telemetry.HallEntry {
	return g.hallOfFame.Entries()
}

// SetStatsCallback registers a function called with every flushed stats window.
func (g *Game) SetStatsCallback(fn func(telemetry.WindowStats)) {
	g.statsCallback = fn
}

// Close saves the hall of fame and closes telemetry output.
func (g *Game) Close() error {
	if g.hallOfFamePath != "" {
		if err := g.hallOfFame.SaveToFile(g.hallOfFamePath); err != nil {
			g.logger.Error("failed to save hall of fame", "path", g.hallOfFamePath, "error", err)
		}
	}
	if g.outputManager == nil {
		return nil
	}
	if err := g.outputManager.WriteHallOfFame(g.hallOfFame); err != nil {
		g.logger.Error("failed to write hall of fame", "error", err)
	}
	return g.outputManager.Close()
}
