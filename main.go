package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/bigfish/config"
	"github.com/pthm-cable/bigfish/game"
	"github.com/pthm-cable/bigfish/telemetry"
	"github.com/pthm-cable/bigfish/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics (players idle, matches restart on game over)")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	snapshotDir := flag.String("snapshot-dir", "", "Directory for bookmark and game-over snapshots")
	loadSnapshot := flag.String("load-snapshot", "", "Resume from a snapshot file")
	hallOfFamePath := flag.String("hall-of-fame", "", "Hall of fame JSON to load and update")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int64("max-ticks", 0, "Stop after N ticks across all matches (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per update call (higher = faster)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:           rngSeed,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		SnapshotDir:    *snapshotDir,
		OutputDir:      *outputDir,
		HallOfFamePath: *hallOfFamePath,
		StepsPerUpdate: *stepsPerUpdate,
	}

	g, err := game.NewGame(cfg, opts)
	if err != nil {
		slog.Error("failed to create game", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := g.Close(); err != nil {
			slog.Error("failed to close game", "error", err)
		}
	}()

	if *loadSnapshot != "" {
		snap, err := telemetry.LoadSnapshot(*loadSnapshot)
		if err != nil {
			slog.Error("failed to load snapshot", "path", *loadSnapshot, "error", err)
			os.Exit(1)
		}
		if err := g.Restore(snap); err != nil {
			slog.Error("failed to restore snapshot", "path", *loadSnapshot, "error", err)
			os.Exit(1)
		}
	}

	if *headless {
		slog.Info("starting headless simulation",
			"seed", rngSeed,
			"stats_window", *statsWindow,
			"max_ticks", *maxTicks,
			"steps_per_update", *stepsPerUpdate,
		)

		for {
			g.UpdateHeadless()

			if *maxTicks > 0 && g.TotalTicks() >= *maxTicks {
				slog.Info("max ticks reached", "tick", g.TotalTicks())
				return
			}
		}
	}

	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Big Fish")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	app, err := ui.NewApp(g, cfg, rngSeed)
	if err != nil {
		slog.Error("failed to start ui", "error", err)
		return
	}
	app.Run(*maxTicks)
}
