package game

import (
	"github.com/pthm-cable/bigfish/components"
	"github.com/pthm-cable/bigfish/telemetry"
)

// flushTelemetry flushes the stats window once it has run its length.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}
	g.flushWindow()
}

// flushWindow closes the current stats window, writes it out and checks
// it for bookmarks.
func (g *Game) flushWindow() {
	stats := g.collector.Flush(g.tick, g.sample())
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			g.logger.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			g.logger.Error("failed to write perf", "error", err)
		}
	}

	for _, bm := range g.bookmarkDetector.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}

		if g.outputManager != nil {
			if err := g.outputManager.WriteBookmark(bm); err != nil {
				g.logger.Error("failed to write bookmark", "error", err)
			}
		}

		if g.snapshotDir != "" {
			g.saveSnapshot(&bm)
		}
	}
}

// sample gathers the world state a stats window reports on.
func (g *Game) sample() telemetry.Sample {
	s := telemetry.Sample{FishSizes: make([]float64, 0, g.numFish)}

	query := g.fishFilter.Query()
	for query.Next() {
		_, _, body, _, fish := query.Get()
		s.FishSizes = append(s.FishSizes, body.Size)

		switch fish.Mode {
		case components.ModePursuing:
			s.Modes.Pursuing++
		case components.ModeFleeing:
			s.Modes.Fleeing++
		default:
			s.Modes.Patrolling++
		}
	}

	for i, e := range g.playerEntities {
		if i >= len(s.Players) {
			break
		}
		player := g.playerMap.Get(e)
		s.Players[i] = telemetry.PlayerSample{
			Score: player.Score,
			Size:  g.bodyMap.Get(e).Size,
			Dead:  player.Dead,
		}
	}

	return s
}

// saveSnapshot captures the match and writes it to the snapshot directory.
func (g *Game) saveSnapshot(bookmark *telemetry.Bookmark) {
	path, err := telemetry.SaveSnapshot(g.CaptureSnapshot(bookmark), g.snapshotDir)
	if err != nil {
		g.logger.Error("failed to save snapshot", "error", err)
		return
	}
	g.logger.Info("snapshot saved", "path", path, "tick", g.tick)
}
