package telemetry

// ModeCounts holds how many fish were in each behavior mode when sampled.
type ModeCounts struct {
	Patrolling int
	Pursuing   int
	Fleeing    int
}

// PlayerSample is one player's state when a window is flushed.
type PlayerSample struct {
	Score int
	Size  float64
	Dead  bool
}

// Sample holds the world state the caller gathers at flush time.
type Sample struct {
	FishSizes []float64
	Modes     ModeCounts
	Players   [2]PlayerSample
}

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float64
	session             string

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	spawned      int
	eaten        int
	absorbed     int
	despawned    int
	playerDeaths int
	playerGrowth float64
	lifetimes    []float64 // seconds, for fish removed this window
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec, dt float64, session string) *Collector {
	ticksPerWindow := int32(windowDurationSec / dt)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
		session:             session,
	}
}

// Record counts an event in the current window.
func (c *Collector) Record(ev Event) {
	switch ev.Type {
	case EventFishSpawned:
		c.spawned++
	case EventFishEaten:
		c.eaten++
	case EventFishAbsorbed:
		c.absorbed++
	case EventFishDespawned:
		c.despawned++
	case EventPlayerGrew:
		c.playerGrowth += ev.Amount
	case EventPlayerDied:
		c.playerDeaths++
	}
}

// RecordLifetime records how long a removed fish lived.
func (c *Collector) RecordLifetime(sec float64) {
	c.lifetimes = append(c.lifetimes, sec)
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, sample Sample) WindowStats {
	sizes := ComputeSizeStats(sample.FishSizes)

	var meanLifetime float64
	if len(c.lifetimes) > 0 {
		meanLifetime = ComputeSizeStats(c.lifetimes).Mean
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,
		Session:         c.session,

		FishCount: len(sample.FishSizes),

		Spawned:      c.spawned,
		Eaten:        c.eaten,
		Absorbed:     c.absorbed,
		Despawned:    c.despawned,
		PlayerDeaths: c.playerDeaths,
		PlayerGrowth: c.playerGrowth,

		FishSizeMean: sizes.Mean,
		FishSizeStd:  sizes.Std,
		FishSizeP10:  sizes.P10,
		FishSizeP50:  sizes.P50,
		FishSizeP90:  sizes.P90,

		Patrolling: sample.Modes.Patrolling,
		Pursuing:   sample.Modes.Pursuing,
		Fleeing:    sample.Modes.Fleeing,

		MeanLifetimeSec: meanLifetime,

		P1Score: sample.Players[0].Score,
		P1Size:  sample.Players[0].Size,
		P1Dead:  sample.Players[0].Dead,
		P2Score: sample.Players[1].Score,
		P2Size:  sample.Players[1].Size,
		P2Dead:  sample.Players[1].Dead,
	}

	c.StartWindow(currentTick)

	return stats
}

// StartWindow discards the counters and opens a new window at tick.
// Used when a match is restored mid-way.
func (c *Collector) StartWindow(tick int32) {
	c.windowStartTick = tick
	c.spawned = 0
	c.eaten = 0
	c.absorbed = 0
	c.despawned = 0
	c.playerDeaths = 0
	c.playerGrowth = 0
	c.lifetimes = c.lifetimes[:0]
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
