package telemetry

// LifetimeStats tracks per-fish statistics over its lifetime.
type LifetimeStats struct {
	SpawnTick int32
	SpawnSize float64
	Bucket    string // size distribution branch drawn at spawn

	Absorbed int     // smaller fish swallowed
	PeakSize float64 // grows with each absorption
}

// LifetimeTracker manages per-fish lifetime statistics.
type LifetimeTracker struct {
	stats map[uint32]*LifetimeStats
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		stats: make(map[uint32]*LifetimeStats),
	}
}

// Register creates lifetime stats for a newly spawned fish.
func (lt *LifetimeTracker) Register(entityID uint32, spawnTick int32, size float64, bucket string) {
	lt.stats[entityID] = &LifetimeStats{
		SpawnTick: spawnTick,
		SpawnSize: size,
		Bucket:    bucket,
		PeakSize:  size,
	}
}

// Put stores existing stats for a fish, replacing any it had.
func (lt *LifetimeTracker) Put(entityID uint32, stats *LifetimeStats) {
	lt.stats[entityID] = stats
}

// Get returns the lifetime stats for a fish, or nil if not found.
func (lt *LifetimeTracker) Get(entityID uint32) *LifetimeStats {
	return lt.stats[entityID]
}

// Remove removes a fish's stats and returns them (for logging).
func (lt *LifetimeTracker) Remove(entityID uint32) *LifetimeStats {
	stats := lt.stats[entityID]
	delete(lt.stats, entityID)
	return stats
}

// RecordAbsorb counts a swallowed fish and tracks the new size.
func (lt *LifetimeTracker) RecordAbsorb(entityID uint32, newSize float64) {
	if s := lt.stats[entityID]; s != nil {
		s.Absorbed++
		s.PeakSize = max(s.PeakSize, newSize)
	}
}

// SurvivalSec returns how long a fish has lived at currentTick.
func (ls *LifetimeStats) SurvivalSec(currentTick int32, dt float64) float64 {
	return float64(currentTick-ls.SpawnTick) * dt
}

// Count returns the number of tracked fish.
func (lt *LifetimeTracker) Count() int {
	return len(lt.stats)
}
