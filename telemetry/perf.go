package telemetry

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// tickSample holds the timing of one tick, one duration per phase index.
type tickSample struct {
	total  time.Duration
	phases []time.Duration
}

// PerfCollector times the phases of each tick over a rolling window. Phases
// are identified by name; the order given at construction is the order
// stats are reported in.
type PerfCollector struct {
	phases []string
	index  map[string]int

	ring    []tickSample
	next    int
	filled  int
	current []time.Duration

	tickStart  time.Time
	phaseStart time.Time
	active     int // phase index being timed, -1 between ticks

	lastFrame time.Time
	frame     time.Duration
}

// NewPerfCollector creates a collector averaging over windowSize ticks
// (60 if windowSize < 1) for the given phases in tick order.
func NewPerfCollector(windowSize int, phases []string) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	p := &PerfCollector{
		index:  make(map[string]int, len(phases)),
		ring:   make([]tickSample, windowSize),
		active: -1,
	}
	for _, name := range phases {
		p.phaseIndex(name)
	}
	return p
}

// Phases returns the phase names in report order.
func (p *PerfCollector) Phases() []string {
	return p.phases
}

// phaseIndex returns the index of a phase, adding it at the end on first use.
func (p *PerfCollector) phaseIndex(name string) int {
	if i, ok := p.index[name]; ok {
		return i
	}
	p.index[name] = len(p.phases)
	p.phases = append(p.phases, name)
	p.current = append(p.current, 0)
	return len(p.phases) - 1
}

// StartTick begins timing a new tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	clear(p.current)
	p.active = -1
}

// StartPhase closes the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	p.closePhase(now)
	p.active = p.phaseIndex(phase)
	p.phaseStart = now
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.active >= 0 {
		p.current[p.active] += now.Sub(p.phaseStart)
	}
}

// EndTick closes the running phase and stores the tick in the window.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	p.closePhase(now)
	p.active = -1

	s := &p.ring[p.next]
	s.total = now.Sub(p.tickStart)
	s.phases = append(s.phases[:0], p.current...)

	p.next = (p.next + 1) % len(p.ring)
	if p.filled < len(p.ring) {
		p.filled++
	}
}

// RecordFrame records the time since the previous rendered frame.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frame = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration

	// Phases lists the phase names in tick order. PhaseAvg and PhasePct are
	// keyed by these names; PhasePct is a share of the average tick.
	Phases   []string
	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64

	TicksPerSecond float64

	// Frame timing, graphics mode only
	FrameDuration time.Duration
	FPS           float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	stats := PerfStats{
		Phases:        p.phases,
		PhaseAvg:      make(map[string]time.Duration, len(p.phases)),
		PhasePct:      make(map[string]float64, len(p.phases)),
		FrameDuration: p.frame,
	}
	if p.frame > 0 {
		stats.FPS = float64(time.Second) / float64(p.frame)
	}
	if p.filled == 0 {
		return stats
	}

	var total time.Duration
	sums := make([]time.Duration, len(p.phases))
	for i, s := range p.ring[:p.filled] {
		total += s.total
		if i == 0 || s.total < stats.MinTickDuration {
			stats.MinTickDuration = s.total
		}
		stats.MaxTickDuration = max(stats.MaxTickDuration, s.total)
		for j, d := range s.phases {
			sums[j] += d
		}
	}

	n := time.Duration(p.filled)
	stats.AvgTickDuration = total / n
	if stats.AvgTickDuration > 0 {
		stats.TicksPerSecond = float64(time.Second) / float64(stats.AvgTickDuration)
	}
	for j, name := range p.phases {
		if sums[j] == 0 {
			continue
		}
		avg := sums[j] / n
		stats.PhaseAvg[name] = avg
		if stats.AvgTickDuration > 0 {
			stats.PhasePct[name] = float64(avg) / float64(stats.AvgTickDuration) * 100
		}
	}
	return stats
}

// LogStats logs the window at info level, skipping phases under 0.1%.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_tick_us", s.AvgTickDuration.Microseconds(),
		"min_tick_us", s.MinTickDuration.Microseconds(),
		"max_tick_us", s.MaxTickDuration.Microseconds(),
		"ticks_per_sec", int(s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}
	for _, phase := range s.Phases {
		if pct := s.PhasePct[phase]; pct > 0.1 {
			attrs = append(attrs, phase+"_pct", int(pct*10)/10.0)
		}
	}
	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, phase := range s.Phases {
		attrs = append(attrs, slog.Float64(phase+"_pct", s.PhasePct[phase]))
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is one perf.csv row. The phase breakdown is a single column
// of name=percent pairs in tick order, so the file layout does not depend on
// which phases are registered.
type PerfStatsCSV struct {
	WindowEnd   int32   `csv:"window_end"`
	AvgTickUS   int64   `csv:"avg_tick_us"`
	MinTickUS   int64   `csv:"min_tick_us"`
	MaxTickUS   int64   `csv:"max_tick_us"`
	TicksPerSec float64 `csv:"ticks_per_sec"`
	FPS         float64 `csv:"fps"`
	PhasePct    string  `csv:"phase_pct"`
}

// ToCSV converts PerfStats to its perf.csv row.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	pairs := make([]string, len(s.Phases))
	for i, phase := range s.Phases {
		pairs[i] = fmt.Sprintf("%s=%.1f", phase, s.PhasePct[phase])
	}
	return PerfStatsCSV{
		WindowEnd:   windowEnd,
		AvgTickUS:   s.AvgTickDuration.Microseconds(),
		MinTickUS:   s.MinTickDuration.Microseconds(),
		MaxTickUS:   s.MaxTickDuration.Microseconds(),
		TicksPerSec: s.TicksPerSecond,
		FPS:         s.FPS,
		PhasePct:    strings.Join(pairs, ";"),
	}
}
