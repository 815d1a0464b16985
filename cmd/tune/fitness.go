package main

import (
	"math"
	"sync"

	"github.com/pthm-cable/bigfish/config"
	"github.com/pthm-cable/bigfish/game"
	"github.com/pthm-cable/bigfish/telemetry"
)

// livelinessWeight scales the bonus for fish that spend time pursuing or
// fleeing. Hitting the target match length dominates.
const livelinessWeight = 0.2

// FitnessEvaluator runs headless matches with idle players and scores how
// close they come to the target match length.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int32
	targetTicks float64
	seeds       []int64
	baseConfig  *config.Config
	statsWindow float64

	mu             sync.Mutex
	lastMatchTicks float64 // mean match length from the most recent Evaluate call
	lastLiveliness float64
}

// NewFitnessEvaluator creates a new evaluator. Matches still running at
// maxTicks are scored as lasting maxTicks.
func NewFitnessEvaluator(params *ParamVector, maxTicks, targetTicks int32, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		targetTicks: float64(targetTicks),
		seeds:       seeds,
		baseConfig:  baseCfg,
		statsWindow: 5.0,
	}
}

// Last returns the mean match length and liveliness from the most recent
// evaluation.
func (fe *FitnessEvaluator) Last() (matchTicks, liveliness float64) {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastMatchTicks, fe.lastLiveliness
}

// runResult holds the results from a single match.
type runResult struct {
	matchTicks  int32                   // ticks until both players died (or maxTicks)
	windowStats []telemetry.WindowStats // collected via the stats callback
	err         error
}

// Evaluate computes fitness for a parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]runResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runMatch(x, s)
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalTicks, totalLive float64
	for _, r := range results {
		if r.err != nil {
			return math.Inf(1)
		}
		live := liveliness(r.windowStats)
		totalFitness += fe.computeFitness(r.matchTicks, live)
		totalTicks += float64(r.matchTicks)
		totalLive += live
	}

	n := float64(len(fe.seeds))
	fe.mu.Lock()
	fe.lastMatchTicks = totalTicks / n
	fe.lastLiveliness = totalLive / n
	fe.mu.Unlock()

	return totalFitness / n
}

// runMatch plays one match with idle players until it ends or maxTicks.
func (fe *FitnessEvaluator) runMatch(x []float64, seed int64) runResult {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	var result runResult
	g, err := game.NewGame(cfg, game.Options{
		Seed:           seed,
		StatsWindowSec: fe.statsWindow,
	})
	if err != nil {
		result.err = err
		return result
	}
	defer g.Close()

	g.SetStatsCallback(func(stats telemetry.WindowStats) {
		result.windowStats = append(result.windowStats, stats)
	})

	for !g.Terminal() && g.Tick() < fe.maxTicks {
		g.Step(game.Input{})
	}
	result.matchTicks = g.Tick()
	return result
}

// copyConfig returns a copy of the base config that parameters can be
// written into. Slices are shared and never written.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}

// computeFitness scores a match: the squared log ratio of its length to the
// target, less a bonus for liveliness.
func (fe *FitnessEvaluator) computeFitness(matchTicks int32, live float64) float64 {
	ticks := math.Max(float64(matchTicks), 1)
	logErr := math.Log(ticks / fe.targetTicks)
	return logErr*logErr - livelinessWeight*live
}

// liveliness is the mean share of fish pursuing or fleeing across windows
// that had any fish, in [0, 1].
func liveliness(windows []telemetry.WindowStats) float64 {
	var sum float64
	var n int
	for _, w := range windows {
		if w.FishCount == 0 {
			continue
		}
		sum += float64(w.Pursuing+w.Fleeing) / float64(w.FishCount)
		n++
	}
	if n == 0 {
		return 0
	}
	return clamp01(sum / float64(n))
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
