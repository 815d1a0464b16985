package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/bigfish/config"
	"github.com/pthm-cable/bigfish/telemetry"
)

func TestDefaultsInsideBounds(t *testing.T) {
	pv := NewParamVector()
	values := pv.ExtractFromConfig(config.Default())

	for i, p := range pv.Params {
		if values[i] < p.Min || values[i] > p.Max {
			t.Errorf("%s default %g outside [%g, %g]", p.Name, values[i], p.Min, p.Max)
		}
	}
}

func TestApplyToConfigClamps(t *testing.T) {
	pv := NewParamVector()
	cfg := config.Default()

	values := make([]float64, pv.Dim())
	for i, p := range pv.Params {
		values[i] = p.Max * 10
	}
	pv.ApplyToConfig(cfg, values)

	got := pv.ExtractFromConfig(cfg)
	for i, p := range pv.Params {
		if got[i] != p.Max {
			t.Errorf("%s = %g, want clamped to %g", p.Name, got[i], p.Max)
		}
	}
	if cfg.Population.MaxFish != 100 {
		t.Errorf("max_fish = %d, want 100", cfg.Population.MaxFish)
	}
}

func TestNormalizeBounds(t *testing.T) {
	pv := NewParamVector()
	lo := make([]float64, pv.Dim())
	hi := make([]float64, pv.Dim())
	for i, p := range pv.Params {
		lo[i], hi[i] = p.Min, p.Max
	}

	for i, v := range pv.Normalize(lo) {
		if v != 0 {
			t.Errorf("%s: normalized min = %g, want 0", pv.Params[i].Name, v)
		}
	}
	for i, v := range pv.Normalize(hi) {
		if math.Abs(v-1) > 1e-12 {
			t.Errorf("%s: normalized max = %g, want 1", pv.Params[i].Name, v)
		}
	}
}

func TestComputeFitness(t *testing.T) {
	fe := NewFitnessEvaluator(NewParamVector(), 1000, 600, []int64{1}, config.Default())

	if got := fe.computeFitness(600, 0); math.Abs(got) > 1e-12 {
		t.Errorf("fitness at target = %g, want 0", got)
	}
	short := fe.computeFitness(300, 0)
	long := fe.computeFitness(1200, 0)
	if math.Abs(short-long) > 1e-9 {
		t.Errorf("half and double the target should score the same, got %g and %g", short, long)
	}
	if fe.computeFitness(600, 1) >= fe.computeFitness(600, 0) {
		t.Error("liveliness should lower fitness")
	}
	if math.IsInf(fe.computeFitness(0, 0), 0) {
		t.Error("a zero-length match must score a finite fitness")
	}
}

func TestLiveliness(t *testing.T) {
	tests := []struct {
		name    string
		windows []telemetry.WindowStats
		want    float64
	}{
		{"no windows", nil, 0},
		{"empty field skipped", []telemetry.WindowStats{{FishCount: 0, Pursuing: 3}}, 0},
		{
			"mean of shares",
			[]telemetry.WindowStats{
				{FishCount: 10, Pursuing: 2, Fleeing: 3},
				{FishCount: 4, Patrolling: 4},
			},
			0.25,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := liveliness(tt.windows); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("liveliness = %g, want %g", got, tt.want)
			}
		})
	}
}

func TestEvaluateStopsAtCap(t *testing.T) {
	pv := NewParamVector()
	base := config.Default()
	fe := NewFitnessEvaluator(pv, 30, 60, []int64{1, 2}, base)

	fitness := fe.Evaluate(pv.ExtractFromConfig(base))
	if math.IsNaN(fitness) || math.IsInf(fitness, 0) {
		t.Fatalf("fitness = %g, want finite", fitness)
	}
	// Idle players cannot be eaten in the first half second.
	if ticks, _ := fe.Last(); ticks != 30 {
		t.Errorf("mean match ticks = %g, want 30", ticks)
	}
	// The base config is untouched.
	if base.Behavior.ThreatRadius != config.Default().Behavior.ThreatRadius {
		t.Error("Evaluate modified the base config")
	}
}
