package main

import (
	"github.com/pthm-cable/bigfish/config"
)

// Param defines a single tunable parameter.
type Param struct {
	Name string  // config path, also the CSV column
	Min  float64 // Lower bound
	Max  float64 // Upper bound

	get func(*config.Config) float64
	set func(*config.Config, float64)
}

// ParamVector holds the set of all tunable parameters.
type ParamVector struct {
	Params []Param
}

// NewParamVector creates the standard set of difficulty parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Params: []Param{
			// Behavior
			{
				Name: "behavior.threat_radius", Min: 100, Max: 400,
				get: func(c *config.Config) float64 { return c.Behavior.ThreatRadius },
				set: func(c *config.Config, v float64) { c.Behavior.ThreatRadius = v },
			},
			{
				Name: "behavior.chase_radius", Min: 100, Max: 400,
				get: func(c *config.Config) float64 { return c.Behavior.ChaseRadius },
				set: func(c *config.Config, v float64) { c.Behavior.ChaseRadius = v },
			},
			{
				Name: "behavior.pursue_impulse", Min: 0.02, Max: 0.3,
				get: func(c *config.Config) float64 { return c.Behavior.PursueImpulse },
				set: func(c *config.Config, v float64) { c.Behavior.PursueImpulse = v },
			},
			{
				Name: "behavior.chase_boost", Min: 1.0, Max: 2.5,
				get: func(c *config.Config) float64 { return c.Behavior.ChaseBoost },
				set: func(c *config.Config, v float64) { c.Behavior.ChaseBoost = v },
			},
			// Fish
			{
				Name: "fish.base_speed_max", Min: 1.5, Max: 4,
				get: func(c *config.Config) float64 { return c.Fish.BaseSpeedMax },
				set: func(c *config.Config, v float64) { c.Fish.BaseSpeedMax = v },
			},
			// Growth
			{
				Name: "collision.fish_growth", Min: 0.05, Max: 0.6,
				get: func(c *config.Config) float64 { return c.Collision.FishGrowth },
				set: func(c *config.Config, v float64) { c.Collision.FishGrowth = v },
			},
			// Population
			{
				Name: "population.spawn_chance", Min: 0.02, Max: 0.3,
				get: func(c *config.Config) float64 { return c.Population.SpawnChance },
				set: func(c *config.Config, v float64) { c.Population.SpawnChance = v },
			},
			{
				Name: "population.max_fish", Min: 20, Max: 100,
				get: func(c *config.Config) float64 { return float64(c.Population.MaxFish) },
				set: func(c *config.Config, v float64) { c.Population.MaxFish = int(v) },
			},
			{
				Name: "spawn.max_fraction", Min: 0.8, Max: 2.0,
				get: func(c *config.Config) float64 { return c.Spawn.MaxFraction },
				set: func(c *config.Config, v float64) { c.Spawn.MaxFraction = v },
			},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Params)
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Params))
	for i, p := range pv.Params {
		normalized[i] = (raw[i] - p.Min) / (p.Max - p.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Params))
	for i, p := range pv.Params {
		raw[i] = p.Min + normalized[i]*(p.Max-p.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Params))
	for i, p := range pv.Params {
		val := v[i]
		if val < p.Min {
			val = p.Min
		}
		if val > p.Max {
			val = p.Max
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig writes clamped parameter values into cfg.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	for i, v := range pv.Clamp(values) {
		pv.Params[i].set(cfg, v)
	}
}

// ExtractFromConfig reads the current parameter values from cfg.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	values := make([]float64, len(pv.Params))
	for i, p := range pv.Params {
		values[i] = p.get(cfg)
	}
	return values
}
