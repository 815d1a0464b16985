package systems

import (
	"math/rand"

	"github.com/pthm-cable/bigfish/components"
	"github.com/pthm-cable/bigfish/config"
)

// SpawnParams holds the population gate and the weighted size distribution.
type SpawnParams struct {
	Width, Height float64

	MaxFish      int
	SpawnChance  float64
	FallbackSize float64
	MinSize      float64

	MinFraction  float64
	HalfFraction float64
	MaxFraction  float64
	Cumulative   [3]float64

	BaseSpeedMin float64
	BaseSpeedMax float64
	ChaseTimeMin int
	ChaseTimeMax int
	MaxSpeed     float64
}

// SpawnParamsFromConfig extracts spawn parameters from the config.
func SpawnParamsFromConfig(cfg *config.Config) SpawnParams {
	return SpawnParams{
		Width:        cfg.Derived.Width,
		Height:       cfg.Derived.Height,
		MaxFish:      cfg.Population.MaxFish,
		SpawnChance:  cfg.Population.SpawnChance,
		FallbackSize: cfg.Population.FallbackSize,
		MinSize:      cfg.Population.MinSize,
		MinFraction:  cfg.Spawn.MinFraction,
		HalfFraction: cfg.Spawn.HalfFraction,
		MaxFraction:  cfg.Spawn.MaxFraction,
		Cumulative:   cfg.Derived.SpawnCumulative,
		BaseSpeedMin: cfg.Fish.BaseSpeedMin,
		BaseSpeedMax: cfg.Fish.BaseSpeedMax,
		ChaseTimeMin: cfg.Fish.ChaseTimeMin,
		ChaseTimeMax: cfg.Fish.ChaseTimeMax,
		MaxSpeed:     cfg.Fish.MaxSpeed,
	}
}

// SizeBucket identifies which branch of the size distribution was drawn.
type SizeBucket uint8

const (
	BucketMinimum SizeBucket = iota
	BucketHalf
	BucketRandom
)

// String returns the bucket name.
func (b SizeBucket) String() string {
	switch b {
	case BucketMinimum:
		return "minimum"
	case BucketHalf:
		return "half"
	case BucketRandom:
		return "random"
	default:
		return "unknown"
	}
}

// FishPlan describes a fish about to enter the playfield.
type FishPlan struct {
	X, Y         float64
	VX           float64
	Size         float64
	Bucket       SizeBucket
	Direction    float64 // +1 swims right, -1 swims left
	BaseSpeed    float64
	MaxSpeed     float64
	MaxChaseTime int32
	Variant      uint8
}

// Spawner rolls new fish sized relative to the leading player.
type Spawner struct {
	params SpawnParams
	rng    *rand.Rand
}

// NewSpawner creates a spawner drawing from rng.
func NewSpawner(params SpawnParams, rng *rand.Rand) *Spawner {
	return &Spawner{params: params, rng: rng}
}

// ShouldSpawn applies the population cap and the per-tick spawn chance.
// The chance is only rolled when the population is below the cap.
func (s *Spawner) ShouldSpawn(fishCount int) bool {
	if fishCount >= s.params.MaxFish {
		return false
	}
	return s.rng.Float64() < s.params.SpawnChance
}

// ReferenceSize returns the largest of the given living player sizes, or the
// fallback when there are none.
func (s *Spawner) ReferenceSize(livingSizes []float64) float64 {
	if len(livingSizes) == 0 {
		return s.params.FallbackSize
	}
	ref := livingSizes[0]
	for _, size := range livingSizes[1:] {
		ref = max(ref, size)
	}
	return ref
}

// RollSize draws a size for reference size r.
func (s *Spawner) RollSize(r float64) (float64, SizeBucket) {
	lo := s.params.MinFraction * r
	hi := s.params.MaxFraction * r

	var size float64
	var bucket SizeBucket
	switch u := s.rng.Float64(); {
	case u < s.params.Cumulative[0]:
		size, bucket = lo, BucketMinimum
	case u < s.params.Cumulative[1]:
		size, bucket = s.params.HalfFraction*r, BucketHalf
	default:
		size, bucket = lo+s.rng.Float64()*(hi-lo), BucketRandom
	}

	return components.ClampSize(size, s.params.MinSize), bucket
}

// Plan rolls a complete fish for reference size r: size, entry edge,
// height and per-fish tuning.
func (s *Spawner) Plan(r float64) FishPlan {
	size, bucket := s.RollSize(r)

	p := FishPlan{
		Size:     size,
		Bucket:   bucket,
		Y:        s.rng.Float64() * s.params.Height,
		MaxSpeed: s.params.MaxSpeed,
	}

	if s.rng.Float64() < 0.5 {
		p.X = -size
		p.Direction = 1
	} else {
		p.X = s.params.Width + size
		p.Direction = -1
	}

	p.BaseSpeed = s.params.BaseSpeedMin + s.rng.Float64()*(s.params.BaseSpeedMax-s.params.BaseSpeedMin)
	p.VX = p.Direction * p.BaseSpeed
	p.MaxChaseTime = int32(s.params.ChaseTimeMin + s.rng.Intn(s.params.ChaseTimeMax-s.params.ChaseTimeMin+1))
	p.Variant = uint8(s.rng.Intn(2))

	return p
}
