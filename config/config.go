// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Player     PlayerConfig     `yaml:"player"`
	Fish       FishConfig       `yaml:"fish"`
	Behavior   BehaviorConfig   `yaml:"behavior"`
	Collision  CollisionConfig  `yaml:"collision"`
	Population PopulationConfig `yaml:"population"`
	Spawn      SpawnConfig      `yaml:"spawn"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Controls   []ControlConfig  `yaml:"controls"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings. The playfield is exactly one screen.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// PlayerStart places one player at reset.
type PlayerStart struct {
	Name string  `yaml:"name"`
	X    float64 `yaml:"x"` // fraction of screen width
	Y    float64 `yaml:"y"` // fraction of screen height
}

// PlayerConfig holds player swimmer parameters.
type PlayerConfig struct {
	InitialSize float64       `yaml:"initial_size"`
	Accel       float64       `yaml:"accel"`
	MaxSpeed    float64       `yaml:"max_speed"`
	Damping     float64       `yaml:"damping"`
	Starts      []PlayerStart `yaml:"starts"`
}

// FishConfig holds autonomous swimmer parameters.
type FishConfig struct {
	MaxSpeed       float64 `yaml:"max_speed"`
	Damping        float64 `yaml:"damping"`
	BaseSpeedMin   float64 `yaml:"base_speed_min"`
	BaseSpeedMax   float64 `yaml:"base_speed_max"`
	ChaseTimeMin   int     `yaml:"chase_time_min"`
	ChaseTimeMax   int     `yaml:"chase_time_max"`
	PatrolAccel    float64 `yaml:"patrol_accel"`
	NudgeChance    float64 `yaml:"nudge_chance"`
	NudgeMagnitude float64 `yaml:"nudge_magnitude"`
	TurnMargin     float64 `yaml:"turn_margin"`
}

// BehaviorConfig holds the thresholds of the patrol/pursue/flee classifier.
type BehaviorConfig struct {
	SizeRatio     float64 `yaml:"size_ratio"`
	ThreatRadius  float64 `yaml:"threat_radius"`
	ChaseRadius   float64 `yaml:"chase_radius"`
	FleeImpulse   float64 `yaml:"flee_impulse"`
	PursueImpulse float64 `yaml:"pursue_impulse"`
	ChaseBoost    float64 `yaml:"chase_boost"`
}

// CollisionConfig holds growth amounts applied when something is eaten.
type CollisionConfig struct {
	PlayerGrowthDivisor float64 `yaml:"player_growth_divisor"`
	FishGrowth          float64 `yaml:"fish_growth"`
}

// PopulationConfig holds population management parameters.
type PopulationConfig struct {
	MaxFish      int     `yaml:"max_fish"`
	SpawnChance  float64 `yaml:"spawn_chance"`
	FallbackSize float64 `yaml:"fallback_size"` // reference size when no player is alive
	MinSize      float64 `yaml:"min_size"`      // floor for every swimmer size
	GridCellSize float64 `yaml:"grid_cell_size"`
}

// SpawnConfig holds the weighted size distribution for new fish.
type SpawnConfig struct {
	MinFraction  float64 `yaml:"min_fraction"`
	HalfFraction float64 `yaml:"half_fraction"`
	MaxFraction  float64 `yaml:"max_fraction"`
	MinWeight    float64 `yaml:"min_weight"`
	HalfWeight   float64 `yaml:"half_weight"`
	RandomWeight float64 `yaml:"random_weight"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"`
	PerfWindow  int     `yaml:"perf_window"`
}

// ControlConfig binds the four directions of one player to key names.
type ControlConfig struct {
	Up    string `yaml:"up"`
	Down  string `yaml:"down"`
	Left  string `yaml:"left"`
	Right string `yaml:"right"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Width  float64 // Screen.Width as float64
	Height float64 // Screen.Height as float64
	DT     float64 // seconds per tick at the target frame rate

	// Cumulative spawn weights normalized to 1: [min, min+half, 1].
	SpawnCumulative [3]float64
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects configurations the simulation cannot run with.
func (c *Config) validate() error {
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("screen size must be positive, got %dx%d", c.Screen.Width, c.Screen.Height)
	}
	if len(c.Player.Starts) != 2 {
		return fmt.Errorf("exactly 2 player starts required, got %d", len(c.Player.Starts))
	}
	if len(c.Controls) != 2 {
		return fmt.Errorf("exactly 2 control bindings required, got %d", len(c.Controls))
	}
	if c.Fish.ChaseTimeMax < c.Fish.ChaseTimeMin {
		return fmt.Errorf("fish.chase_time_max (%d) below chase_time_min (%d)", c.Fish.ChaseTimeMax, c.Fish.ChaseTimeMin)
	}
	if c.Fish.BaseSpeedMax < c.Fish.BaseSpeedMin {
		return fmt.Errorf("fish.base_speed_max (%g) below base_speed_min (%g)", c.Fish.BaseSpeedMax, c.Fish.BaseSpeedMin)
	}
	if c.Population.MinSize <= 0 {
		return fmt.Errorf("population.min_size must be positive, got %g", c.Population.MinSize)
	}
	total := c.Spawn.MinWeight + c.Spawn.HalfWeight + c.Spawn.RandomWeight
	if total <= 0 {
		return fmt.Errorf("spawn weights must sum to a positive value")
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.Width = float64(c.Screen.Width)
	c.Derived.Height = float64(c.Screen.Height)

	fps := c.Screen.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	c.Derived.DT = 1.0 / float64(fps)

	total := c.Spawn.MinWeight + c.Spawn.HalfWeight + c.Spawn.RandomWeight
	c.Derived.SpawnCumulative = [3]float64{
		c.Spawn.MinWeight / total,
		(c.Spawn.MinWeight + c.Spawn.HalfWeight) / total,
		1,
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
