package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`
	Session         string  `csv:"session"`

	// Population at window end
	FishCount int `csv:"fish"`

	// Events during window
	Spawned      int     `csv:"spawned"`
	Eaten        int     `csv:"eaten"`
	Absorbed     int     `csv:"absorbed"`
	Despawned    int     `csv:"despawned"`
	PlayerDeaths int     `csv:"player_deaths"`
	PlayerGrowth float64 `csv:"player_growth"`

	// Fish size distribution (sampled at window end)
	FishSizeMean float64 `csv:"fish_size_mean"`
	FishSizeStd  float64 `csv:"fish_size_std"`
	FishSizeP10  float64 `csv:"fish_size_p10"`
	FishSizeP50  float64 `csv:"fish_size_p50"`
	FishSizeP90  float64 `csv:"fish_size_p90"`

	// Behavior modes (sampled at window end)
	Patrolling int `csv:"patrolling"`
	Pursuing   int `csv:"pursuing"`
	Fleeing    int `csv:"fleeing"`

	// Mean lifetime of fish removed during the window
	MeanLifetimeSec float64 `csv:"mean_lifetime"`

	// Players
	P1Score int     `csv:"p1_score"`
	P1Size  float64 `csv:"p1_size"`
	P1Dead  bool    `csv:"p1_dead"`
	P2Score int     `csv:"p2_score"`
	P2Size  float64 `csv:"p2_size"`
	P2Dead  bool    `csv:"p2_dead"`
}

// SizeStats summarizes a distribution of sizes.
type SizeStats struct {
	Mean, Std     float64
	P10, P50, P90 float64
}

// ComputeSizeStats calculates mean, standard deviation and percentiles.
// Returns zeros for an empty slice; Std is zero for a single value.
func ComputeSizeStats(values []float64) SizeStats {
	n := len(values)
	if n == 0 {
		return SizeStats{}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	s := SizeStats{Mean: stat.Mean(sorted, nil)}
	if n > 1 {
		s.Std = stat.StdDev(sorted, nil)
	}
	s.P10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	s.P50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	s.P90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.String("session", s.Session),
		slog.Int("fish", s.FishCount),
		slog.Int("spawned", s.Spawned),
		slog.Int("eaten", s.Eaten),
		slog.Int("absorbed", s.Absorbed),
		slog.Int("despawned", s.Despawned),
		slog.Int("player_deaths", s.PlayerDeaths),
		slog.Float64("player_growth", s.PlayerGrowth),
		slog.Float64("fish_size_mean", s.FishSizeMean),
		slog.Float64("fish_size_p50", s.FishSizeP50),
		slog.Int("patrolling", s.Patrolling),
		slog.Int("pursuing", s.Pursuing),
		slog.Int("fleeing", s.Fleeing),
		slog.Float64("mean_lifetime", s.MeanLifetimeSec),
		slog.Int("p1_score", s.P1Score),
		slog.Int("p2_score", s.P2Score),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"session", s.Session,
		"fish", s.FishCount,
		"spawned", s.Spawned,
		"eaten", s.Eaten,
		"absorbed", s.Absorbed,
		"despawned", s.Despawned,
		"player_deaths", s.PlayerDeaths,
		"player_growth", s.PlayerGrowth,
		"fish_size_mean", s.FishSizeMean,
		"fish_size_std", s.FishSizeStd,
		"fish_size_p10", s.FishSizeP10,
		"fish_size_p50", s.FishSizeP50,
		"fish_size_p90", s.FishSizeP90,
		"patrolling", s.Patrolling,
		"pursuing", s.Pursuing,
		"fleeing", s.Fleeing,
		"mean_lifetime", s.MeanLifetimeSec,
		"p1_score", s.P1Score,
		"p1_size", s.P1Size,
		"p1_dead", s.P1Dead,
		"p2_score", s.P2Score,
		"p2_size", s.P2Size,
		"p2_dead", s.P2Dead,
	)
}
