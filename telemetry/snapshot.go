package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds the complete match state for inspection or restore.
type Snapshot struct {
	Version int    `json:"version"`
	RNGSeed int64  `json:"rng_seed"`
	Session string `json:"session"`

	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	Tick     int32 `json:"tick"`
	Terminal bool  `json:"terminal"`

	Players []PlayerState `json:"players"`
	Fish    []FishState   `json:"fish"`

	Bookmark *Bookmark `json:"bookmark,omitempty"`
}

// PlayerState holds one player's complete state.
type PlayerState struct {
	Slot  uint8   `json:"slot"`
	Name  string  `json:"name"`
	Score int     `json:"score"`
	Dead  bool    `json:"dead"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	VelX  float64 `json:"vel_x"`
	VelY  float64 `json:"vel_y"`
	Size  float64 `json:"size"`
	Angle float64 `json:"angle"`
}

// Target kinds stored in FishState. Entity handles do not survive a
// restore, so a target is saved as an index into Fish or a player slot.
const (
	TargetNone   = ""
	TargetFish   = "fish"
	TargetPlayer = "player"
)

// FishState holds one fish's complete state.
type FishState struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	VelX  float64 `json:"vel_x"`
	VelY  float64 `json:"vel_y"`
	Size  float64 `json:"size"`
	Angle float64 `json:"angle"`

	BaseSpeed    float64 `json:"base_speed"`
	Speed        float64 `json:"speed"`
	Direction    float64 `json:"direction"`
	TargetKind   string  `json:"target_kind,omitempty"`
	TargetIndex  int     `json:"target_index,omitempty"`
	ChaseTime    int32   `json:"chase_time"`
	MaxChaseTime int32   `json:"max_chase_time"`
	Variant      uint8   `json:"variant"`

	Lifetime *LifetimeStatsJSON `json:"lifetime,omitempty"`
}

// LifetimeStatsJSON is the JSON-serializable form of LifetimeStats.
type LifetimeStatsJSON struct {
	SpawnTick int32   `json:"spawn_tick"`
	SpawnSize float64 `json:"spawn_size"`
	Bucket    string  `json:"bucket"`
	Absorbed  int     `json:"absorbed"`
	PeakSize  float64 `json:"peak_size"`
}

// ToJSON converts LifetimeStats to its JSON form.
func (ls *LifetimeStats) ToJSON() *LifetimeStatsJSON {
	if ls == nil {
		return nil
	}
	return &LifetimeStatsJSON{
		SpawnTick: ls.SpawnTick,
		SpawnSize: ls.SpawnSize,
		Bucket:    ls.Bucket,
		Absorbed:  ls.Absorbed,
		PeakSize:  ls.PeakSize,
	}
}

// FromJSON converts the JSON form back to LifetimeStats.
func (lsj *LifetimeStatsJSON) FromJSON() *LifetimeStats {
	if lsj == nil {
		return nil
	}
	return &LifetimeStats{
		SpawnTick: lsj.SpawnTick,
		SpawnSize: lsj.SpawnSize,
		Bucket:    lsj.Bucket,
		Absorbed:  lsj.Absorbed,
		PeakSize:  lsj.PeakSize,
	}
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	// Build filename
	name := fmt.Sprintf("snapshot_%d", snapshot.Tick)
	if snapshot.Bookmark != nil {
		// Sanitize bookmark type for filename
		sanitized := strings.ReplaceAll(string(snapshot.Bookmark.Type), " ", "_")
		name = fmt.Sprintf("snapshot_%d_%s", snapshot.Tick, sanitized)
	}
	name += ".json"

	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d (want %d)", snapshot.Version, SnapshotVersion)
	}

	return &snapshot, nil
}
