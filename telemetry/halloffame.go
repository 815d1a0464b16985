package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// HallEntry records one player's finished round.
type HallEntry struct {
	Name        string  `json:"name"`
	Score       int     `json:"score"`
	Size        float64 `json:"size"`
	SurvivalSec float64 `json:"survival_sec"`
	Session     string  `json:"session"`
}

// HallOfFame keeps the best rounds, ordered by score then final size.
type HallOfFame struct {
	entries []HallEntry
	maxSize int
}

// NewHallOfFame creates a new hall of fame with the given capacity.
func NewHallOfFame(maxSize int) *HallOfFame {
	if maxSize < 1 {
		maxSize = 10
	}
	return &HallOfFame{
		entries: make([]HallEntry, 0, maxSize),
		maxSize: maxSize,
	}
}

// ranksAbove reports whether a should be listed before b.
func ranksAbove(a, b HallEntry) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.Size > b.Size
}

// Consider inserts a finished round if it ranks within capacity.
// Returns true if the entry was added.
func (hof *HallOfFame) Consider(entry HallEntry) bool {
	// Find insertion point (sorted descending)
	idx := sort.Search(len(hof.entries), func(i int) bool {
		return ranksAbove(entry, hof.entries[i])
	})

	// If hall is full and entry would be last (lowest), skip it
	if len(hof.entries) >= hof.maxSize && idx >= hof.maxSize {
		return false
	}

	hof.entries = append(hof.entries, HallEntry{})
	copy(hof.entries[idx+1:], hof.entries[idx:])
	hof.entries[idx] = entry

	// Trim if over capacity
	if len(hof.entries) > hof.maxSize {
		hof.entries = hof.entries[:hof.maxSize]
	}
	return true
}

// Entries returns the ranked entries.
func (hof *HallOfFame) Entries() []HallEntry {
	return hof.entries
}

// TopScore returns the best score on record, or 0 if empty.
func (hof *HallOfFame) TopScore() int {
	if len(hof.entries) == 0 {
		return 0
	}
	return hof.entries[0].Score
}

// MarshalJSON serializes the hall of fame to JSON.
func (hof *HallOfFame) MarshalJSON() ([]byte, error) {
	return json.MarshalIndent(hof.entries, "", "  ")
}

// LoadHallOfFameFromFile reads a hall of fame JSON file. Entries beyond
// maxSize are dropped.
func LoadHallOfFameFromFile(path string, maxSize int) (*HallOfFame, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading hall of fame: %w", err)
	}

	var entries []HallEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing hall of fame JSON: %w", err)
	}

	hof := NewHallOfFame(maxSize)
	for _, e := range entries {
		hof.Consider(e)
	}
	return hof, nil
}

// SaveToFile writes the hall of fame as JSON to path.
func (hof *HallOfFame) SaveToFile(path string) error {
	data, err := hof.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshaling hall of fame: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing hall of fame: %w", err)
	}
	return nil
}
