package systems

// Phase ids, in tick order. The perf collector times each under this name.
const (
	PhasePlayers   = "players"
	PhaseBehavior  = "behavior"
	PhasePhysics   = "physics"
	PhaseCollision = "collision"
	PhaseSpawn     = "spawn"
	PhaseTelemetry = "telemetry"
)

// SystemInfo describes a simulation phase for UI display.
type SystemInfo struct {
	ID          string // Internal identifier (used for perf tracking)
	Name        string // Display name
	Description string // What this phase does
	Category    string // Grouping (e.g., "movement", "ai")
}

// SystemRegistry holds metadata about all systems.
// This centralizes system naming so the UI and perf tracker stay in sync.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with all known systems.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds all known systems in tick order.
// Update this when adding new systems.
func (r *SystemRegistry) registerDefaults() {
	r.Register(SystemInfo{ID: PhasePlayers, Name: "Players", Description: "Applies keyboard input to player swimmers", Category: "movement"})
	r.Register(SystemInfo{ID: PhaseBehavior, Name: "Behavior", Description: "Patrol, pursue and flee decisions", Category: "ai"})
	r.Register(SystemInfo{ID: PhasePhysics, Name: "Physics", Description: "Damps, clamps and integrates fish", Category: "movement"})
	r.Register(SystemInfo{ID: PhaseCollision, Name: "Collision", Description: "Eating, deaths and despawns", Category: "world"})
	r.Register(SystemInfo{ID: PhaseSpawn, Name: "Spawn", Description: "Injects new fish", Category: "world"})
	r.Register(SystemInfo{ID: PhaseTelemetry, Name: "Telemetry", Description: "Collects window statistics", Category: "internal"})
}

// Register adds a system to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	r.systems = append(r.systems, info)
	r.byID[info.ID] = info
}

// Get returns system info by ID.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// GetName returns the display name for a system ID.
// Falls back to the ID itself if not found.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// All returns all registered systems.
func (r *SystemRegistry) All() []SystemInfo {
	return r.systems
}

// IDs returns all system IDs in registration order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}
