// Package telemetry provides match statistics, bookmarks, snapshots and CSV output.
package telemetry

// EventType identifies telemetry events.
type EventType uint8

const (
	EventFishSpawned EventType = iota
	EventFishEaten
	EventFishAbsorbed
	EventFishDespawned
	EventPlayerGrew
	EventPlayerDied
	EventGameOver
)

// String returns the event name used in logs and CSV output.
func (t EventType) String() string {
	switch t {
	case EventFishSpawned:
		return "fish_spawned"
	case EventFishEaten:
		return "fish_eaten"
	case EventFishAbsorbed:
		return "fish_absorbed"
	case EventFishDespawned:
		return "fish_despawned"
	case EventPlayerGrew:
		return "player_grew"
	case EventPlayerDied:
		return "player_died"
	case EventGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// NoSlot marks events that do not involve a player.
const NoSlot int8 = -1

// Event represents a single telemetry event.
type Event struct {
	Type     EventType
	Tick     int32
	EntityID uint32 // subject of the event
	Slot     int8   // player slot, NoSlot for fish-only events

	// Optional fields depending on event type
	TargetID uint32  // the other party (eater, victim)
	Size     float64 // subject size after the event
	Amount   float64 // growth applied
}

// NewFishSpawnedEvent creates a spawn event.
func NewFishSpawnedEvent(tick int32, fishID uint32, size float64) Event {
	return Event{
		Type:     EventFishSpawned,
		Tick:     tick,
		EntityID: fishID,
		Slot:     NoSlot,
		Size:     size,
	}
}

// NewFishEatenEvent creates an event for a fish eaten by a player.
func NewFishEatenEvent(tick int32, fishID uint32, fishSize float64, slot int8, playerID uint32) Event {
	return Event{
		Type:     EventFishEaten,
		Tick:     tick,
		EntityID: fishID,
		Slot:     slot,
		TargetID: playerID,
		Size:     fishSize,
	}
}

// NewFishAbsorbedEvent creates an event for a fish swallowed by a larger fish.
func NewFishAbsorbedEvent(tick int32, preyID uint32, preySize float64, eaterID uint32) Event {
	return Event{
		Type:     EventFishAbsorbed,
		Tick:     tick,
		EntityID: preyID,
		Slot:     NoSlot,
		TargetID: eaterID,
		Size:     preySize,
	}
}

// NewFishDespawnedEvent creates an event for a fish leaving the screen.
func NewFishDespawnedEvent(tick int32, fishID uint32, size float64) Event {
	return Event{
		Type:     EventFishDespawned,
		Tick:     tick,
		EntityID: fishID,
		Slot:     NoSlot,
		Size:     size,
	}
}

// NewPlayerGrewEvent creates a growth event. newSize includes amount.
func NewPlayerGrewEvent(tick int32, slot int8, playerID uint32, newSize, amount float64) Event {
	return Event{
		Type:     EventPlayerGrew,
		Tick:     tick,
		EntityID: playerID,
		Slot:     slot,
		Size:     newSize,
		Amount:   amount,
	}
}

// NewPlayerDiedEvent creates a death event.
func NewPlayerDiedEvent(tick int32, slot int8, playerID uint32, size float64, fishID uint32) Event {
	return Event{
		Type:     EventPlayerDied,
		Tick:     tick,
		EntityID: playerID,
		Slot:     slot,
		TargetID: fishID,
		Size:     size,
	}
}

// NewGameOverEvent creates the event emitted once when the last player dies.
func NewGameOverEvent(tick int32) Event {
	return Event{
		Type: EventGameOver,
		Tick: tick,
		Slot: NoSlot,
	}
}

// EventRecord is a flat struct for CSV export of events.
type EventRecord struct {
	Tick     int32   `csv:"tick"`
	Type     string  `csv:"type"`
	EntityID uint32  `csv:"entity"`
	Slot     int8    `csv:"slot"`
	TargetID uint32  `csv:"target"`
	Size     float64 `csv:"size"`
	Amount   float64 `csv:"amount"`
}

// ToCSV converts an Event to its CSV record.
func (e Event) ToCSV() EventRecord {
	return EventRecord{
		Tick:     e.Tick,
		Type:     e.Type.String(),
		EntityID: e.EntityID,
		Slot:     e.Slot,
		TargetID: e.TargetID,
		Size:     e.Size,
		Amount:   e.Amount,
	}
}
