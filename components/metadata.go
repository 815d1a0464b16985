package components

import "math"

// FieldDescriptor describes a component field for UI display.
type FieldDescriptor struct {
	ID     string  // Unique identifier
	Label  string  // Display name
	Format string  // Printf format (e.g., "%.2f")
	Min    float64 // Minimum value (for bars)
	Max    float64 // Maximum value (for bars)
	IsBar  bool    // True to render as progress bar
}

// FishFieldDescriptors returns metadata for the fish inspector panel.
// Field IDs must match cases in GetFishValue().
func FishFieldDescriptors() []FieldDescriptor {
	return []FieldDescriptor{
		{ID: "size", Label: "Size", Format: "%.1f"},
		{ID: "speed", Label: "Speed", Format: "%.2f", Min: 0, Max: 4.5, IsBar: true},
		{ID: "base_speed", Label: "Base Speed", Format: "%.2f"},
		{ID: "chase", Label: "Chase", Format: "%.0f", Min: 0, Max: 300, IsBar: true},
		{ID: "direction", Label: "Direction", Format: "%+.0f"},
	}
}

// GetFishValue extracts a fish field value by ID.
func GetFishValue(fish *Fish, body *Body, vel *Velocity, fieldID string) float64 {
	switch fieldID {
	case "size":
		return body.Size
	case "speed":
		return math.Hypot(vel.X, vel.Y)
	case "base_speed":
		return fish.BaseSpeed
	case "chase":
		return float64(fish.ChaseTime)
	case "direction":
		return fish.Direction
	default:
		return 0
	}
}
