package components

// Body holds the physical extent and speed cap shared by all swimmers.
type Body struct {
	Size     float64 `inspect:"label,fmt:%.1f"` // radius-like scalar for hitbox and draw scale
	MaxSpeed float64 `inspect:"label,fmt:%.1f"`
}

// Grow increases the size by amount, never dropping below minSize.
func (b *Body) Grow(amount, minSize float64) {
	b.Size += amount
	if b.Size < minSize {
		b.Size = minSize
	}
}

// ClampSize floors a size at minSize. Bad spawn rolls land here instead of
// propagating a non-positive size.
func ClampSize(size, minSize float64) float64 {
	if !(size >= minSize) { // also catches NaN
		return minSize
	}
	return size
}
