package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// clampFloat clamps a value between min and max.
func clampFloat(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// distance returns the Euclidean distance between two points.
func distance(a, b r2.Vec) float64 {
	return r2.Norm(r2.Sub(a, b))
}

// direction returns the unit vector pointing from one point to another.
// ok is false when the points coincide; callers skip the impulse then.
func direction(from, to r2.Vec) (unit r2.Vec, ok bool) {
	d := r2.Sub(to, from)
	n := r2.Norm(d)
	if n == 0 {
		return r2.Vec{}, false
	}
	return r2.Scale(1/n, d), true
}

// clampSpeed rescales v uniformly so its magnitude does not exceed maxSpeed.
func clampSpeed(v r2.Vec, maxSpeed float64) r2.Vec {
	speed := r2.Norm(v)
	if speed > maxSpeed {
		return r2.Scale(maxSpeed/speed, v)
	}
	return v
}

// facingAngle returns the drawing angle in degrees for a velocity,
// atan2(-dy, dx) in screen space. ok is false for a zero velocity.
func facingAngle(v r2.Vec) (deg float64, ok bool) {
	if v.X == 0 && v.Y == 0 {
		return 0, false
	}
	return math.Atan2(-v.Y, v.X) * 180 / math.Pi, true
}

// outranks reports whether size a is more than ratio times size b.
func outranks(a, b, ratio float64) bool {
	return a > b*ratio
}

// overlapping reports whether two swimmers' centers are closer than the
// average of their sizes.
func overlapping(a r2.Vec, sizeA float64, b r2.Vec, sizeB float64) bool {
	return distance(a, b) < (sizeA+sizeB)/2
}
