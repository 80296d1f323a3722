// Package physics provides axis-aligned collision geometry and a broad-phase grid.
package physics

import "math"

// Rect is an axis-aligned rectangle with a top-left origin.
type Rect struct {
	X, Y float64 // Top-left corner
	W, H float64 // Width and height
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Overlaps reports whether a and b overlap on both axes.
// Comparisons are strict: rectangles that only share an edge do not overlap.
func Overlaps(a, b Rect) bool {
	return a.X < b.X+b.W &&
		a.X+a.W > b.X &&
		a.Y < b.Y+b.H &&
		a.Y+a.H > b.Y
}

// Clamp restricts v to [lo, hi]. If hi < lo the result is lo.
// NaN inputs collapse to lo so callers never keep an unbounded coordinate.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		if hi < lo {
			return lo
		}
		return hi
	}
	return v
}
