// Package draw renders to ANSI terminals: a scaled half-block canvas with
// 24-bit colour, text helpers and chunked output for network sessions.
package draw

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Box returns the corners of the box grown by pad on every side.
func Box(x, y, w, h, pad float64) []Point {
	return []Point{
		{X: x - pad, Y: y - pad},
		{X: x + w + pad, Y: y - pad},
		{X: x + w + pad, Y: y + h + pad},
		{X: x - pad, Y: y + h + pad},
	}
}

// Triangle returns the outline of an upward-pointing triangle inside the box.
func Triangle(x, y, w, h float64) []Point {
	return []Point{
		{X: x + w/2, Y: y},
		{X: x + w, Y: y + h},
		{X: x, Y: y + h},
	}
}

// Diamond returns the outline of a diamond inscribed in the box.
func Diamond(x, y, w, h float64) []Point {
	return []Point{
		{X: x + w/2, Y: y},
		{X: x + w, Y: y + h/2},
		{X: x + w/2, Y: y + h},
		{X: x, Y: y + h/2},
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
