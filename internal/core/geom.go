// Package core provides the primitives shared by the simulation and the
// terminal presentation: geometry, the cell screen buffer and input frames.
// It has no Bubble Tea dependency so game logic stays pure and testable.
package core

// Rect is an integer rectangle in screen cells, used for drawing.
type Rect struct {
	X, Y int // Top-left corner
	W, H int
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate one past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate one past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Box is an axis-aligned bounding box in playfield units.
// Edges are stored directly because hitboxes are built from insets,
// not from an origin and a size.
type Box struct {
	Left, Top, Right, Bottom float64
}

// NewBox creates a box from its top-left corner and size.
func NewBox(x, y, w, h float64) Box {
	return Box{Left: x, Top: y, Right: x + w, Bottom: y + h}
}

// Width returns the horizontal extent of the box.
func (b Box) Width() float64 {
	return b.Right - b.Left
}

// Height returns the vertical extent of the box.
func (b Box) Height() float64 {
	return b.Bottom - b.Top
}

// OverlapsX reports whether the horizontal spans of two boxes overlap.
// Touching edges do not count.
func (b Box) OverlapsX(o Box) bool {
	return b.Right > o.Left && b.Left < o.Right
}

// Intersects reports whether two boxes overlap on both axes.
func (b Box) Intersects(o Box) bool {
	return b.OverlapsX(o) && b.Bottom > o.Top && b.Top < o.Bottom
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
