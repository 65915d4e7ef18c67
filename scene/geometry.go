// Package scene holds the ordered list of drawable primitives produced each
// frame, their hit-testing rules and the layout helpers that place hands,
// slots and towers inside the logical coordinate space.
package scene

// Point is a position in logical coordinates
type Point struct {
	X, Y int
}

// Sub returns the displacement p - q
func (p Point) Sub(q Point) (dx, dy int) {
	return p.X - q.X, p.Y - q.Y
}

// Rect is an axis-aligned box in logical coordinates
// Coordinates are never negative; callers clamp before constructing
type Rect struct {
	X, Y, W, H int
}

// NewRect creates a rect
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Origin returns the top-left corner
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// Contains reports whether p lies inside r, inclusive on all edges
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// At returns r moved so its origin is p
func (r Rect) At(p Point) Rect {
	r.X, r.Y = p.X, p.Y
	return r
}

// Shifted returns r displaced by (dx, dy) with the origin clamped at zero
func (r Rect) Shifted(dx, dy int) Rect {
	r.X = clampZero(r.X + dx)
	r.Y = clampZero(r.Y + dy)
	return r
}

func clampZero(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

// Color is an RGBA color
type Color struct {
	R, G, B, A uint8
}

// RGBA creates a color
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Palette used by the layouts and rule variants
var (
	ColorBackground = RGBA(91, 99, 112, 255)
	ColorBlack      = RGBA(0, 0, 0, 255)
	ColorWhite      = RGBA(255, 255, 255, 255)
	ColorRed        = RGBA(255, 0, 0, 0)
	ColorGreen      = RGBA(0, 255, 0, 0)
	ColorBlue       = RGBA(0, 0, 255, 0)
	ColorYellow     = RGBA(255, 255, 0, 0)
	ColorSpacer     = RGBA(220, 220, 250, 255)
	ColorDeckSlot   = RGBA(0, 255, 0, 255)
)
