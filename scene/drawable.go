package scene

// Kind tags the Drawable variant
type Kind uint8

const (
	KindFilledRect Kind = iota
	KindOutlinedRect
	KindText
)

// String returns the variant name
func (k Kind) String() string {
	switch k {
	case KindFilledRect:
		return "FilledRect"
	case KindOutlinedRect:
		return "OutlinedRect"
	case KindText:
		return "Text"
	default:
		return "Unknown"
	}
}

// SnapClass groups drawables that may be dropped onto each other
type SnapClass uint8

const (
	SnapNone SnapClass = iota
	SnapCard
)

// Snap is the drag/snap capability descriptor carried by rects
// Zero value: no capability
type Snap struct {
	Class       SnapClass
	Draggable   bool // item can be picked up
	AcceptsDrop bool // items of the same class snap onto it
}

// CardSnap returns a card-class capability
func CardSnap(draggable, acceptsDrop bool) Snap {
	return Snap{Class: SnapCard, Draggable: draggable, AcceptsDrop: acceptsDrop}
}

// Drawable is a tagged variant over filled rects, outlined rects and text blocks
// Values are copied freely; no field aliases shared state
type Drawable struct {
	Kind  Kind
	Rect  Rect
	Color Color
	Snap  Snap // rects only, ignored for text

	Text string  // text only
	Size float64 // text only
}

// FilledRect creates a filled rectangle
func FilledRect(r Rect, c Color, snap Snap) Drawable {
	return Drawable{Kind: KindFilledRect, Rect: r, Color: c, Snap: snap}
}

// OutlinedRect creates an outlined rectangle
func OutlinedRect(r Rect, c Color, snap Snap) Drawable {
	return Drawable{Kind: KindOutlinedRect, Rect: r, Color: c, Snap: snap}
}

// Text creates a text block laid out inside r
func Text(r Rect, s string, c Color, size float64) Drawable {
	return Drawable{Kind: KindText, Rect: r, Color: c, Text: s, Size: size}
}

// Contains reports whether p lies inside the drawable's rect, inclusive
func (d Drawable) Contains(p Point) bool {
	return d.Rect.Contains(p)
}

// Origin returns the rect origin
func (d Drawable) Origin() Point {
	return d.Rect.Origin()
}

// MoveTo repositions the rect origin
func (d *Drawable) MoveTo(p Point) {
	d.Rect = d.Rect.At(p)
}

// Shift moves the rect by (dx, dy), clamping at zero
func (d *Drawable) Shift(dx, dy int) {
	d.Rect = d.Rect.Shifted(dx, dy)
}

// capability returns the effective snap descriptor; text never carries one
func (d Drawable) capability() Snap {
	if d.Kind == KindText {
		return Snap{}
	}
	return d.Snap
}

// IsDraggable reports whether the drawable can be picked up
func (d Drawable) IsDraggable() bool {
	s := d.capability()
	return s.Class != SnapNone && s.Draggable
}

// AcceptsDropFrom reports whether dragged may snap onto d
func (d Drawable) AcceptsDropFrom(dragged Drawable) bool {
	target := d.capability()
	source := dragged.capability()
	if target.Class == SnapNone || source.Class == SnapNone {
		return false
	}
	return target.Class == source.Class && target.AcceptsDrop
}
