package scene

import "fmt"

// IndexError reports a drawable index outside the scene
// It signals a broken invariant in session bookkeeping, never a user error
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("scene: index %d out of range [0,%d)", e.Index, e.Len)
}

// Scene is the ordered drawable list, stored back-to-front
// Later items occlude earlier ones both visually and for interaction
type Scene struct {
	items []Drawable
}

// New creates a scene holding copies of items
func New(items ...Drawable) *Scene {
	s := &Scene{items: make([]Drawable, 0, len(items))}
	s.items = append(s.items, items...)
	return s
}

// Len returns the number of drawables
func (s *Scene) Len() int {
	return len(s.items)
}

// Add appends drawables on top and returns the index of the first one
func (s *Scene) Add(items ...Drawable) int {
	first := len(s.items)
	s.items = append(s.items, items...)
	return first
}

// Reset replaces the whole list
func (s *Scene) Reset(items []Drawable) {
	s.items = append(s.items[:0], items...)
}

// At returns the drawable at i
func (s *Scene) At(i int) (Drawable, error) {
	if err := s.check(i); err != nil {
		return Drawable{}, err
	}
	return s.items[i], nil
}

// Replace overwrites the drawable at i
func (s *Scene) Replace(i int, d Drawable) error {
	if err := s.check(i); err != nil {
		return err
	}
	s.items[i] = d
	return nil
}

// MoveTo repositions the drawable at i
func (s *Scene) MoveTo(i int, p Point) error {
	if err := s.check(i); err != nil {
		return err
	}
	s.items[i].MoveTo(p)
	return nil
}

// Shift moves the drawable at i relatively, clamped at zero
func (s *Scene) Shift(i int, dx, dy int) error {
	if err := s.check(i); err != nil {
		return err
	}
	s.items[i].Shift(dx, dy)
	return nil
}

// SetSnap replaces the capability descriptor of the drawable at i
func (s *Scene) SetSnap(i int, snap Snap) error {
	if err := s.check(i); err != nil {
		return err
	}
	s.items[i].Snap = snap
	return nil
}

// Items returns a copy of the list
// The copy is the frozen view used for hit-testing while the live list mutates
func (s *Scene) Items() []Drawable {
	out := make([]Drawable, len(s.items))
	copy(out, s.items)
	return out
}

// HitTest scans the live list front-to-back
func (s *Scene) HitTest(p Point, match func(i int, d Drawable) bool) (int, bool) {
	return HitTest(s.items, p, match)
}

func (s *Scene) check(i int) error {
	if i < 0 || i >= len(s.items) {
		return &IndexError{Index: i, Len: len(s.items)}
	}
	return nil
}

// HitTest returns the index of the topmost drawable containing p for which
// match returns true. Items are scanned front-to-back (reverse order).
// A nil match accepts every drawable under p.
func HitTest(items []Drawable, p Point, match func(i int, d Drawable) bool) (int, bool) {
	for i := len(items) - 1; i >= 0; i-- {
		d := items[i]
		if !d.Contains(p) {
			continue
		}
		if match == nil || match(i, d) {
			return i, true
		}
	}
	return -1, false
}
