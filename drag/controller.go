// Package drag implements the pointer-driven drag/drop state machine over a scene.
package drag

import (
	"fmt"

	"github.com/lixenwraith/titanium/input"
	"github.com/lixenwraith/titanium/scene"
)

// Phase is the controller state
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseDragging
)

// String returns the phase name
func (p Phase) String() string {
	if p == PhaseDragging {
		return "Dragging"
	}
	return "Idle"
}

// Session exists only between a press on a draggable item and the release
type Session struct {
	Index        int
	PressRect    scene.Rect
	PressPointer scene.Point
}

// EventKind reports what a frame's update did
type EventKind uint8

const (
	EventNone EventKind = iota
	EventPicked
	EventMoved
	EventDropped
)

// Result describes the outcome of one update
type Result struct {
	Event     EventKind
	Index     int        // dragged drawable
	Target    int        // drop target on EventDropped, -1 when none matched
	PressRect scene.Rect // rect at press time
	Rect      scene.Rect // rect after this update
}

// Snapped reports a drop that landed on a target
func (r Result) Snapped() bool {
	return r.Event == EventDropped && r.Target >= 0
}

// Controller resolves drags from edge-triggered pointer state
// Hit-testing runs against a frozen copy of the scene; moves go to the live scene
type Controller struct {
	session *Session
}

// NewController creates an idle controller
func NewController() *Controller {
	return &Controller{}
}

// Phase returns the current state
func (c *Controller) Phase() Phase {
	if c.session != nil {
		return PhaseDragging
	}
	return PhaseIdle
}

// Session returns the active session, if any
func (c *Controller) Session() (Session, bool) {
	if c.session == nil {
		return Session{}, false
	}
	return *c.session, true
}

// Cancel drops the active session without moving anything
func (c *Controller) Cancel() {
	c.session = nil
}

// Update evaluates one frame of pointer input against sc
func (c *Controller) Update(sc *scene.Scene, in *input.State) (Result, error) {
	frozen := sc.Items()

	switch {
	case in.Primary.JustPressed():
		return c.pick(frozen, in.Pointer), nil
	case in.Primary.Held():
		return c.drag(sc, in.Pointer)
	case in.Primary.JustReleased():
		return c.release(sc, frozen, in.Pointer)
	}
	return Result{Target: -1}, nil
}

func (c *Controller) pick(frozen []scene.Drawable, p scene.Point) Result {
	idx, ok := scene.HitTest(frozen, p, func(_ int, d scene.Drawable) bool {
		return d.IsDraggable()
	})
	if !ok {
		c.session = nil
		return Result{Target: -1}
	}

	rect := frozen[idx].Rect
	c.session = &Session{Index: idx, PressRect: rect, PressPointer: p}
	return Result{Event: EventPicked, Index: idx, Target: -1, PressRect: rect, Rect: rect}
}

// drag applies the displacement since press to the press-time rect,
// never to the live rect, so rounding does not accumulate
func (c *Controller) drag(sc *scene.Scene, p scene.Point) (Result, error) {
	if c.session == nil {
		return Result{Target: -1}, nil
	}
	s := *c.session

	dx, dy := p.Sub(s.PressPointer)
	rect := s.PressRect.Shifted(dx, dy)
	if err := sc.MoveTo(s.Index, rect.Origin()); err != nil {
		c.session = nil
		return Result{Target: -1}, fmt.Errorf("drag move: %w", err)
	}
	return Result{Event: EventMoved, Index: s.Index, Target: -1, PressRect: s.PressRect, Rect: rect}, nil
}

func (c *Controller) release(sc *scene.Scene, frozen []scene.Drawable, p scene.Point) (Result, error) {
	if c.session == nil {
		return Result{Target: -1}, nil
	}
	s := *c.session
	c.session = nil

	if s.Index < 0 || s.Index >= len(frozen) {
		return Result{Target: -1}, fmt.Errorf("drag release: %w", &scene.IndexError{Index: s.Index, Len: len(frozen)})
	}
	dragged := frozen[s.Index]

	target, ok := scene.HitTest(frozen, p, func(i int, d scene.Drawable) bool {
		return i != s.Index && d.AcceptsDropFrom(dragged)
	})

	var rect scene.Rect
	if ok {
		rect = dragged.Rect.At(frozen[target].Origin())
	} else {
		target = -1
		dx, dy := p.Sub(s.PressPointer)
		rect = s.PressRect.Shifted(dx, dy)
	}

	if err := sc.MoveTo(s.Index, rect.Origin()); err != nil {
		return Result{Target: -1}, fmt.Errorf("drag release: %w", err)
	}
	return Result{Event: EventDropped, Index: s.Index, Target: target, PressRect: s.PressRect, Rect: rect}, nil
}
