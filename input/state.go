package input

import "github.com/lixenwraith/titanium/scene"

// ButtonState is the level of a key or button in the current and previous frame
type ButtonState struct {
	Pressed          bool
	PressedLastFrame bool
}

// JustPressed reports a false->true transition this frame
func (b ButtonState) JustPressed() bool {
	return b.Pressed && !b.PressedLastFrame
}

// JustReleased reports a true->false transition this frame
func (b ButtonState) JustReleased() bool {
	return !b.Pressed && b.PressedLastFrame
}

// Held reports the button down in both frames
func (b ButtonState) Held() bool {
	return b.Pressed && b.PressedLastFrame
}

// State is the normalized input seen by the core for one frame
// Owned by the frame loop; the core reads it and never writes back
type State struct {
	Pointer     scene.Point
	PrevPointer scene.Point
	Primary     ButtonState

	keys   map[Key]ButtonState
	pulsed map[Key]bool
	queued map[Key]int // pulses waiting for the previous edge to clear

	buttonQueue []bool // primary levels waiting for the previous edge to clear

	logicalW, logicalH int
}

// NewState creates input state for a logical field of the given size
func NewState(logicalW, logicalH int) *State {
	return &State{
		keys:     make(map[Key]ButtonState),
		pulsed:   make(map[Key]bool),
		queued:   make(map[Key]int),
		logicalW: logicalW,
		logicalH: logicalH,
	}
}

// Advance begins a new frame: current levels become the previous levels
// Keys delivered as press pulses are released so they produce a single edge;
// a queued pulse presses once the key has been idle for a frame
func (s *State) Advance() {
	for k, b := range s.keys {
		b.PressedLastFrame = b.Pressed
		switch {
		case s.pulsed[k] && b.PressedLastFrame:
			b.Pressed = false
			delete(s.pulsed, k)
		case !b.Pressed && !b.PressedLastFrame && s.queued[k] > 0:
			b.Pressed = true
			s.pulsed[k] = true
			if s.queued[k]--; s.queued[k] == 0 {
				delete(s.queued, k)
			}
		}
		s.keys[k] = b
	}

	s.Primary.PressedLastFrame = s.Primary.Pressed
	if len(s.buttonQueue) > 0 {
		s.Primary.Pressed = s.buttonQueue[0]
		s.buttonQueue = s.buttonQueue[1:]
	}
	s.PrevPointer = s.Pointer
}

// SetKey records a key level change
func (s *State) SetKey(k Key, down bool) {
	b := s.keys[k]
	b.Pressed = down
	s.keys[k] = b
	delete(s.pulsed, k)
	delete(s.queued, k)
}

// PulseKey records a press from a source that never reports releases
// The key reads as pressed for one frame and released on the next. A pulse
// arriving before the previous press or release edge was seen is queued.
func (s *State) PulseKey(k Key) {
	b := s.keys[k]
	if b.Pressed || b.PressedLastFrame {
		s.queued[k]++
		return
	}
	b.Pressed = true
	s.keys[k] = b
	s.pulsed[k] = true
}

// Key returns the state of k
func (s *State) Key(k Key) ButtonState {
	return s.keys[k]
}

// JustPressed reports a press edge for k this frame
func (s *State) JustPressed(k Key) bool {
	return s.keys[k].JustPressed()
}

// JustReleased reports a release edge for k this frame
func (s *State) JustReleased(k Key) bool {
	return s.keys[k].JustReleased()
}

// SetButton records the primary pointer button level
// A change that would undo an edge not yet seen by a frame is queued, so a
// press and release inside one frame still produce both edges
func (s *State) SetButton(down bool) {
	if n := len(s.buttonQueue); n > 0 {
		if s.buttonQueue[n-1] != down {
			s.buttonQueue = append(s.buttonQueue, down)
		}
		return
	}
	if down == s.Primary.Pressed {
		return
	}
	if s.Primary.Pressed != s.Primary.PressedLastFrame {
		s.buttonQueue = append(s.buttonQueue, down)
		return
	}
	s.Primary.Pressed = down
}

// MovePointer records a pointer position in device coordinates, rescaled into
// the logical field by the ratio of logical size to device size
func (s *State) MovePointer(devX, devY, devW, devH int) {
	s.Pointer = Rescale(devX, devY, devW, devH, s.logicalW, s.logicalH)
}

// SetPointer records a pointer position already in logical coordinates
func (s *State) SetPointer(p scene.Point) {
	s.Pointer = clampPoint(p, s.logicalW, s.logicalH)
}

// Rescale maps a device position into logical space, clamped inside the field
func Rescale(devX, devY, devW, devH, logicalW, logicalH int) scene.Point {
	if devW <= 0 || devH <= 0 {
		return scene.Point{}
	}
	p := scene.Point{
		X: int(float64(devX) / float64(devW) * float64(logicalW)),
		Y: int(float64(devY) / float64(devH) * float64(logicalH)),
	}
	return clampPoint(p, logicalW, logicalH)
}

func clampPoint(p scene.Point, w, h int) scene.Point {
	if p.X < 0 {
		p.X = 0
	}
	if p.Y < 0 {
		p.Y = 0
	}
	if w > 0 && p.X > w {
		p.X = w
	}
	if h > 0 && p.Y > h {
		p.Y = h
	}
	return p
}
