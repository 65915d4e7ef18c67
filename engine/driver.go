package engine

import (
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/titanium/battle"
	"github.com/lixenwraith/titanium/card"
	"github.com/lixenwraith/titanium/input"
	"github.com/lixenwraith/titanium/modes"
	"github.com/lixenwraith/titanium/scene"
	"github.com/lixenwraith/titanium/status"
)

// ErrCorruptState halts the simulation; the last scene keeps rendering
var ErrCorruptState = errors.New("engine: corrupt simulation state")

// Renderer draws one frame
type Renderer interface {
	Render(bg scene.Color, items []scene.Drawable, status string)
}

// EventSink consumes the events produced by a tick
type EventSink interface {
	HandleEvents(events []battle.Event)
}

// Publisher receives a read-only view of every frame
type Publisher interface {
	Publish(snap modes.Snapshot, metrics map[string]any) error
	NewMatch()
}

// Driver runs the per-frame sequence: clock, mode tick, render, event
// publication, input advance. Not safe for concurrent use; the frame loop owns it.
type Driver struct {
	mode     modes.Mode
	input    *input.State
	clock    *PausableClock
	bindings *input.Bindings
	registry *status.Registry

	renderer  Renderer
	sinks     []EventSink
	publisher Publisher

	halted   bool
	lastReal time.Duration

	// Cached metric pointers
	ticks        *atomic.Int64
	skipped      *atomic.Int64
	unitsAlive   *atomic.Int64
	spawned      *atomic.Int64
	towerHits    *atomic.Int64
	fps          *status.AtomicFloat
	paused       *atomic.Bool
	pausedMs     *atomic.Int64
	haltedMetric *atomic.Bool
	modeName     *status.Label
	state        *status.Label
}

// DriverOption configures optional sinks
type DriverOption func(*Driver)

// WithRenderer sets the frame renderer
func WithRenderer(r Renderer) DriverOption {
	return func(d *Driver) { d.renderer = r }
}

// WithEventSink adds a consumer of tick events
func WithEventSink(s EventSink) DriverOption {
	return func(d *Driver) { d.sinks = append(d.sinks, s) }
}

// WithPublisher sets the spectator feed
func WithPublisher(p Publisher) DriverOption {
	return func(d *Driver) { d.publisher = p }
}

// NewDriver creates a driver for mode reading time from clock
func NewDriver(mode modes.Mode, in *input.State, clock *PausableClock, bindings *input.Bindings, registry *status.Registry, opts ...DriverOption) *Driver {
	d := &Driver{
		mode:     mode,
		input:    in,
		clock:    clock,
		bindings: bindings,
		registry: registry,
		lastReal: clock.RealTime(),
	}
	for _, opt := range opts {
		opt(d)
	}

	d.ticks = registry.Ints.Get(status.KeyTicks)
	d.skipped = registry.Ints.Get(status.KeySkippedTicks)
	d.unitsAlive = registry.Ints.Get(status.KeyUnitsAlive)
	d.spawned = registry.Ints.Get(status.KeySpawned)
	d.towerHits = registry.Ints.Get(status.KeyTowerHits)
	d.fps = registry.Floats.Get(status.KeyFPS)
	d.paused = registry.Bools.Get(status.KeyPaused)
	d.pausedMs = registry.Ints.Get(status.KeyPausedMs)
	d.haltedMetric = registry.Bools.Get(status.KeyHalted)
	d.modeName = registry.Strings.Get(status.KeyMode)
	d.state = registry.Strings.Get(status.KeyState)

	d.modeName.Store(mode.Name())
	d.state.Store(mode.Snapshot().State)
	return d
}

// Input returns the state the host writes device input into
func (d *Driver) Input() *input.State { return d.input }

// Mode returns the running variant
func (d *Driver) Mode() modes.Mode { return d.mode }

// Halted reports whether the simulation stopped on a corrupt state
func (d *Driver) Halted() bool { return d.halted }

// Frame runs one frame and reports whether the loop should continue
func (d *Driver) Frame() bool {
	if d.bindings.Triggered(d.input, input.IntentQuit) {
		return false
	}
	if d.bindings.Triggered(d.input, input.IntentPause) {
		d.paused.Store(d.clock.Toggle())
	}
	if d.bindings.Triggered(d.input, input.IntentRestart) {
		d.restart()
	}

	now := d.clock.Now()
	if !d.halted && !d.clock.IsPaused() {
		if err := d.tick(now); err != nil {
			d.fail(err)
		}
	}

	events := d.mode.Events()
	d.countEvents(events)
	for _, s := range d.sinks {
		s.HandleEvents(events)
	}

	snap := d.mode.Snapshot()
	d.unitsAlive.Store(int64(len(snap.Units)))
	d.state.Store(snap.State)
	d.pausedMs.Store(d.clock.GetTotalPauseDuration().Milliseconds())
	d.measure()

	if d.renderer != nil {
		d.renderer.Render(d.mode.Background(), d.mode.Drawables(), d.registry.Line())
	}
	if d.publisher != nil {
		if err := d.publisher.Publish(snap, d.registry.Values()); err != nil {
			log.Printf("[DRIVER] publish failed: %v", err)
		}
	}

	d.input.Advance()
	return true
}

func (d *Driver) tick(now time.Duration) error {
	err := d.mode.Tick(now, d.input)
	if err == nil {
		d.ticks.Add(1)
		return nil
	}
	if errors.Is(err, card.ErrEmptyDeck) {
		return fmt.Errorf("%w: %w", ErrCorruptState, err)
	}
	return err
}

// fail applies the error policy: corrupt state halts, anything else skips the tick
func (d *Driver) fail(err error) {
	if errors.Is(err, ErrCorruptState) {
		d.halted = true
		d.haltedMetric.Store(true)
		log.Printf("[DRIVER] simulation halted: %v", err)
		return
	}

	var idxErr *scene.IndexError
	if errors.As(err, &idxErr) {
		log.Printf("[DRIVER] tick skipped, index %d of %d: %v", idxErr.Index, idxErr.Len, err)
	} else {
		log.Printf("[DRIVER] tick skipped: %v", err)
	}
	d.skipped.Add(1)
}

func (d *Driver) restart() {
	if err := d.mode.Restart(); err != nil {
		d.fail(fmt.Errorf("%w: restart: %w", ErrCorruptState, err))
		return
	}
	d.halted = false
	d.haltedMetric.Store(false)
	d.ticks.Store(0)
	d.spawned.Store(0)
	d.towerHits.Store(0)
	if d.publisher != nil {
		d.publisher.NewMatch()
	}
	log.Printf("[DRIVER] %s restarted", d.mode.Name())
}

func (d *Driver) countEvents(events []battle.Event) {
	for _, ev := range events {
		switch ev.Kind {
		case battle.EventSpawned:
			d.spawned.Add(1)
		case battle.EventTowerHit:
			d.towerHits.Add(1)
		case battle.EventGameOver:
			log.Printf("[DRIVER] match over: %s", ev.State)
		}
	}
}

func (d *Driver) measure() {
	wall := d.clock.RealTime()
	dt := wall - d.lastReal
	d.lastReal = wall
	if dt > 0 {
		d.fps.Smooth(float64(time.Second)/float64(dt), 0.1)
	}
}
