// Package status holds lock-free match metrics written by the frame loop and
// read by the status line and the spectator feed.
package status

import (
	"fmt"
	"sync/atomic"
)

// Metric keys written by the driver
const (
	KeyTicks        = "ticks"
	KeySkippedTicks = "skipped_ticks"
	KeyUnitsAlive   = "units_alive"
	KeySpawned      = "spawned"
	KeyTowerHits    = "tower_hits"
	KeyFPS          = "fps"
	KeyPaused       = "paused"
	KeyPausedMs     = "paused_ms" // cumulative pause time
	KeyHalted       = "halted"
	KeyMode         = "mode"
	KeyState        = "state"
)

// Registry groups metrics by value type
// Writers cache the pointers once and store to them every frame
type Registry struct {
	Bools   *Metrics[atomic.Bool]
	Ints    *Metrics[atomic.Int64]
	Floats  *Metrics[AtomicFloat]
	Strings *Metrics[Label]
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetrics[atomic.Bool](),
		Ints:    NewMetrics[atomic.Int64](),
		Floats:  NewMetrics[AtomicFloat](),
		Strings: NewMetrics[Label](),
	}
}

// TotalCount returns the number of metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Len() + r.Ints.Len() + r.Floats.Len() + r.Strings.Len()
}

// Values copies every metric into a plain map for serialization
func (r *Registry) Values() map[string]any {
	out := make(map[string]any, r.TotalCount())
	r.Bools.Export(out, func(v *atomic.Bool) any { return v.Load() })
	r.Ints.Export(out, func(v *atomic.Int64) any { return v.Load() })
	r.Floats.Export(out, func(v *AtomicFloat) any { return v.Get() })
	r.Strings.Export(out, func(v *Label) any { return v.Load() })
	return out
}

// Line renders the status line shown under the field
func (r *Registry) Line() string {
	line := fmt.Sprintf("%s | %s | tick %d | units %d | %.0f fps",
		r.Strings.Get(KeyMode).Load(),
		r.Strings.Get(KeyState).Load(),
		r.Ints.Get(KeyTicks).Load(),
		r.Ints.Get(KeyUnitsAlive).Load(),
		r.Floats.Get(KeyFPS).Get(),
	)
	if r.Bools.Get(KeyPaused).Load() {
		line += " | PAUSED"
		if ms := r.Ints.Get(KeyPausedMs).Load(); ms > 0 {
			line += fmt.Sprintf(" %.1fs", float64(ms)/1000)
		}
	}
	if r.Bools.Get(KeyHalted).Load() {
		line += " | HALTED"
	}
	return line
}
