package status

import (
	"math"
	"sync/atomic"
)

// AtomicFloat is a float64 stored as its IEEE bits
// The zero value reads as 0.0
type AtomicFloat struct {
	bits atomic.Uint64
}

// Set stores v
func (f *AtomicFloat) Set(v float64) {
	f.bits.Store(math.Float64bits(v))
}

// Get loads the value
func (f *AtomicFloat) Get() float64 {
	return math.Float64frombits(f.bits.Load())
}

// Smooth blends sample into the stored value with weight alpha and returns
// the result; a zero stored value is replaced by the sample outright
func (f *AtomicFloat) Smooth(sample, alpha float64) float64 {
	for {
		old := f.bits.Load()
		cur := math.Float64frombits(old)
		next := sample
		if cur != 0 {
			next = cur + alpha*(sample-cur)
		}
		if f.bits.CompareAndSwap(old, math.Float64bits(next)) {
			return next
		}
	}
}
