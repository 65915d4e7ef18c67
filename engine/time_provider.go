package engine

import "time"

// TimeProvider supplies the logical simulation clock: monotonic time since start
// All cooldown and attack-interval decisions compare readings of this clock
type TimeProvider interface {
	Now() time.Duration
}

// MonotonicTimeProvider reads the real monotonic clock
type MonotonicTimeProvider struct {
	start time.Time
}

// NewMonotonicTimeProvider creates a provider whose zero is the moment of creation
func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{start: time.Now()}
}

// Now returns elapsed time since creation using the monotonic reading
func (p *MonotonicTimeProvider) Now() time.Duration {
	return time.Since(p.start)
}
