package engine

import (
	"sync"
	"sync/atomic"
	"time"
)

// PausableClock derives game time from a source clock minus time spent paused
type PausableClock struct {
	mu sync.RWMutex

	source TimeProvider

	isPaused        atomic.Bool
	pauseStartTime  time.Duration // source reading when the current pause began
	totalPausedTime time.Duration // cumulative pause duration
}

// NewPausableClock wraps source
func NewPausableClock(source TimeProvider) *PausableClock {
	return &PausableClock{source: source}
}

// Now returns game time; frozen while paused
func (pc *PausableClock) Now() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	if pc.isPaused.Load() {
		return pc.pauseStartTime - pc.totalPausedTime
	}
	return pc.source.Now() - pc.totalPausedTime
}

// RealTime returns the unpaused source reading
func (pc *PausableClock) RealTime() time.Duration {
	return pc.source.Now()
}

// Pause stops game time advancement
func (pc *PausableClock) Pause() {
	if pc.isPaused.CompareAndSwap(false, true) {
		pc.mu.Lock()
		defer pc.mu.Unlock()
		pc.pauseStartTime = pc.source.Now()
	}
}

// Resume continues game time advancement
func (pc *PausableClock) Resume() {
	if pc.isPaused.CompareAndSwap(true, false) {
		pc.mu.Lock()
		defer pc.mu.Unlock()
		pc.totalPausedTime += pc.source.Now() - pc.pauseStartTime
		pc.pauseStartTime = 0
	}
}

// Toggle flips the pause state and returns the new state
func (pc *PausableClock) Toggle() bool {
	if pc.IsPaused() {
		pc.Resume()
		return false
	}
	pc.Pause()
	return true
}

// IsPaused returns current pause state
func (pc *PausableClock) IsPaused() bool {
	return pc.isPaused.Load()
}

// GetTotalPauseDuration returns cumulative pause time, including a pause in progress
func (pc *PausableClock) GetTotalPauseDuration() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	total := pc.totalPausedTime
	if pc.isPaused.Load() {
		total += pc.source.Now() - pc.pauseStartTime
	}
	return total
}
