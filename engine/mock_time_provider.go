package engine

import (
	"sync"
	"time"
)

// MockTimeProvider provides a controllable clock for deterministic tests
type MockTimeProvider struct {
	mu      sync.RWMutex
	current time.Duration
}

// NewMockTimeProvider creates a mock clock reading start
func NewMockTimeProvider(start time.Duration) *MockTimeProvider {
	return &MockTimeProvider{current: start}
}

// Now returns the mocked reading
func (m *MockTimeProvider) Now() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// SetTime sets the reading
func (m *MockTimeProvider) SetTime(t time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = t
}

// Advance moves the reading forward by d
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current += d
}
