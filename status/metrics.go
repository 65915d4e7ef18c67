package status

import (
	"slices"
	"sync"
)

// Metrics is the set of match metrics of one value type
// The frame loop caches each pointer once; readers export them by key
type Metrics[T any] struct {
	mu    sync.RWMutex
	byKey map[string]*T
	keys  []string // sorted, so exports and feeds list metrics stably
}

// NewMetrics creates an empty set
func NewMetrics[T any]() *Metrics[T] {
	return &Metrics[T]{byKey: make(map[string]*T)}
}

// Get returns the metric for key, registering it on first use
func (m *Metrics[T]) Get(key string) *T {
	m.mu.RLock()
	ptr, ok := m.byKey[key]
	m.mu.RUnlock()
	if ok {
		return ptr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if ptr, ok := m.byKey[key]; ok {
		return ptr
	}
	ptr = new(T)
	m.byKey[key] = ptr
	i, _ := slices.BinarySearch(m.keys, key)
	m.keys = slices.Insert(m.keys, i, key)
	return ptr
}

// Keys returns the registered keys in order
func (m *Metrics[T]) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.keys)
}

// Export writes read(metric) into out under each key
func (m *Metrics[T]) Export(out map[string]any, read func(*T) any) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, k := range m.keys {
		out[k] = read(m.byKey[k])
	}
}

// Len returns the number of registered metrics
func (m *Metrics[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.keys)
}
