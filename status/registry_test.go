package status

import (
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsReturnStablePointers(t *testing.T) {
	m := NewMetrics[atomic.Int64]()
	a := m.Get(KeyTicks)
	a.Add(3)
	assert.Same(t, a, m.Get(KeyTicks))
	assert.Equal(t, 1, m.Len())
}

func TestMetricsConcurrentGet(t *testing.T) {
	m := NewMetrics[atomic.Int64]()
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				m.Get(KeySpawned).Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(1600), m.Get(KeySpawned).Load())
	assert.Equal(t, 1, m.Len())
}

func TestMetricsExportInKeyOrder(t *testing.T) {
	m := NewMetrics[atomic.Int64]()
	m.Get(KeyTowerHits).Store(2)
	m.Get(KeySkippedTicks).Store(1)
	m.Get(KeyTicks).Store(40)
	assert.Equal(t, []string{KeySkippedTicks, KeyTicks, KeyTowerHits}, m.Keys())

	out := map[string]any{}
	m.Export(out, func(v *atomic.Int64) any { return v.Load() })
	assert.Equal(t, map[string]any{KeySkippedTicks: int64(1), KeyTicks: int64(40), KeyTowerHits: int64(2)}, out)
}

func TestAtomicFloatSmooth(t *testing.T) {
	var f AtomicFloat
	assert.Equal(t, 60.0, f.Smooth(60, 0.1))
	assert.InDelta(t, 57.0, f.Smooth(30, 0.1), 1e-9)
	f.Set(1.5)
	assert.Equal(t, 1.5, f.Get())
}

func TestLabelFitsStatusLine(t *testing.T) {
	var l Label
	assert.Equal(t, "", l.Load())
	l.Store("towers")
	assert.Equal(t, "towers", l.Load())

	l.Store("0123456789012345678901234567890123456789")
	assert.LessOrEqual(t, runewidth.StringWidth(l.Load()), MaxLabelWidth)
	assert.True(t, strings.HasSuffix(l.Load(), "…"))

	l.Store("試合試合試合試合試合試合試合試合")
	assert.LessOrEqual(t, runewidth.StringWidth(l.Load()), MaxLabelWidth)
}

func TestRegistryValuesAndLine(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get(KeyTicks).Store(42)
	r.Ints.Get(KeyUnitsAlive).Store(3)
	r.Floats.Get(KeyFPS).Set(59.6)
	r.Strings.Get(KeyMode).Store("towers")
	r.Strings.Get(KeyState).Store("InProgress")
	r.Bools.Get(KeyPaused).Store(true)

	v := r.Values()
	require.Equal(t, r.TotalCount(), len(v))
	assert.Equal(t, int64(42), v[KeyTicks])
	assert.Equal(t, "towers", v[KeyMode])
	assert.Equal(t, true, v[KeyPaused])

	assert.Equal(t, "towers | InProgress | tick 42 | units 3 | 60 fps | PAUSED", r.Line())

	r.Ints.Get(KeyPausedMs).Store(2500)
	assert.Equal(t, "towers | InProgress | tick 42 | units 3 | 60 fps | PAUSED 2.5s", r.Line())
}
