package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/titanium/battle"
)

// Manager plays cues through a single speaker mixer
// All methods are safe to call on a manager whose Init failed; they do nothing
type Manager struct {
	mu          sync.Mutex
	cfg         Config
	mixer       *beep.Mixer
	initialized bool
	muted       bool
	played      [cueCount]int
}

// NewManager creates a manager; no device is opened until Init
func NewManager(cfg Config) *Manager {
	return &Manager{cfg: cfg, mixer: &beep.Mixer{}}
}

// Init opens the speaker; a disabled config skips it without error
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized || !m.cfg.Enabled {
		return nil
	}
	rate := beep.SampleRate(m.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(m.mixer)
	m.initialized = true
	return nil
}

// Close silences every voice
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Lock()
	m.mixer.Clear()
	speaker.Unlock()
	m.initialized = false
}

// SetMuted toggles output without releasing the device
func (m *Manager) SetMuted(muted bool) {
	m.mu.Lock()
	m.muted = muted
	m.mu.Unlock()
}

// Play starts cue and reports whether it reached the speaker
func (m *Manager) Play(cue Cue) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized || m.muted {
		return false
	}
	s := Build(cue, m.cfg)
	if s == nil {
		return false
	}
	speaker.Lock()
	m.mixer.Add(s)
	speaker.Unlock()
	m.played[cue]++
	return true
}

// Played returns how many times cue reached the speaker
func (m *Manager) Played(cue Cue) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.played[cue]
}

// HandleEvents plays one cue per distinct cue kind in events
func (m *Manager) HandleEvents(events []battle.Event) {
	var seen [cueCount]bool
	for _, e := range events {
		cue, ok := CueFor(e.Kind)
		if !ok || seen[cue] {
			continue
		}
		seen[cue] = true
		m.Play(cue)
	}
}

// CueFor maps a simulation event to its cue
func CueFor(kind battle.EventKind) (Cue, bool) {
	switch kind {
	case battle.EventSpawned:
		return CueSpawn, true
	case battle.EventRejected:
		return CueReject, true
	case battle.EventTowerHit, battle.EventUnitHit:
		return CueHit, true
	case battle.EventGameOver:
		return CueVictory, true
	}
	return 0, false
}
