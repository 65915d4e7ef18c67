package audio

// Config holds output settings and per-cue gain
type Config struct {
	Enabled      bool
	MasterVolume float64 // 0..1
	SampleRate   int
	Volumes      [cueCount]float64
}

// DefaultConfig returns audible defaults at 44.1kHz
func DefaultConfig() Config {
	return Config{
		Enabled:      true,
		MasterVolume: 0.5,
		SampleRate:   44100,
		Volumes: [cueCount]float64{
			CueSpawn:   0.6,
			CueReject:  0.5,
			CueHit:     0.8,
			CueVictory: 1.0,
		},
	}
}

// WithVolume returns c with the master volume clamped into 0..1
func (c Config) WithVolume(v float64) Config {
	c.MasterVolume = min(max(v, 0), 1)
	return c
}
