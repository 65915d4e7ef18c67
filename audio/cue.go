// Package audio synthesizes the short match cues and plays them through the
// beep speaker. Audio is optional: a failed device init leaves a silent manager.
package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Cue is a sound effect tied to a match event
type Cue int

const (
	CueSpawn   Cue = iota // unit spawned or card committed
	CueReject             // play refused
	CueHit                // tower struck
	CueVictory            // match decided
	cueCount
)

// String returns the cue name used in config
func (c Cue) String() string {
	switch c {
	case CueSpawn:
		return "spawn"
	case CueReject:
		return "reject"
	case CueHit:
		return "hit"
	case CueVictory:
		return "victory"
	default:
		return "unknown"
	}
}

// WaveType is an oscillator shape
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

type oscillator struct {
	freq     float64
	phase    float64
	length   int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator returns a finite tone of the given shape
func NewOscillator(freq float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{freq: freq, length: rate.N(d), wave: wave, rate: rate}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.length {
			return i, i > 0
		}
		var v float64
		switch o.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			v = 1
			if o.phase >= 0.5 {
				v = -1
			}
		case WaveSaw:
			v = 2 * (o.phase - 0.5)
		case WaveNoise:
			v = rand.Float64()*2 - 1
		}
		samples[i][0], samples[i][1] = v, v

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope ramps a stream in over attack and out over release
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

// NewEnvelope shapes s, which must be at least d long
func NewEnvelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{streamer: s, attack: rate.N(attack), release: rate.N(release), total: rate.N(d)}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	releaseStart := max(e.total-e.release, e.attack)
	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}
		gain := 1.0
		switch {
		case e.position < e.attack:
			gain = float64(e.position) / float64(e.attack)
		case e.position >= releaseStart && e.release > 0:
			gain = float64(e.total-e.position) / float64(e.release)
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// withGain scales s linearly; zero or negative gain silences it
func withGain(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}

func tone(freq float64, d, attack, release time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewOscillator(freq, d, wave, rate), d, attack, release, rate)
}

// Build synthesizes cue at the configured rate and gain
func Build(cue Cue, cfg Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	var s beep.Streamer
	switch cue {
	case CueSpawn:
		// rising two-step blip
		s = beep.Seq(
			tone(523.25, 40*time.Millisecond, 2*time.Millisecond, 10*time.Millisecond, WaveSquare, rate),
			tone(783.99, 60*time.Millisecond, 2*time.Millisecond, 30*time.Millisecond, WaveSquare, rate),
		)
	case CueReject:
		s = tone(110, 120*time.Millisecond, 5*time.Millisecond, 40*time.Millisecond, WaveSaw, rate)
	case CueHit:
		s = beep.Mix(
			withGain(tone(0, 90*time.Millisecond, time.Millisecond, 70*time.Millisecond, WaveNoise, rate), 0.6),
			withGain(tone(70, 90*time.Millisecond, time.Millisecond, 60*time.Millisecond, WaveSine, rate), 0.8),
		)
	case CueVictory:
		s = beep.Seq(
			tone(523.25, 150*time.Millisecond, 5*time.Millisecond, 40*time.Millisecond, WaveSine, rate),
			tone(659.25, 150*time.Millisecond, 5*time.Millisecond, 40*time.Millisecond, WaveSine, rate),
			tone(783.99, 400*time.Millisecond, 5*time.Millisecond, 250*time.Millisecond, WaveSine, rate),
		)
	default:
		return nil
	}
	return withGain(s, cfg.Volumes[cue]*cfg.MasterVolume)
}
