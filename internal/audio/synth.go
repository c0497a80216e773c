// Package audio turns simulation events into synthesized sound effects.
package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// WaveType defines oscillator wave shapes.
type WaveType int

const (
	WaveSquare WaveType = iota
	WaveNoise
)

// Effect volumes, as linear gain.
const (
	amplitude   = 0.25
	effectGain  = 0.3
	deathGain   = 0.4
	musicGain   = 0.1
	noteSeconds = 0.125
)

// musicNotes is the background arpeggio (A, C#, E, A).
var musicNotes = []float64{440, 554, 659, 880}

// oscillator generates a fixed-length raw wave.
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator creates a streamer that plays one wave for duration.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewSource(1)), //#nosec G404 -- audio noise
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSquare:
			if o.phase < 0.5 {
				val = amplitude
			} else {
				val = -amplitude
			}
		case WaveNoise:
			val = (o.rng.Float64()*2 - 1) * amplitude
		}
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// arpeggio cycles through notes forever.
type arpeggio struct {
	notes   []float64
	perNote int
	pos     int
	phase   float64
	rate    beep.SampleRate
}

func (a *arpeggio) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		note := a.notes[(a.pos/a.perNote)%len(a.notes)]
		val := -amplitude
		if a.phase < 0.5 {
			val = amplitude
		}
		samples[i][0] = val
		samples[i][1] = val

		a.phase += note / float64(a.rate)
		a.phase -= math.Floor(a.phase)
		a.pos++
		if a.pos == a.perNote*len(a.notes) {
			a.pos = 0
		}
	}
	return len(samples), true
}

func (a *arpeggio) Err() error { return nil }

// newVolume wraps s with a linear gain. Zero or less is silent.
func newVolume(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}

// Synth builds the streamers for game sounds.
type Synth struct {
	Rate   beep.SampleRate
	Volume float64 // Master gain applied on top of each effect
}

// NewSynth creates a synthesizer at the given sample rate.
func NewSynth(rate beep.SampleRate, volume float64) *Synth {
	return &Synth{Rate: rate, Volume: volume}
}

func (s *Synth) tone(freq float64, d time.Duration) beep.Streamer {
	return NewOscillator(freq, d, WaveSquare, s.Rate)
}

// Sound returns the effect for an event kind, or nil when the event is silent.
func (s *Synth) Sound(kind core.EventKind) beep.Streamer {
	var st beep.Streamer
	gain := effectGain

	switch kind {
	case core.EventJump:
		st = s.tone(880, 200*time.Millisecond)
	case core.EventCoin, core.EventLevelClear:
		st = s.tone(1320, 100*time.Millisecond)
	case core.EventStomp:
		st = s.tone(440, 100*time.Millisecond)
	case core.EventBump:
		st = s.tone(220, 50*time.Millisecond)
	case core.EventPowerUp:
		st = beep.Seq(
			s.tone(523, 60*time.Millisecond),
			s.tone(659, 60*time.Millisecond),
			s.tone(784, 60*time.Millisecond),
			s.tone(1047, 60*time.Millisecond),
		)
	case core.EventPowerDown:
		st = beep.Seq(
			s.tone(659, 80*time.Millisecond),
			s.tone(440, 80*time.Millisecond),
		)
	case core.EventDeath:
		st = NewOscillator(0, 500*time.Millisecond, WaveNoise, s.Rate)
		gain = deathGain
	default:
		return nil
	}
	return newVolume(st, gain*s.Volume)
}

// Music returns the endless background loop.
func (s *Synth) Music() beep.Streamer {
	a := &arpeggio{
		notes:   musicNotes,
		perNote: s.Rate.N(time.Duration(noteSeconds * float64(time.Second))),
		rate:    s.Rate,
	}
	return newVolume(a, musicGain*s.Volume)
}
