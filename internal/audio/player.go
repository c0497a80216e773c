package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

const sampleRate = beep.SampleRate(44100)

// Options configures a Player.
type Options struct {
	Volume float64 // Master gain, 1 is full
	Music  bool    // Loop the background arpeggio
}

// DefaultOptions returns full volume with music.
func DefaultOptions() Options {
	return Options{Volume: 1, Music: true}
}

// Player plays event sounds through the system speaker. Until Init succeeds
// every method is a no-op, so a muted or soundless machine runs the game
// unchanged.
type Player struct {
	mu          sync.Mutex
	synth       *Synth
	mixer       *beep.Mixer
	music       *beep.Ctrl
	opts        Options
	initialized bool
}

// NewPlayer creates an uninitialised player.
func NewPlayer(opts Options) *Player {
	return &Player{
		synth: NewSynth(sampleRate, opts.Volume),
		mixer: &beep.Mixer{},
		opts:  opts,
	}
}

// Init opens the speaker and starts the mixer.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true

	if p.opts.Music {
		p.music = &beep.Ctrl{Streamer: p.synth.Music()}
		p.mixer.Add(p.music)
	}
	return nil
}

// Initialized reports whether the speaker is open.
func (p *Player) Initialized() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}

// Handle plays the sound of every event in order.
func (p *Player) Handle(events []core.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	streams := p.streams(events)
	if len(streams) == 0 {
		return
	}
	speaker.Lock()
	p.mixer.Add(streams...)
	speaker.Unlock()
}

// streams maps events to sounds, dropping silent ones.
func (p *Player) streams(events []core.Event) []beep.Streamer {
	var out []beep.Streamer
	for _, e := range events {
		if s := p.synth.Sound(e.Kind); s != nil {
			out = append(out, s)
		}
	}
	return out
}

// SetMusicPaused pauses or resumes the background loop.
func (p *Player) SetMusicPaused(paused bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.music == nil {
		return
	}
	speaker.Lock()
	p.music.Paused = paused
	speaker.Unlock()
}

// Close stops every sound. The speaker stays open for the process lifetime.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.music = nil
	p.initialized = false
}
