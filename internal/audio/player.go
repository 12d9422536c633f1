package audio

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/smarterfiring/internal/config"
	"github.com/vovakirdan/smarterfiring/internal/game"
)

// Player mixes cues into the system speaker. A Player that was never
// initialised, or whose device failed to open, stays silent.
type Player struct {
	rate   beep.SampleRate
	volume float64
	mixer  *beep.Mixer
	logger *log.Logger
	ready  bool
}

// NewPlayer creates a silent player for cfg. Call Init to open the device.
func NewPlayer(cfg config.AudioConfig, logger *log.Logger) *Player {
	return &Player{
		rate:   beep.SampleRate(cfg.SampleRate),
		volume: cfg.Volume,
		mixer:  &beep.Mixer{},
		logger: logger,
	}
}

// Init opens the speaker.
func (p *Player) Init() error {
	if p.ready {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: cannot open speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.ready = true
	return nil
}

// Ready reports whether cues reach the speaker.
func (p *Player) Ready() bool {
	return p.ready
}

// Play starts c without waiting for earlier cues to finish.
func (p *Player) Play(c Cue) {
	if !p.ready {
		return
	}
	s := Sound(c, p.rate, p.volume)
	if s == nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
	p.logger.Debug("cue", "sound", c)
}

// Observe is a game.Listener.
func (p *Player) Observe(ev game.Event) {
	for _, c := range CuesFor(ev) {
		p.Play(c)
	}
}

// Close stops playback and releases the device.
func (p *Player) Close() {
	if !p.ready {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.ready = false
}
