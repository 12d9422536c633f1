package audio

import (
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/smarterfiring/internal/game"
)

// Cue is a sound played in reaction to the game.
type Cue int

const (
	CueStart Cue = iota
	CueFire
	CueHit
	CueGameOver
)

func (c Cue) String() string {
	switch c {
	case CueStart:
		return "start"
	case CueFire:
		return "fire"
	case CueHit:
		return "hit"
	case CueGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// Sound builds a fresh streamer for c at the given rate and volume.
func Sound(c Cue, rate beep.SampleRate, volume float64) beep.Streamer {
	var s beep.Streamer
	switch c {
	case CueStart:
		// Rising fourth
		s = beep.Seq(
			tone(659.25, 90*time.Millisecond, WaveSquare, rate),
			tone(880, 140*time.Millisecond, WaveSquare, rate),
		)
	case CueFire:
		// Breath of fire: short noise burst
		d := 180 * time.Millisecond
		s = NewEnvelope(NewOscillator(0, d, WaveNoise, rate), d, 10*time.Millisecond, 150*time.Millisecond, rate)
	case CueHit:
		d := 250 * time.Millisecond
		s = beep.Mix(
			withVolume(tone(880, d, WaveSine, rate), 0.7),
			withVolume(tone(1760, d, WaveSine, rate), 0.3),
		)
	case CueGameOver:
		s = beep.Seq(
			tone(440, 150*time.Millisecond, WaveSaw, rate),
			tone(330, 150*time.Millisecond, WaveSaw, rate),
			tone(220, 300*time.Millisecond, WaveSaw, rate),
		)
	default:
		return nil
	}
	return withVolume(s, volume)
}

// CuesFor maps a session event to the cues it should trigger.
func CuesFor(ev game.Event) []Cue {
	switch ev.Kind {
	case game.EventStarted:
		return []Cue{CueStart}
	case game.EventFired:
		if len(ev.Hits) > 0 {
			return []Cue{CueFire, CueHit}
		}
		return []Cue{CueFire}
	case game.EventEnded:
		return []Cue{CueGameOver}
	default:
		return nil
	}
}
