package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/smarterfiring/internal/game"
)

//go:embed defaults/smarterfiring.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	p := game.DefaultParams()
	return Config{
		Game: GameConfig{
			GridSize:        p.GridSize,
			SessionDuration: p.SessionDuration,
			TickInterval:    p.TickInterval,
			HitReward:       p.HitReward,
			RemovalDelay:    p.RemovalDelay,
		},
		Journal: JournalConfig{
			Enabled: true,
			Path:    "~/.smarterfiring/runs.db",
		},
		SSH: SSHConfig{
			Address:     ":23235",
			IdleTimeout: 30 * time.Minute,
		},
		Audio: AudioConfig{
			Enabled:    false,
			SampleRate: 44100,
			Volume:     0.5,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
