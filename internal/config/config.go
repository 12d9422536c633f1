// Package config provides YAML-based configuration loading for
// Smarterfiring: game rules, the run journal, the SSH server, audio and
// logging.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/smarterfiring/internal/game"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

// Config is the root configuration document.
type Config struct {
	Game    GameConfig    `yaml:"game"`
	Journal JournalConfig `yaml:"journal"`
	SSH     SSHConfig     `yaml:"ssh"`
	Audio   AudioConfig   `yaml:"audio"`
	Log     LogConfig     `yaml:"log"`
}

// GameConfig holds the rules of a session.
type GameConfig struct {
	GridSize        int           `yaml:"grid_size"`
	SessionDuration time.Duration `yaml:"session_duration"`
	TickInterval    time.Duration `yaml:"tick_interval"`
	HitReward       int           `yaml:"hit_reward"`
	RemovalDelay    time.Duration `yaml:"removal_delay"`
	Seed            int64         `yaml:"seed"`
}

// JournalConfig controls run recording.
type JournalConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// SSHConfig configures the SSH server used by the serve command.
type SSHConfig struct {
	Address     string        `yaml:"address"`
	HostKeyPath string        `yaml:"host_key_path"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// AudioConfig controls the sound cues.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	SampleRate int     `yaml:"sample_rate"`
	Volume     float64 `yaml:"volume"`
}

// LogConfig sets the log verbosity (debug, info, warn, error).
type LogConfig struct {
	Level string `yaml:"level"`
}

// Params converts the game section to session rules.
func (c Config) Params() game.Params {
	return game.Params{
		GridSize:        c.Game.GridSize,
		SessionDuration: c.Game.SessionDuration,
		TickInterval:    c.Game.TickInterval,
		HitReward:       c.Game.HitReward,
		RemovalDelay:    c.Game.RemovalDelay,
	}
}

// Validate checks that the configuration describes a playable game.
func (c Config) Validate() error {
	g := c.Game
	switch {
	case g.GridSize < 1:
		return fmt.Errorf("%w: grid_size must be at least 1, got %d", ErrInvalid, g.GridSize)
	case g.SessionDuration < time.Second:
		return fmt.Errorf("%w: session_duration must be at least 1s, got %v", ErrInvalid, g.SessionDuration)
	case g.TickInterval <= 0:
		return fmt.Errorf("%w: tick_interval must be positive, got %v", ErrInvalid, g.TickInterval)
	case g.HitReward < 0:
		return fmt.Errorf("%w: hit_reward must not be negative, got %d", ErrInvalid, g.HitReward)
	case g.RemovalDelay < 0:
		return fmt.Errorf("%w: removal_delay must not be negative, got %v", ErrInvalid, g.RemovalDelay)
	}

	if c.Journal.Enabled && c.Journal.Path == "" {
		return fmt.Errorf("%w: journal.path is required when the journal is enabled", ErrInvalid)
	}
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("%w: audio.sample_rate must be positive, got %d", ErrInvalid, c.Audio.SampleRate)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("%w: audio.volume must be within [0, 1], got %v", ErrInvalid, c.Audio.Volume)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalid, c.Log.Level)
	}
	return nil
}
