package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/smarterfiring/internal/audio"
	"github.com/vovakirdan/smarterfiring/internal/journal"
	"github.com/vovakirdan/smarterfiring/internal/platform/tui"
	"github.com/vovakirdan/smarterfiring/internal/storage"
)

var (
	flagSound     bool
	flagNoJournal bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the current terminal",
	Long: `Start a game in the current terminal. The intro pages explain the
rules; confirm the last page to start the two minute session.

Controls:
  Arrows/WASD  - Move and turn
  Space/F      - Breathe fire
  Enter/R      - Next intro page, restart after game over
  Esc          - Skip the intro
  C            - Copy the share message after game over
  I/?          - Show info
  Q/Ctrl+C     - Quit

Examples:
  smarterfiring play
  smarterfiring play --seed 42
  smarterfiring play --sound`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound cues even when audio.enabled is false")
	playCmd.Flags().BoolVar(&flagNoJournal, "no-journal", false, "Do not record this run")
}

func runPlay(_ *cobra.Command, _ []string) {
	opts := []tui.ModelOption{
		tui.WithSessionOptions(sessionOptions()...),
		tui.WithClipboard(os.Stdout),
	}

	// Open the journal
	var store *storage.Store
	var recorder *journal.Recorder
	if cfg.Journal.Enabled && !flagNoJournal {
		var err error
		store, err = storage.Open(cfg.Journal.Path)
		if err != nil {
			// Continue without the journal - game still works
			logger.Warn("journal disabled", "err", err)
			store = nil
		} else {
			recorder = journal.NewRecorder(store, "local", cfg.Params(), logger, journal.WithSeed(cfg.Game.Seed))
			opts = append(opts, tui.WithListener(recorder.Observe))
		}
	}

	// Sound cues
	if cfg.Audio.Enabled || flagSound {
		player := audio.NewPlayer(cfg.Audio, logger)
		if err := player.Init(); err != nil {
			logger.Warn("sound disabled", "err", err)
		} else {
			defer player.Close()
			opts = append(opts, tui.WithListener(player.Observe))
		}
	}

	runErr := tui.Run(tui.NewModel(cfg.Params(), opts...))

	// Close the journal before potential exit
	if recorder != nil {
		if err := recorder.Close(); err != nil {
			logger.Warn("cannot close run", "err", err)
		}
	}
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
