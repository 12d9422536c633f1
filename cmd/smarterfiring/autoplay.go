package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/smarterfiring/internal/bot"
	"github.com/vovakirdan/smarterfiring/internal/clock"
	"github.com/vovakirdan/smarterfiring/internal/game"
	"github.com/vovakirdan/smarterfiring/internal/journal"
	"github.com/vovakirdan/smarterfiring/internal/storage"
)

var (
	flagThink    time.Duration
	flagDuration time.Duration
)

var autoplayCmd = &cobra.Command{
	Use:   "autoplay",
	Short: "Let the bot play one session",
	Long: `Run a headless session driven by the built-in bot and print the
final score. The run is recorded like any other and can be replayed.

Examples:
  smarterfiring autoplay
  smarterfiring autoplay --duration 10s --think 50ms --seed 7`,
	Args: cobra.NoArgs,
	RunE: runAutoplay,
}

func init() {
	autoplayCmd.Flags().DurationVar(&flagThink, "think", 200*time.Millisecond, "Time between bot decisions")
	autoplayCmd.Flags().DurationVar(&flagDuration, "duration", 0, "Session length (default from config)")
}

func runAutoplay(_ *cobra.Command, _ []string) error {
	params := cfg.Params()
	if flagDuration > 0 {
		params.SessionDuration = flagDuration
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	loop := clock.NewLoop(64)
	loopCtx, cancelLoop := context.WithCancel(context.Background())
	loopDone := make(chan error, 1)
	go func() { loopDone <- loop.Run(loopCtx) }()
	defer func() {
		cancelLoop()
		<-loopDone
	}()

	session := game.New(params, loop, sessionOptions()...)

	var recorder *journal.Recorder
	if cfg.Journal.Enabled {
		store, err := storage.Open(cfg.Journal.Path)
		if err != nil {
			logger.Warn("journal disabled", "err", err)
		} else {
			defer store.Close()
			recorder = journal.NewRecorder(store, "autoplay", params, logger, journal.WithSeed(cfg.Game.Seed))
			if err := loop.Do(func() { recorder.Attach(session) }); err != nil {
				return fmt.Errorf("cannot record run: %w", err)
			}
		}
	}

	logger.Info("autoplay started", "duration", params.SessionDuration, "think", flagThink)
	final, err := bot.Run(ctx, loop, session, flagThink, logger)

	if recorder != nil {
		if closeErr := recorder.Close(); closeErr != nil {
			logger.Warn("cannot close run", "err", closeErr)
		}
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("running bot: %w", err)
	}

	fmt.Printf("Final score: %d\n", final.Score)
	if !final.Over {
		fmt.Println("Interrupted before the clock ran out.")
	}
	return nil
}
