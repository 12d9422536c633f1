package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/smarterfiring/internal/game"
)

// Host runs the session on a serial context.
type Host interface {
	game.Scheduler
	Do(fn func()) error
}

// Run starts s on host and applies one intent per think interval until
// the game is over or ctx is cancelled. It returns the final state.
func Run(ctx context.Context, host Host, s *game.Session, think time.Duration, logger *log.Logger) (game.Snapshot, error) {
	done := make(chan struct{})
	var stop func()

	err := host.Do(func() {
		var unsubscribe func()
		unsubscribe = s.Subscribe(func(ev game.Event) {
			if ev.Kind == game.EventEnded {
				unsubscribe()
				close(done)
			}
		})

		s.Start()
		stop = host.Every(think, func() {
			snap := s.Snapshot()
			if snap.Over {
				return
			}
			intent := Decide(snap)
			apply(s, intent)
			logger.Debug("bot", "intent", intent, "score", s.Snapshot().Score)
		})
	})
	if err != nil {
		return game.Snapshot{}, fmt.Errorf("bot: cannot start session: %w", err)
	}

	var runErr error
	select {
	case <-done:
	case <-ctx.Done():
		runErr = ctx.Err()
	}

	var final game.Snapshot
	if err := host.Do(func() {
		stop()
		final = s.Snapshot()
	}); err != nil {
		return final, fmt.Errorf("bot: cannot read final state: %w", err)
	}
	return final, runErr
}

func apply(s *game.Session, intent Intent) {
	switch intent.Kind {
	case IntentFire:
		s.Fire()
	case IntentMove:
		s.Move(intent.Direction)
	}
}
