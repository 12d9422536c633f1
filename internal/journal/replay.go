package journal

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/smarterfiring/internal/clock"
	"github.com/vovakirdan/smarterfiring/internal/game"
	"github.com/vovakirdan/smarterfiring/internal/storage"
)

var (
	// ErrCorrupt is returned for a journal that cannot be applied.
	ErrCorrupt = errors.New("journal: corrupt run")

	// ErrDiverged is returned when replay disagrees with the recording.
	ErrDiverged = errors.New("journal: replay diverged")
)

// RunParams rebuilds the rules a run was recorded with.
func RunParams(run storage.Run) game.Params {
	p := game.DefaultParams()
	p.GridSize = run.GridSize
	p.SessionDuration = time.Duration(run.SessionSeconds) * time.Second
	p.HitReward = run.HitRewardPoints
	return p
}

// StepFunc observes the state after each replayed record.
type StepFunc func(rec storage.EventRecord, state game.Snapshot)

// Replay applies a journal to a fresh session and returns the final state.
// Timers never fire during replay; ticks and sweeps come from the journal.
func Replay(params game.Params, records []storage.EventRecord, step StepFunc) (game.Snapshot, error) {
	var spawns []game.Spawn
	for _, rec := range records {
		if rec.Kind != KindFire {
			continue
		}
		dir, ok := game.ParseDirection(rec.Direction)
		if !ok {
			return game.Snapshot{}, fmt.Errorf("%w: record %d has spawn direction %q", ErrCorrupt, rec.Seq, rec.Direction)
		}
		spawns = append(spawns, game.Spawn{Position: game.Position{X: rec.X, Y: rec.Y}, Direction: dir})
	}

	n := 0
	s := game.New(params, clock.NewManual(),
		game.WithSpawner(game.NewScriptedSpawner(spawns...)),
		game.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("dragon-%d", n)
		}),
	)

	for _, rec := range records {
		switch rec.Kind {
		case KindStart:
			s.Start()
		case KindMove:
			dir, ok := game.ParseDirection(rec.Direction)
			if !ok {
				return s.Snapshot(), fmt.Errorf("%w: record %d has move direction %q", ErrCorrupt, rec.Seq, rec.Direction)
			}
			s.Move(dir)
		case KindFire:
			s.Fire()
		case KindSweep:
			s.Sweep()
		case KindTick:
			s.Tick()
		case KindEnd:
			if !s.Snapshot().Over {
				return s.Snapshot(), fmt.Errorf("%w: record %d ends a game that is still running", ErrDiverged, rec.Seq)
			}
		default:
			return s.Snapshot(), fmt.Errorf("%w: record %d has unknown kind %q", ErrCorrupt, rec.Seq, rec.Kind)
		}
		if step != nil {
			step(rec, s.Snapshot())
		}
	}

	return s.Snapshot(), nil
}
