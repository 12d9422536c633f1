package journal

import (
	"errors"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/smarterfiring/internal/clock"
	"github.com/vovakirdan/smarterfiring/internal/game"
	"github.com/vovakirdan/smarterfiring/internal/storage"
)

func TestRunParams(t *testing.T) {
	run := storage.Run{GridSize: 7, SessionSeconds: 30, HitRewardPoints: 25}
	p := RunParams(run)

	if p.GridSize != 7 || p.SessionDuration != 30*time.Second || p.HitReward != 25 {
		t.Errorf("unexpected params: %+v", p)
	}
	def := game.DefaultParams()
	if p.TickInterval != def.TickInterval || p.RemovalDelay != def.RemovalDelay {
		t.Errorf("timing should keep defaults: %+v", p)
	}
}

func TestRecordAndReplay(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	params := game.DefaultParams()
	params.SessionDuration = 10 * time.Second

	clk := clock.NewManual()
	s := game.New(params, clk, game.WithSpawner(game.NewRandomSpawner(99)))
	rec := NewRecorder(store, "test", params, log.New(io.Discard), WithSeed(99))
	rec.Attach(s)

	var atEnd game.Snapshot
	s.Subscribe(func(ev game.Event) {
		if ev.Kind == game.EventEnded {
			atEnd = ev.State
		}
	})

	s.Start()
	runID := rec.RunID()
	moves := []game.Direction{game.DirUp, game.DirLeft, game.DirLeft, game.DirDown, game.DirRight, game.DirUp}
	for i := 0; !s.Snapshot().Over; i++ {
		s.Move(moves[i%len(moves)])
		s.Fire()
		clk.Advance(150 * time.Millisecond)
		s.Fire()
		clk.Advance(350 * time.Millisecond)
	}

	run, err := store.FindRun(runID)
	if err != nil {
		t.Fatalf("FindRun() failed: %v", err)
	}
	if !run.Completed {
		t.Error("run should be marked completed")
	}
	events, err := store.Events(runID)
	if err != nil {
		t.Fatalf("Events() failed: %v", err)
	}

	steps := 0
	got, err := Replay(RunParams(*run), events, func(storage.EventRecord, game.Snapshot) { steps++ })
	if err != nil {
		t.Fatalf("Replay() failed: %v", err)
	}
	if steps != len(events) {
		t.Errorf("step called %d times, expected %d", steps, len(events))
	}

	if got.Score != atEnd.Score {
		t.Errorf("Score = %d, recorded %d", got.Score, atEnd.Score)
	}
	if got.Position != atEnd.Position || got.Facing != atEnd.Facing {
		t.Errorf("player = %v/%v, recorded %v/%v", got.Position, got.Facing, atEnd.Position, atEnd.Facing)
	}
	if !got.Over || got.TimeRemaining != 0 {
		t.Errorf("replay should end over with no time left: %+v", got)
	}
	if len(got.Enemies) != len(atEnd.Enemies) {
		t.Fatalf("replay has %d dragons, recorded %d", len(got.Enemies), len(atEnd.Enemies))
	}
	for i := range got.Enemies {
		g, w := got.Enemies[i], atEnd.Enemies[i]
		if g.Position != w.Position || g.Direction != w.Direction || g.Hit != w.Hit {
			t.Errorf("dragon %d = %+v, recorded %+v", i, g, w)
		}
	}
}

func TestReplayRejectsBadJournals(t *testing.T) {
	params := game.DefaultParams()

	tests := []struct {
		name    string
		records []storage.EventRecord
		wantErr error
	}{
		{
			name:    "unknown kind",
			records: []storage.EventRecord{{Seq: 0, Kind: KindStart}, {Seq: 1, Kind: "teleport"}},
			wantErr: ErrCorrupt,
		},
		{
			name:    "bad move direction",
			records: []storage.EventRecord{{Seq: 0, Kind: KindStart}, {Seq: 1, Kind: KindMove, Direction: "north"}},
			wantErr: ErrCorrupt,
		},
		{
			name:    "bad spawn direction",
			records: []storage.EventRecord{{Seq: 0, Kind: KindStart}, {Seq: 1, Kind: KindFire}},
			wantErr: ErrCorrupt,
		},
		{
			name:    "end while running",
			records: []storage.EventRecord{{Seq: 0, Kind: KindStart}, {Seq: 1, Kind: KindTick}, {Seq: 2, Kind: KindEnd}},
			wantErr: ErrDiverged,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Replay(params, tt.records, nil); !errors.Is(err, tt.wantErr) {
				t.Errorf("Replay() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestReplayEmptyJournal(t *testing.T) {
	got, err := Replay(game.DefaultParams(), nil, nil)
	if err != nil {
		t.Fatalf("Replay() failed: %v", err)
	}
	if !got.ShowingIntro || got.Active {
		t.Errorf("empty journal should leave the intro showing: %+v", got)
	}
}
