package journal

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/smarterfiring/internal/game"
	"github.com/vovakirdan/smarterfiring/internal/storage"
)

// flushThreshold is how many records are buffered before a write.
const flushThreshold = 32

// Recorder turns session events into journal records. Each Start opens a
// new run; the run is closed when the game ends, the session restarts or
// the recorder is closed. Close may be called from another goroutine.
type Recorder struct {
	mu     sync.Mutex
	store  Store
	source string
	seed   int64
	params game.Params
	logger *log.Logger
	newID  func() string

	runID string
	seq   int
	buf   []storage.EventRecord
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithSeed stores the spawn seed alongside each run for reference.
func WithSeed(seed int64) RecorderOption {
	return func(r *Recorder) {
		r.seed = seed
	}
}

// WithRunIDs replaces the UUID source for run identifiers.
func WithRunIDs(fn func() string) RecorderOption {
	return func(r *Recorder) {
		r.newID = fn
	}
}

// NewRecorder creates a recorder writing runs tagged with source.
func NewRecorder(store Store, source string, params game.Params, logger *log.Logger, opts ...RecorderOption) *Recorder {
	r := &Recorder{
		store:  store,
		source: source,
		params: params,
		logger: logger,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Attach subscribes the recorder to s.
func (r *Recorder) Attach(s *game.Session) (detach func()) {
	return s.Subscribe(r.Observe)
}

// RunID returns the open run, or "" between runs.
func (r *Recorder) RunID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.runID
}

// Observe is a game.Listener.
func (r *Recorder) Observe(ev game.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch ev.Kind {
	case game.EventStarted:
		if r.runID != "" {
			r.finish(false)
		}
		r.open()
		r.add(storage.EventRecord{Kind: KindStart})
	case game.EventMoved:
		r.add(storage.EventRecord{Kind: KindMove, Direction: ev.Direction.String()})
	case game.EventFired:
		rec := storage.EventRecord{Kind: KindFire}
		if ev.Spawned != nil {
			rec.Direction = ev.Spawned.Direction.String()
			rec.X = ev.Spawned.Position.X
			rec.Y = ev.Spawned.Position.Y
		}
		r.add(rec)
	case game.EventSwept:
		r.add(storage.EventRecord{Kind: KindSweep})
	case game.EventTicked:
		r.add(storage.EventRecord{Kind: KindTick})
	case game.EventEnded:
		id := r.runID
		r.add(storage.EventRecord{Kind: KindEnd})
		r.finish(true)
		if id != "" {
			r.logger.Info("run finished", "run", id, "score", ev.State.Score)
		}
	}
}

// Close flushes pending records and closes an open run as abandoned.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.runID == "" {
		return nil
	}
	if err := r.flush(); err != nil {
		return err
	}
	id := r.runID
	r.runID = ""
	return r.store.FinishRun(id, false)
}

func (r *Recorder) open() {
	id := r.newID()
	run := storage.Run{
		ID:              id,
		Source:          r.source,
		Seed:            r.seed,
		GridSize:        r.params.GridSize,
		SessionSeconds:  int(r.params.SessionDuration / time.Second),
		HitRewardPoints: r.params.HitReward,
	}
	if err := r.store.CreateRun(run); err != nil {
		r.logger.Warn("journal disabled for this run", "err", err)
		return
	}
	r.runID = id
	r.seq = 0
	r.buf = nil
	r.logger.Debug("run started", "run", id, "source", r.source)
}

func (r *Recorder) add(rec storage.EventRecord) {
	if r.runID == "" {
		return
	}
	rec.Seq = r.seq
	r.seq++
	r.buf = append(r.buf, rec)
	if len(r.buf) >= flushThreshold {
		if err := r.flush(); err != nil {
			r.logger.Warn("journal write failed", "run", r.runID, "err", err)
		}
	}
}

func (r *Recorder) flush() error {
	if len(r.buf) == 0 {
		return nil
	}
	err := r.store.AppendEvents(r.runID, r.buf)
	r.buf = nil
	return err
}

// finish closes the open run.
func (r *Recorder) finish(completed bool) {
	if r.runID == "" {
		return
	}
	if err := r.flush(); err != nil {
		r.logger.Warn("journal write failed", "run", r.runID, "err", err)
	}
	if err := r.store.FinishRun(r.runID, completed); err != nil {
		r.logger.Warn("cannot close run", "run", r.runID, "err", err)
	}
	r.runID = ""
}
