// Package journal records sessions into the run store and replays them.
//
// A run is journaled as its ordered intents plus the placement of every
// spawned dragon, so replay needs neither the random seed nor real time.
package journal

import "github.com/vovakirdan/smarterfiring/internal/storage"

//go:generate go tool mockgen -destination=./mocks/store_mock.go -package=mocks . Store

// Store is the part of storage.Store the recorder writes to.
type Store interface {
	CreateRun(run storage.Run) error
	AppendEvents(runID string, events []storage.EventRecord) error
	FinishRun(runID string, completed bool) error
}

// Record kinds.
const (
	KindStart = "start"
	KindMove  = "move"
	KindFire  = "fire"
	KindSweep = "sweep"
	KindTick  = "tick"
	KindEnd   = "end"
)
