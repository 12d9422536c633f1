package game

import "time"

//go:generate go tool mockgen -destination=./mocks/scheduler_mock.go -package=mocks . Scheduler

// Scheduler delivers deferred work to the session. Implementations must
// invoke callbacks on the same serial context that calls the session's
// intents; the session itself holds no locks.
type Scheduler interface {
	// Every runs fn once per interval until the returned cancel func is called.
	Every(interval time.Duration, fn func()) (cancel func())

	// After runs fn once after delay unless cancelled first.
	After(delay time.Duration, fn func()) (cancel func())
}
