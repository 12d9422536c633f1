package clock

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// ErrStopped is returned by Post once the loop has exited.
var ErrStopped = errors.New("clock: loop stopped")

// Loop is a real-time scheduler that serialises timer callbacks and
// posted work onto the goroutine running Run.
type Loop struct {
	work chan func()
	done chan struct{}
	once sync.Once
}

// NewLoop creates a loop with room for buffer queued callbacks.
func NewLoop(buffer int) *Loop {
	return &Loop{
		work: make(chan func(), max(buffer, 1)),
		done: make(chan struct{}),
	}
}

// Run executes queued work until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	defer l.once.Do(func() { close(l.done) })
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.work:
			fn()
		}
	}
}

// Post queues fn for execution on the loop. It blocks while the queue is
// full and fails once the loop has exited.
func (l *Loop) Post(fn func()) error {
	select {
	case <-l.done:
		return ErrStopped
	default:
	}
	select {
	case l.work <- fn:
		return nil
	case <-l.done:
		return ErrStopped
	}
}

// Do runs fn on the loop and waits for it to finish.
func (l *Loop) Do(fn func()) error {
	finished := make(chan struct{})
	if err := l.Post(func() {
		defer close(finished)
		fn()
	}); err != nil {
		return err
	}
	select {
	case <-finished:
		return nil
	case <-l.done:
		return ErrStopped
	}
}

// After implements game.Scheduler. A callback already queued when cancel
// is called is dropped when it reaches the front of the queue.
func (l *Loop) After(delay time.Duration, fn func()) func() {
	var cancelled atomic.Bool
	t := time.AfterFunc(delay, func() {
		//nolint:errcheck // Loop gone means nobody is listening
		l.Post(func() {
			if !cancelled.Load() {
				fn()
			}
		})
	})
	return func() {
		cancelled.Store(true)
		t.Stop()
	}
}

// Every implements game.Scheduler.
func (l *Loop) Every(interval time.Duration, fn func()) func() {
	var cancelled atomic.Bool
	stop := make(chan struct{})
	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-l.done:
				return
			case <-ticker.C:
				err := l.Post(func() {
					if !cancelled.Load() {
						fn()
					}
				})
				if err != nil {
					return
				}
			}
		}
	}()

	var once sync.Once
	return func() {
		cancelled.Store(true)
		once.Do(func() { close(stop) })
	}
}
