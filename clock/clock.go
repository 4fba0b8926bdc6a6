// Package clock abstracts time so loops driven by frames or timers can be
// stepped deterministically in tests.
package clock

import (
	"sync"
	"time"
)

type Clock interface {
	Now() time.Time
}

// Task is a scheduled repeating callback.
type Task interface {
	// Stop cancels the task. A callback already running finishes, no new
	// one starts. It is safe to call from inside the callback and more
	// than once.
	Stop()
}

type Ticker interface {
	Every(d time.Duration, fn func(now time.Time)) Task
}

// Real is the wall clock backed by time.Ticker.
type Real struct{}

func (Real) Now() time.Time {
	return time.Now()
}

func (Real) Every(d time.Duration, fn func(now time.Time)) Task {
	t := &realTask{
		ticker: time.NewTicker(d),
		done:   make(chan struct{}),
	}
	go t.loop(fn)
	return t
}

type realTask struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

func (t *realTask) loop(fn func(time.Time)) {
	for {
		select {
		case <-t.done:
			return
		case now := <-t.ticker.C:
			if t.stopped() {
				return
			}
			fn(now)
		}
	}
}

func (t *realTask) stopped() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

func (t *realTask) Stop() {
	t.once.Do(func() {
		t.ticker.Stop()
		close(t.done)
	})
}

// Source is a clock that can also schedule.
type Source interface {
	Clock
	Ticker
}
