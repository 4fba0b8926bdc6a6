package clock

import (
	"sync"
	"time"
)

// Manual is a Clock and Ticker that only moves when told to.
type Manual struct {
	mu    sync.Mutex
	now   time.Time
	tasks []*manualTask
}

func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) Every(d time.Duration, fn func(now time.Time)) Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &manualTask{owner: m, every: d, next: m.now.Add(d), fn: fn}
	m.tasks = append(m.tasks, t)
	return t
}

// Active is the number of tasks that have not been stopped.
func (m *Manual) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

// Advance moves time forward by d, firing every task that comes due on
// the way, earliest first.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()

	for {
		m.mu.Lock()
		var due *manualTask
		for _, t := range m.tasks {
			if !t.next.After(target) && (due == nil || t.next.Before(due.next)) {
				due = t
			}
		}
		if due == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		m.now = due.next
		due.next = due.next.Add(due.every)
		now := m.now
		m.mu.Unlock()

		// outside the lock, callbacks may stop or schedule tasks
		due.fn(now)
	}
}

type manualTask struct {
	owner *Manual
	every time.Duration
	next  time.Time
	fn    func(time.Time)
}

func (t *manualTask) Stop() {
	m := t.owner
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, other := range m.tasks {
		if other == t {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			return
		}
	}
}
