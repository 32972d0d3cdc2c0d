package scheduler

import (
	"sort"
	"sync"
	"time"
)

// Manual is a virtual-time Scheduler. Nothing fires until Advance is called; callbacks then run on the
// caller's goroutine in due-time order, ties broken by scheduling order.
type Manual struct {
	mu      sync.Mutex
	now     time.Duration
	seq     int
	pending []*manualEntry
}

var _ Scheduler = (*Manual)(nil)

type manualEntry struct {
	t        *timer
	due      time.Duration
	seq      int
	interval time.Duration
	until    func() bool
	fn       func()
}

// NewManual returns a scheduler at virtual time zero.
func NewManual() *Manual {
	return &Manual{}
}

// Now returns the elapsed virtual time.
func (m *Manual) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// After implements Scheduler.
func (m *Manual) After(d time.Duration, fn func()) Handle {
	return m.add(d, 0, nil, fn)
}

// EveryUntil implements Scheduler.
func (m *Manual) EveryUntil(interval time.Duration, until func() bool, fn func()) Handle {
	return m.add(interval, interval, until, fn)
}

func (m *Manual) add(d, interval time.Duration, until func() bool, fn func()) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()

	t := newTimer()
	m.seq++
	m.pending = append(m.pending, &manualEntry{
		t:        t,
		due:      m.now + d,
		seq:      m.seq,
		interval: interval,
		until:    until,
		fn:       fn,
	})
	return t
}

// Pending reports how many live timers are scheduled.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, e := range m.pending {
		if e.t.active() {
			n++
		}
	}
	return n
}

// Advance moves virtual time forward by d, running every callback that falls due.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	for {
		e := m.next(target)
		if e == nil {
			break
		}
		m.fire(e)
	}

	m.mu.Lock()
	m.now = target
	m.mu.Unlock()
}

// next pops the earliest live entry due at or before target and moves the clock to it.
func (m *Manual) next(target time.Duration) *manualEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	live := m.pending[:0]
	for _, e := range m.pending {
		if e.t.active() {
			live = append(live, e)
		}
	}
	m.pending = live

	sort.SliceStable(m.pending, func(i, j int) bool {
		if m.pending[i].due != m.pending[j].due {
			return m.pending[i].due < m.pending[j].due
		}
		return m.pending[i].seq < m.pending[j].seq
	})

	if len(m.pending) == 0 || m.pending[0].due > target {
		return nil
	}

	e := m.pending[0]
	m.pending = m.pending[1:]
	m.now = e.due
	return e
}

func (m *Manual) fire(e *manualEntry) {
	if !e.t.active() {
		return
	}

	if e.interval == 0 {
		e.t.Cancel()
		e.fn()
		return
	}

	if e.until != nil && e.until() {
		e.t.Cancel()
		return
	}

	m.mu.Lock()
	m.seq++
	e.due += e.interval
	e.seq = m.seq
	m.pending = append(m.pending, e)
	m.mu.Unlock()

	e.fn()
}
