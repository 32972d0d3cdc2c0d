// Package scheduler provides cancellable timers for time-driven view choreography.
//
// Two implementations are provided: Loop runs callbacks on a single goroutine against the wall clock,
// and Manual runs them against a virtual clock advanced by the caller.
package scheduler

import (
	"sync"
	"sync/atomic"
	"time"
)

// Scheduler schedules callbacks.
type Scheduler interface {
	// After runs fn once, d after scheduling.
	After(d time.Duration, fn func()) Handle
	// EveryUntil runs fn every interval. Before each run until is consulted; once it
	// reports true the timer retires without running fn.
	EveryUntil(interval time.Duration, until func() bool, fn func()) Handle
}

// Handle cancels a scheduled callback. Cancel is idempotent; once it returns no further run starts.
type Handle interface {
	Cancel()
}

// Never is an EveryUntil predicate that keeps a timer running until it is cancelled.
func Never() bool { return false }

// Bag collects handles so they can be released together.
type Bag struct {
	mu       sync.Mutex
	handles  []Handle
	released bool
}

// Add tracks h. A handle added after Release is cancelled immediately.
func (b *Bag) Add(h Handle) {
	b.mu.Lock()
	if b.released {
		b.mu.Unlock()
		h.Cancel()
		return
	}
	b.handles = append(b.handles, h)
	b.mu.Unlock()
}

// Release cancels every tracked handle.
func (b *Bag) Release() {
	b.mu.Lock()
	handles := b.handles
	b.handles = nil
	b.released = true
	b.mu.Unlock()

	for _, h := range handles {
		h.Cancel()
	}
}

// Len reports how many handles are tracked.
func (b *Bag) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.handles)
}

// timer is the handle shared by both implementations.
type timer struct {
	cancelled atomic.Bool
	stop      chan struct{}
	once      sync.Once
}

func newTimer() *timer {
	return &timer{stop: make(chan struct{})}
}

func (t *timer) Cancel() {
	t.once.Do(func() {
		t.cancelled.Store(true)
		close(t.stop)
	})
}

func (t *timer) active() bool {
	return !t.cancelled.Load()
}
