package scheduler

import (
	"context"
	"log"
	"sync"
	"time"
)

// Loop is a wall-clock Scheduler whose callbacks all run on one goroutine, in the order their timers fire.
type Loop struct {
	ctx    context.Context
	cancel context.CancelFunc
	queue  chan func()
	done   chan struct{}
	bag    Bag
	once   sync.Once
}

var _ Scheduler = (*Loop)(nil)

// NewLoop starts a loop. It stops when ctx is done or Close is called.
func NewLoop(ctx context.Context) *Loop {
	ctx, cancel := context.WithCancel(ctx)
	l := &Loop{
		ctx:    ctx,
		cancel: cancel,
		queue:  make(chan func(), 64),
		done:   make(chan struct{}),
	}
	go l.run()
	return l
}

func (l *Loop) run() {
	defer close(l.done)
	defer l.bag.Release()

	for {
		select {
		case <-l.ctx.Done():
			return
		case fn := <-l.queue:
			l.invoke(fn)
		}
	}
}

func (l *Loop) invoke(fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("[scheduler] callback panic: %v", rec)
		}
	}()
	fn()
}

// post hands fn to the loop goroutine unless the timer or loop has stopped.
func (l *Loop) post(t *timer, fn func()) {
	run := func() {
		if t.active() {
			fn()
		}
	}
	select {
	case l.queue <- run:
	case <-t.stop:
	case <-l.ctx.Done():
	}
}

// After implements Scheduler.
func (l *Loop) After(d time.Duration, fn func()) Handle {
	t := newTimer()
	l.bag.Add(t)

	go func() {
		wait := time.NewTimer(d)
		defer wait.Stop()

		select {
		case <-wait.C:
			l.post(t, func() {
				t.Cancel()
				fn()
			})
		case <-t.stop:
		case <-l.ctx.Done():
		}
	}()
	return t
}

// EveryUntil implements Scheduler.
func (l *Loop) EveryUntil(interval time.Duration, until func() bool, fn func()) Handle {
	t := newTimer()
	l.bag.Add(t)

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				l.post(t, func() {
					if until() {
						t.Cancel()
						return
					}
					fn()
				})
			case <-t.stop:
				return
			case <-l.ctx.Done():
				return
			}
		}
	}()
	return t
}

// Close stops the loop, cancels every timer, and waits for the loop goroutine to exit.
func (l *Loop) Close() {
	l.once.Do(l.cancel)
	<-l.done
}

// Done is closed once the loop has stopped.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}
