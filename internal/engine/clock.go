package engine

import (
	"sync"
	"time"
)

// Clock is the time source of an engine. All elapsed-time arithmetic is done on
// the values returned by Now.
type Clock interface {
	Now() time.Time
}

type sysClock struct{}

func (sysClock) Now() time.Time { return time.Now() }

// Scheduler arms repeating callbacks. The engine uses it to drive its ticks.
type Scheduler interface {
	// Every calls fn every d until stop is called. stop does not wait for a
	// call of fn that is already running, and may be called more than once.
	Every(d time.Duration, fn func()) (stop func())
}

type sysScheduler struct{}

func (sysScheduler) Every(d time.Duration, fn func()) func() {
	t := &sysTicker{
		ticker: time.NewTicker(d),
		done:   make(chan struct{}),
	}
	go t.loop(fn)
	return t.Stop
}

type sysTicker struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

func (t *sysTicker) loop(fn func()) {
	for {
		select {
		case <-t.done:
			return
		case <-t.ticker.C:
			fn()
		}
	}
}

func (t *sysTicker) Stop() {
	t.once.Do(func() {
		t.ticker.Stop()
		close(t.done)
	})
}
