// Package fakeclock provides a manually advanced clock that doubles as a
// scheduler, so that code driven by periodic ticks can be tested without
// waiting on the wall clock.
package fakeclock

import (
	"sort"
	"sync"
	"time"
)

// Epoch is the instant a new Clock starts at.
var Epoch = time.Unix(1606850863, 0) // 2020-12-01 19:27:43 +0000 UTC

// Clock is a fake time source. Time only moves when Advance or Set is called.
// Tickers armed with Every fire synchronously from within Advance, once for
// every period that elapsed, with the clock set to the instant they were due.
type Clock struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*ticker
}

func New() *Clock {
	return &Clock{now: Epoch}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Every arms a ticker that fires every d of fake time. The returned function
// disarms it.
func (c *Clock) Every(d time.Duration, fn func()) (stop func()) {
	if d <= 0 {
		panic("fakeclock: non-positive interval")
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	t := &ticker{
		clock:    c,
		interval: d,
		next:     c.now.Add(d),
		fn:       fn,
	}
	c.tickers = append(c.tickers, t)
	return t.stop
}

// Advance moves the clock forward by d, firing all tickers that become due
// in chronological order.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()

	for {
		c.mu.Lock()
		t := c.nextDue(target)
		if t == nil {
			c.now = target
			c.mu.Unlock()
			return
		}
		c.now = t.next
		t.next = t.next.Add(t.interval)
		fn := t.fn
		c.mu.Unlock()

		fn()
	}
}

// Set jumps the clock to an absolute instant without firing any ticker. It may
// move time backwards, which simulates a wall clock adjustment.
func (c *Clock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
	for _, t := range c.tickers {
		t.next = now.Add(t.interval)
	}
}

// Armed returns the number of tickers that have not been stopped.
func (c *Clock) Armed() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tickers)
}

func (c *Clock) nextDue(target time.Time) *ticker {
	due := make([]*ticker, 0, len(c.tickers))
	for _, t := range c.tickers {
		if !t.next.After(target) {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.SliceStable(due, func(i, j int) bool {
		return due[i].next.Before(due[j].next)
	})
	return due[0]
}

func (c *Clock) remove(t *ticker) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, candidate := range c.tickers {
		if candidate == t {
			c.tickers = append(c.tickers[:i], c.tickers[i+1:]...)
			return
		}
	}
}

type ticker struct {
	clock    *Clock
	interval time.Duration
	next     time.Time
	fn       func()
}

func (t *ticker) stop() {
	t.clock.remove(t)
}
