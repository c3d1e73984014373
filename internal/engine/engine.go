package engine

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultTickInterval is the period at which a running engine recomputes its
// elapsed times unless configured otherwise.
const DefaultTickInterval = 10 * time.Millisecond

// Engine is the timing model of a stopwatch. It accumulates elapsed time over
// any number of start/stop cycles and records laps.
//
//	e := engine.New()
//	e.Start()
//	e.RecordLap()
//	e.Stop()
//	fmt.Println(e.TotalDisplay(), e.LapDisplay())
//
// Commands issued in a state where they make no sense (a lap while stopped, a
// second Start) are ignored and logged at debug level. Commands and ticks are
// serialized, so an Engine is safe for concurrent use.
type Engine struct {
	clock     Clock
	scheduler Scheduler
	interval  time.Duration
	log       *log.Logger

	mu sync.Mutex

	running      bool
	totalElapsed time.Duration
	sinceLastLap time.Duration
	laps         []time.Duration
	// lapSum is the sum of laps, kept alongside so ticks need not re-add them.
	lapSum time.Duration

	// runStart and savedTotalAtStart describe the open run interval.
	runStart          time.Time
	savedTotalAtStart time.Duration
	// lastLap is the zero time if no lap was recorded since the last reset.
	lastLap time.Time

	// stopTick disarms the current tick, gen identifies it.
	stopTick func()
	gen      uint64
	closed   bool

	seq       uint64
	observers map[uint64]func(Snapshot)
	nextObsID uint64
}

// New creates a stopped engine, applying all given options. By default the
// engine uses the system clock, a time.Ticker based scheduler with
// DefaultTickInterval and a logger that discards everything.
func New(opts ...Option) *Engine {
	e := &Engine{
		clock:     sysClock{},
		scheduler: sysScheduler{},
		interval:  DefaultTickInterval,
		log:       log.New(io.Discard),
		observers: make(map[uint64]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Start transitions a stopped engine to running and arms the tick.
func (e *Engine) Start() {
	e.mu.Lock()
	if e.closed || e.running {
		e.ignore("start", "already running")
		e.mu.Unlock()
		return
	}

	e.runStart = e.clock.Now()
	e.savedTotalAtStart = e.totalElapsed
	e.running = true

	e.gen++
	gen := e.gen
	e.stopTick = e.scheduler.Every(e.interval, func() { e.tick(gen) })

	e.log.Debug("started", "total", e.totalElapsed, "interval", e.interval)
	e.publishLocked()
}

// Stop disarms the tick and freezes the elapsed times at the current instant.
func (e *Engine) Stop() {
	e.mu.Lock()
	if e.closed || !e.running {
		e.ignore("stop", "not running")
		e.mu.Unlock()
		return
	}

	e.disarmLocked()
	e.advanceLocked(e.clock.Now())
	e.running = false

	e.log.Debug("stopped", "total", e.totalElapsed, "since_last_lap", e.sinceLastLap)
	e.publishLocked()
}

// Reset zeroes the elapsed times and drops all laps. The run state is left
// untouched: a running engine keeps running and counts up from zero again.
func (e *Engine) Reset() {
	e.mu.Lock()
	if e.closed {
		e.ignore("reset", "closed")
		e.mu.Unlock()
		return
	}

	e.totalElapsed = 0
	e.sinceLastLap = 0
	e.laps = nil
	e.lapSum = 0
	e.lastLap = time.Time{}
	if e.running {
		// rebase the open interval, otherwise the next tick would restore the
		// time accumulated before the reset
		e.runStart = e.clock.Now()
		e.savedTotalAtStart = 0
	}

	e.log.Debug("reset", "running", e.running)
	e.publishLocked()
}

// RecordLap records the time since the previous lap (or since the last reset)
// as a new lap. It has no effect while stopped.
func (e *Engine) RecordLap() {
	e.mu.Lock()
	if e.closed || !e.running {
		e.ignore("lap", "not running")
		e.mu.Unlock()
		return
	}

	current := e.clock.Now()
	e.lastLap = current
	e.totalElapsed = e.elapsedAt(current)

	lap := e.totalElapsed - e.lapSum
	e.laps = append([]time.Duration{lap}, e.laps...)
	e.lapSum += lap
	e.sinceLastLap = 0

	e.log.Debug("lap", "n", len(e.laps), "lap", lap, "total", e.totalElapsed)
	e.publishLocked()
}

// Close disarms the tick and drops all observers. Every command issued after
// Close is ignored, queries keep returning the final state.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}
	e.disarmLocked()
	if e.running {
		e.advanceLocked(e.clock.Now())
		e.running = false
	}
	e.closed = true
	e.observers = make(map[uint64]func(Snapshot))
	e.log.Debug("closed", "total", e.totalElapsed)
}

func (e *Engine) tick(gen uint64) {
	e.mu.Lock()
	// a tick can race with the Stop that disarmed it
	if e.closed || !e.running || e.gen != gen {
		e.mu.Unlock()
		return
	}
	e.advanceLocked(e.clock.Now())
	e.publishLocked()
}

// advanceLocked recomputes both elapsed times for the instant current.
func (e *Engine) advanceLocked(current time.Time) {
	e.totalElapsed = e.elapsedAt(current)

	switch {
	case e.lastLap.IsZero():
		e.sinceLastLap = e.totalElapsed
	case !e.lastLap.Before(e.runStart):
		e.sinceLastLap = truncate(current.Sub(e.lastLap))
	default:
		// The last lap happened in an earlier run interval. Everything that
		// was accumulated up to the restart and not yet assigned to a lap
		// belongs to the running lap.
		banked := e.savedTotalAtStart - e.lapSum
		e.sinceLastLap = banked + truncate(current.Sub(e.runStart))
	}
}

func (e *Engine) elapsedAt(current time.Time) time.Duration {
	return e.savedTotalAtStart + truncate(current.Sub(e.runStart))
}

func (e *Engine) disarmLocked() {
	if e.stopTick != nil {
		e.stopTick()
		e.stopTick = nil
	}
	e.gen++
}

// ignore logs a command that is invalid in the current state. The caller
// holds e.mu.
func (e *Engine) ignore(command, reason string) {
	if e.closed {
		reason = "closed"
	}
	e.log.Debug("ignoring command", "command", command, "reason", reason)
}

// truncate drops sub-millisecond precision and clamps clock regressions to zero.
func truncate(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d.Truncate(time.Millisecond)
}
