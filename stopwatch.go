package stopwatch

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/tsatke/stopwatch/internal/engine"
)

type (
	// Snapshot is a copy of the state of a stopwatch at one instant.
	Snapshot = engine.Snapshot
	// Lap is one displayed row of the lap history.
	Lap = engine.Lap
	// RunState is either Stopped or Running.
	RunState = engine.RunState
	// ParseError is returned by ParseDuration.
	ParseError = engine.ParseError
)

const (
	Stopped = engine.Stopped
	Running = engine.Running
)

// Stopwatch measures elapsed time over any number of start/stop cycles and
// records laps. Commands that make no sense in the current state, like a lap
// while stopped, are ignored. A Stopwatch is safe for concurrent use.
type Stopwatch struct {
	engine *engine.Engine

	clock     Clock
	scheduler Scheduler
	interval  time.Duration
	logger    *log.Logger
}

// New creates a stopped stopwatch. Unless configured otherwise it uses the
// system clock and refreshes every 10ms while running.
func New(opts ...Option) *Stopwatch {
	s := &Stopwatch{}
	for _, opt := range opts {
		opt(s)
	}

	var engineOpts []engine.Option
	if s.clock != nil {
		engineOpts = append(engineOpts, engine.WithClock(s.clock))
	}
	if s.scheduler != nil {
		engineOpts = append(engineOpts, engine.WithScheduler(s.scheduler))
	}
	if s.interval > 0 {
		engineOpts = append(engineOpts, engine.WithTickInterval(s.interval))
	}
	if s.logger != nil {
		engineOpts = append(engineOpts, engine.WithLogger(s.logger))
	}
	s.engine = engine.New(engineOpts...)

	return s
}

func (s *Stopwatch) Start()     { s.engine.Start() }
func (s *Stopwatch) Stop()      { s.engine.Stop() }
func (s *Stopwatch) Reset()     { s.engine.Reset() }
func (s *Stopwatch) RecordLap() { s.engine.RecordLap() }

// Close stops the stopwatch for good. Call it when the stopwatch is no longer
// displayed; no tick and no notification happens after Close returns.
func (s *Stopwatch) Close() { s.engine.Close() }

// Toggle starts a stopped stopwatch and stops a running one.
func (s *Stopwatch) Toggle() {
	if s.engine.Running() {
		s.engine.Stop()
		return
	}
	s.engine.Start()
}

// LapOrReset records a lap while running and resets while stopped.
func (s *Stopwatch) LapOrReset() {
	if s.engine.Running() {
		s.engine.RecordLap()
		return
	}
	s.engine.Reset()
}

func (s *Stopwatch) Running() bool { return s.engine.Running() }

// Elapsed returns the total elapsed time.
func (s *Stopwatch) Elapsed() time.Duration { return s.engine.Total() }

// LapElapsed returns the time of the running lap.
func (s *Stopwatch) LapElapsed() time.Duration { return s.engine.SinceLastLap() }

// TotalDisplay returns the total elapsed time as MM:SS.mmm.
func (s *Stopwatch) TotalDisplay() string { return s.engine.TotalDisplay() }

// LapDisplay returns the time of the running lap as MM:SS.mmm.
func (s *Stopwatch) LapDisplay() string { return s.engine.LapDisplay() }

// Laps returns the lap history, most recent first.
func (s *Stopwatch) Laps() []Lap { return s.engine.History() }

func (s *Stopwatch) Snapshot() Snapshot { return s.engine.Snapshot() }

// Subscribe registers fn to be notified after every tick and every state
// change. See the package documentation for the ordering rules.
func (s *Stopwatch) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	return s.engine.Subscribe(fn)
}

// FormatDuration renders d as MM:SS.mmm, e.g. "01:01.234".
func FormatDuration(d time.Duration) string {
	return engine.FormatDuration(d)
}

// ParseDuration parses the output of FormatDuration. Malformed input yields a
// *ParseError.
func ParseDuration(s string) (time.Duration, error) {
	return engine.ParseDuration(s)
}
