package stopwatch

import (
	"time"

	"github.com/charmbracelet/log"
)

type Option func(*Stopwatch)

// Clock is the time source of a stopwatch.
type Clock interface {
	Now() time.Time
}

// Scheduler arms the repeating tick of a running stopwatch. stop disarms it.
type Scheduler interface {
	Every(d time.Duration, fn func()) (stop func())
}

func WithClock(clock Clock) Option {
	return func(s *Stopwatch) {
		s.clock = clock
	}
}

func WithScheduler(scheduler Scheduler) Option {
	return func(s *Stopwatch) {
		s.scheduler = scheduler
	}
}

// WithTickInterval sets how often a running stopwatch refreshes its elapsed
// times. The default is 10ms.
func WithTickInterval(d time.Duration) Option {
	return func(s *Stopwatch) {
		s.interval = d
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(s *Stopwatch) {
		s.logger = logger
	}
}
