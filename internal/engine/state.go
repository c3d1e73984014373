package engine

import (
	"fmt"
	"time"
)

// RunState governs whether elapsed time advances.
type RunState uint8

const (
	Stopped RunState = iota
	Running
)

func (s RunState) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Running:
		return "running"
	}
	return fmt.Sprintf("RunState(%d)", uint8(s))
}

// Snapshot is a copy of the engine state at one instant. Seq increases with
// every snapshot an engine hands out, so consumers can drop stale ones.
type Snapshot struct {
	Seq          uint64
	State        RunState
	Total        time.Duration
	SinceLastLap time.Duration
	// Laps holds the recorded lap durations, most recent first.
	Laps []time.Duration
}

// Running reports whether the snapshot was taken while the engine was running.
func (s Snapshot) Running() bool {
	return s.State == Running
}

// Lap is one row of the lap history as it is displayed.
type Lap struct {
	// Label is "Lap N" where N is 1 for the most recent lap.
	Label    string
	Display  string
	Duration time.Duration
}

// History renders the laps of the snapshot, most recent first.
func (s Snapshot) History() []Lap {
	history := make([]Lap, len(s.Laps))
	for i, d := range s.Laps {
		history[i] = Lap{
			Label:    fmt.Sprintf("Lap %d", i+1),
			Display:  FormatDuration(d),
			Duration: d,
		}
	}
	return history
}

func (s Snapshot) TotalDisplay() string {
	return FormatDuration(s.Total)
}

func (s Snapshot) LapDisplay() string {
	return FormatDuration(s.SinceLastLap)
}
