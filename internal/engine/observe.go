package engine

import "time"

// Subscribe registers fn to be called with a fresh snapshot after every tick
// and after every command that changed the state. fn is called without any
// engine lock held and may call back into the engine. Snapshots from
// concurrent ticks and commands can arrive out of order; compare Seq.
//
// The returned function removes the subscription.
func (e *Engine) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return func() {}
	}

	id := e.nextObsID
	e.nextObsID++
	e.observers[id] = fn

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.observers, id)
	}
}

// publishLocked takes a snapshot, releases e.mu and notifies all observers.
func (e *Engine) publishLocked() {
	snap := e.snapshotLocked()
	observers := make([]func(Snapshot), 0, len(e.observers))
	for _, fn := range e.observers {
		observers = append(observers, fn)
	}
	e.mu.Unlock()

	for _, fn := range observers {
		fn(snap)
	}
}

func (e *Engine) snapshotLocked() Snapshot {
	e.seq++
	state := Stopped
	if e.running {
		state = Running
	}
	laps := make([]time.Duration, len(e.laps))
	copy(laps, e.laps)
	return Snapshot{
		Seq:          e.seq,
		State:        state,
		Total:        e.totalElapsed,
		SinceLastLap: e.sinceLastLap,
		Laps:         laps,
	}
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Running reports whether the engine is currently running.
func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

// Total returns the elapsed time as of the last tick.
func (e *Engine) Total() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.totalElapsed
}

// SinceLastLap returns the time of the running lap as of the last tick.
func (e *Engine) SinceLastLap() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sinceLastLap
}

// Laps returns the recorded laps, most recent first.
func (e *Engine) Laps() []time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	laps := make([]time.Duration, len(e.laps))
	copy(laps, e.laps)
	return laps
}

func (e *Engine) TotalDisplay() string {
	return FormatDuration(e.Total())
}

func (e *Engine) LapDisplay() string {
	return FormatDuration(e.SinceLastLap())
}

// History returns the displayed lap history, most recent first.
func (e *Engine) History() []Lap {
	return e.Snapshot().History()
}
