// Package stopwatch implements the timing model of a stopwatch with laps.
//
// A Stopwatch is driven by four commands: Start, Stop, RecordLap and Reset.
// While running it refreshes its elapsed times on a periodic tick and notifies
// subscribers with a Snapshot. Snapshots carry a sequence number, because a
// tick and a command issued from another goroutine may deliver their
// notifications in either order; drop any snapshot older than one already
// seen.
//
// Time is taken from an injected Clock and ticks are armed on an injected
// Scheduler, so tests can drive a stopwatch without waiting.
package stopwatch
