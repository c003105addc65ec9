package schedule

import "time"

// Clock samples wall-clock time.
type Clock interface {
	Now() time.Time
}

// Timer is a pending callback that can be cancelled.
type Timer interface {
	// Stop cancels the callback. It reports false if the callback already
	// ran or was stopped.
	Stop() bool
}

// Timers schedules one-shot callbacks on the run loop.
type Timers interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// Frames schedules a callback for the next display frame.
type Frames interface {
	RequestFrame(fn func(now time.Time)) Timer
}

// ErrorFunc receives errors returned by engine calls made from a loop.
type ErrorFunc func(op string, err error)
