// Package host provides the single-threaded run loop a session executes on.
//
// Every callback (display frames, simulation timers, input and visibility
// events) runs on one goroutine, one at a time, in the order the loop
// dequeues it. Nothing the session touches needs locking.
//
// Loop is the real implementation: timers are backed by time.AfterFunc,
// display frames by a ticker at the configured refresh rate, and both post
// into the loop's queue. Post, Dispatch and Resize are safe to call from
// any goroutine, which is how a front end (for example a terminal UI)
// feeds events in.
//
// Virtual is a deterministic stand-in for tests: time only moves when the
// test calls Advance, and frames only fire on Frame.
package host
