// Package session wires an engine handle to a host run loop.
//
// Initialize runs the construction sequence
//
//	Uninitialized -> Probing -> Constructing -> Ready | Aborted
//
// and, once Ready, registers resize, input and visibility listeners and
// starts the render and simulation loops. A session that aborts registers
// nothing. Close stops the loops, removes the listeners and frees the
// handle exactly once.
//
// Every method must be called from the host run loop. Stats is the one
// exception and may be read from any goroutine.
package session
