// Package schedule implements the two cooperative loops that drive an engine.
//
// Render is free-running: it draws once per display frame and resubmits
// itself through the host's frame callback. It is never capped or skipped.
//
// Simulation ticks at a fixed target interval (60 Hz by default),
// independent of the render cadence. Each tick passes the fractional number
// of intervals elapsed since the loop started:
//
//	tick = (now - start) / interval
//
// After the update it measures its own processing time and reschedules with
//
//	delay = max(0, interval - processing)
//
// so an overrun is absorbed by running the next tick as soon as the run loop
// allows, never by a negative delay or by recursing synchronously.
//
// Both loops only depend on the small Clock, Timers and Frames interfaces so
// tests can drive them on virtual time.
package schedule
