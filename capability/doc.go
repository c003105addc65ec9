// Package capability selects the rendering backend for a session.
//
// The host is asked once, at startup, whether a high-performance graphics
// path is available. The answer is a closed enum:
//
//	Primary   the high-performance path is present
//	Fallback  it is absent; the engine is built on its fallback path
//
// Absence is an expected outcome, not an error. A Probe wraps a Prober and
// caches the first answer for the lifetime of the session:
//
//	probe := capability.NewProbe(capability.Any(
//	    capability.Accelerator(),
//	    capability.TrueColor(termenv.ColorProfile()),
//	))
//	if probe.Backend() == capability.Fallback {
//	    // construct with the fallback flag set
//	}
package capability
