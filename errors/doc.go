// Package errors provides structured error types for the canvas host.
//
// Errors are categorized by Phase (where in the session lifecycle the error
// occurred) and Kind (error category). The Error type carries the engine
// operation involved, a human-readable detail and the cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseEngine, errors.KindEngineCall).
//		Op("engine_resize").
//		Value(size).
//		Detail("resize to %dx%d", w, h).
//		Cause(trap).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Construction(cause)
//	err := errors.MissingExport("engine_render")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
