package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in the session lifecycle the error occurred
type Phase string

const (
	PhaseProbe     Phase = "probe"     // capability selection
	PhaseConstruct Phase = "construct" // engine handle construction
	PhaseEngine    Phase = "engine"    // calls into a live handle
	PhaseLoad      Phase = "load"      // engine module loading
	PhaseHost      Phase = "host"      // run loop and host surface
	PhaseConfig    Phase = "config"    // command-line and file settings
)

// Kind categorizes the error
type Kind string

const (
	KindConstruction   Kind = "construction"
	KindNotInitialized Kind = "not_initialized"
	KindInvalidInput   Kind = "invalid_input"
	KindMissingExport  Kind = "missing_export"
	KindSignature      Kind = "signature"
	KindEngineCall     Kind = "engine_call"
	KindInstantiation  Kind = "instantiation"
	KindClosed         Kind = "closed"
	KindInvalidData    Kind = "invalid_data"
)

// Error is the structured error type used throughout the host
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Op     string
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Op != "" {
		b.WriteString(" in ")
		b.WriteString(e.Op)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Op sets the engine operation or host component name
func (b *Builder) Op(op string) *Builder {
	b.err.Op = op
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// Construction creates an engine construction failure error.
// A nil cause means the engine reported failure without detail.
func Construction(cause error) *Error {
	return &Error{
		Phase:  PhaseConstruct,
		Kind:   KindConstruction,
		Detail: "engine construction yielded no handle",
		Cause:  cause,
	}
}

// MissingExport creates an error for an engine module lacking a required export
func MissingExport(name string) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindMissingExport,
		Op:     name,
		Detail: fmt.Sprintf("required export %q not found", name),
	}
}

// Signature creates an error for an export with an unexpected signature
func Signature(name, want, got string) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindSignature,
		Op:     name,
		Detail: fmt.Sprintf("want %s, got %s", want, got),
	}
}

// EngineCall wraps a failure returned by a call into a live handle
func EngineCall(op string, cause error) *Error {
	return &Error{
		Phase: PhaseEngine,
		Kind:  KindEngineCall,
		Op:    op,
		Cause: cause,
	}
}

// Closed creates an error for use of a released resource
func Closed(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindClosed,
		Detail: fmt.Sprintf("%s already released", what),
	}
}

// NotInitialized creates a not-initialized error for a missing collaborator
func NotInitialized(phase Phase, component string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotInitialized,
		Detail: fmt.Sprintf("%s not initialized", component),
	}
}

// InvalidInput creates an invalid input error for the offending value
func InvalidInput(phase Phase, value any, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Value:  value,
		Detail: detail,
	}
}

// Instantiation creates an engine module instantiation error
func Instantiation(cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInstantiation,
		Detail: "instantiate engine module",
		Cause:  cause,
	}
}

// Load creates a module loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidData,
		Detail: detail,
		Cause:  cause,
	}
}
