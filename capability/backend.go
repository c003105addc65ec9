package capability

import (
	"fmt"
	"strings"

	"github.com/wippyai/canvas-host/errors"
)

// Backend is the graphics path selected for a session.
type Backend uint8

const (
	Primary Backend = iota
	Fallback
)

func (b Backend) String() string {
	switch b {
	case Primary:
		return "primary"
	case Fallback:
		return "fallback"
	default:
		return fmt.Sprintf("backend(%d)", uint8(b))
	}
}

// UseFallback reports whether the engine must be constructed on its fallback path.
func (b Backend) UseFallback() bool {
	return b != Primary
}

// ParseBackend parses a backend preference.
// "auto" and "" return forced=false with no error, meaning "probe the host".
func ParseBackend(s string) (b Backend, forced bool, err error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return Primary, false, nil
	case "primary", "gpu", "webgpu":
		return Primary, true, nil
	case "fallback", "gl", "webgl", "software":
		return Fallback, true, nil
	default:
		return Primary, false, errors.InvalidInput(errors.PhaseProbe, s,
			fmt.Sprintf("unknown backend %q (want auto, primary or fallback)", s))
	}
}
