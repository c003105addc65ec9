package host

import "github.com/wippyai/canvas-host/errors"

var errAlreadyRunning = errors.New(errors.PhaseHost, errors.KindInvalidInput).
	Op("run").
	Detail("loop is already running").
	Build()
