package session

import (
	"github.com/wippyai/canvas-host/host"
	"github.com/wippyai/canvas-host/input"
)

// visibilityGuard drops interaction state when the page loses visibility or
// focus. It never touches the loops.
type visibilityGuard struct {
	leave  func() error
	router *input.Router
	report func(op string, err error)
	leaves uint64
}

func (g *visibilityGuard) handle(ev host.Event) {
	switch ev.Type {
	case host.EventBlur:
	case host.EventVisibilityChange:
		if !ev.Hidden {
			return
		}
	default:
		return
	}

	g.leaves++
	if err := g.leave(); err != nil {
		g.report("leave", err)
	}
	g.router.Reset()
}
