package input

// KeySink receives forwarded key events.
type KeySink interface {
	KeyEvent(KeyEvent) error
}

// ScrollSink receives directional intent once per simulation tick.
type ScrollSink interface {
	ScrollToLeft() error
	ScrollToRight() error
}

// Sink is the engine surface the router drives.
type Sink interface {
	KeySink
	ScrollSink
}

// Router forwards key events and holds directional intent.
// It is not safe for concurrent use; all calls happen on the run loop.
type Router struct {
	sink  Sink
	state State
	keys  uint64
}

// NewRouter creates a router targeting sink.
func NewRouter(sink Sink) *Router {
	return &Router{sink: sink}
}

// HandleKey forwards ev to the engine unchanged.
func (r *Router) HandleKey(ev KeyEvent) error {
	r.keys++
	return r.sink.KeyEvent(ev)
}

// HandlePointer updates the flag for ev.Target. Events without a target
// are ignored.
func (r *Router) HandlePointer(ev PointerEvent) {
	held := ev.Type.Pressed()
	switch ev.Target {
	case DirLeft:
		r.state.Left = held
	case DirRight:
		r.state.Right = held
	}
}

// Apply issues the scroll calls for the current intent: left first, then
// right, each at most once. It is called once per simulation tick.
func (r *Router) Apply() error {
	if r.state.Left {
		if err := r.sink.ScrollToLeft(); err != nil {
			return err
		}
	}
	if r.state.Right {
		if err := r.sink.ScrollToRight(); err != nil {
			return err
		}
	}
	return nil
}

// Reset clears all directional intent.
func (r *Router) Reset() {
	r.state = State{}
}

// State returns the current directional intent.
func (r *Router) State() State {
	return r.state
}

// Forwarded returns the number of key events forwarded so far.
func (r *Router) Forwarded() uint64 {
	return r.keys
}
