package schedule

import "time"

// Render calls a draw function once per display frame.
type Render struct {
	frames  Frames
	render  func() error
	onError ErrorFunc

	pending Timer
	running bool
	count   uint64
}

// NewRender creates a render loop over frames.
func NewRender(frames Frames, render func() error) *Render {
	return &Render{frames: frames, render: render}
}

// OnError sets the hook for render failures. Failures never stop the loop.
func (r *Render) OnError(fn ErrorFunc) *Render {
	r.onError = fn
	return r
}

// Start requests the first frame. Calling Start on a running loop is a no-op.
func (r *Render) Start() {
	if r.running {
		return
	}
	r.running = true
	r.pending = r.frames.RequestFrame(r.frame)
}

// Stop cancels the pending frame.
func (r *Render) Stop() {
	if !r.running {
		return
	}
	r.running = false
	if r.pending != nil {
		r.pending.Stop()
		r.pending = nil
	}
}

// Running reports whether the loop is started.
func (r *Render) Running() bool {
	return r.running
}

// Frames returns the number of render calls made.
func (r *Render) Frames() uint64 {
	return r.count
}

func (r *Render) frame(now time.Time) {
	if !r.running {
		return
	}
	r.count++
	if err := r.render(); err != nil && r.onError != nil {
		r.onError("render", err)
	}
	if r.running {
		r.pending = r.frames.RequestFrame(r.frame)
	}
}
