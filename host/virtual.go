package host

import (
	"sort"
	"time"

	"github.com/wippyai/canvas-host/canvas"
	"github.com/wippyai/canvas-host/schedule"
)

// maxSteps bounds the callbacks run by one Advance so a zero-delay chain
// cannot hang a test.
const maxSteps = 1 << 16

// Virtual is a deterministic host on virtual time. It is not safe for
// concurrent use.
type Virtual struct {
	now       time.Time
	timers    []*virtualTimer
	frames    []*virtualFrame
	listeners listeners
	window    canvas.Size
	seq       uint64
	frameN    uint64
}

// NewVirtual creates a virtual host with the given window size.
func NewVirtual(window canvas.Size) *Virtual {
	return &Virtual{
		now:    time.Unix(0, 0),
		window: window,
	}
}

// Now implements schedule.Clock.
func (v *Virtual) Now() time.Time {
	return v.now
}

// Elapse moves the clock forward without running any callback. Use it
// inside a callback to model processing time.
func (v *Virtual) Elapse(d time.Duration) {
	if d > 0 {
		v.now = v.now.Add(d)
	}
}

// AfterFunc implements schedule.Timers.
func (v *Virtual) AfterFunc(d time.Duration, fn func()) schedule.Timer {
	v.seq++
	t := &virtualTimer{due: v.now.Add(max(d, 0)), seq: v.seq, delay: d, fn: fn}
	v.timers = append(v.timers, t)
	return t
}

// RequestFrame implements schedule.Frames.
func (v *Virtual) RequestFrame(fn func(now time.Time)) schedule.Timer {
	f := &virtualFrame{fn: fn}
	v.frames = append(v.frames, f)
	return f
}

// InnerSize implements canvas.Window.
func (v *Virtual) InnerSize() canvas.Size {
	return v.window
}

// Listen registers fn for events of type t.
func (v *Virtual) Listen(t EventType, fn Listener) func() {
	id := v.listeners.add(t, fn)
	return func() { v.listeners.remove(t, id) }
}

// Listeners returns the number of registered listeners.
func (v *Virtual) Listeners() int {
	return v.listeners.count()
}

// Dispatch delivers ev synchronously.
func (v *Virtual) Dispatch(ev Event) bool {
	for _, fn := range v.listeners.snapshot(ev.Type) {
		fn(ev)
	}
	return true
}

// Resize changes the window and dispatches a resize event.
func (v *Virtual) Resize(size canvas.Size) bool {
	v.window = size
	return v.Dispatch(Event{Type: EventResize, Size: size})
}

// Advance moves time forward by d, running every timer that falls due in
// order of due time, then scheduling order. Timers scheduled by those
// callbacks run too if they fall due within the window. It returns the
// number of callbacks run.
func (v *Virtual) Advance(d time.Duration) int {
	target := v.now.Add(max(d, 0))
	ran := 0
	for ran < maxSteps {
		t := v.nextDue(target)
		if t == nil {
			break
		}
		if t.due.After(v.now) {
			v.now = t.due
		}
		t.fired = true
		t.fn()
		ran++
	}
	if target.After(v.now) {
		v.now = target
	}
	return ran
}

// RunPending runs timers already due without moving the clock.
func (v *Virtual) RunPending() int {
	return v.Advance(0)
}

// Frame runs one display frame: every frame callback requested before it
// started, in request order.
func (v *Virtual) Frame() int {
	batch := v.frames
	v.frames = nil
	ran := 0
	for _, f := range batch {
		if f.stopped {
			continue
		}
		f.stopped = true
		f.fn(v.now)
		ran++
	}
	if ran > 0 {
		v.frameN++
	}
	return ran
}

// FrameCount returns the number of frames that ran callbacks.
func (v *Virtual) FrameCount() uint64 {
	return v.frameN
}

// PendingTimers returns the number of live timers.
func (v *Virtual) PendingTimers() int {
	n := 0
	for _, t := range v.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// PendingFrames returns the number of live frame requests.
func (v *Virtual) PendingFrames() int {
	n := 0
	for _, f := range v.frames {
		if !f.stopped {
			n++
		}
	}
	return n
}

// NextDelay returns the delay the earliest live timer was scheduled with.
func (v *Virtual) NextDelay() (time.Duration, bool) {
	v.compact()
	if len(v.timers) == 0 {
		return 0, false
	}
	return v.timers[0].delay, true
}

func (v *Virtual) nextDue(target time.Time) *virtualTimer {
	v.compact()
	if len(v.timers) == 0 || v.timers[0].due.After(target) {
		return nil
	}
	t := v.timers[0]
	v.timers = v.timers[1:]
	return t
}

func (v *Virtual) compact() {
	live := v.timers[:0]
	for _, t := range v.timers {
		if !t.stopped && !t.fired {
			live = append(live, t)
		}
	}
	v.timers = live
	sort.SliceStable(v.timers, func(i, j int) bool {
		if v.timers[i].due.Equal(v.timers[j].due) {
			return v.timers[i].seq < v.timers[j].seq
		}
		return v.timers[i].due.Before(v.timers[j].due)
	})
}

type virtualTimer struct {
	due     time.Time
	fn      func()
	seq     uint64
	delay   time.Duration
	stopped bool
	fired   bool
}

func (t *virtualTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

type virtualFrame struct {
	fn      func(time.Time)
	stopped bool
}

func (f *virtualFrame) Stop() bool {
	if f.stopped {
		return false
	}
	f.stopped = true
	return true
}
