package host

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/wippyai/canvas-host/canvas"
	"github.com/wippyai/canvas-host/schedule"
)

// DefaultRefreshRate is the display refresh rate used when none is configured.
const DefaultRefreshRate = 60

// Option configures a Loop.
type Option func(*Loop)

// WithRefreshRate sets the display frame rate. Values below 1 are ignored.
func WithRefreshRate(fps int) Option {
	return func(l *Loop) {
		if fps >= 1 {
			l.refresh = time.Second / time.Duration(fps)
		}
	}
}

// WithWindowSize sets the initial window measurement.
func WithWindowSize(size canvas.Size) Option {
	return func(l *Loop) {
		l.window = size
	}
}

// WithLogger sets the logger used for recovered callback panics.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Loop) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// Loop is a single-goroutine run loop.
type Loop struct {
	logger  *zap.Logger
	wake    chan struct{}
	closed  chan struct{}
	refresh time.Duration

	mu        sync.Mutex
	queue     []func()
	frames    []*frameRequest
	listeners listeners
	window    canvas.Size
	shut      bool

	closeOnce sync.Once
	running   atomic.Bool
	frameN    atomic.Uint64
}

// NewLoop creates a loop. It does nothing until Run is called.
func NewLoop(opts ...Option) *Loop {
	l := &Loop{
		logger:  zap.NewNop(),
		wake:    make(chan struct{}, 1),
		closed:  make(chan struct{}),
		refresh: time.Second / DefaultRefreshRate,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run executes callbacks until ctx is done or Close is called.
// It must be called from one goroutine only.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return errAlreadyRunning
	}
	defer l.running.Store(false)

	ticker := time.NewTicker(l.refresh)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.closed:
			return nil
		case <-l.wake:
			l.drain()
		case now := <-ticker.C:
			l.frame(now)
		}
	}
}

// Close stops Run and drops queued callbacks.
func (l *Loop) Close() {
	l.closeOnce.Do(func() {
		l.mu.Lock()
		l.shut = true
		l.queue = nil
		l.frames = nil
		l.mu.Unlock()
		close(l.closed)
	})
}

// Post queues fn to run on the loop. It reports false after Close.
func (l *Loop) Post(fn func()) bool {
	l.mu.Lock()
	if l.shut {
		l.mu.Unlock()
		return false
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// Now implements schedule.Clock.
func (l *Loop) Now() time.Time {
	return time.Now()
}

// AfterFunc implements schedule.Timers. fn runs on the loop goroutine.
func (l *Loop) AfterFunc(d time.Duration, fn func()) schedule.Timer {
	t := &loopTimer{}
	t.timer = time.AfterFunc(max(d, 0), func() {
		l.Post(func() {
			if t.state.CompareAndSwap(timerPending, timerFired) {
				fn()
			}
		})
	})
	return t
}

// RequestFrame implements schedule.Frames. fn runs at the next display
// frame that begins after the request.
func (l *Loop) RequestFrame(fn func(now time.Time)) schedule.Timer {
	req := &frameRequest{fn: fn}
	l.mu.Lock()
	if !l.shut {
		l.frames = append(l.frames, req)
	}
	l.mu.Unlock()
	return req
}

// InnerSize implements canvas.Window.
func (l *Loop) InnerSize() canvas.Size {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.window
}

// Listen registers fn for events of type t and returns a function that
// removes it.
func (l *Loop) Listen(t EventType, fn Listener) func() {
	l.mu.Lock()
	id := l.listeners.add(t, fn)
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		l.listeners.remove(t, id)
		l.mu.Unlock()
	}
}

// Listeners returns the number of registered listeners.
func (l *Loop) Listeners() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.listeners.count()
}

// Dispatch delivers ev to its listeners on the loop goroutine.
func (l *Loop) Dispatch(ev Event) bool {
	return l.Post(func() { l.deliver(ev) })
}

// Resize records a new window measurement and dispatches a resize event.
// The window size is updated on the loop, so listeners always observe the
// measurement that triggered them.
func (l *Loop) Resize(size canvas.Size) bool {
	return l.Post(func() {
		l.mu.Lock()
		l.window = size
		l.mu.Unlock()
		l.deliver(Event{Type: EventResize, Size: size})
	})
}

// FrameCount returns the number of display frames that ran callbacks.
func (l *Loop) FrameCount() uint64 {
	return l.frameN.Load()
}

func (l *Loop) deliver(ev Event) {
	l.mu.Lock()
	fns := l.listeners.snapshot(ev.Type)
	l.mu.Unlock()

	for _, fn := range fns {
		l.call(func() { fn(ev) })
	}
}

func (l *Loop) drain() {
	l.mu.Lock()
	batch := l.queue
	l.queue = nil
	l.mu.Unlock()

	for _, fn := range batch {
		l.call(fn)
	}
}

func (l *Loop) frame(now time.Time) {
	l.mu.Lock()
	batch := l.frames
	l.frames = nil
	l.mu.Unlock()

	if len(batch) == 0 {
		return
	}
	l.frameN.Add(1)
	for _, req := range batch {
		if req.state.CompareAndSwap(timerPending, timerFired) {
			l.call(func() { req.fn(now) })
		}
	}
}

// call runs fn, recovering panics so one failing callback does not take
// down the loop.
func (l *Loop) call(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("callback panicked", zap.Any("panic", r), zap.Stack("stack"))
		}
	}()
	fn()
}

const (
	timerPending int32 = iota
	timerFired
	timerStopped
)

type loopTimer struct {
	timer *time.Timer
	state atomic.Int32
}

func (t *loopTimer) Stop() bool {
	if !t.state.CompareAndSwap(timerPending, timerStopped) {
		return false
	}
	t.timer.Stop()
	return true
}

type frameRequest struct {
	fn    func(time.Time)
	state atomic.Int32
}

func (r *frameRequest) Stop() bool {
	return r.state.CompareAndSwap(timerPending, timerStopped)
}
