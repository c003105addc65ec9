package session

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/wippyai/canvas-host/canvas"
	"github.com/wippyai/canvas-host/capability"
	"github.com/wippyai/canvas-host/engine"
	"github.com/wippyai/canvas-host/errors"
	"github.com/wippyai/canvas-host/host"
	"github.com/wippyai/canvas-host/input"
	"github.com/wippyai/canvas-host/schedule"
)

// Host is the run loop surface a session needs. host.Loop and host.Virtual
// both satisfy it.
type Host interface {
	schedule.Clock
	schedule.Timers
	schedule.Frames
	canvas.Window
	Listen(t host.EventType, fn host.Listener) func()
}

var pointerEvents = []host.EventType{
	host.EventMouseDown,
	host.EventMouseUp,
	host.EventMouseLeave,
	host.EventTouchStart,
	host.EventTouchEnd,
}

// Stats is a point-in-time view of a session.
type Stats struct {
	Size      canvas.Size
	Input     input.State
	LastDelay time.Duration
	LastTick  float64
	Frames    uint64
	Ticks     uint64
	Keys      uint64
	Leaves    uint64
	Errors    uint64
	Backend   capability.Backend
	State     State
}

// Session is one engine handle driven by one host.
type Session struct {
	host     Host
	canvas   canvas.Canvas
	manager  *canvas.Manager
	handle   engine.Handle
	router   *input.Router
	render   *schedule.Render
	sim      *schedule.Simulation
	guard    *visibilityGuard
	logger   *zap.Logger
	onError  schedule.ErrorFunc
	unlisten []func()
	interval time.Duration
	backend  capability.Backend
	errs     uint64

	mu    sync.Mutex
	state State
	stats Stats
}

// Initialize probes the backend, constructs a handle through factory and,
// on success, starts the session.
//
// When construction yields no handle the session is returned in
// StateAborted together with a construction error. Nothing is registered
// with the host in that case; surfacing the failure is up to the caller.
func Initialize(ctx context.Context, h Host, c canvas.Canvas, probe capability.Query, factory engine.Factory, opts ...Option) (*Session, error) {
	switch {
	case h == nil:
		return nil, errors.NotInitialized(errors.PhaseConstruct, "host")
	case c == nil:
		return nil, errors.NotInitialized(errors.PhaseConstruct, "canvas")
	case probe == nil:
		return nil, errors.NotInitialized(errors.PhaseConstruct, "capability probe")
	case factory == nil:
		return nil, errors.NotInitialized(errors.PhaseConstruct, "engine factory")
	}

	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = Logger()
	}

	s := &Session{
		host:     h,
		canvas:   c,
		manager:  canvas.NewManager(h, c),
		logger:   cfg.logger,
		onError:  cfg.onError,
		interval: cfg.interval,
	}

	s.setState(StateProbing)
	s.backend = probe.Backend()

	// The engine reads the canvas size at construction time.
	_, _ = s.manager.Fit(nil)

	s.setState(StateConstructing)
	handle, err := factory.Create(ctx, c, s.backend.UseFallback())
	if err != nil || handle == nil {
		s.setState(StateAborted)
		s.logger.Warn("engine construction failed",
			zap.Stringer("backend", s.backend),
			zap.Stringer("size", c.Size()),
			zap.Error(err))
		return s, errors.Construction(err)
	}

	s.handle = handle
	s.setState(StateReady)
	s.start(ctx)

	s.logger.Info("session ready",
		zap.Stringer("backend", s.backend),
		zap.Int("width", s.manager.Size().Width),
		zap.Int("height", s.manager.Size().Height),
		zap.Duration("interval", s.sim.Interval()))
	return s, nil
}

func (s *Session) start(ctx context.Context) {
	s.router = input.NewRouter(s.handle)
	s.guard = &visibilityGuard{leave: s.handle.Leave, router: s.router, report: s.report}

	s.manager.Reset()
	s.fit()

	s.render = schedule.NewRender(s.host, s.renderFrame).OnError(s.report)
	s.sim = schedule.NewSimulation(s.host, s.host, s.interval, s.update).
		BeforeUpdate(s.router.Apply).
		OnError(s.report)

	s.listen(host.EventResize, func(host.Event) { s.fit() })
	s.listen(host.EventKeyDown, s.key)
	s.listen(host.EventKeyUp, s.key)
	for _, t := range pointerEvents {
		s.listen(t, func(ev host.Event) {
			s.router.HandlePointer(ev.Pointer)
			s.publish()
		})
	}
	s.listen(host.EventBlur, s.visibility)
	s.listen(host.EventVisibilityChange, s.visibility)

	s.render.Start()
	s.sim.Start(ctx)
}

func (s *Session) listen(t host.EventType, fn host.Listener) {
	s.unlisten = append(s.unlisten, s.host.Listen(t, fn))
}

func (s *Session) fit() {
	if _, err := s.manager.Fit(s.handle); err != nil {
		s.report("resize", err)
	}
	s.publish()
}

func (s *Session) key(ev host.Event) {
	if err := s.router.HandleKey(ev.Key); err != nil {
		s.report("key_event", err)
	}
	s.publish()
}

func (s *Session) visibility(ev host.Event) {
	s.guard.handle(ev)
	s.publish()
}

func (s *Session) renderFrame() error {
	err := s.handle.Render()
	s.publish()
	return err
}

func (s *Session) update(ctx context.Context, tick float64) error {
	err := s.handle.Update(ctx, tick)
	s.publish()
	return err
}

func (s *Session) report(op string, err error) {
	s.errs++
	s.logger.Warn("engine call failed", zap.String("op", op), zap.Error(err))
	if s.onError != nil {
		s.onError(op, err)
	}
	s.publish()
}

// Stop halts the render and simulation loops. Listeners stay registered
// and the handle stays live.
func (s *Session) Stop() {
	if s.render != nil {
		s.render.Stop()
	}
	if s.sim != nil {
		s.sim.Stop()
	}
}

// Close stops the loops, removes every listener and frees the handle. It
// is safe to call more than once; only the first call frees.
func (s *Session) Close(ctx context.Context) error {
	if s.State() == StateClosed {
		return nil
	}
	s.Stop()
	for _, fn := range s.unlisten {
		fn()
	}
	s.unlisten = nil

	var err error
	if s.handle != nil {
		err = s.handle.Free(ctx)
		s.handle = nil
	}
	s.setState(StateClosed)
	st := s.Stats()
	s.logger.Info("session closed", zap.Uint64("frames", st.Frames), zap.Uint64("ticks", st.Ticks))
	return err
}

// State returns the construction state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Backend returns the backend chosen by the probe.
func (s *Session) Backend() capability.Backend {
	return s.backend
}

// Handle returns the live handle, or nil when aborted or closed.
func (s *Session) Handle() engine.Handle {
	return s.handle
}

// Simulation returns the simulation loop, or nil when not ready.
func (s *Session) Simulation() *schedule.Simulation {
	return s.sim
}

// Render returns the render loop, or nil when not ready.
func (s *Session) Render() *schedule.Render {
	return s.render
}

// Input returns the current directional intent.
func (s *Session) Input() input.State {
	if s.router == nil {
		return input.State{}
	}
	return s.router.State()
}

// Stats returns the most recently published counters. Safe for concurrent
// use.
func (s *Session) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.stats
	st.State = s.state
	st.Backend = s.backend
	return st
}

func (s *Session) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
	s.logger.Debug("session state", zap.Stringer("state", st))
}

func (s *Session) publish() {
	st := Stats{
		Size:   s.manager.Size(),
		Errors: s.errs,
	}
	if s.router != nil {
		st.Input = s.router.State()
		st.Keys = s.router.Forwarded()
	}
	if s.guard != nil {
		st.Leaves = s.guard.leaves
	}
	if s.render != nil {
		st.Frames = s.render.Frames()
	}
	if s.sim != nil {
		st.Ticks = s.sim.Count()
		st.LastTick = s.sim.LastTick()
		st.LastDelay = s.sim.LastDelay()
	}

	s.mu.Lock()
	s.stats = st
	s.mu.Unlock()
}
