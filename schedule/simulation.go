package schedule

import (
	"context"
	"time"
)

// TargetRate is the default simulation rate in ticks per second.
const TargetRate = 60

// DefaultInterval is the default target interval, 1000/60 ms.
const DefaultInterval = time.Second / TargetRate

// UpdateFunc advances the engine to tick.
type UpdateFunc func(ctx context.Context, tick float64) error

// NextDelay returns the wait before the next tick given how long the
// current one took. It is never negative.
func NextDelay(interval, processing time.Duration) time.Duration {
	if remaining := interval - processing; remaining > 0 {
		return remaining
	}
	return 0
}

// Ticks converts elapsed time into a fractional tick count.
func Ticks(elapsed, interval time.Duration) float64 {
	if interval <= 0 || elapsed <= 0 {
		return 0
	}
	return float64(elapsed) / float64(interval)
}

// Simulation runs update at a fixed target interval.
type Simulation struct {
	clock    Clock
	timers   Timers
	interval time.Duration
	update   UpdateFunc
	before   func() error
	onError  ErrorFunc

	ctx       context.Context
	start     time.Time
	started   bool
	running   bool
	pending   Timer
	lastTick  float64
	lastDelay time.Duration
	next      time.Time
	count     uint64
}

// NewSimulation creates a simulation loop. A non-positive interval selects
// DefaultInterval.
func NewSimulation(clock Clock, timers Timers, interval time.Duration, update UpdateFunc) *Simulation {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Simulation{
		clock:    clock,
		timers:   timers,
		interval: interval,
		update:   update,
	}
}

// BeforeUpdate sets a hook run inside every tick ahead of update. The
// session uses it to sample directional input.
func (s *Simulation) BeforeUpdate(fn func() error) *Simulation {
	s.before = fn
	return s
}

// OnError sets the hook for tick failures. Failures never stop the loop.
func (s *Simulation) OnError(fn ErrorFunc) *Simulation {
	s.onError = fn
	return s
}

// Interval returns the target interval.
func (s *Simulation) Interval() time.Duration {
	return s.interval
}

// Start records the start time and runs the first tick immediately.
func (s *Simulation) Start(ctx context.Context) {
	if s.running {
		return
	}
	s.ctx = ctx
	s.running = true
	s.begin()
	s.run()
}

// Tick runs one tick and returns the delay before the next one. It does not
// schedule anything, so tests can step the loop by hand.
func (s *Simulation) Tick(ctx context.Context) (time.Duration, error) {
	s.begin()

	now := s.clock.Now()
	tick := Ticks(now.Sub(s.start), s.interval)
	if tick < s.lastTick {
		tick = s.lastTick
	}
	s.lastTick = tick
	s.count++

	var err error
	if s.before != nil {
		if berr := s.before(); berr != nil {
			s.report("input", berr)
		}
	}
	if uerr := s.update(ctx, tick); uerr != nil {
		err = uerr
		s.report("update", uerr)
	}

	processing := s.clock.Now().Sub(now)
	s.lastDelay = NextDelay(s.interval, processing)
	return s.lastDelay, err
}

// Stop cancels the pending tick.
func (s *Simulation) Stop() {
	if !s.running {
		return
	}
	s.running = false
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
}

// Running reports whether the loop is started.
func (s *Simulation) Running() bool {
	return s.running
}

// Count returns the number of ticks run.
func (s *Simulation) Count() uint64 {
	return s.count
}

// LastTick returns the tick value passed to the most recent update.
func (s *Simulation) LastTick() float64 {
	return s.lastTick
}

// LastDelay returns the delay computed by the most recent tick.
func (s *Simulation) LastDelay() time.Duration {
	return s.lastDelay
}

// NextFire returns when the pending tick is due. It is the zero time when
// nothing is scheduled.
func (s *Simulation) NextFire() time.Time {
	if s.pending == nil {
		return time.Time{}
	}
	return s.next
}

func (s *Simulation) begin() {
	if s.started {
		return
	}
	s.started = true
	s.start = s.clock.Now()
}

func (s *Simulation) run() {
	if !s.running {
		return
	}
	if s.ctx.Err() != nil {
		s.Stop()
		return
	}
	delay, _ := s.Tick(s.ctx)
	if !s.running {
		return
	}
	s.next = s.clock.Now().Add(delay)
	s.pending = s.timers.AfterFunc(delay, s.run)
}

func (s *Simulation) report(op string, err error) {
	if s.onError != nil {
		s.onError(op, err)
	}
}
