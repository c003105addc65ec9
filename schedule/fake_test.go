package schedule

import (
	"time"
)

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(0, 0)}
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type fakeTimer struct {
	fn      func()
	delay   time.Duration
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// fakeTimers queues callbacks; the test decides when they run.
type fakeTimers struct {
	queue []*fakeTimer
}

func (f *fakeTimers) AfterFunc(d time.Duration, fn func()) Timer {
	t := &fakeTimer{fn: fn, delay: d}
	f.queue = append(f.queue, t)
	return t
}

// RunNext fires the oldest live timer and returns its delay.
func (f *fakeTimers) RunNext() (time.Duration, bool) {
	for len(f.queue) > 0 {
		t := f.queue[0]
		f.queue = f.queue[1:]
		if t.stopped {
			continue
		}
		t.fired = true
		t.fn()
		return t.delay, true
	}
	return 0, false
}

type fakeFrames struct {
	pending []*fakeFrame
}

type fakeFrame struct {
	fn      func(time.Time)
	stopped bool
}

func (f *fakeFrame) Stop() bool {
	if f.stopped {
		return false
	}
	f.stopped = true
	return true
}

func (f *fakeFrames) RequestFrame(fn func(time.Time)) Timer {
	fr := &fakeFrame{fn: fn}
	f.pending = append(f.pending, fr)
	return fr
}

// Frame runs every callback requested before this frame began.
func (f *fakeFrames) Frame(now time.Time) int {
	batch := f.pending
	f.pending = nil
	ran := 0
	for _, fr := range batch {
		if fr.stopped {
			continue
		}
		fr.stopped = true
		fr.fn(now)
		ran++
	}
	return ran
}
