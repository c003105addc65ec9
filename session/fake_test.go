package session

import (
	"context"

	"github.com/wippyai/canvas-host/canvas"
	"github.com/wippyai/canvas-host/engine"
	"github.com/wippyai/canvas-host/input"
)

// fakeHandle records every call the session makes.
type fakeHandle struct {
	onUpdate  func(tick float64)
	renderErr error
	calls     []string
	resizes   []canvas.Size
	ticks     []float64
	keys      []input.KeyEvent
	renders   int
	left      int
	right     int
	leaves    int
	frees     int
}

func (h *fakeHandle) Render() error {
	h.renders++
	return h.renderErr
}

func (h *fakeHandle) Update(_ context.Context, tick float64) error {
	h.calls = append(h.calls, "update")
	h.ticks = append(h.ticks, tick)
	if h.onUpdate != nil {
		h.onUpdate(tick)
	}
	return nil
}

func (h *fakeHandle) Resize(w, hgt int) error {
	h.resizes = append(h.resizes, canvas.Size{Width: w, Height: hgt})
	return nil
}

func (h *fakeHandle) KeyEvent(ev input.KeyEvent) error {
	h.keys = append(h.keys, ev)
	return nil
}

func (h *fakeHandle) ScrollToLeft() error {
	h.calls = append(h.calls, "left")
	h.left++
	return nil
}

func (h *fakeHandle) ScrollToRight() error {
	h.calls = append(h.calls, "right")
	h.right++
	return nil
}

func (h *fakeHandle) Leave() error {
	h.leaves++
	return nil
}

func (h *fakeHandle) Free(context.Context) error {
	h.frees++
	return nil
}

// fakeFactory hands out one prepared handle, or nothing.
type fakeFactory struct {
	handle      *fakeHandle
	err         error
	sizeAtStart canvas.Size
	calls       int
	useFallback bool
}

func (f *fakeFactory) Create(_ context.Context, c canvas.Canvas, useFallback bool) (engine.Handle, error) {
	f.calls++
	f.useFallback = useFallback
	f.sizeAtStart = c.Size()
	if f.err != nil || f.handle == nil {
		return nil, f.err
	}
	return f.handle, nil
}
