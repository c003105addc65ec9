package engine

import (
	"context"

	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/canvas-host/errors"
	"github.com/wippyai/canvas-host/input"
	"github.com/wippyai/canvas-host/resource"
)

// wasmHandle drives one engine-side object through the module exports.
type wasmHandle struct {
	module *Module
	ctx    context.Context
	id     uint32
	key    resource.Handle
	freed  bool
}

func (h *wasmHandle) call(ctx context.Context, name string, params ...uint64) error {
	if h.freed {
		return errors.Closed(errors.PhaseEngine, "engine handle")
	}
	stack := append([]uint64{api.EncodeU32(h.id)}, params...)
	if _, err := h.module.exports[name].Call(ctx, stack...); err != nil {
		return errors.EngineCall(name, err)
	}
	return nil
}

func (h *wasmHandle) Render() error {
	return h.call(h.ctx, ExportRender)
}

func (h *wasmHandle) Update(ctx context.Context, tick float64) error {
	return h.call(ctx, ExportUpdate, api.EncodeF64(tick))
}

func (h *wasmHandle) Resize(width, height int) error {
	return h.call(h.ctx, ExportResize, api.EncodeI32(int32(width)), api.EncodeI32(int32(height)))
}

func (h *wasmHandle) KeyEvent(ev input.KeyEvent) error {
	return h.call(h.ctx, ExportKeyEvent,
		api.EncodeU32(uint32(ev.Action)),
		api.EncodeU32(ev.Code),
		api.EncodeU32(ev.Pack()))
}

func (h *wasmHandle) ScrollToLeft() error {
	return h.call(h.ctx, ExportScrollToLeft)
}

func (h *wasmHandle) ScrollToRight() error {
	return h.call(h.ctx, ExportScrollToRight)
}

func (h *wasmHandle) Leave() error {
	return h.call(h.ctx, ExportLeave)
}

// Free releases the engine object. A second call reports a closed error.
func (h *wasmHandle) Free(ctx context.Context) error {
	if h.freed {
		return errors.Closed(errors.PhaseEngine, "engine handle")
	}
	err := h.call(ctx, ExportFree)
	h.freed = true
	h.module.handles.Remove(h.key)
	return err
}
