package demo

import (
	"context"

	"go.uber.org/zap"

	"github.com/wippyai/canvas-host/canvas"
	"github.com/wippyai/canvas-host/engine"
	"github.com/wippyai/canvas-host/input"
	"github.com/wippyai/canvas-host/internal/synth"
	"github.com/wippyai/canvas-host/resource"
)

// HostModule is the import module name of the forwarding module.
const HostModule = "demo"

// Engine owns the scenes behind engine handles and implements the ABI as
// host functions.
type Engine struct {
	surface *canvas.Surface
	scenes  *resource.Table[*Scene]
	logger  *zap.Logger
}

// New creates an engine drawing every scene to surface.
func New(surface *canvas.Surface, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		surface: surface,
		scenes:  resource.NewTable[*Scene](),
		logger:  logger,
	}
}

// Binary returns the forwarding module that exposes the engine ABI.
func Binary() []byte {
	b := synth.New(HostModule)
	for _, e := range engine.ABI {
		b.Func(e.Name, e.Sig.Params, e.Sig.Results)
	}
	return b.Build()
}

// Load compiles the forwarding module against e.
func (e *Engine) Load(ctx context.Context, opts ...engine.Option) (*engine.Module, error) {
	opts = append(opts, engine.WithImports(HostModule, e.Imports()))
	return engine.Load(ctx, Binary(), opts...)
}

// Scene returns the scene for an engine-side handle.
func (e *Engine) Scene(id uint32) (*Scene, bool) {
	return e.scenes.Get(resource.Handle(id))
}

// Scenes returns the number of live scenes.
func (e *Engine) Scenes() int {
	return e.scenes.Len()
}

// Imports returns the host functions backing the ABI.
func (e *Engine) Imports() map[string]any {
	return map[string]any{
		engine.ExportCreate:        e.create,
		engine.ExportRender:        e.with(func(s *Scene) { s.Render() }),
		engine.ExportUpdate:        e.update,
		engine.ExportResize:        e.resize,
		engine.ExportKeyEvent:      e.keyEvent,
		engine.ExportScrollToLeft:  e.with(func(s *Scene) { s.ScrollToLeft() }),
		engine.ExportScrollToRight: e.with(func(s *Scene) { s.ScrollToRight() }),
		engine.ExportLeave:         e.with(func(s *Scene) { s.Leave() }),
		engine.ExportFree:          e.free,
	}
}

func (e *Engine) create(width, height, fallback uint32) uint32 {
	size := canvas.Size{Width: int(int32(width)), Height: int(int32(height))}
	id, err := e.scenes.Insert(NewScene(e.surface, size, fallback != 0))
	if err != nil {
		e.logger.Warn("create scene", zap.Error(err))
		return 0
	}
	e.logger.Debug("scene created", zap.Uint32("handle", uint32(id)), zap.Stringer("size", size), zap.Bool("fallback", fallback != 0))
	return uint32(id)
}

func (e *Engine) with(fn func(*Scene)) func(uint32) {
	return func(id uint32) {
		if s, ok := e.Scene(id); ok {
			fn(s)
		}
	}
}

func (e *Engine) update(id uint32, tick float64) {
	if s, ok := e.Scene(id); ok {
		s.Update(tick)
	}
}

func (e *Engine) resize(id, width, height uint32) {
	if s, ok := e.Scene(id); ok {
		s.Resize(canvas.Size{Width: int(int32(width)), Height: int(int32(height))})
	}
}

func (e *Engine) keyEvent(id, action, code, mods uint32) {
	if s, ok := e.Scene(id); ok {
		s.KeyEvent(input.Unpack(action, code, mods))
	}
}

func (e *Engine) free(id uint32) {
	if _, ok := e.scenes.Remove(resource.Handle(id)); ok {
		e.logger.Debug("scene freed", zap.Uint32("handle", id))
	}
}
