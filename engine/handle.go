package engine

import (
	"context"

	"github.com/wippyai/canvas-host/canvas"
	"github.com/wippyai/canvas-host/input"
)

// Handle is a live engine instance bound to one canvas.
//
// A handle is owned by exactly one session. Free releases it; every other
// method fails with a closed error afterwards.
type Handle interface {
	Render() error
	Update(ctx context.Context, tick float64) error
	Resize(width, height int) error
	KeyEvent(ev input.KeyEvent) error
	ScrollToLeft() error
	ScrollToRight() error
	Leave() error
	Free(ctx context.Context) error
}

// Factory constructs handles.
//
// Create returns a nil handle with a nil error when the engine reports
// failure without detail; callers treat both as construction failure.
type Factory interface {
	Create(ctx context.Context, c canvas.Canvas, useFallback bool) (Handle, error)
}

// FactoryFunc adapts a function to Factory.
type FactoryFunc func(ctx context.Context, c canvas.Canvas, useFallback bool) (Handle, error)

// Create implements Factory.
func (f FactoryFunc) Create(ctx context.Context, c canvas.Canvas, useFallback bool) (Handle, error) {
	return f(ctx, c, useFallback)
}
