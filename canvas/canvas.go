// Package canvas keeps the drawing surface sized to the host window.
package canvas

import "fmt"

// Size is a viewport measurement in pixels.
type Size struct {
	Width  int
	Height int
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Window reports the host's current inner dimensions.
type Window interface {
	InnerSize() Size
}

// Canvas is the drawing surface handed to the engine.
type Canvas interface {
	SetSize(Size)
	Size() Size
}

// Resizer receives the new viewport size. engine.Handle satisfies it.
type Resizer interface {
	Resize(width, height int) error
}

// Manager fits a canvas to a window and forwards the size to the engine.
type Manager struct {
	window Window
	canvas Canvas

	forwarded bool
	sentFor   Size
}

// NewManager creates a manager for canvas within window.
func NewManager(window Window, canvas Canvas) *Manager {
	return &Manager{window: window, canvas: canvas}
}

// Fit sizes the canvas to the current window measurement and, when r is
// non-nil, forwards the same dimensions to it. A size already forwarded is
// not forwarded again until Reset.
func (m *Manager) Fit(r Resizer) (Size, error) {
	size := m.window.InnerSize()
	if m.canvas.Size() != size {
		m.canvas.SetSize(size)
	}

	if r == nil {
		return size, nil
	}
	if m.forwarded && m.sentFor == size {
		return size, nil
	}
	if err := r.Resize(size.Width, size.Height); err != nil {
		return size, err
	}
	m.forwarded, m.sentFor = true, size
	return size, nil
}

// Reset forgets the last forwarded size. Call it when the resizer changes.
func (m *Manager) Reset() {
	m.forwarded = false
	m.sentFor = Size{}
}

// Size returns the canvas size last applied by Fit.
func (m *Manager) Size() Size {
	return m.canvas.Size()
}
