package canvas

import (
	"errors"
	"testing"

	"github.com/gogpu/gg"
)

type fakeWindow struct {
	size Size
}

func (w *fakeWindow) InnerSize() Size { return w.size }

type fakeCanvas struct {
	size Size
	sets int
}

func (c *fakeCanvas) SetSize(s Size) { c.size = s; c.sets++ }
func (c *fakeCanvas) Size() Size     { return c.size }

type recordingResizer struct {
	calls []Size
	err   error
}

func (r *recordingResizer) Resize(w, h int) error {
	r.calls = append(r.calls, Size{w, h})
	return r.err
}

func TestManager_FitWithoutHandle(t *testing.T) {
	win := &fakeWindow{size: Size{800, 600}}
	cv := &fakeCanvas{}
	m := NewManager(win, cv)

	size, err := m.Fit(nil)
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	if size != (Size{800, 600}) || cv.size != size {
		t.Fatalf("canvas = %v, returned %v, want 800x600", cv.size, size)
	}
}

func TestManager_FitForwardsEveryResize(t *testing.T) {
	win := &fakeWindow{size: Size{640, 480}}
	cv := &fakeCanvas{}
	m := NewManager(win, cv)
	r := &recordingResizer{}

	sizes := []Size{{640, 480}, {1024, 768}, {1, 1}, {1920, 1080}}
	for _, s := range sizes {
		win.size = s
		if _, err := m.Fit(r); err != nil {
			t.Fatalf("Fit: %v", err)
		}
		if cv.size != s {
			t.Errorf("canvas = %v, want %v", cv.size, s)
		}
		if last := r.calls[len(r.calls)-1]; last != s {
			t.Errorf("forwarded %v, want %v", last, s)
		}
	}
	if len(r.calls) != len(sizes) {
		t.Fatalf("forwarded %d times, want %d", len(r.calls), len(sizes))
	}
}

func TestManager_FitIsIdempotent(t *testing.T) {
	win := &fakeWindow{size: Size{300, 200}}
	cv := &fakeCanvas{}
	m := NewManager(win, cv)
	r := &recordingResizer{}

	for i := 0; i < 3; i++ {
		m.Fit(r)
	}
	if len(r.calls) != 1 {
		t.Fatalf("unchanged window forwarded %d times, want 1", len(r.calls))
	}
	if cv.sets != 1 {
		t.Fatalf("canvas resized %d times, want 1", cv.sets)
	}
}

func TestManager_FitAfterConstruction(t *testing.T) {
	win := &fakeWindow{size: Size{300, 200}}
	cv := &fakeCanvas{}
	m := NewManager(win, cv)

	// Sized before the handle exists, then the window drifts during construction.
	m.Fit(nil)
	win.size = Size{310, 205}

	r := &recordingResizer{}
	m.Fit(r)
	if len(r.calls) != 1 || r.calls[0] != (Size{310, 205}) {
		t.Fatalf("post-construction fit forwarded %v, want [310x205]", r.calls)
	}

	// A new handle receives the size after Reset even if the window did not change.
	r2 := &recordingResizer{}
	m.Reset()
	m.Fit(r2)
	if len(r2.calls) != 1 {
		t.Fatalf("new resizer forwarded %d times, want 1", len(r2.calls))
	}
}

// valueResizer is a non-comparable value type.
type valueResizer struct {
	seen *[]Size
	tags []string
}

func (r valueResizer) Resize(w, h int) error {
	*r.seen = append(*r.seen, Size{w, h})
	return nil
}

func TestManager_FitValueResizer(t *testing.T) {
	win := &fakeWindow{size: Size{40, 30}}
	m := NewManager(win, &fakeCanvas{})
	var seen []Size
	r := valueResizer{seen: &seen, tags: []string{"engine"}}

	for i := 0; i < 2; i++ {
		if _, err := m.Fit(r); err != nil {
			t.Fatalf("Fit: %v", err)
		}
	}
	win.size = Size{50, 30}
	if _, err := m.Fit(r); err != nil {
		t.Fatalf("Fit: %v", err)
	}
	if len(seen) != 2 || seen[1] != (Size{50, 30}) {
		t.Fatalf("forwarded %v, want [40x30 50x30]", seen)
	}
}

func TestManager_FitResizeErrorRetries(t *testing.T) {
	win := &fakeWindow{size: Size{10, 10}}
	m := NewManager(win, &fakeCanvas{})
	r := &recordingResizer{err: errors.New("trap")}

	if _, err := m.Fit(r); err == nil {
		t.Fatal("expected resize error")
	}
	r.err = nil
	m.Fit(r)
	if len(r.calls) != 2 {
		t.Fatalf("failed forward should be retried on next fit, calls = %d", len(r.calls))
	}
}

func TestSurface_Resize(t *testing.T) {
	s := NewSurface(Size{4, 3})
	if got := s.Snapshot().Bounds().Size(); got.X != 4 || got.Y != 3 {
		t.Fatalf("snapshot = %v, want 4x3", got)
	}

	s.SetSize(Size{8, 2})
	if s.Size() != (Size{8, 2}) {
		t.Fatalf("Size() = %v", s.Size())
	}
	if got := s.Snapshot().Bounds().Size(); got.X != 8 || got.Y != 2 {
		t.Fatalf("snapshot = %v, want 8x2", got)
	}
}

func TestSurface_ZeroSize(t *testing.T) {
	s := NewSurface(Size{0, 0})
	s.SetSize(Size{0, 5})
	if s.Size() != (Size{0, 5}) {
		t.Fatalf("logical size = %v, want 0x5", s.Size())
	}
	if got := s.Snapshot().Bounds().Size(); got.X != 1 || got.Y != 5 {
		t.Fatalf("backing = %v, want 1x5", got)
	}
}

func TestSurface_Draw(t *testing.T) {
	s := NewSurface(Size{2, 2})
	s.Draw(func(dc *gg.Context) {
		dc.ClearWithColor(gg.RGB(1, 0, 0))
	})

	r, g, b, a := s.Snapshot().At(1, 1).RGBA()
	if r>>8 != 0xff || g != 0 || b != 0 || a>>8 != 0xff {
		t.Fatalf("pixel = %d,%d,%d,%d, want opaque red", r>>8, g>>8, b>>8, a>>8)
	}
}
