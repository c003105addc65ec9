package canvas

import (
	"image"
	"image/draw"
	"sync"

	"github.com/gogpu/gg"
)

// Surface is a Canvas backed by a gg pixel buffer. Drawing happens on the
// run loop; Snapshot may be called from any goroutine.
type Surface struct {
	mu   sync.Mutex
	dc   *gg.Context
	size Size
}

// NewSurface creates a surface with the given initial size.
func NewSurface(size Size) *Surface {
	w, h := backing(size)
	return &Surface{dc: gg.NewContext(w, h), size: size}
}

// SetSize implements Canvas. The logical size is kept verbatim; the pixel
// buffer never shrinks below 1x1.
func (s *Surface) SetSize(size Size) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.size = size
	w, h := backing(size)
	// Resize only fails for non-positive dimensions, which backing rules out.
	_ = s.dc.Resize(w, h)
}

// Size implements Canvas.
func (s *Surface) Size() Size {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.size
}

// Draw runs fn with exclusive access to the drawing context.
func (s *Surface) Draw(fn func(dc *gg.Context)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.dc)
}

// Snapshot copies the current pixels.
func (s *Surface) Snapshot() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()

	src := s.dc.Image()
	dst := image.NewRGBA(src.Bounds())
	draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
	return dst
}

func backing(size Size) (int, int) {
	return max(size.Width, 1), max(size.Height, 1)
}
