package demo

import (
	"math"
	"math/rand/v2"

	"github.com/gogpu/gg"

	"github.com/wippyai/canvas-host/canvas"
	"github.com/wippyai/canvas-host/input"
)

const (
	// OrbitStep is the camera rotation per scroll call or per tick of a
	// held arrow key, in radians.
	OrbitStep = math.Pi / 90
	// ZoomStep is the distance change per tick of a held zoom key.
	ZoomStep = 0.02

	minDistance = 0.5
	maxDistance = 3.0
	starCount   = 200
	earthPeriod = 600 // ticks per orbit
)

type star struct {
	x, y, size float64
}

// Scene is the state behind one engine handle.
type Scene struct {
	surface  *canvas.Surface
	keys     *input.KeyMap
	stars    []star
	size     canvas.Size
	angle    float64
	distance float64
	tick     float64
	fallback bool
	renders  int
	updates  int
}

// NewScene creates a scene drawing to surface. The fallback backend draws
// no star field.
func NewScene(surface *canvas.Surface, size canvas.Size, fallback bool) *Scene {
	s := &Scene{
		surface:  surface,
		keys:     input.NewKeyMap(),
		size:     size,
		distance: 1,
		fallback: fallback,
	}
	if !fallback {
		rng := rand.New(rand.NewPCG(1, 2))
		s.stars = make([]star, starCount)
		for i := range s.stars {
			s.stars[i] = star{x: rng.Float64(), y: rng.Float64(), size: 0.5 + rng.Float64()}
		}
	}
	return s
}

// KeyEvent records a key transition.
func (s *Scene) KeyEvent(ev input.KeyEvent) {
	s.keys.Handle(ev)
}

// Update applies held keys and advances key states.
func (s *Scene) Update(tick float64) {
	s.tick = tick
	s.updates++

	if s.held("ArrowLeft", "A") {
		s.angle -= OrbitStep
	}
	if s.held("ArrowRight", "D") {
		s.angle += OrbitStep
	}
	if s.held("ArrowUp", "W") {
		s.distance = max(s.distance-ZoomStep, minDistance)
	}
	if s.held("ArrowDown", "S") {
		s.distance = min(s.distance+ZoomStep, maxDistance)
	}
	s.keys.Step()
}

func (s *Scene) held(keys ...string) bool {
	for _, k := range keys {
		if s.keys.Pressing(k) {
			return true
		}
	}
	return false
}

// Resize records the new drawing size.
func (s *Scene) Resize(size canvas.Size) {
	s.size = size
}

// ScrollToLeft rotates the camera one step left.
func (s *Scene) ScrollToLeft() {
	s.angle -= OrbitStep
}

// ScrollToRight rotates the camera one step right.
func (s *Scene) ScrollToRight() {
	s.angle += OrbitStep
}

// Leave releases every held key.
func (s *Scene) Leave() {
	s.keys.Purge()
}

// Angle returns the camera orbit angle in radians.
func (s *Scene) Angle() float64 {
	return s.angle
}

// Distance returns the camera distance factor.
func (s *Scene) Distance() float64 {
	return s.distance
}

// Stars returns the number of stars drawn per frame.
func (s *Scene) Stars() int {
	return len(s.stars)
}

// Render draws one frame.
func (s *Scene) Render() {
	s.renders++
	w, h := float64(s.size.Width), float64(s.size.Height)
	if w <= 0 || h <= 0 {
		return
	}

	s.surface.Draw(func(dc *gg.Context) {
		dc.ClearWithColor(gg.RGB(0.01, 0.01, 0.05))

		for _, st := range s.stars {
			x := math.Mod(st.x*w-s.angle*w/(2*math.Pi)+w*4, w)
			dc.SetRGB(0.9, 0.9, 1)
			dc.DrawCircle(x, st.y*h, st.size)
			_ = dc.Fill()
		}

		cx, cy := w/2, h/2
		scale := min(w, h) / (4 * s.distance)

		sun := gg.NewRadialGradientBrush(cx, cy, 0, scale*0.6).
			AddColorStop(0, gg.RGB(1, 0.95, 0.7)).
			AddColorStop(1, gg.RGB(1, 0.55, 0.1))
		dc.SetFillBrush(sun)
		dc.DrawCircle(cx, cy, scale*0.6)
		_ = dc.Fill()

		// Orbit in the camera plane; the camera angle shifts the phase.
		phase := 2*math.Pi*s.tick/earthPeriod - s.angle
		ex := cx + math.Cos(phase)*scale*1.6
		ey := cy + math.Sin(phase)*scale*0.5
		dc.SetRGB(0.2, 0.45, 0.95)
		dc.DrawCircle(ex, ey, scale*0.2)
		_ = dc.Fill()
	})
}
