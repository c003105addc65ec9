package input

// Direction names a control region.
type Direction uint8

const (
	DirNone Direction = iota
	DirLeft
	DirRight
)

func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "none"
	}
}

// PointerType is the kind of press/hold gesture.
type PointerType uint8

const (
	MouseDown PointerType = iota + 1
	MouseUp
	MouseLeave
	TouchStart
	TouchEnd
)

func (t PointerType) String() string {
	switch t {
	case MouseDown:
		return "mousedown"
	case MouseUp:
		return "mouseup"
	case MouseLeave:
		return "mouseleave"
	case TouchStart:
		return "touchstart"
	case TouchEnd:
		return "touchend"
	default:
		return "unknown"
	}
}

// Pressed reports whether the gesture starts a hold.
func (t PointerType) Pressed() bool {
	return t == MouseDown || t == TouchStart
}

// PointerEvent is a press or release on a control region.
type PointerEvent struct {
	Type   PointerType
	Target Direction
}

// Region is a rectangular control area in canvas coordinates.
type Region struct {
	Direction Direction
	X, Y      int
	Width     int
	Height    int
}

// Contains reports whether (x, y) lies inside r.
func (r Region) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Layout is an ordered set of control regions.
type Layout []Region

// HitTest returns the direction of the first region containing (x, y).
func (l Layout) HitTest(x, y int) Direction {
	for _, r := range l {
		if r.Contains(x, y) {
			return r.Direction
		}
	}
	return DirNone
}

// State is the persistent directional intent. Both flags may be set.
type State struct {
	Left  bool
	Right bool
}

// Active reports whether any direction is held.
func (s State) Active() bool {
	return s.Left || s.Right
}
