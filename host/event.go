package host

import (
	"github.com/wippyai/canvas-host/canvas"
	"github.com/wippyai/canvas-host/input"
)

// EventType identifies a host event stream.
type EventType uint8

const (
	EventResize EventType = iota + 1
	EventKeyDown
	EventKeyUp
	EventVisibilityChange
	EventBlur
	EventMouseDown
	EventMouseUp
	EventMouseLeave
	EventTouchStart
	EventTouchEnd
)

var eventNames = map[EventType]string{
	EventResize:           "resize",
	EventKeyDown:          "keydown",
	EventKeyUp:            "keyup",
	EventVisibilityChange: "visibilitychange",
	EventBlur:             "blur",
	EventMouseDown:        "mousedown",
	EventMouseUp:          "mouseup",
	EventMouseLeave:       "mouseleave",
	EventTouchStart:       "touchstart",
	EventTouchEnd:         "touchend",
}

func (t EventType) String() string {
	if n, ok := eventNames[t]; ok {
		return n
	}
	return "unknown"
}

// Event is a host notification. Only the field matching Type is set.
type Event struct {
	Key     input.KeyEvent
	Pointer input.PointerEvent
	Size    canvas.Size
	Type    EventType
	Hidden  bool
}

// KeyEvent builds a keydown/keyup event.
func KeyEvent(ev input.KeyEvent) Event {
	t := EventKeyDown
	if ev.Action == input.KeyUp {
		t = EventKeyUp
	}
	return Event{Type: t, Key: ev}
}

// PointerEvent builds a press/release event on a control region.
func PointerEvent(ev input.PointerEvent) Event {
	var t EventType
	switch ev.Type {
	case input.MouseDown:
		t = EventMouseDown
	case input.MouseUp:
		t = EventMouseUp
	case input.MouseLeave:
		t = EventMouseLeave
	case input.TouchStart:
		t = EventTouchStart
	case input.TouchEnd:
		t = EventTouchEnd
	}
	return Event{Type: t, Pointer: ev}
}

// Hidden builds a visibility-loss event.
func Hidden() Event {
	return Event{Type: EventVisibilityChange, Hidden: true}
}

// Visible builds a visibility-regained event.
func Visible() Event {
	return Event{Type: EventVisibilityChange}
}

// Blur builds a focus-loss event.
func Blur() Event {
	return Event{Type: EventBlur}
}

// Listener handles one host event.
type Listener func(Event)

// listeners is the per-type subscriber registry shared by Loop and Virtual.
type listeners struct {
	next   uint64
	byType map[EventType][]subscription
}

type subscription struct {
	fn Listener
	id uint64
}

func (l *listeners) add(t EventType, fn Listener) uint64 {
	if l.byType == nil {
		l.byType = make(map[EventType][]subscription)
	}
	l.next++
	l.byType[t] = append(l.byType[t], subscription{id: l.next, fn: fn})
	return l.next
}

func (l *listeners) remove(t EventType, id uint64) {
	subs := l.byType[t]
	for i, s := range subs {
		if s.id == id {
			l.byType[t] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

func (l *listeners) snapshot(t EventType) []Listener {
	subs := l.byType[t]
	out := make([]Listener, len(subs))
	for i, s := range subs {
		out[i] = s.fn
	}
	return out
}

func (l *listeners) count() int {
	n := 0
	for _, subs := range l.byType {
		n += len(subs)
	}
	return n
}
