package input

import (
	"strconv"
	"strings"
)

// KeyAction distinguishes press from release.
type KeyAction uint8

const (
	KeyDown KeyAction = iota + 1
	KeyUp
)

func (a KeyAction) String() string {
	switch a {
	case KeyDown:
		return "keydown"
	case KeyUp:
		return "keyup"
	default:
		return "unknown"
	}
}

// Modifiers is a bit set of held modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// KeyEvent is a raw keyboard event as delivered by the host.
type KeyEvent struct {
	Key       string
	Code      uint32
	Action    KeyAction
	Modifiers Modifiers
	Repeat    bool
}

// NewKeyEvent builds an event for a DOM key name, filling Code from KeyCode.
func NewKeyEvent(action KeyAction, key string, mods Modifiers) KeyEvent {
	return KeyEvent{
		Key:       key,
		Code:      KeyCode(key),
		Action:    action,
		Modifiers: mods,
	}
}

// Key codes follow the legacy DOM keyCode numbering so engines built
// against browser hosts can reuse their tables.
var keyCodes = map[string]uint32{
	"Backspace":  8,
	"Tab":        9,
	"Enter":      13,
	"Shift":      16,
	"Control":    17,
	"Alt":        18,
	"Escape":     27,
	" ":          32,
	"PageUp":     33,
	"PageDown":   34,
	"End":        35,
	"Home":       36,
	"ArrowLeft":  37,
	"ArrowUp":    38,
	"ArrowRight": 39,
	"ArrowDown":  40,
	"Delete":     46,
}

// KeyCode returns the numeric code for a DOM key name, or 0 if unknown.
// Single letters and digits map to their upper-case ASCII value.
func KeyCode(key string) uint32 {
	if c, ok := keyCodes[key]; ok {
		return c
	}
	if len(key) == 1 {
		ch := strings.ToUpper(key)[0]
		if (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') {
			return uint32(ch)
		}
	}
	if len(key) >= 2 && key[0] == 'F' {
		n := 0
		for _, r := range key[1:] {
			if r < '0' || r > '9' {
				return 0
			}
			n = n*10 + int(r-'0')
		}
		if n >= 1 && n <= 12 {
			return uint32(111 + n)
		}
	}
	return 0
}

// KeyName returns the DOM key name for a code produced by KeyCode. Letters
// come back upper-case; unknown codes yield "".
func KeyName(code uint32) string {
	for name, c := range keyCodes {
		if c == code {
			return name
		}
	}
	switch {
	case code >= 'A' && code <= 'Z', code >= '0' && code <= '9':
		return string(rune(code))
	case code >= 112 && code <= 123:
		return "F" + strconv.Itoa(int(code-111))
	}
	return ""
}

// ModRepeat marks an auto-repeat in the packed modifier word.
const ModRepeat uint32 = 1 << 7

// Pack encodes modifiers and the repeat flag into one word.
func (e KeyEvent) Pack() uint32 {
	m := uint32(e.Modifiers)
	if e.Repeat {
		m |= ModRepeat
	}
	return m
}

// Unpack rebuilds a key event from its binary form.
func Unpack(action, code, mods uint32) KeyEvent {
	return KeyEvent{
		Key:       KeyName(code),
		Code:      code,
		Action:    KeyAction(action),
		Modifiers: Modifiers(mods &^ ModRepeat),
		Repeat:    mods&ModRepeat != 0,
	}
}
