package main

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wippyai/canvas-host/input"
)

// keyNames maps terminal keys to DOM key names.
var keyNames = map[tea.KeyType]string{
	tea.KeyLeft:      "ArrowLeft",
	tea.KeyRight:     "ArrowRight",
	tea.KeyUp:        "ArrowUp",
	tea.KeyDown:      "ArrowDown",
	tea.KeyEnter:     "Enter",
	tea.KeyEsc:       "Escape",
	tea.KeySpace:     " ",
	tea.KeyTab:       "Tab",
	tea.KeyBackspace: "Backspace",
	tea.KeyDelete:    "Delete",
	tea.KeyHome:      "Home",
	tea.KeyEnd:       "End",
	tea.KeyPgUp:      "PageUp",
	tea.KeyPgDown:    "PageDown",
}

// modified maps terminal keys that carry a modifier.
var modified = map[tea.KeyType]struct {
	key  string
	mods input.Modifiers
}{
	tea.KeyShiftLeft:  {"ArrowLeft", input.ModShift},
	tea.KeyShiftRight: {"ArrowRight", input.ModShift},
	tea.KeyShiftUp:    {"ArrowUp", input.ModShift},
	tea.KeyShiftDown:  {"ArrowDown", input.ModShift},
	tea.KeyCtrlLeft:   {"ArrowLeft", input.ModCtrl},
	tea.KeyCtrlRight:  {"ArrowRight", input.ModCtrl},
	tea.KeyCtrlUp:     {"ArrowUp", input.ModCtrl},
	tea.KeyCtrlDown:   {"ArrowDown", input.ModCtrl},
}

// keyTap converts a terminal key press into the press and release a
// keyboard would report. Terminals deliver no key-up, so each press is a
// tap. It reports false for keys with no DOM equivalent.
func keyTap(msg tea.KeyMsg) ([]input.KeyEvent, bool) {
	var (
		name string
		mods input.Modifiers
	)
	switch {
	case msg.Type == tea.KeyRunes && len(msg.Runes) == 1:
		name = string(msg.Runes)
	case keyNames[msg.Type] != "":
		name = keyNames[msg.Type]
	default:
		m, ok := modified[msg.Type]
		if !ok {
			return nil, false
		}
		name, mods = m.key, m.mods
	}
	if msg.Alt {
		mods |= input.ModAlt
	}

	down := input.NewKeyEvent(input.KeyDown, name, mods)
	up := input.NewKeyEvent(input.KeyUp, name, mods)
	return []input.KeyEvent{down, up}, true
}
