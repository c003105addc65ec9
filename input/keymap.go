package input

// KeyState is the per-key state tracked by a KeyMap.
type KeyState uint8

const (
	KeyPress KeyState = iota + 1
	KeyKept
	KeyRelease
	// KeyTap is a key released before any Step saw it pressed.
	KeyTap
)

// Pressing reports whether the key counts as held for the current step.
func (s KeyState) Pressing() bool {
	return s == KeyPress || s == KeyKept || s == KeyTap
}

// KeyMap tracks held keys for engines that consume key events directly.
// A key moves Press -> Kept on the first Step after it goes down and is
// forgotten on the Step after its release. A key that goes down and up
// between two Steps is held for exactly one step.
type KeyMap struct {
	states map[string]KeyState
}

// NewKeyMap creates an empty key map.
func NewKeyMap() *KeyMap {
	return &KeyMap{states: make(map[string]KeyState)}
}

// Handle records a key event. Auto-repeat presses of a held key are ignored.
func (m *KeyMap) Handle(ev KeyEvent) {
	switch ev.Action {
	case KeyDown:
		if s, ok := m.states[ev.Key]; ok && s.Pressing() {
			return
		}
		m.states[ev.Key] = KeyPress
	case KeyUp:
		switch m.states[ev.Key] {
		case KeyPress:
			m.states[ev.Key] = KeyTap
		case KeyKept:
			m.states[ev.Key] = KeyRelease
		}
	}
}

// Get returns the state of key.
func (m *KeyMap) Get(key string) (KeyState, bool) {
	s, ok := m.states[key]
	return s, ok
}

// Pressing reports whether key is held.
func (m *KeyMap) Pressing(key string) bool {
	s, ok := m.states[key]
	return ok && s.Pressing()
}

// Step advances states by one simulation step.
func (m *KeyMap) Step() {
	for k, s := range m.states {
		switch s {
		case KeyPress:
			m.states[k] = KeyKept
		case KeyRelease, KeyTap:
			delete(m.states, k)
		}
	}
}

// Purge marks every key released.
func (m *KeyMap) Purge() {
	for k := range m.states {
		m.states[k] = KeyRelease
	}
}

// Len returns the number of tracked keys.
func (m *KeyMap) Len() int {
	return len(m.states)
}
