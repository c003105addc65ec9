package session

// State is a step of the construction sequence.
type State uint8

const (
	StateUninitialized State = iota
	StateProbing
	StateConstructing
	StateReady
	StateAborted
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateProbing:
		return "probing"
	case StateConstructing:
		return "constructing"
	case StateReady:
		return "ready"
	case StateAborted:
		return "aborted"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}
