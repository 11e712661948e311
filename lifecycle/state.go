package lifecycle

import (
	"fmt"
)

type State int

const (
	StateCreated State = iota
	StateInitialized
	StateResumed
	StatePaused
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateInitialized:
		return "initialized"
	case StateResumed:
		return "resumed"
	case StatePaused:
		return "paused"
	case StateDestroyed:
		return "destroyed"
	default:
		return fmt.Sprintf("unknown_%d_", int(s))
	}
}
