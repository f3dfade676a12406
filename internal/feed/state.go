package feed

import "fmt"

// State is a step of one pipeline invocation.
type State int

const (
	StateIdle State = iota
	StateFetching
	StateDecoding
	StateSelecting
	StateMapping
	StateDelivered
	StateErrored
)

var stateNames = [...]string{"idle", "fetching", "decoding", "selecting", "mapping", "delivered", "errored"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == StateDelivered || s == StateErrored
}

// canTransition allows only the next step forward, plus Errored from the
// stages that can fail. Idle may also error when the request itself is invalid.
func canTransition(from, to State) bool {
	if from.Terminal() {
		return false
	}
	if to == StateErrored {
		return from == StateIdle || from == StateFetching || from == StateDecoding
	}
	return to == from+1
}
