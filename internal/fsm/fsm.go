package fsm

import "fmt"

type State string

type Event string

const (
	StateIdle     State = "idle"
	StateTracking State = "tracking"
)

const (
	EventBegin  Event = "begin"
	EventUpdate Event = "update"
	EventEnd    Event = "end"
	EventCancel Event = "cancel"
)

// Transition returns the next gesture state. A begin while tracking restarts
// the session; the caller is responsible for discarding the stale one.
func Transition(current State, event Event) (State, error) {
	switch current {
	case StateIdle:
		switch event {
		case EventBegin:
			return StateTracking, nil
		default:
			return current, invalidTransition(current, event)
		}
	case StateTracking:
		switch event {
		case EventBegin, EventUpdate:
			return StateTracking, nil
		case EventEnd, EventCancel:
			return StateIdle, nil
		default:
			return current, invalidTransition(current, event)
		}
	default:
		return current, fmt.Errorf("unknown state %q", current)
	}
}

func invalidTransition(state State, event Event) error {
	return fmt.Errorf("invalid transition: %s --(%s)--> ?", state, event)
}
