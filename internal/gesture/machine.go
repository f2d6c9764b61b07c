package gesture

import (
	"github.com/rbright/swaytouch/internal/fsm"
)

// Outcome describes what one event did to the session.
type Outcome int

const (
	// OutcomeIgnored means the event caused no transition.
	OutcomeIgnored Outcome = iota
	// OutcomeStarted means a new session began.
	OutcomeStarted
	// OutcomeRestarted means a begin arrived mid-session and replaced it.
	OutcomeRestarted
	// OutcomeAccumulated means motion was added to the session.
	OutcomeAccumulated
	// OutcomeCompleted means the session ended and produced a Swipe.
	OutcomeCompleted
	// OutcomeCancelled means the session was discarded.
	OutcomeCancelled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeStarted:
		return "started"
	case OutcomeRestarted:
		return "restarted"
	case OutcomeAccumulated:
		return "accumulated"
	case OutcomeCompleted:
		return "completed"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return "ignored"
	}
}

// Machine owns the single in-flight swipe session. It is not safe for
// concurrent use; the dispatcher loop is its only caller.
type Machine struct {
	state       fsm.State
	fingers     int
	accumulated Vector
}

// NewMachine returns an idle state machine.
func NewMachine() *Machine {
	return &Machine{state: fsm.StateIdle}
}

// State returns the current session state.
func (m *Machine) State() fsm.State {
	return m.state
}

// Fingers returns the finger count of the active session, or 0 when idle.
func (m *Machine) Fingers() int {
	return m.fingers
}

// Accumulated returns the net motion of the active session.
func (m *Machine) Accumulated() Vector {
	return m.accumulated
}

// Handle feeds one event into the machine. The returned Swipe is only
// meaningful when the outcome is OutcomeCompleted.
func (m *Machine) Handle(event Event) (Swipe, Outcome) {
	switch ev := event.(type) {
	case Begin:
		restarted := m.state == fsm.StateTracking
		if !m.transition(fsm.EventBegin) {
			return Swipe{}, OutcomeIgnored
		}
		m.fingers = ev.Fingers
		m.accumulated = Vector{}
		if restarted {
			return Swipe{}, OutcomeRestarted
		}
		return Swipe{}, OutcomeStarted
	case Update:
		if !m.transition(fsm.EventUpdate) {
			return Swipe{}, OutcomeIgnored
		}
		m.accumulated = m.accumulated.Add(Vector{DX: ev.DX, DY: ev.DY})
		return Swipe{}, OutcomeAccumulated
	case End:
		if !m.transition(fsm.EventEnd) {
			return Swipe{}, OutcomeIgnored
		}
		swipe := Swipe{Direction: Classify(m.accumulated), Fingers: m.fingers}
		m.reset()
		return swipe, OutcomeCompleted
	case Cancel:
		if !m.transition(fsm.EventCancel) {
			return Swipe{}, OutcomeIgnored
		}
		m.reset()
		return Swipe{}, OutcomeCancelled
	default:
		// Pinch, hold and anything else never touch the session.
		return Swipe{}, OutcomeIgnored
	}
}

func (m *Machine) transition(event fsm.Event) bool {
	next, err := fsm.Transition(m.state, event)
	if err != nil {
		return false
	}
	m.state = next
	return true
}

func (m *Machine) reset() {
	m.fingers = 0
	m.accumulated = Vector{}
}
