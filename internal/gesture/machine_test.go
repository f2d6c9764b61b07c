package gesture

import (
	"testing"

	"github.com/rbright/swaytouch/internal/fsm"
	"github.com/stretchr/testify/require"
)

func TestMachineCompletesSwipe(t *testing.T) {
	m := NewMachine()

	_, outcome := m.Handle(Begin{Fingers: 3})
	require.Equal(t, OutcomeStarted, outcome)
	require.Equal(t, fsm.StateTracking, m.State())

	_, outcome = m.Handle(Update{DX: -10, DY: 0})
	require.Equal(t, OutcomeAccumulated, outcome)
	_, outcome = m.Handle(Update{DX: -5, DY: 1})
	require.Equal(t, OutcomeAccumulated, outcome)
	require.Equal(t, Vector{DX: -15, DY: 1}, m.Accumulated())

	swipe, outcome := m.Handle(End{})
	require.Equal(t, OutcomeCompleted, outcome)
	require.Equal(t, Swipe{Direction: West, Fingers: 3}, swipe)
	require.Equal(t, fsm.StateIdle, m.State())
	require.Zero(t, m.Fingers())
	require.True(t, m.Accumulated().IsZero())
}

func TestMachineEndWithoutMotionIsNorth(t *testing.T) {
	m := NewMachine()
	m.Handle(Begin{Fingers: 4})

	swipe, outcome := m.Handle(End{})
	require.Equal(t, OutcomeCompleted, outcome)
	require.Equal(t, Swipe{Direction: North, Fingers: 4}, swipe)
}

func TestMachineCancelDiscardsSession(t *testing.T) {
	m := NewMachine()
	m.Handle(Begin{Fingers: 3})
	m.Handle(Update{DX: 40})

	_, outcome := m.Handle(Cancel{})
	require.Equal(t, OutcomeCancelled, outcome)
	require.Equal(t, fsm.StateIdle, m.State())

	_, outcome = m.Handle(End{})
	require.Equal(t, OutcomeIgnored, outcome)
}

func TestMachineBeginWhileTrackingRestarts(t *testing.T) {
	m := NewMachine()
	m.Handle(Begin{Fingers: 3})
	m.Handle(Update{DX: 40})

	_, outcome := m.Handle(Begin{Fingers: 4})
	require.Equal(t, OutcomeRestarted, outcome)
	require.Equal(t, 4, m.Fingers())
	require.True(t, m.Accumulated().IsZero())

	m.Handle(Update{DX: -3})
	swipe, _ := m.Handle(End{})
	require.Equal(t, Swipe{Direction: West, Fingers: 4}, swipe)
}

func TestMachineIgnoresEventsWhileIdle(t *testing.T) {
	m := NewMachine()

	for _, ev := range []Event{Update{DX: 5}, End{}, Cancel{}, Other{Kind: "pinch"}} {
		_, outcome := m.Handle(ev)
		require.Equal(t, OutcomeIgnored, outcome)
		require.Equal(t, fsm.StateIdle, m.State())
	}
	require.True(t, m.Accumulated().IsZero())
}

func TestMachineOtherGestureDoesNotDisturbSession(t *testing.T) {
	m := NewMachine()
	m.Handle(Begin{Fingers: 3})
	m.Handle(Update{DX: 12})

	_, outcome := m.Handle(Other{Kind: "hold"})
	require.Equal(t, OutcomeIgnored, outcome)
	require.Equal(t, fsm.StateTracking, m.State())
	require.Equal(t, Vector{DX: 12}, m.Accumulated())
}

func TestOutcomeString(t *testing.T) {
	require.Equal(t, "completed", OutcomeCompleted.String())
	require.Equal(t, "ignored", Outcome(99).String())
}
