package input

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rbright/swaytouch/internal/gesture"
	"github.com/stretchr/testify/require"
)

func TestParseDebugLineSwipeSequence(t *testing.T) {
	lines := []string{
		"-event7   DEVICE_ADDED            SynPS/2 Synaptics TouchPad        seat0 default group8  cap:pg",
		" event7   GESTURE_SWIPE_BEGIN     +1.934s\t3",
		" event7   GESTURE_SWIPE_UPDATE    +1.934s\t3 -0.58/ 0.00 (-1.56/ 0.00 unaccelerated)",
		" event7   GESTURE_SWIPE_UPDATE    +1.950s\t3 -12.25/-1.50 (-30.00/-3.60 unaccelerated)",
		" event7   POINTER_MOTION          +2.000s\t  1.00/  0.00 ( 1.00/ 0.00 unaccelerated)",
		" event7   GESTURE_SWIPE_END       +2.150s\t3",
		" event7   GESTURE_PINCH_BEGIN     +3.000s\t2",
		" event7   GESTURE_SWIPE_END       +4.150s\t4 cancelled",
		" event7   GESTURE_HOLD_BEGIN      +5.000s\t3",
		"",
	}

	var got []gesture.Event
	for _, line := range lines {
		if event, ok := ParseDebugLine(line); ok {
			got = append(got, event)
		}
	}

	want := []gesture.Event{
		gesture.Begin{Fingers: 3},
		gesture.Update{DX: -0.58, DY: 0},
		gesture.Update{DX: -12.25, DY: -1.5},
		gesture.End{},
		gesture.Other{Kind: "GESTURE_PINCH_BEGIN"},
		gesture.Cancel{},
		gesture.Other{Kind: "GESTURE_HOLD_BEGIN"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("parsed events mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDebugLineRejectsMalformedSwipes(t *testing.T) {
	malformed := []string{
		" event7   GESTURE_SWIPE_BEGIN     +1.934s",
		" event7   GESTURE_SWIPE_BEGIN     +1.934s\tthree",
		" event7   GESTURE_SWIPE_UPDATE    +1.934s\t3",
		" event7   GESTURE_SWIPE_UPDATE    +1.934s\t3 garbage",
		" event7   GESTURE_SWIPE_UPDATE    +1.934s\t3 1.0/x (1.0/1.0 unaccelerated)",
	}
	for _, line := range malformed {
		_, ok := ParseDebugLine(line)
		require.False(t, ok, line)
	}
}

func TestParseDebugLineWithoutTimestamp(t *testing.T) {
	event, ok := ParseDebugLine("event3 GESTURE_SWIPE_BEGIN 4")
	require.True(t, ok)
	require.Equal(t, gesture.Begin{Fingers: 4}, event)
}
