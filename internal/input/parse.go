// Package input turns libinput gesture output into gesture events and
// provides scoped access to input device nodes.
package input

import (
	"strconv"
	"strings"

	"github.com/rbright/swaytouch/internal/gesture"
)

const (
	swipeBegin  = "GESTURE_SWIPE_BEGIN"
	swipeUpdate = "GESTURE_SWIPE_UPDATE"
	swipeEnd    = "GESTURE_SWIPE_END"
)

// ParseDebugLine converts one `libinput debug-events` line into a gesture event.
// Non-gesture lines report false. Pinch and hold lines become gesture.Other.
//
//	event7   GESTURE_SWIPE_BEGIN     +1.934s	3
//	event7   GESTURE_SWIPE_UPDATE    +1.934s	3 -0.58/ 0.00 (-1.56/ 0.00 unaccelerated)
//	event7   GESTURE_SWIPE_END       +2.150s	3 cancelled
func ParseDebugLine(line string) (gesture.Event, bool) {
	fields := strings.Fields(line)

	kindIdx := -1
	for i, field := range fields {
		if strings.HasPrefix(field, "GESTURE_") {
			kindIdx = i
			break
		}
	}
	if kindIdx < 0 {
		return nil, false
	}

	kind := fields[kindIdx]
	rest := fields[kindIdx+1:]
	if len(rest) > 0 && strings.HasPrefix(rest[0], "+") {
		rest = rest[1:]
	}

	switch kind {
	case swipeBegin:
		if len(rest) == 0 {
			return nil, false
		}
		fingers, err := strconv.Atoi(rest[0])
		if err != nil {
			return nil, false
		}
		return gesture.Begin{Fingers: fingers}, true
	case swipeUpdate:
		if len(rest) < 2 {
			return nil, false
		}
		dx, dy, ok := parseDelta(strings.Join(rest[1:], " "))
		if !ok {
			return nil, false
		}
		return gesture.Update{DX: dx, DY: dy}, true
	case swipeEnd:
		for _, field := range rest {
			if field == "cancelled" {
				return gesture.Cancel{}, true
			}
		}
		return gesture.End{}, true
	default:
		return gesture.Other{Kind: kind}, true
	}
}

// parseDelta reads the accelerated "dx/ dy" pair that precedes the
// parenthesized unaccelerated values.
func parseDelta(raw string) (float64, float64, bool) {
	accelerated, _, _ := strings.Cut(raw, "(")
	left, right, found := strings.Cut(accelerated, "/")
	if !found {
		return 0, 0, false
	}
	dx, err := strconv.ParseFloat(strings.TrimSpace(left), 64)
	if err != nil {
		return 0, 0, false
	}
	dy, err := strconv.ParseFloat(strings.TrimSpace(right), 64)
	if err != nil {
		return 0, 0, false
	}
	return dx, dy, true
}
