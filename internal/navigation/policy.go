// Package navigation maps completed swipes onto workspace targets.
package navigation

import "github.com/rbright/swaytouch/internal/gesture"

const (
	// MinWorkspace and MaxWorkspace bound navigation regardless of how many
	// workspaces the compositor actually has.
	MinWorkspace = 1
	MaxWorkspace = 10

	// NavigationFingers is the only finger count that moves between workspaces.
	NavigationFingers = 3
)

// Reason explains why a swipe did or did not produce a target.
type Reason string

const (
	ReasonPrevious  Reason = "previous"
	ReasonNext      Reason = "next"
	ReasonFingers   Reason = "fingers"
	ReasonDirection Reason = "direction"
	ReasonFloor     Reason = "floor"
	ReasonCeiling   Reason = "ceiling"
)

// Decision is the full policy verdict for one swipe.
type Decision struct {
	Target int
	Action bool
	Reason Reason
}

// Bounded reports whether the swipe was a valid navigation gesture that was
// dropped only because it ran into the workspace range.
func (d Decision) Bounded() bool {
	return d.Reason == ReasonFloor || d.Reason == ReasonCeiling
}

// Evaluate applies the navigation policy to one swipe and the focused workspace.
func Evaluate(swipe gesture.Swipe, current int) Decision {
	if swipe.Fingers != NavigationFingers {
		return Decision{Reason: ReasonFingers}
	}

	switch swipe.Direction {
	case gesture.West:
		target := current - 1
		if target < MinWorkspace {
			return Decision{Reason: ReasonFloor}
		}
		return Decision{Target: target, Action: true, Reason: ReasonPrevious}
	case gesture.East:
		target := current + 1
		if target > MaxWorkspace {
			return Decision{Reason: ReasonCeiling}
		}
		return Decision{Target: target, Action: true, Reason: ReasonNext}
	default:
		return Decision{Reason: ReasonDirection}
	}
}

// Target returns the workspace a swipe should move to, if any.
func Target(swipe gesture.Swipe, current int) (int, bool) {
	d := Evaluate(swipe, current)
	return d.Target, d.Action
}
