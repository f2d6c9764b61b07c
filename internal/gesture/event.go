package gesture

// Event is one gesture notification from the input subsystem. The set of
// implementations is closed: Begin, Update, End, Cancel and Other.
type Event interface {
	gestureEvent()
}

// Begin starts a swipe with a fixed finger count.
type Begin struct {
	Fingers int
}

// Update carries one per-frame motion delta.
type Update struct {
	DX float64
	DY float64
}

// End completes the current swipe normally.
type End struct{}

// Cancel terminates the current swipe abnormally.
type Cancel struct{}

// Other is any gesture kind the daemon does not act on (pinch, hold, tap).
type Other struct {
	Kind string
}

func (Begin) gestureEvent()  {}
func (Update) gestureEvent() {}
func (End) gestureEvent()    {}
func (Cancel) gestureEvent() {}
func (Other) gestureEvent()  {}

// Swipe is the discrete result of one completed gesture session.
type Swipe struct {
	Direction Direction
	Fingers   int
}
