// Package dispatch runs the event loop that turns completed swipes into
// workspace switches.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/rbright/swaytouch/internal/fsm"
	"github.com/rbright/swaytouch/internal/gesture"
	"github.com/rbright/swaytouch/internal/input"
	"github.com/rbright/swaytouch/internal/navigation"
	"github.com/rbright/swaytouch/internal/sway"
)

// Workspaces is the compositor surface the dispatcher drives.
type Workspaces interface {
	ActiveWorkspace(ctx context.Context) (int, error)
	SetActiveWorkspace(ctx context.Context, num int) error
}

// ReconnectFunc replaces a broken compositor connection. Implementations own
// closing the previous connection.
type ReconnectFunc func(ctx context.Context) (Workspaces, error)

// Feedback receives navigation results for audible or visual signalling.
type Feedback interface {
	Switched(ctx context.Context, from, to int)
	Bounded(ctx context.Context, current int, reason navigation.Reason)
}

type noopFeedback struct{}

func (noopFeedback) Switched(context.Context, int, int)              {}
func (noopFeedback) Bounded(context.Context, int, navigation.Reason) {}

// Options carries the optional collaborators of a Dispatcher.
type Options struct {
	Logger   *slog.Logger
	Feedback Feedback
	// Reconnect is attempted once when an exchange leaves the connection
	// unusable. Nil disables reconnecting.
	Reconnect ReconnectFunc
	// Health is told whether the compositor connection is currently usable.
	Health func(serving bool)
}

// Stats is a snapshot of dispatcher counters.
type Stats struct {
	Swipes        uint64
	Navigations   uint64
	Ignored       uint64
	Failures      uint64
	Reconnects    uint64
	LastDirection gesture.Direction
	LastWorkspace int
	Gesture       fsm.State
	Paused        bool
}

// Dispatcher owns the gesture state machine and the compositor connection.
type Dispatcher struct {
	source    input.Source
	machine   *gesture.Machine
	logger    *slog.Logger
	feedback  Feedback
	reconnect ReconnectFunc
	health    func(bool)

	mu         sync.Mutex
	workspaces Workspaces
	paused     bool
	stats      Stats
}

// New builds a dispatcher reading from source and navigating through workspaces.
func New(source input.Source, workspaces Workspaces, opts Options) *Dispatcher {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	feedback := opts.Feedback
	if feedback == nil {
		feedback = noopFeedback{}
	}
	health := opts.Health
	if health == nil {
		health = func(bool) {}
	}

	return &Dispatcher{
		source:     source,
		machine:    gesture.NewMachine(),
		logger:     logger,
		feedback:   feedback,
		reconnect:  opts.Reconnect,
		health:     health,
		workspaces: workspaces,
		stats:      Stats{Gesture: fsm.StateIdle},
	}
}

// Run consumes the source until ctx is cancelled or the source fails.
// Compositor errors are logged and never end the loop.
func (d *Dispatcher) Run(ctx context.Context) error {
	d.health(true)
	for {
		events, err := d.source.Poll(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("poll gesture source: %w", err)
		}

		for _, event := range events {
			d.HandleEvent(ctx, event)
		}
	}
}

// HandleEvent feeds one gesture event through the state machine and, when it
// completes a swipe, performs the navigation round trip before returning.
func (d *Dispatcher) HandleEvent(ctx context.Context, event gesture.Event) {
	swipe, outcome := d.machine.Handle(event)

	d.mu.Lock()
	d.stats.Gesture = d.machine.State()
	d.mu.Unlock()

	switch outcome {
	case gesture.OutcomeCompleted:
		d.navigate(ctx, swipe)
	case gesture.OutcomeCancelled, gesture.OutcomeRestarted:
		d.logger.Debug("gesture session discarded", "outcome", outcome.String())
	}
}

func (d *Dispatcher) navigate(ctx context.Context, swipe gesture.Swipe) {
	d.mu.Lock()
	d.stats.Swipes++
	d.stats.LastDirection = swipe.Direction
	paused := d.paused
	d.mu.Unlock()

	logger := d.logger.With("direction", string(swipe.Direction), "fingers", swipe.Fingers)
	if paused {
		logger.Debug("swipe ignored while paused")
		d.countIgnored()
		return
	}

	var current int
	err := d.exchange(ctx, "get_workspaces", func(ws Workspaces) error {
		var err error
		current, err = ws.ActiveWorkspace(ctx)
		return err
	})
	if err != nil {
		d.fail(logger, "active workspace query failed", err)
		return
	}

	decision := navigation.Evaluate(swipe, current)
	if !decision.Action {
		logger.Debug("swipe ignored", "workspace", current, "reason", string(decision.Reason))
		d.countIgnored()
		if decision.Bounded() {
			d.feedback.Bounded(ctx, current, decision.Reason)
		}
		return
	}

	err = d.exchange(ctx, "run_command", func(ws Workspaces) error {
		return ws.SetActiveWorkspace(ctx, decision.Target)
	})
	if err != nil {
		d.fail(logger, "workspace switch failed", err, "target", decision.Target)
		return
	}

	d.mu.Lock()
	d.stats.Navigations++
	d.stats.LastWorkspace = decision.Target
	d.mu.Unlock()

	logger.Info("workspace switched", "from", current, "to", decision.Target)
	d.feedback.Switched(ctx, current, decision.Target)
}

// exchange runs op against the current connection. When op fails in a way that
// leaves the connection unusable, one reconnect is attempted and op is retried
// once on the fresh connection.
func (d *Dispatcher) exchange(ctx context.Context, op string, fn func(Workspaces) error) error {
	d.mu.Lock()
	ws := d.workspaces
	d.mu.Unlock()

	err := fn(ws)
	if err == nil || !sway.NeedsReconnect(err) || d.reconnect == nil {
		return err
	}
	if ctx.Err() != nil {
		return err
	}

	d.logger.Warn("sway connection lost; reconnecting", "op", op, "error", err.Error())
	fresh, reconnectErr := d.reconnect(ctx)
	if reconnectErr != nil {
		d.health(false)
		return errors.Join(err, fmt.Errorf("reconnect: %w", reconnectErr))
	}

	d.mu.Lock()
	d.workspaces = fresh
	d.stats.Reconnects++
	d.mu.Unlock()
	d.health(true)

	return fn(fresh)
}

func (d *Dispatcher) fail(logger *slog.Logger, msg string, err error, args ...any) {
	d.mu.Lock()
	d.stats.Failures++
	d.mu.Unlock()

	logger.Error(msg, append(args, "error", err.Error())...)
}

func (d *Dispatcher) countIgnored() {
	d.mu.Lock()
	d.stats.Ignored++
	d.mu.Unlock()
}

// Stats returns a snapshot of the dispatcher counters.
func (d *Dispatcher) Stats() Stats {
	d.mu.Lock()
	defer d.mu.Unlock()
	stats := d.stats
	stats.Paused = d.paused
	return stats
}

// SetPaused toggles navigation. Paused dispatchers still track and count
// swipes but never talk to the compositor.
func (d *Dispatcher) SetPaused(paused bool) {
	d.mu.Lock()
	d.paused = paused
	d.mu.Unlock()
}

// Paused reports whether navigation is paused.
func (d *Dispatcher) Paused() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.paused
}
