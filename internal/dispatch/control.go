package dispatch

import (
	"context"
	"fmt"

	"github.com/rbright/swaytouch/internal/ipc"
)

// Daemon states reported over the control socket.
const (
	StateRunning = "running"
	StatePaused  = "paused"
)

// Handle serves control socket commands for the running daemon.
func (d *Dispatcher) Handle(_ context.Context, req ipc.Request) ipc.Response {
	switch req.Command {
	case ipc.CommandStatus:
		return d.response("status")
	case ipc.CommandPause:
		if d.Paused() {
			return d.response("already paused")
		}
		d.SetPaused(true)
		d.logger.Info("navigation paused")
		return d.response("paused")
	case ipc.CommandResume:
		if !d.Paused() {
			return d.response("already running")
		}
		d.SetPaused(false)
		d.logger.Info("navigation resumed")
		return d.response("resumed")
	default:
		resp := d.response("")
		resp.OK = false
		resp.Error = fmt.Sprintf("unknown command: %s", req.Command)
		return resp
	}
}

func (d *Dispatcher) response(message string) ipc.Response {
	stats := d.Stats()
	state := StateRunning
	if stats.Paused {
		state = StatePaused
	}
	return ipc.Response{
		OK:         true,
		State:      state,
		Message:    message,
		LastSwitch: stats.LastWorkspace,
		Swipes:     stats.Swipes,
		Switches:   stats.Navigations,
		Failures:   stats.Failures,
	}
}
