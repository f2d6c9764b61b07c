package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rbright/swaytouch/internal/config"
	"github.com/rbright/swaytouch/internal/health"
	"github.com/rbright/swaytouch/internal/ipc"
)

const forwardTimeout = 500 * time.Millisecond

// stateStopped is printed by status when no daemon owns the control socket.
const stateStopped = "stopped"

func (r Runner) commandStatus(ctx context.Context, cfg config.Config) int {
	socketPath, err := ipc.RuntimeSocketPath()
	if err != nil {
		fmt.Fprintln(r.Stdout, stateStopped)
		return 0
	}

	resp, handled, err := tryForward(ctx, socketPath, ipc.CommandStatus)
	if !handled {
		fmt.Fprintln(r.Stdout, stateStopped)
		return 0
	}
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}

	printStatus(r.Stdout, resp)
	if path := cfg.Health.Socket; path != "" {
		printHealth(ctx, r.Stdout, path)
	}
	return 0
}

// printHealth reports the daemon's grpc health status. It never changes the
// exit code; the control socket already answered.
func printHealth(ctx context.Context, w io.Writer, path string) {
	status, err := health.Check(ctx, path, forwardTimeout)
	if err != nil {
		fmt.Fprintf(w, "health: unreachable (%v)\n", err)
		return
	}
	fmt.Fprintf(w, "health: %s\n", status)
}

func printStatus(w io.Writer, resp ipc.Response) {
	state := resp.State
	if state == "" {
		state = stateStopped
	}
	fmt.Fprintln(w, state)
	if resp.LastSwitch > 0 {
		fmt.Fprintf(w, "last switch: %d\n", resp.LastSwitch)
	}
	fmt.Fprintf(w, "swipes: %d switches: %d failures: %d\n", resp.Swipes, resp.Switches, resp.Failures)
}

func (r Runner) forwardOrFail(ctx context.Context, command string) int {
	socketPath, err := ipc.RuntimeSocketPath()
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}

	resp, handled, err := tryForward(ctx, socketPath, command)
	if !handled {
		fmt.Fprintln(r.Stderr, "error: swaytouch daemon is not running")
		return 1
	}
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	if resp.Message != "" {
		fmt.Fprintln(r.Stdout, resp.Message)
	}
	return 0
}

// tryForward sends command to a running daemon. handled is false when no
// daemon is listening; err is set when a daemon answered with a failure or the
// exchange broke midway.
func tryForward(ctx context.Context, socketPath string, command string) (ipc.Response, bool, error) {
	resp, err := ipc.Send(ctx, socketPath, ipc.Request{Command: command}, forwardTimeout)
	if err == nil {
		if resp.OK {
			return resp, true, nil
		}
		return resp, true, errors.New(resp.Error)
	}

	if ipc.IsNotRunning(err) {
		return ipc.Response{}, false, nil
	}
	return ipc.Response{}, true, fmt.Errorf("forward command %q: %w", command, err)
}
