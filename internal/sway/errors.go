package sway

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport marks connect, read and write failures on the IPC socket.
	ErrTransport = errors.New("sway ipc transport failure")
	// ErrProtocol marks replies that do not follow the i3-ipc wire contract.
	ErrProtocol = errors.New("sway ipc protocol error")
	// ErrBadMagic means a reply header did not start with the magic marker.
	ErrBadMagic = fmt.Errorf("%w: invalid magic marker", ErrProtocol)
	// ErrPayloadTooLarge means a reply header announced an implausible payload.
	ErrPayloadTooLarge = fmt.Errorf("%w: payload too large", ErrProtocol)
	// ErrMalformedResponse means a reply payload was not valid JSON or had the wrong shape.
	ErrMalformedResponse = fmt.Errorf("%w: malformed response", ErrProtocol)

	// ErrCommandFailed matches every *CommandError.
	ErrCommandFailed = errors.New("sway command failed")

	// ErrWorkspaceLookup marks failures resolving the focused workspace.
	ErrWorkspaceLookup = errors.New("workspace lookup failed")
	// ErrNoFocusedWorkspace means no workspace in the reply had focused=true.
	ErrNoFocusedWorkspace = fmt.Errorf("%w: no focused workspace", ErrWorkspaceLookup)
	// ErrInvalidWorkspaceNum means the focused workspace had a missing or non-numeric num.
	ErrInvalidWorkspaceNum = fmt.Errorf("%w: invalid workspace number", ErrWorkspaceLookup)

	// ErrDiscovery marks every socket path discovery failure.
	ErrDiscovery = errors.New("sway socket discovery failed")
	// ErrDiscoveryExit means the discovery command could not run or exited non-zero.
	ErrDiscoveryExit = fmt.Errorf("%w: command failed", ErrDiscovery)
	// ErrDiscoveryEncoding means the discovery command printed non-UTF-8 output.
	ErrDiscoveryEncoding = fmt.Errorf("%w: output is not valid UTF-8", ErrDiscovery)
	// ErrDiscoveryEmpty means the discovery command printed nothing usable.
	ErrDiscoveryEmpty = fmt.Errorf("%w: empty socket path", ErrDiscovery)
)

// TransportError wraps a socket-level failure with the operation that hit it.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("sway ipc %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() []error {
	return []error{ErrTransport, e.Err}
}

// CommandError is a RUN_COMMAND reply carrying success=false.
type CommandError struct {
	Command string
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("sway command %q failed: %s", e.Command, e.Message)
}

func (e *CommandError) Is(target error) bool {
	return target == ErrCommandFailed
}

// NeedsReconnect reports whether err leaves the connection unusable. Framing
// failures desynchronize the stream just like a dropped socket does.
func NeedsReconnect(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrTransport) ||
		errors.Is(err, ErrBadMagic) ||
		errors.Is(err, ErrPayloadTooLarge)
}
