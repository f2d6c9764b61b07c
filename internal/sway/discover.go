package sway

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"unicode/utf8"
)

// SocketSource names where a socket path came from.
type SocketSource string

const (
	SourceConfig    SocketSource = "config"
	SourceEnv       SocketSource = "env"
	SourceDiscovery SocketSource = "discovery"
)

// DefaultDiscoveryCommand asks the running compositor for its IPC socket.
var DefaultDiscoveryCommand = []string{"sway", "--get-socketpath"}

// ResolveSocketPath picks the IPC socket path: explicit config first, then
// SWAYSOCK, then the discovery command.
func ResolveSocketPath(ctx context.Context, explicit string, discovery []string) (string, SocketSource, error) {
	if path := strings.TrimSpace(explicit); path != "" {
		return path, SourceConfig, nil
	}
	if path := strings.TrimSpace(os.Getenv("SWAYSOCK")); path != "" {
		return path, SourceEnv, nil
	}
	path, err := DiscoverSocketPath(ctx, discovery)
	if err != nil {
		return "", SourceDiscovery, err
	}
	return path, SourceDiscovery, nil
}

// DiscoverSocketPath runs the discovery command once and returns its trimmed stdout.
func DiscoverSocketPath(ctx context.Context, argv []string) (string, error) {
	if len(argv) == 0 {
		argv = DefaultDiscoveryCommand
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			stderr := strings.TrimSpace(string(exitErr.Stderr))
			if stderr != "" {
				return "", fmt.Errorf("%w: %v exited with code %d (%s)", ErrDiscoveryExit, argv, exitErr.ExitCode(), stderr)
			}
			return "", fmt.Errorf("%w: %v exited with code %d", ErrDiscoveryExit, argv, exitErr.ExitCode())
		}
		return "", fmt.Errorf("%w: %v: %v", ErrDiscoveryExit, argv, err)
	}

	if !utf8.Valid(out) {
		return "", fmt.Errorf("%w: %v", ErrDiscoveryEncoding, argv)
	}

	path := strings.TrimSpace(string(out))
	if path == "" {
		return "", fmt.Errorf("%w: %v printed nothing", ErrDiscoveryEmpty, argv)
	}
	return path, nil
}
