package app

import (
	"fmt"
	"os"

	"github.com/sevlyar/go-daemon"
)

// daemonize re-executes the current command detached from the terminal. The
// parent receives the child process; the child receives nil and keeps going.
func daemonize() (*os.Process, error) {
	workDir, err := os.Getwd()
	if err != nil {
		workDir = "/"
	}

	// No pid or log file: the control socket guards single instance and the
	// daemon writes its own JSONL log.
	ctx := &daemon.Context{
		WorkDir: workDir,
		Umask:   0o077,
		Args:    os.Args,
	}

	child, err := ctx.Reborn()
	if err != nil {
		return nil, fmt.Errorf("detach daemon: %w", err)
	}
	return child, nil
}
