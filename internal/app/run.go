package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"github.com/rbright/swaytouch/internal/cli"
	"github.com/rbright/swaytouch/internal/config"
	"github.com/rbright/swaytouch/internal/dispatch"
	"github.com/rbright/swaytouch/internal/health"
	"github.com/rbright/swaytouch/internal/indicator"
	"github.com/rbright/swaytouch/internal/input"
	"github.com/rbright/swaytouch/internal/ipc"
	"github.com/rbright/swaytouch/internal/sway"
)

func (r Runner) commandRun(ctx context.Context, parsed cli.Parsed, loaded config.Loaded, logger *slog.Logger) int {
	if parsed.Detach {
		child, err := daemonize()
		if err != nil {
			fmt.Fprintf(r.Stderr, "error: %v\n", err)
			return 1
		}
		if child != nil {
			logger.Info("daemon detached", "pid", child.Pid)
			fmt.Fprintf(r.Stdout, "started (pid %d)\n", child.Pid)
			return 0
		}
	}

	socketPath, err := ipc.RuntimeSocketPath()
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}

	listener, err := ipc.Acquire(ctx, socketPath, 180*time.Millisecond, 8, nil)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		logger.Error("acquire control socket failed", "socket", socketPath, "error", err.Error())
		return 1
	}
	defer func() {
		_ = listener.Close()
		_ = os.Remove(socketPath)
	}()

	if err := runDaemon(ctx, loaded.Config, listener, logger); err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		logger.Error("daemon stopped", "error", err.Error())
		return 1
	}
	logger.Info("daemon stopped")
	return 0
}

// runDaemon connects to sway, starts the gesture source, and serves the
// dispatcher until ctx ends or the gesture source fails.
func runDaemon(ctx context.Context, cfg config.Config, control net.Listener, logger *slog.Logger) error {
	conn, err := connectSway(ctx, cfg.IPC, cfg.Discovery.Argv, logger)
	if err != nil {
		return err
	}
	defer conn.Close()

	source, err := input.StartDebugEvents(ctx, cfg.Input.Command.Argv, logger)
	if err != nil {
		return fmt.Errorf("start gesture source: %w", err)
	}
	defer func() { _ = source.Close() }()

	feedback := indicator.New(cfg.Feedback, logger)
	defer feedback.Close(context.Background())

	opts := dispatch.Options{Logger: logger, Feedback: feedback}
	if cfg.IPC.Reconnect {
		opts.Reconnect = conn.Reconnect
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	var serveErrs []error
	var serveErrsMu sync.Mutex
	serve := func(name string, fn func(context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(runCtx); err != nil {
				serveErrsMu.Lock()
				serveErrs = append(serveErrs, fmt.Errorf("%s: %w", name, err))
				serveErrsMu.Unlock()
				cancel()
			}
		}()
	}

	if path := cfg.Health.Socket; path != "" {
		healthSrv, err := health.Listen(path)
		if err != nil {
			return err
		}
		opts.Health = healthSrv.SetServing
		serve("health server", healthSrv.Serve)
		logger.Info("health endpoint listening", "socket", path)
	}

	dispatcher := dispatch.New(source, conn.Current(), opts)
	serve("control server", func(ctx context.Context) error {
		return ipc.Serve(ctx, control, dispatcher)
	})

	logger.Info("daemon running", "sway_socket", conn.Path())
	runErr := dispatcher.Run(runCtx)
	cancel()
	wg.Wait()

	return errors.Join(append([]error{runErr}, serveErrs...)...)
}

// swayConn owns the live sway connection and replaces it on reconnect.
type swayConn struct {
	path    string
	timeout time.Duration
	logger  *slog.Logger

	mu     sync.Mutex
	client *sway.Client
}

func connectSway(ctx context.Context, cfg config.IPCConfig, discovery []string, logger *slog.Logger) (*swayConn, error) {
	path, source, err := sway.ResolveSocketPath(ctx, cfg.Socket, discovery)
	if err != nil {
		return nil, err
	}
	client, err := sway.Dial(ctx, path, cfg.Timeout())
	if err != nil {
		return nil, err
	}
	logger.Info("sway connected", "socket", path, "source", string(source))
	return &swayConn{path: path, timeout: cfg.Timeout(), logger: logger, client: client}, nil
}

func (c *swayConn) Path() string {
	return c.path
}

func (c *swayConn) Current() *sway.Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.client
}

// Reconnect closes the current connection and dials the same socket again.
func (c *swayConn) Reconnect(ctx context.Context) (dispatch.Workspaces, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	_ = c.client.Close()
	client, err := sway.Dial(ctx, c.path, c.timeout)
	if err != nil {
		return nil, err
	}
	c.client = client
	c.logger.Info("sway reconnected", "socket", c.path)
	return client, nil
}

func (c *swayConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.client.Close()
}
