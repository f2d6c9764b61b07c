package input

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/rbright/swaytouch/internal/gesture"
)

// ErrSourceClosed is returned by Poll once the event stream has ended.
var ErrSourceClosed = errors.New("gesture source closed")

// DefaultDebugEventsCommand streams libinput events for every device on seat0.
var DefaultDebugEventsCommand = []string{"libinput", "debug-events"}

// Source yields batches of gesture events.
type Source interface {
	// Poll blocks until at least one event is available and returns it
	// together with everything else already buffered.
	Poll(ctx context.Context) ([]gesture.Event, error)
}

// StreamSource parses gesture events from a line-oriented reader.
type StreamSource struct {
	events   chan gesture.Event
	done     chan struct{}
	finished chan struct{}

	closeOnce sync.Once
	closer    func() error
	err       error
}

// NewStreamSource starts parsing r in the background. closer runs on Close and
// must unblock any pending Read on r.
func NewStreamSource(r io.Reader, closer func() error) *StreamSource {
	s := &StreamSource{
		events:   make(chan gesture.Event, 256),
		done:     make(chan struct{}),
		finished: make(chan struct{}),
		closer:   closer,
	}
	go s.read(r, nil)
	return s
}

// StartDebugEvents launches the libinput debug-events command and parses its output.
func StartDebugEvents(ctx context.Context, argv []string, logger *slog.Logger) (*StreamSource, error) {
	if len(argv) == 0 {
		argv = DefaultDebugEventsCommand
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("pipe %v stdout: %w", argv, err)
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %v: %w", argv, err)
	}
	if logger != nil {
		logger.Info("gesture source started", "argv", strings.Join(argv, " "), "pid", cmd.Process.Pid)
	}

	s := &StreamSource{
		events:   make(chan gesture.Event, 256),
		done:     make(chan struct{}),
		finished: make(chan struct{}),
		closer: func() error {
			if cmd.Process == nil {
				return nil
			}
			if err := cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
				return err
			}
			return nil
		},
	}
	go s.read(stdout, func() error {
		if waitErr := cmd.Wait(); waitErr != nil {
			trimmed := strings.TrimSpace(stderr.String())
			if trimmed != "" {
				return fmt.Errorf("%v: %w (%s)", argv, waitErr, trimmed)
			}
			return fmt.Errorf("%v: %w", argv, waitErr)
		}
		return nil
	})
	return s, nil
}

func (s *StreamSource) read(r io.Reader, wait func() error) {
	defer close(s.finished)
	defer close(s.events)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		event, ok := ParseDebugLine(scanner.Text())
		if !ok {
			continue
		}
		select {
		case s.events <- event:
		case <-s.done:
			// Drain so the producer process is never blocked on a full pipe.
			_, _ = io.Copy(io.Discard, r)
			s.finish(scanner.Err(), wait)
			return
		}
	}
	s.finish(scanner.Err(), wait)
}

func (s *StreamSource) finish(scanErr error, wait func() error) {
	var waitErr error
	if wait != nil {
		waitErr = wait()
	}
	s.err = errors.Join(scanErr, waitErr)
}

// Poll implements Source.
func (s *StreamSource) Poll(ctx context.Context) ([]gesture.Event, error) {
	var batch []gesture.Event

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case event, ok := <-s.events:
		if !ok {
			return nil, s.closedErr()
		}
		batch = append(batch, event)
	}

	for {
		select {
		case event, ok := <-s.events:
			if !ok {
				return batch, nil
			}
			batch = append(batch, event)
		default:
			return batch, nil
		}
	}
}

func (s *StreamSource) closedErr() error {
	if s.err != nil {
		return fmt.Errorf("%w: %v", ErrSourceClosed, s.err)
	}
	return ErrSourceClosed
}

// Close stops the reader and the underlying process, if any.
func (s *StreamSource) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		if s.closer != nil {
			err = s.closer()
		}
		<-s.finished
	})
	return err
}
