package sway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"
)

// DefaultTimeout bounds one request/response exchange.
const DefaultTimeout = 2 * time.Second

// Client owns one persistent connection to the compositor's IPC socket.
// Exchanges are strictly sequential: one request, one reply, never pipelined.
type Client struct {
	path    string
	timeout time.Duration

	mu   sync.Mutex
	conn net.Conn
}

// Dial connects to the IPC socket at path. A zero timeout disables both the
// dial timeout and per-exchange deadlines.
func Dial(ctx context.Context, path string, timeout time.Duration) (*Client, error) {
	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "unix", path)
	if err != nil {
		return nil, &TransportError{Op: "dial", Err: err}
	}
	return &Client{path: path, timeout: timeout, conn: conn}, nil
}

// NewClient wraps an already established connection.
func NewClient(conn net.Conn, timeout time.Duration) *Client {
	return &Client{timeout: timeout, conn: conn}
}

// Path returns the socket path the client was dialed with.
func (c *Client) Path() string {
	return c.path
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

// Exchange sends one framed request and returns the raw JSON reply payload.
func (c *Client) Exchange(ctx context.Context, msgType MessageType, payload []byte) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil, &TransportError{Op: "send", Err: net.ErrClosed}
	}

	if deadline, ok := c.deadline(ctx); ok {
		if err := c.conn.SetDeadline(deadline); err != nil {
			return nil, &TransportError{Op: "set deadline", Err: err}
		}
		defer func() { _ = c.conn.SetDeadline(time.Time{}) }()
	}

	if err := WriteMessage(c.conn, Message{Type: msgType, Payload: payload}); err != nil {
		return nil, &TransportError{Op: fmt.Sprintf("write %s", msgType), Err: err}
	}

	reply, err := ReadMessage(c.conn)
	if err != nil {
		if errors.Is(err, ErrProtocol) {
			return nil, err
		}
		return nil, &TransportError{Op: fmt.Sprintf("read %s reply", msgType), Err: err}
	}

	if !json.Valid(reply.Payload) {
		return nil, fmt.Errorf("%w: %s reply is not valid JSON", ErrMalformedResponse, msgType)
	}
	return json.RawMessage(reply.Payload), nil
}

// deadline picks the earlier of the configured timeout and the context deadline.
func (c *Client) deadline(ctx context.Context) (time.Time, bool) {
	var deadline time.Time
	if c.timeout > 0 {
		deadline = time.Now().Add(c.timeout)
	}
	if ctxDeadline, ok := ctx.Deadline(); ok && (deadline.IsZero() || ctxDeadline.Before(deadline)) {
		deadline = ctxDeadline
	}
	return deadline, !deadline.IsZero()
}
