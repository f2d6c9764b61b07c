// Package sway implements the sway/i3 binary IPC protocol and the workspace
// operations built on top of it.
package sway

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	// Magic prefixes every message in both directions.
	Magic = "i3-ipc"
	// HeaderSize is magic + payload length + message type.
	HeaderSize = len(Magic) + 4 + 4
	// MaxPayloadSize caps reply payloads; real workspace replies are a few KiB.
	MaxPayloadSize = 32 * 1024 * 1024
)

// MessageType is the i3-ipc message type tag.
type MessageType uint32

const (
	MessageRunCommand    MessageType = 0
	MessageGetWorkspaces MessageType = 1
)

func (t MessageType) String() string {
	switch t {
	case MessageRunCommand:
		return "RUN_COMMAND"
	case MessageGetWorkspaces:
		return "GET_WORKSPACES"
	default:
		return fmt.Sprintf("TYPE_%d", uint32(t))
	}
}

// Message is one framed IPC request or reply.
type Message struct {
	Type    MessageType
	Payload []byte
}

// byteOrder matches the compositor, which writes header integers in host order.
var byteOrder = binary.NativeEndian

// Encode renders the message as a single header+payload frame.
func (m Message) Encode() []byte {
	frame := make([]byte, HeaderSize+len(m.Payload))
	copy(frame, Magic)
	byteOrder.PutUint32(frame[len(Magic):], uint32(len(m.Payload)))
	byteOrder.PutUint32(frame[len(Magic)+4:], uint32(m.Type))
	copy(frame[HeaderSize:], m.Payload)
	return frame
}

// WriteMessage writes one complete frame with a single Write call.
func WriteMessage(w io.Writer, m Message) error {
	_, err := w.Write(m.Encode())
	return err
}

// ReadMessage reads exactly one frame. A bad magic marker is reported before
// any payload bytes are consumed; other failures are the reader's own errors.
func ReadMessage(r io.Reader) (Message, error) {
	var header [HeaderSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return Message{}, err
	}

	if string(header[:len(Magic)]) != Magic {
		return Message{}, fmt.Errorf("%w: got %q", ErrBadMagic, header[:len(Magic)])
	}

	length := byteOrder.Uint32(header[len(Magic):])
	msgType := MessageType(byteOrder.Uint32(header[len(Magic)+4:]))
	if length > MaxPayloadSize {
		return Message{}, fmt.Errorf("%w: %d bytes exceeds %d", ErrPayloadTooLarge, length, MaxPayloadSize)
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return Message{}, err
	}

	return Message{Type: msgType, Payload: payload}, nil
}
