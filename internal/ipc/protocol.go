// Package ipc implements the swaytouch control socket: one JSON request line
// and one JSON response line per connection.
package ipc

// Control commands understood by a running swaytouch daemon.
const (
	CommandStatus = "status"
	CommandPause  = "pause"
	CommandResume = "resume"
)

// Request is one JSON line sent to the control socket.
type Request struct {
	Command string `json:"command"`
}

// Response is the single JSON line written back for a Request.
type Response struct {
	OK      bool   `json:"ok"`
	State   string `json:"state,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	// LastSwitch is the workspace the daemon last switched to, not a live
	// focus query.
	LastSwitch int    `json:"last_switch,omitempty"`
	Swipes     uint64 `json:"swipes,omitempty"`
	Switches   uint64 `json:"switches,omitempty"`
	Failures   uint64 `json:"failures,omitempty"`
}
