// Package config resolves, parses, validates, and defaults swaytouch configuration.
package config

import "time"

// Config is the fully materialized runtime configuration used by swaytouch.
type Config struct {
	IPC       IPCConfig
	Discovery CommandConfig
	Input     InputConfig
	Feedback  FeedbackConfig
	Health    HealthConfig
	Log       LogConfig
}

// IPCConfig controls the compositor connection.
type IPCConfig struct {
	// Socket overrides SWAYSOCK and discovery when non-empty.
	Socket    string
	TimeoutMS int
	Reconnect bool
}

// Timeout returns the per-exchange deadline; zero disables it.
func (c IPCConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// InputConfig controls the gesture event source.
type InputConfig struct {
	Command   CommandConfig
	DeviceDir string
}

// FeedbackConfig controls audible and visual navigation feedback.
type FeedbackConfig struct {
	Sound           bool
	Notify          bool
	AppName         string
	NotifyTimeoutMS int
}

// HealthConfig controls the gRPC health endpoint. An empty socket disables it.
type HealthConfig struct {
	Socket string
}

// LogConfig controls the JSONL logger.
type LogConfig struct {
	Level string
}

// CommandConfig stores a raw command string and its parsed argv form.
type CommandConfig struct {
	Raw  string
	Argv []string
}

// Warning is a non-fatal parse/validation message.
type Warning struct {
	Line    int
	Message string
}
