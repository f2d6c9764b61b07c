package config

import (
	"fmt"
	"log/slog"
	"strings"
)

// Validate enforces config invariants and returns non-fatal warnings.
func Validate(cfg Config) ([]Warning, error) {
	warnings := make([]Warning, 0)

	if cfg.IPC.TimeoutMS < 0 {
		return nil, fmt.Errorf("ipc.timeout_ms must be >= 0")
	}
	if cfg.IPC.TimeoutMS == 0 {
		warnings = append(warnings, Warning{Message: "ipc.timeout_ms=0 disables IPC deadlines; an unresponsive compositor will stall navigation"})
	}
	if cfg.IPC.Socket == "" && len(cfg.Discovery.Argv) == 0 {
		return nil, fmt.Errorf("discovery.command must not be empty when ipc.socket is unset")
	}
	if len(cfg.Input.Command.Argv) == 0 {
		return nil, fmt.Errorf("input.command must not be empty")
	}
	if strings.TrimSpace(cfg.Input.DeviceDir) == "" {
		return nil, fmt.Errorf("input.device_dir must not be empty")
	}
	if cfg.Feedback.NotifyTimeoutMS < 0 {
		return nil, fmt.Errorf("feedback.notify_timeout_ms must be >= 0")
	}
	if cfg.Feedback.Notify && strings.TrimSpace(cfg.Feedback.AppName) == "" {
		return nil, fmt.Errorf("feedback.app_name must not be empty when feedback.notify=true")
	}
	if _, err := ParseLogLevel(cfg.Log.Level); err != nil {
		return nil, err
	}

	return warnings, nil
}

// ParseLogLevel maps log.level onto a slog level.
func ParseLogLevel(raw string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("log.level must be one of: debug, info, warn, error")
	}
}
