package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseEmptyContentReturnsBase(t *testing.T) {
	cfg, warnings, err := Parse("   \n", Default())
	require.NoError(t, err)
	require.Empty(t, warnings)
	require.Equal(t, Default(), cfg)
}

func TestParseOverridesDefaults(t *testing.T) {
	content := `
{
  // compositor connection
  "ipc": {
    "socket": " /run/user/1000/sway-ipc.sock ",
    "timeout_ms": 750,
    "reconnect": false,
  },
  "discovery": { "command": "swaymsg -t get_version" },
  "input": {
    "command": "libinput debug-events --device /dev/input/event7",
    "device_dir": "/dev/input",
  },
  "feedback": { "sound": true, "notify": true, "app_name": "swipes", "notify_timeout_ms": 500 },
  "health": { "socket": "/run/user/1000/swaytouch-health.sock" },
  "log": { "level": "DEBUG" },
}
`
	cfg, warnings, err := Parse(content, Default())
	require.NoError(t, err)
	require.Empty(t, warnings)

	require.Equal(t, "/run/user/1000/sway-ipc.sock", cfg.IPC.Socket)
	require.Equal(t, 750, cfg.IPC.TimeoutMS)
	require.False(t, cfg.IPC.Reconnect)
	require.Equal(t, []string{"swaymsg", "-t", "get_version"}, cfg.Discovery.Argv)
	require.Equal(t, []string{"libinput", "debug-events", "--device", "/dev/input/event7"}, cfg.Input.Command.Argv)
	require.True(t, cfg.Feedback.Sound)
	require.True(t, cfg.Feedback.Notify)
	require.Equal(t, "swipes", cfg.Feedback.AppName)
	require.Equal(t, 500, cfg.Feedback.NotifyTimeoutMS)
	require.Equal(t, "/run/user/1000/swaytouch-health.sock", cfg.Health.Socket)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, _, err := Parse(`{"workspaces": {"max": 20}}`, Default())
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown field")
}

func TestParseReportsLineAndColumn(t *testing.T) {
	content := "{\n  \"ipc\": {\n    \"timeout_ms\": \"soon\"\n  }\n}"
	_, _, err := Parse(content, Default())
	require.Error(t, err)
	require.Contains(t, err.Error(), "line 3")
}

func TestParseRejectsBadCommands(t *testing.T) {
	_, _, err := Parse(`{"input": {"command": "libinput \"debug-events"}}`, Default())
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid input.command")

	_, _, err = Parse(`{"discovery": {"command": "sway 'oops"}}`, Default())
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid discovery.command")
}

func TestParseZeroTimeoutWarns(t *testing.T) {
	cfg, warnings, err := Parse(`{"ipc": {"timeout_ms": 0}}`, Default())
	require.NoError(t, err)
	require.Zero(t, cfg.IPC.Timeout())
	require.Len(t, warnings, 1)
	require.Contains(t, warnings[0].Message, "disables IPC deadlines")
}

func TestParseRejectsMultipleValues(t *testing.T) {
	_, _, err := Parse(`{} {}`, Default())
	require.Error(t, err)
	require.Contains(t, err.Error(), "multiple JSON values")
}
