// Package doctor runs runtime readiness diagnostics for config, tools, sway,
// input devices, and the health endpoint.
package doctor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/rbright/swaytouch/internal/config"
	"github.com/rbright/swaytouch/internal/health"
	"github.com/rbright/swaytouch/internal/indicator"
	"github.com/rbright/swaytouch/internal/input"
	"github.com/rbright/swaytouch/internal/sway"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const probeTimeout = 2 * time.Second

// Check is one doctor assertion result.
type Check struct {
	Name    string
	Pass    bool
	Message string
}

// Report is the full doctor output contract.
type Report struct {
	Checks []Check
}

// OK returns true when all checks pass.
func (r Report) OK() bool {
	for _, check := range r.Checks {
		if !check.Pass {
			return false
		}
	}
	return true
}

// String renders the report as user-facing text output.
func (r Report) String() string {
	var b strings.Builder
	for _, check := range r.Checks {
		status := "OK"
		if !check.Pass {
			status = "FAIL"
		}
		fmt.Fprintf(&b, "[%s] %s: %s\n", status, check.Name, check.Message)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// Run executes environment/config/runtime checks for a loaded config.
func Run(ctx context.Context, cfg config.Loaded) Report {
	checks := []Check{configCheck(cfg)}

	checks = append(checks, checkEnv("XDG_SESSION_TYPE", func(v string) bool {
		return strings.EqualFold(strings.TrimSpace(v), "wayland")
	}, "session type is wayland", "expected XDG_SESSION_TYPE=wayland"))

	if cfg.Config.IPC.Socket == "" && strings.TrimSpace(os.Getenv("SWAYSOCK")) == "" {
		checks = append(checks, checkCommand(cfg.Config.Discovery.Argv, "discovery.command"))
	}
	checks = append(checks, checkCommand(cfg.Config.Input.Command.Argv, "input.command"))
	checks = append(checks, checkSway(ctx, cfg.Config))
	checks = append(checks, checkInputDevices(cfg.Config.Input.DeviceDir))

	if cfg.Config.Feedback.Sound {
		checks = append(checks, checkSoundSink(ctx))
	}
	if cfg.Config.Feedback.Notify {
		checks = append(checks, checkBinary("busctl", "desktop notifications"))
	}
	if path := cfg.Config.Health.Socket; path != "" {
		checks = append(checks, checkHealth(ctx, path))
	}

	return Report{Checks: checks}
}

func configCheck(cfg config.Loaded) Check {
	if !cfg.Exists {
		return Check{Name: "config", Pass: true, Message: fmt.Sprintf("%q not found; using defaults", cfg.Path)}
	}
	return Check{Name: "config", Pass: true, Message: fmt.Sprintf("loaded %q", cfg.Path)}
}

// checkEnv validates an environment variable through a caller-supplied predicate.
func checkEnv(name string, predicate func(string) bool, okMsg, failMsg string) Check {
	value := os.Getenv(name)
	if predicate(value) {
		return Check{Name: name, Pass: true, Message: okMsg}
	}
	return Check{Name: name, Pass: false, Message: failMsg}
}

// checkCommand validates that argv contains a runnable command.
func checkCommand(argv []string, name string) Check {
	if len(argv) == 0 {
		return Check{Name: name, Pass: false, Message: "command is empty"}
	}
	check := checkBinary(argv[0], fmt.Sprintf("%s command is available", name))
	check.Name = name
	return check
}

// checkBinary validates that a binary exists in PATH.
func checkBinary(bin string, okMsg string) Check {
	path, err := exec.LookPath(bin)
	if err != nil {
		return Check{Name: bin, Pass: false, Message: fmt.Sprintf("binary not found in PATH: %s", bin)}
	}
	return Check{Name: bin, Pass: true, Message: fmt.Sprintf("found at %s (%s)", path, okMsg)}
}

// checkSway resolves the IPC socket, dials it, and asks for the focused workspace.
func checkSway(ctx context.Context, cfg config.Config) Check {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	path, source, err := sway.ResolveSocketPath(ctx, cfg.IPC.Socket, cfg.Discovery.Argv)
	if err != nil {
		return Check{Name: "sway.ipc", Pass: false, Message: err.Error()}
	}

	client, err := sway.Dial(ctx, path, cfg.IPC.Timeout())
	if err != nil {
		return Check{Name: "sway.ipc", Pass: false, Message: err.Error()}
	}
	defer client.Close()

	num, err := client.ActiveWorkspace(ctx)
	if err != nil {
		return Check{Name: "sway.ipc", Pass: false, Message: fmt.Sprintf("%s (socket %s from %s)", err, path, source)}
	}
	return Check{Name: "sway.ipc", Pass: true, Message: fmt.Sprintf("workspace %d focused (socket %s from %s)", num, path, source)}
}

// checkInputDevices reports whether this user can open the evdev nodes the
// gesture source reads.
func checkInputDevices(dir string) Check {
	results, err := input.ProbeEventDevices(dir)
	if err != nil {
		return Check{Name: "input.devices", Pass: false, Message: err.Error()}
	}
	if len(results) == 0 {
		return Check{Name: "input.devices", Pass: false, Message: fmt.Sprintf("no event devices under %s", dir)}
	}

	var denied []string
	for _, r := range results {
		if r.Err == nil {
			continue
		}
		if errors.Is(r.Err, os.ErrPermission) {
			denied = append(denied, r.Path)
			continue
		}
		return Check{Name: "input.devices", Pass: false, Message: r.Err.Error()}
	}

	if len(denied) == len(results) {
		return Check{
			Name:    "input.devices",
			Pass:    false,
			Message: fmt.Sprintf("permission denied on all %d devices under %s; add the user to the input group", len(results), dir),
		}
	}
	return Check{
		Name:    "input.devices",
		Pass:    true,
		Message: fmt.Sprintf("%d of %d devices readable under %s", len(results)-len(denied), len(results), dir),
	}
}

func checkSoundSink(ctx context.Context) Check {
	sink, err := indicator.DefaultSink(ctx)
	if err != nil {
		return Check{Name: "feedback.sound", Pass: false, Message: err.Error()}
	}
	return Check{Name: "feedback.sound", Pass: true, Message: fmt.Sprintf("cues play on %s (%s)", sink.ID, sink.Description)}
}

// checkHealth queries a running daemon's health endpoint.
func checkHealth(ctx context.Context, path string) Check {
	status, err := health.Check(ctx, path, probeTimeout)
	if err != nil {
		return Check{Name: "health", Pass: false, Message: err.Error()}
	}
	if status != healthpb.HealthCheckResponse_SERVING {
		return Check{Name: "health", Pass: false, Message: fmt.Sprintf("daemon reports %s", status)}
	}
	return Check{Name: "health", Pass: true, Message: "daemon reports SERVING"}
}
