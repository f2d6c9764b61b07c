// Package cli parses swaytouch command-line arguments.
package cli

import (
	"errors"
	"fmt"
	"strings"
)

// Command is one top-level swaytouch subcommand.
type Command string

const (
	CommandRun     Command = "run"
	CommandStatus  Command = "status"
	CommandPause   Command = "pause"
	CommandResume  Command = "resume"
	CommandDoctor  Command = "doctor"
	CommandVersion Command = "version"
	CommandHelp    Command = "help"
)

var validCommands = map[Command]struct{}{
	CommandRun:     {},
	CommandStatus:  {},
	CommandPause:   {},
	CommandResume:  {},
	CommandDoctor:  {},
	CommandVersion: {},
	CommandHelp:    {},
}

// Parsed is the validated invocation.
type Parsed struct {
	Command    Command
	ConfigPath string
	Detach     bool
	ShowHelp   bool
}

// Parse validates args (without the program name). Flags must precede the
// command, and the command must be the last argument.
func Parse(args []string) (Parsed, error) {
	parsed := Parsed{Command: CommandHelp, ShowHelp: true}

	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch arg {
		case "-h", "--help":
			parsed.ShowHelp = true
			parsed.Command = CommandHelp
		case "--version":
			parsed.ShowHelp = false
			parsed.Command = CommandVersion
		case "--detach", "-d":
			parsed.Detach = true
		case "--config":
			i++
			if i >= len(args) {
				return Parsed{}, errors.New("--config requires a path")
			}
			parsed.ConfigPath = args[i]
		default:
			if value, ok := strings.CutPrefix(arg, "--config="); ok {
				if value == "" {
					return Parsed{}, errors.New("--config requires a path")
				}
				parsed.ConfigPath = value
				continue
			}
			if strings.HasPrefix(arg, "-") {
				return Parsed{}, fmt.Errorf("unknown flag: %s", arg)
			}

			cmd := Command(arg)
			if _, ok := validCommands[cmd]; !ok {
				return Parsed{}, fmt.Errorf("unknown command: %s", arg)
			}

			parsed.Command = cmd
			parsed.ShowHelp = cmd == CommandHelp
			if i != len(args)-1 {
				return Parsed{}, fmt.Errorf("unexpected arguments after command %q", arg)
			}
		}
	}

	if parsed.Detach && parsed.Command != CommandRun {
		return Parsed{}, fmt.Errorf("--detach only applies to %q", CommandRun)
	}
	return parsed, nil
}

// HelpText renders usage for binaryName.
func HelpText(binaryName string) string {
	return fmt.Sprintf(`Usage:
  %[1]s [--config PATH] [--detach] <command>

Commands:
  run       Start the gesture daemon in the foreground
  status    Print daemon state and navigation counters
  pause     Stop switching workspaces until resumed
  resume    Resume workspace switching
  doctor    Run configuration and environment checks
  version   Print version information
  help      Show this help

Flags:
  --config PATH   Config file path (default: $XDG_CONFIG_HOME/swaytouch/config.jsonc)
  -d, --detach    Run the daemon in the background (run only)
  -h, --help      Show help
  --version       Show version
`, binaryName)
}
