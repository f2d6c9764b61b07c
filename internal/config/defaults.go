package config

// Default returns the canonical runtime configuration used when no file is present.
func Default() Config {
	discovery := "sway --get-socketpath"
	debugEvents := "libinput debug-events"

	return Config{
		IPC: IPCConfig{
			TimeoutMS: 2000,
			Reconnect: true,
		},
		Discovery: CommandConfig{Raw: discovery, Argv: mustParseArgv(discovery)},
		Input: InputConfig{
			Command:   CommandConfig{Raw: debugEvents, Argv: mustParseArgv(debugEvents)},
			DeviceDir: "/dev/input",
		},
		Feedback: FeedbackConfig{
			Sound:           false,
			Notify:          false,
			AppName:         "swaytouch",
			NotifyTimeoutMS: 900,
		},
		Log: LogConfig{Level: "info"},
	}
}
