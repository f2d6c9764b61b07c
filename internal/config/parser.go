package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

type fileConfig struct {
	IPC       *fileIPC      `json:"ipc"`
	Discovery *fileCommand  `json:"discovery"`
	Input     *fileInput    `json:"input"`
	Feedback  *fileFeedback `json:"feedback"`
	Health    *fileHealth   `json:"health"`
	Log       *fileLog      `json:"log"`
}

type fileIPC struct {
	Socket    *string `json:"socket"`
	TimeoutMS *int    `json:"timeout_ms"`
	Reconnect *bool   `json:"reconnect"`
}

type fileCommand struct {
	Command *string `json:"command"`
}

type fileInput struct {
	Command   *string `json:"command"`
	DeviceDir *string `json:"device_dir"`
}

type fileFeedback struct {
	Sound           *bool   `json:"sound"`
	Notify          *bool   `json:"notify"`
	AppName         *string `json:"app_name"`
	NotifyTimeoutMS *int    `json:"notify_timeout_ms"`
}

type fileHealth struct {
	Socket *string `json:"socket"`
}

type fileLog struct {
	Level *string `json:"level"`
}

// Parse reads JSONC configuration content on top of base. Empty content
// yields base unchanged.
func Parse(content string, base Config) (Config, []Warning, error) {
	if strings.TrimSpace(content) == "" {
		warnings, err := Validate(base)
		if err != nil {
			return Config{}, nil, err
		}
		return base, warnings, nil
	}

	normalized, err := normalizeJSONC(content)
	if err != nil {
		return Config{}, nil, err
	}

	decoder := json.NewDecoder(strings.NewReader(normalized))
	decoder.DisallowUnknownFields()

	var payload fileConfig
	if err := decoder.Decode(&payload); err != nil {
		return Config{}, nil, wrapJSONDecodeError(normalized, err)
	}
	if err := ensureSingleJSONValue(decoder); err != nil {
		return Config{}, nil, wrapJSONDecodeError(normalized, err)
	}

	cfg := base
	if err := payload.applyTo(&cfg); err != nil {
		return Config{}, nil, err
	}

	warnings, err := Validate(cfg)
	if err != nil {
		return Config{}, nil, err
	}
	return cfg, warnings, nil
}

func (payload fileConfig) applyTo(cfg *Config) error {
	if ipc := payload.IPC; ipc != nil {
		if ipc.Socket != nil {
			cfg.IPC.Socket = strings.TrimSpace(*ipc.Socket)
		}
		if ipc.TimeoutMS != nil {
			cfg.IPC.TimeoutMS = *ipc.TimeoutMS
		}
		if ipc.Reconnect != nil {
			cfg.IPC.Reconnect = *ipc.Reconnect
		}
	}

	if payload.Discovery != nil && payload.Discovery.Command != nil {
		command, err := commandFromRaw(*payload.Discovery.Command)
		if err != nil {
			return fmt.Errorf("invalid discovery.command: %w", err)
		}
		cfg.Discovery = command
	}

	if input := payload.Input; input != nil {
		if input.Command != nil {
			command, err := commandFromRaw(*input.Command)
			if err != nil {
				return fmt.Errorf("invalid input.command: %w", err)
			}
			cfg.Input.Command = command
		}
		if input.DeviceDir != nil {
			cfg.Input.DeviceDir = strings.TrimSpace(*input.DeviceDir)
		}
	}

	if feedback := payload.Feedback; feedback != nil {
		if feedback.Sound != nil {
			cfg.Feedback.Sound = *feedback.Sound
		}
		if feedback.Notify != nil {
			cfg.Feedback.Notify = *feedback.Notify
		}
		if feedback.AppName != nil {
			cfg.Feedback.AppName = strings.TrimSpace(*feedback.AppName)
		}
		if feedback.NotifyTimeoutMS != nil {
			cfg.Feedback.NotifyTimeoutMS = *feedback.NotifyTimeoutMS
		}
	}

	if payload.Health != nil && payload.Health.Socket != nil {
		cfg.Health.Socket = strings.TrimSpace(*payload.Health.Socket)
	}

	if payload.Log != nil && payload.Log.Level != nil {
		cfg.Log.Level = strings.ToLower(strings.TrimSpace(*payload.Log.Level))
	}

	return nil
}

func commandFromRaw(raw string) (CommandConfig, error) {
	argv, err := parseArgv(raw)
	if err != nil {
		return CommandConfig{}, err
	}
	return CommandConfig{Raw: raw, Argv: argv}, nil
}

func ensureSingleJSONValue(decoder *json.Decoder) error {
	var extra struct{}
	err := decoder.Decode(&extra)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err == nil {
		return fmt.Errorf("multiple JSON values are not allowed")
	}
	return err
}

func wrapJSONDecodeError(content string, err error) error {
	var offset int64 = -1

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr):
		offset = syntaxErr.Offset
	case errors.As(err, &typeErr):
		offset = typeErr.Offset
	}
	if offset < 0 {
		return err
	}

	line, col := offsetToLineCol(content, offset)
	return fmt.Errorf("line %d column %d: %w", line, col, err)
}

func offsetToLineCol(content string, offset int64) (int, int) {
	if offset <= 0 {
		return 1, 1
	}

	limit := min(int(offset), len(content))
	line, col := 1, 1
	for i := 0; i < limit-1; i++ {
		if content[i] == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}
