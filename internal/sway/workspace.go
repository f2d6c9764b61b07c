package sway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
)

// ActiveWorkspace returns the num of the focused workspace.
func (c *Client) ActiveWorkspace(ctx context.Context) (int, error) {
	reply, err := c.Exchange(ctx, MessageGetWorkspaces, nil)
	if err != nil {
		return 0, err
	}
	return focusedWorkspaceNum(reply)
}

// SetActiveWorkspace switches focus to the numbered workspace.
func (c *Client) SetActiveWorkspace(ctx context.Context, num int) error {
	return c.RunCommand(ctx, fmt.Sprintf("workspace number %d", num))
}

// RunCommand executes one sway command and reports success=false replies.
func (c *Client) RunCommand(ctx context.Context, command string) error {
	reply, err := c.Exchange(ctx, MessageRunCommand, []byte(command))
	if err != nil {
		return err
	}
	return commandFailure(command, reply)
}

// focusedWorkspaceNum scans a GET_WORKSPACES reply for the focused entry.
// A non-bool focused field counts as not focused.
func focusedWorkspaceNum(reply json.RawMessage) (int, error) {
	var workspaces []map[string]json.RawMessage
	if err := json.Unmarshal(reply, &workspaces); err != nil {
		return 0, fmt.Errorf("%w: decode workspaces: %v", ErrMalformedResponse, err)
	}

	for _, ws := range workspaces {
		var focused bool
		if err := json.Unmarshal(ws["focused"], &focused); err != nil || !focused {
			continue
		}
		return parseWorkspaceNum(ws["num"])
	}
	return 0, ErrNoFocusedWorkspace
}

func parseWorkspaceNum(raw json.RawMessage) (int, error) {
	if len(raw) == 0 {
		return 0, fmt.Errorf("%w: num is missing", ErrInvalidWorkspaceNum)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var value any
	if err := dec.Decode(&value); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidWorkspaceNum, err)
	}

	number, ok := value.(json.Number)
	if !ok {
		return 0, fmt.Errorf("%w: num is %s", ErrInvalidWorkspaceNum, string(raw))
	}
	num, err := strconv.ParseUint(number.String(), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: num is %s", ErrInvalidWorkspaceNum, number.String())
	}
	return int(num), nil
}

// commandFailure inspects a RUN_COMMAND reply. Sway answers with one result
// object per command; a reply without a success field counts as success.
func commandFailure(command string, reply json.RawMessage) error {
	trimmed := bytes.TrimSpace(reply)

	var results []map[string]json.RawMessage
	switch {
	case len(trimmed) > 0 && trimmed[0] == '[':
		if err := json.Unmarshal(trimmed, &results); err != nil {
			return fmt.Errorf("%w: decode command results: %v", ErrMalformedResponse, err)
		}
	case len(trimmed) > 0 && trimmed[0] == '{':
		var single map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &single); err != nil {
			return fmt.Errorf("%w: decode command result: %v", ErrMalformedResponse, err)
		}
		results = append(results, single)
	default:
		return nil
	}

	for _, result := range results {
		var success bool
		if err := json.Unmarshal(result["success"], &success); err != nil || success {
			continue
		}

		message := "unknown error"
		var text string
		if err := json.Unmarshal(result["error"], &text); err == nil && text != "" {
			message = text
		}
		return &CommandError{Command: command, Message: message}
	}
	return nil
}
