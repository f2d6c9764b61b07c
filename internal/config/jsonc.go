package config

import (
	"errors"
	"strings"
)

var errUnterminatedBlockComment = errors.New("unterminated block comment in JSONC")

// normalizeJSONC blanks out comments and trailing commas so the result is plain
// JSON. Every removed byte becomes a space (newlines are kept), which keeps
// decoder offsets pointing at the original line and column.
func normalizeJSONC(content string) (string, error) {
	out := []byte(content)

	const (
		stateCode = iota
		stateString
		stateLineComment
		stateBlockComment
	)

	state := stateCode
	escaped := false
	for i := 0; i < len(out); i++ {
		ch := out[i]
		switch state {
		case stateString:
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				state = stateCode
			}
		case stateLineComment:
			if ch == '\n' || ch == '\r' {
				state = stateCode
				continue
			}
			out[i] = ' '
		case stateBlockComment:
			if ch == '*' && i+1 < len(out) && out[i+1] == '/' {
				out[i], out[i+1] = ' ', ' '
				i++
				state = stateCode
				continue
			}
			if ch != '\n' && ch != '\r' && ch != '\t' {
				out[i] = ' '
			}
		default:
			switch {
			case ch == '"':
				state = stateString
			case ch == '/' && i+1 < len(out) && out[i+1] == '/':
				out[i], out[i+1] = ' ', ' '
				i++
				state = stateLineComment
			case ch == '/' && i+1 < len(out) && out[i+1] == '*':
				out[i], out[i+1] = ' ', ' '
				i++
				state = stateBlockComment
			}
		}
	}
	if state == stateBlockComment {
		return "", errUnterminatedBlockComment
	}

	return blankTrailingCommas(string(out)), nil
}

// blankTrailingCommas removes commas that directly precede a closing bracket.
// Input must already be free of comments.
func blankTrailingCommas(content string) string {
	out := []byte(content)
	inString, escaped := false, false

	for i, ch := range out {
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		if ch == '"' {
			inString = true
			continue
		}
		if ch != ',' {
			continue
		}
		rest := strings.TrimLeft(content[i+1:], " \t\r\n")
		if rest != "" && (rest[0] == '}' || rest[0] == ']') {
			out[i] = ' '
		}
	}
	return string(out)
}
