package results

import "github.com/averycrespi/calc-mcp/internal/keypad"

// PressKeysToolResult represents the result of the press_keys tool and of the
// single-event tools built on it
type PressKeysToolResult struct {
	Message   string            `json:"message"`
	Arguments PressKeysToolArgs `json:"arguments"`
	Presses   []KeyPress        `json:"presses"`
	Display   keypad.Display    `json:"display"`
}

// PressKeysToolArgs represents the input arguments for the press_keys tool
type PressKeysToolArgs struct {
	Session string   `json:"session"`
	Keys    []string `json:"keys"`
}

// KeyPress reports the outcome of a single key
type KeyPress struct {
	Key      string `json:"key"`
	Accepted bool   `json:"accepted"`
	Error    string `json:"error,omitempty"`
}
