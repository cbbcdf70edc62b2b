package results

import "github.com/averycrespi/calc-mcp/internal/keypad"

// GetDisplayToolResult represents the result of the get_display tool
type GetDisplayToolResult struct {
	Message string         `json:"message"`
	Session string         `json:"session"`
	Display keypad.Display `json:"display"`
}
