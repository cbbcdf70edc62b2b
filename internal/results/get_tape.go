package results

import "github.com/averycrespi/calc-mcp/internal/keypad"

// GetTapeToolResult represents the result of the get_tape tool
type GetTapeToolResult struct {
	Message string             `json:"message"`
	Session string             `json:"session"`
	Entries []keypad.TapeEntry `json:"entries,omitempty"`
}
