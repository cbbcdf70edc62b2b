package results

import "github.com/averycrespi/calc-mcp/internal/keypad"

// ListKeysToolResult represents the result of the list_keys tool
type ListKeysToolResult struct {
	Message string     `json:"message"`
	Rows    [][]KeyDoc `json:"rows"`
}

// KeyDoc describes one keypad button
type KeyDoc struct {
	Label       string         `json:"label"`
	Kind        keypad.KeyKind `json:"kind"`
	Description string         `json:"description"`
}
