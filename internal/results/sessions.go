package results

// SessionToolResult represents the result of the new_session and
// close_session tools
type SessionToolResult struct {
	Message  string   `json:"message"`
	Session  string   `json:"session"`
	Sessions []string `json:"sessions"`
}
