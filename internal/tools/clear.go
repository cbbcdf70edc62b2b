package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// ClearTool handles clear requests
type ClearTool struct {
	sessions Sessions
}

// NewClearTool creates a new clear tool
func NewClearTool(sessions Sessions) *ClearTool {
	return &ClearTool{sessions: sessions}
}

// GetTool returns the MCP tool definition
func (t *ClearTool) GetTool() mcp.Tool {
	return mcp.NewTool(ToolClear,
		mcp.WithDescription("Press C to reset the calculator display and operands"),
		mcp.WithString("session", mcp.Description(sessionArgDescription)),
	)
}

// Handle processes the tool request
func (t *ClearTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return pressKeysResult(ctx, t.sessions, req, ToolClear, []string{"C"})
}
