package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// EvaluateTool handles evaluate requests
type EvaluateTool struct {
	sessions Sessions
}

// NewEvaluateTool creates a new evaluate tool
func NewEvaluateTool(sessions Sessions) *EvaluateTool {
	return &EvaluateTool{sessions: sessions}
}

// GetTool returns the MCP tool definition
func (t *EvaluateTool) GetTool() mcp.Tool {
	return mcp.NewTool(ToolEvaluate,
		mcp.WithDescription("Press = to run the pending operation. The result becomes the first operand of the next expression."),
		mcp.WithString("session", mcp.Description(sessionArgDescription)),
	)
}

// Handle processes the tool request
func (t *EvaluateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return pressKeysResult(ctx, t.sessions, req, ToolEvaluate, []string{"="})
}
