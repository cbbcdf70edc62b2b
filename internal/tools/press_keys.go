package tools

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
)

// PressKeysTool handles press keys requests
type PressKeysTool struct {
	sessions Sessions
}

// NewPressKeysTool creates a new press keys tool
func NewPressKeysTool(sessions Sessions) *PressKeysTool {
	return &PressKeysTool{sessions: sessions}
}

// GetTool returns the MCP tool definition
func (t *PressKeysTool) GetTool() mcp.Tool {
	return mcp.NewTool(ToolPressKeys,
		mcp.WithDescription("Press calculator keys in order, returning the expression and operand display. "+
			"Keys: 0-9, 00, ., +, -, *, /, EX (power), SR (square root), = and C (clear). "+
			"Keys that are not valid at that point, such as a second operator, are ignored."),
		mcp.WithArray("keys",
			mcp.Required(),
			mcp.Description("Key labels to press, e.g. [\"3\", \"+\", \"4\", \"=\"]"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithString("session", mcp.Description(sessionArgDescription)),
	)
}

// Handle processes the tool request
func (t *PressKeysTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	keys, err := ParseKeys(req)
	if err != nil {
		slog.Debug("MCP tool called with invalid keys parameter", "tool", ToolPressKeys, "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := ValidateKeys(keys); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid key sequence: %v", err)), nil
	}

	return pressKeysResult(ctx, t.sessions, req, ToolPressKeys, keys)
}
