package tools

import (
	"context"
	"fmt"

	"github.com/averycrespi/calc-mcp/internal/keypad"
	"github.com/mark3labs/mcp-go/mcp"
)

// SelectOperatorTool handles select operator requests
type SelectOperatorTool struct {
	sessions Sessions
}

// NewSelectOperatorTool creates a new select operator tool
func NewSelectOperatorTool(sessions Sessions) *SelectOperatorTool {
	return &SelectOperatorTool{sessions: sessions}
}

// GetTool returns the MCP tool definition
func (t *SelectOperatorTool) GetTool() mcp.Tool {
	return mcp.NewTool(ToolSelectOperator,
		mcp.WithDescription("Select an operator. Binary operators wait for the second operand; "+
			"SR (square root) evaluates immediately. Ignored when an operator is already pending."),
		mcp.WithString("operator",
			mcp.Required(),
			mcp.Description("One of +, -, *, /, EX (power) or SR (square root)"),
		),
		mcp.WithString("session", mcp.Description(sessionArgDescription)),
	)
}

// Handle processes the tool request
func (t *SelectOperatorTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	operator, err := ParseKey(req, "operator")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := ValidateKeys([]string{operator}, keypad.KeyOperator, keypad.KeyUnary); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid operator: %v", err)), nil
	}

	return pressKeysResult(ctx, t.sessions, req, ToolSelectOperator, []string{operator})
}
