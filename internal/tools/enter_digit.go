package tools

import (
	"context"
	"fmt"

	"github.com/averycrespi/calc-mcp/internal/keypad"
	"github.com/mark3labs/mcp-go/mcp"
)

// EnterDigitTool handles enter digit requests
type EnterDigitTool struct {
	sessions Sessions
}

// NewEnterDigitTool creates a new enter digit tool
func NewEnterDigitTool(sessions Sessions) *EnterDigitTool {
	return &EnterDigitTool{sessions: sessions}
}

// GetTool returns the MCP tool definition
func (t *EnterDigitTool) GetTool() mcp.Tool {
	return mcp.NewTool(ToolEnterDigit,
		mcp.WithDescription("Type a digit, 00 or the decimal point into the current operand"),
		mcp.WithString("digit",
			mcp.Required(),
			mcp.Description("One of 0-9, 00 or ."),
			mcp.Enum("0", "1", "2", "3", "4", "5", "6", "7", "8", "9", "00", "."),
		),
		mcp.WithString("session", mcp.Description(sessionArgDescription)),
	)
}

// Handle processes the tool request
func (t *EnterDigitTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	digit, err := ParseKey(req, "digit")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := ValidateKeys([]string{digit}, keypad.KeyDigit); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid digit: %v", err)), nil
	}

	return pressKeysResult(ctx, t.sessions, req, ToolEnterDigit, []string{digit})
}
