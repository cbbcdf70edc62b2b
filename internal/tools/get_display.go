package tools

import (
	"context"
	"fmt"

	"github.com/averycrespi/calc-mcp/internal/results"
	"github.com/mark3labs/mcp-go/mcp"
)

// GetDisplayTool handles get display requests
type GetDisplayTool struct {
	sessions Sessions
}

// NewGetDisplayTool creates a new get display tool
func NewGetDisplayTool(sessions Sessions) *GetDisplayTool {
	return &GetDisplayTool{sessions: sessions}
}

// GetTool returns the MCP tool definition
func (t *GetDisplayTool) GetTool() mcp.Tool {
	return mcp.NewTool(ToolGetDisplay,
		mcp.WithDescription("Read the calculator's expression and operand display without pressing a key"),
		mcp.WithString("session", mcp.Description(sessionArgDescription)),
	)
}

// Handle processes the tool request
func (t *GetDisplayTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := SessionID(ctx, req)
	s, err := t.sessions.Open(id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to open session: %v", err)), nil
	}

	toolResult := results.GetDisplayToolResult{
		Session: id,
		Display: s.Display(),
	}
	switch {
	case toolResult.Display.Error != "":
		toolResult.Message = "The last calculation failed: " + toolResult.Display.Error
	case toolResult.Display.ResultShown:
		toolResult.Message = "Showing the result " + toolResult.Display.OperandText
	case toolResult.Display.Expression == "":
		toolResult.Message = "The calculator is clear."
	default:
		toolResult.Message = "Entering " + toolResult.Display.Expression
	}

	return jsonResult(toolResult)
}
