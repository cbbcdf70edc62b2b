package tools

import (
	"context"
	"fmt"

	"github.com/averycrespi/calc-mcp/internal/results"
	"github.com/mark3labs/mcp-go/mcp"
)

// GetTapeTool handles get tape requests
type GetTapeTool struct {
	sessions Sessions
}

// NewGetTapeTool creates a new get tape tool
func NewGetTapeTool(sessions Sessions) *GetTapeTool {
	return &GetTapeTool{sessions: sessions}
}

// GetTool returns the MCP tool definition
func (t *GetTapeTool) GetTool() mcp.Tool {
	return mcp.NewTool(ToolGetTape,
		mcp.WithDescription("List the calculations completed in a session, oldest first"),
		mcp.WithString("session", mcp.Description(sessionArgDescription)),
	)
}

// Handle processes the tool request
func (t *GetTapeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := SessionID(ctx, req)
	s, err := t.sessions.Open(id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to open session: %v", err)), nil
	}

	toolResult := results.GetTapeToolResult{
		Session: id,
		Entries: s.Tape(),
	}
	if len(toolResult.Entries) == 0 {
		toolResult.Message = "No calculations yet."
	} else {
		toolResult.Message = fmt.Sprintf("Found %d calculation(s).", len(toolResult.Entries))
	}

	return jsonResult(toolResult)
}
