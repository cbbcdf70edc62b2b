package tools

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/averycrespi/calc-mcp/internal/results"
	"github.com/mark3labs/mcp-go/mcp"
)

// NewSessionTool handles new session requests
type NewSessionTool struct {
	sessions Sessions
}

// NewNewSessionTool creates a new new session tool
func NewNewSessionTool(sessions Sessions) *NewSessionTool {
	return &NewSessionTool{sessions: sessions}
}

// GetTool returns the MCP tool definition
func (t *NewSessionTool) GetTool() mcp.Tool {
	return mcp.NewTool(ToolNewSession,
		mcp.WithDescription("Create an independent calculator and return its session ID"),
	)
}

// Handle processes the tool request
func (t *NewSessionTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s, err := t.sessions.New()
	if err != nil {
		slog.Debug("Failed to create session", "tool", ToolNewSession, "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create session: %v", err)), nil
	}

	return jsonResult(results.SessionToolResult{
		Message:  "Created session " + s.ID + ". Pass it as the session argument.",
		Session:  s.ID,
		Sessions: t.sessions.List(),
	})
}

// CloseSessionTool handles close session requests
type CloseSessionTool struct {
	sessions Sessions
}

// NewCloseSessionTool creates a new close session tool
func NewCloseSessionTool(sessions Sessions) *CloseSessionTool {
	return &CloseSessionTool{sessions: sessions}
}

// GetTool returns the MCP tool definition
func (t *CloseSessionTool) GetTool() mcp.Tool {
	return mcp.NewTool(ToolCloseSession,
		mcp.WithDescription("Discard a calculator session and its tape"),
		mcp.WithString("session", mcp.Required(), mcp.Description("Session ID to close")),
	)
}

// Handle processes the tool request
func (t *CloseSessionTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := mcp.ParseString(req, "session", "")
	if id == "" {
		return mcp.NewToolResultError("session parameter is required"), nil
	}

	if err := t.sessions.Close(id); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to close session: %v", err)), nil
	}

	return jsonResult(results.SessionToolResult{
		Message:  "Closed session " + id + ".",
		Session:  id,
		Sessions: t.sessions.List(),
	})
}
