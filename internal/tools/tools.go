package tools

import (
	"context"

	"github.com/averycrespi/calc-mcp/internal/session"
	"github.com/mark3labs/mcp-go/mcp"
)

var _ Sessions = &session.Manager{}

// Sessions is the session store the tools act on
type Sessions interface {
	Open(id string) (*session.Session, error)
	New() (*session.Session, error)
	Close(id string) error
	List() []string
}

// Tool is an MCP tool definition with its handler
type Tool interface {
	GetTool() mcp.Tool
	Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

// All returns every calculator tool
func All(sessions Sessions, renderer DisplayRenderer) []Tool {
	return []Tool{
		NewPressKeysTool(sessions),
		NewEnterDigitTool(sessions),
		NewSelectOperatorTool(sessions),
		NewEvaluateTool(sessions),
		NewClearTool(sessions),
		NewGetDisplayTool(sessions),
		NewGetTapeTool(sessions),
		NewNewSessionTool(sessions),
		NewCloseSessionTool(sessions),
		NewListKeysTool(),
		NewRenderDisplayTool(sessions, renderer),
	}
}
