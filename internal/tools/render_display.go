package tools

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"

	"github.com/averycrespi/calc-mcp/internal/keypad"
	"github.com/mark3labs/mcp-go/mcp"
)

// DisplayRenderer encodes a display snapshot as an image
type DisplayRenderer interface {
	PNG(d keypad.Display) ([]byte, error)
}

// RenderDisplayTool handles render display requests
type RenderDisplayTool struct {
	sessions Sessions
	renderer DisplayRenderer
}

// NewRenderDisplayTool creates a new render display tool
func NewRenderDisplayTool(sessions Sessions, renderer DisplayRenderer) *RenderDisplayTool {
	return &RenderDisplayTool{sessions: sessions, renderer: renderer}
}

// GetTool returns the MCP tool definition
func (t *RenderDisplayTool) GetTool() mcp.Tool {
	return mcp.NewTool(ToolRenderDisplay,
		mcp.WithDescription("Render the calculator face, with its display and keypad, as a PNG image"),
		mcp.WithString("session", mcp.Description(sessionArgDescription)),
	)
}

// Handle processes the tool request
func (t *RenderDisplayTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := SessionID(ctx, req)
	s, err := t.sessions.Open(id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to open session: %v", err)), nil
	}

	display := s.Display()
	data, err := t.renderer.PNG(display)
	if err != nil {
		slog.Error("Failed to render display", "session", id, "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("Failed to render display: %v", err)), nil
	}

	text := display.OperandText
	if display.Expression != "" {
		text = fmt.Sprintf("%s = %s", display.Expression, display.OperandText)
	}
	return mcp.NewToolResultImage(text, base64.StdEncoding.EncodeToString(data), "image/png"), nil
}
