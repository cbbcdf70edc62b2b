package tools

import (
	"context"

	"github.com/averycrespi/calc-mcp/internal/keypad"
	"github.com/averycrespi/calc-mcp/internal/results"
	"github.com/mark3labs/mcp-go/mcp"
)

// ListKeysTool handles list keys requests
type ListKeysTool struct{}

// NewListKeysTool creates a new list keys tool
func NewListKeysTool() *ListKeysTool {
	return &ListKeysTool{}
}

// GetTool returns the MCP tool definition
func (t *ListKeysTool) GetTool() mcp.Tool {
	return mcp.NewTool(ToolListKeys,
		mcp.WithDescription("Describe the calculator keypad, row by row"),
	)
}

// Handle processes the tool request
func (t *ListKeysTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	toolResult := results.ListKeysToolResult{
		Message: "Keys are pressed with press_keys. Operators take at most two operands; there is no precedence or parentheses.",
	}

	for _, row := range keypad.Layout {
		docs := make([]results.KeyDoc, 0, len(row))
		for _, label := range row {
			key, err := keypad.ParseKey(label)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			docs = append(docs, results.KeyDoc{
				Label:       key.Label,
				Kind:        key.Kind,
				Description: KeyDescription(key),
			})
		}
		toolResult.Rows = append(toolResult.Rows, docs)
	}

	return jsonResult(toolResult)
}
