//go:build integration

package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/averycrespi/calc-mcp/internal/results"
	"github.com/averycrespi/calc-mcp/internal/tools"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MCPRequest represents a JSON-RPC 2.0 request
type MCPRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      any    `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

// MCPResponse represents a JSON-RPC 2.0 response
type MCPResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *MCPError       `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC 2.0 error
type MCPError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// MCPServerProcess manages the MCP server process for testing
type MCPServerProcess struct {
	cmd     *exec.Cmd
	stdin   io.WriteCloser
	stdout  io.ReadCloser
	stderr  io.ReadCloser
	scanner *bufio.Scanner
}

// startMCPServer starts the MCP server process
func startMCPServer(t *testing.T, configPath string) *MCPServerProcess {
	cmd := exec.Command("go", "run", ".", "serve", "--config", configPath, "--log-level", "debug")

	stdin, err := cmd.StdinPipe()
	assert.NoError(t, err, "Failed to create stdin pipe")

	stdout, err := cmd.StdoutPipe()
	assert.NoError(t, err, "Failed to create stdout pipe")

	stderr, err := cmd.StderrPipe()
	assert.NoError(t, err, "Failed to create stderr pipe")

	err = cmd.Start()
	assert.NoError(t, err, "Failed to start MCP server")

	go func() {
		stderrScanner := bufio.NewScanner(stderr)
		for stderrScanner.Scan() {
			t.Logf("Server stderr: %s", stderrScanner.Text())
		}
	}()

	scanner := bufio.NewScanner(stdout)

	// Give the server a moment to start
	time.Sleep(100 * time.Millisecond)

	return &MCPServerProcess{
		cmd:     cmd,
		stdin:   stdin,
		stdout:  stdout,
		stderr:  stderr,
		scanner: scanner,
	}
}

// stop terminates the MCP server process
func (s *MCPServerProcess) stop() error {
	s.stdin.Close()
	s.stdout.Close()
	s.stderr.Close()
	return s.cmd.Process.Kill()
}

// sendRequest sends a JSON-RPC request to the server
func (s *MCPServerProcess) sendRequest(t *testing.T, req MCPRequest) MCPResponse {
	reqJSON, err := json.Marshal(req)
	assert.NoError(t, err, "Failed to marshal request")

	_, err = s.stdin.Write(append(reqJSON, '\n'))
	assert.NoError(t, err, "Failed to write request")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan MCPResponse, 1)
	errChan := make(chan error, 1)

	go func() {
		if s.scanner.Scan() {
			line := s.scanner.Text()
			var resp MCPResponse
			if err := json.Unmarshal([]byte(line), &resp); err != nil {
				errChan <- fmt.Errorf("failed to unmarshal response: %v", err)
				return
			}
			done <- resp
		} else {
			if err := s.scanner.Err(); err != nil {
				errChan <- fmt.Errorf("scanner error: %v", err)
			} else {
				errChan <- fmt.Errorf("scanner returned false but no error")
			}
		}
	}()

	select {
	case resp := <-done:
		return resp
	case err := <-errChan:
		assert.Fail(t, "Error reading response", err.Error())
	case <-ctx.Done():
		assert.Fail(t, "Timeout waiting for response")
	}

	return MCPResponse{} // unreachable
}

// parseToolResult parses the JSON content from a tool result
func parseToolResult(t *testing.T, result map[string]any) string {
	content, ok := result["content"]
	assert.True(t, ok, "Expected content in tool result")

	// Handle both string and array format
	if contentStr, ok := content.(string); ok {
		return contentStr
	}

	// Handle array format (MCP content can be an array of content items)
	if contentArray, ok := content.([]interface{}); ok {
		assert.NotEmpty(t, contentArray, "Content array should not be empty")

		// Get first content item
		firstContent := contentArray[0]
		if contentMap, ok := firstContent.(map[string]interface{}); ok {
			if text, ok := contentMap["text"].(string); ok {
				return text
			}
		}
	}

	assert.Fail(t, "Unexpected content format", "Expected string or array, got %T", content)
	return ""
}

// initialize sends the MCP initialize request
func (s *MCPServerProcess) initialize(t *testing.T) {
	req := MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "initialize",
		Params: map[string]any{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]any{
				"tools": map[string]any{},
			},
			"clientInfo": map[string]any{
				"name":    "integration-test",
				"version": "1.0.0",
			},
		},
	}

	resp := s.sendRequest(t, req)
	assert.Nil(t, resp.Error, "MCP initialize should not return an error")
}

// callTool invokes a tool and returns the text of its first content item
func (s *MCPServerProcess) callTool(t *testing.T, id int, name string, arguments map[string]any) string {
	resp := s.sendRequest(t, MCPRequest{
		JSONRPC: "2.0",
		ID:      id,
		Method:  "tools/call",
		Params: map[string]any{
			"name":      name,
			"arguments": arguments,
		},
	})
	require.Nil(t, resp.Error, "Tool %s should not return a JSON-RPC error", name)

	var result map[string]any
	require.NoError(t, json.Unmarshal(resp.Result, &result), "Should be able to unmarshal tool result")
	return parseToolResult(t, result)
}

// TestMCPServerIntegration drives the calculator server over stdio
func TestMCPServerIntegration(t *testing.T) {
	configPath, err := filepath.Abs("../../testdata/config.toml")
	require.NoError(t, err, "Failed to resolve testdata/config.toml")

	server := startMCPServer(t, configPath)
	defer server.stop()

	server.initialize(t)

	t.Run("ListTools", func(t *testing.T) {
		resp := server.sendRequest(t, MCPRequest{
			JSONRPC: "2.0",
			ID:      2,
			Method:  "tools/list",
		})
		assert.Nil(t, resp.Error, "List tools should not return an error")

		var result map[string]any
		err := json.Unmarshal(resp.Result, &result)
		assert.NoError(t, err, "Should be able to unmarshal tools list")

		list, ok := result["tools"].([]any)
		require.True(t, ok, "Expected tools array, got %T", result["tools"])

		found := make(map[string]bool)
		for _, tool := range list {
			if toolMap, ok := tool.(map[string]any); ok {
				if name, ok := toolMap["name"].(string); ok {
					found[name] = true
				}
			}
		}

		for _, expected := range []string{
			tools.ToolPressKeys,
			tools.ToolGetDisplay,
			tools.ToolGetTape,
			tools.ToolNewSession,
			tools.ToolRenderDisplay,
		} {
			assert.True(t, found[expected], "Expected tool %s not found", expected)
		}
	})

	t.Run("PressKeys", func(t *testing.T) {
		content := server.callTool(t, 3, tools.ToolPressKeys, map[string]any{
			"keys": []string{"3", "+", "4", "="},
		})

		var result results.PressKeysToolResult
		require.NoError(t, json.Unmarshal([]byte(content), &result))
		assert.Equal(t, "3+4", result.Display.Expression)
		assert.Equal(t, "7", result.Display.OperandText)
		assert.True(t, result.Display.ResultShown)
		assert.NotEmpty(t, result.Arguments.Session, "Session should default to the client session")
	})

	t.Run("ChainAndTape", func(t *testing.T) {
		server.callTool(t, 4, tools.ToolPressKeys, map[string]any{"keys": "+ 2 ="})

		content := server.callTool(t, 5, tools.ToolGetTape, map[string]any{})
		var result results.GetTapeToolResult
		require.NoError(t, json.Unmarshal([]byte(content), &result))
		require.Len(t, result.Entries, 2)
		assert.Equal(t, "7+2", result.Entries[1].Expression)
		assert.Equal(t, "9", result.Entries[1].Result)
	})

	t.Run("SeparateSession", func(t *testing.T) {
		content := server.callTool(t, 6, tools.ToolNewSession, map[string]any{})
		var created results.SessionToolResult
		require.NoError(t, json.Unmarshal([]byte(content), &created))
		require.NotEmpty(t, created.Session)

		content = server.callTool(t, 7, tools.ToolPressKeys, map[string]any{
			"session": created.Session,
			"keys":    []string{"6", "/", "0", "="},
		})
		var pressed results.PressKeysToolResult
		require.NoError(t, json.Unmarshal([]byte(content), &pressed))
		assert.Contains(t, pressed.Display.Error, "division by zero")

		content = server.callTool(t, 8, tools.ToolGetDisplay, map[string]any{})
		var display results.GetDisplayToolResult
		require.NoError(t, json.Unmarshal([]byte(content), &display))
		assert.Equal(t, "9", display.Display.OperandText, "The client session should be untouched")
	})

	t.Run("RenderDisplay", func(t *testing.T) {
		content := server.callTool(t, 9, tools.ToolRenderDisplay, map[string]any{})
		assert.Equal(t, "7+2 = 9", content)
	})
}
