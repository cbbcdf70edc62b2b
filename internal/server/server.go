package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/averycrespi/calc-mcp/internal/render"
	"github.com/averycrespi/calc-mcp/internal/session"
	"github.com/averycrespi/calc-mcp/internal/tools"
	"github.com/averycrespi/calc-mcp/pkg/project"
	"github.com/averycrespi/calc-mcp/pkg/types"

	"github.com/mark3labs/mcp-go/server"
)

var _ types.Server = &CalcServer{}

// CalcServer represents the calculator MCP server
type CalcServer struct {
	mcpServer *server.MCPServer
	sessions  *session.Manager
	renderer  *render.Renderer
	config    *types.Config

	stdin  io.Reader
	stdout io.Writer
}

// Option configures a CalcServer
type Option func(*CalcServer)

// WithIO replaces the stdio streams the server speaks over
func WithIO(in io.Reader, out io.Writer) Option {
	return func(s *CalcServer) {
		s.stdin = in
		s.stdout = out
	}
}

// NewCalcServer creates a new calculator MCP server with every tool registered
func NewCalcServer(config *types.Config, opts ...Option) (*CalcServer, error) {
	renderer, err := render.NewRenderer(config.Render)
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	s := &CalcServer{
		mcpServer: server.NewMCPServer(
			project.Name,
			project.Version,
			server.WithToolCapabilities(true),
			server.WithRecovery(),
		),
		sessions: session.NewManager(config.MaxSessions, config.MaxTape),
		renderer: renderer,
		config:   config,
		stdin:    os.Stdin,
		stdout:   os.Stdout,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.registerTools()
	return s, nil
}

func (s *CalcServer) registerTools() {
	for _, tool := range tools.All(s.sessions, s.renderer) {
		s.mcpServer.AddTool(tool.GetTool(), tool.Handle)
		slog.Debug("Registered MCP tool", "tool", tool.GetTool().Name)
	}
}

// MCPServer exposes the underlying MCP server
func (s *CalcServer) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// Sessions exposes the calculator sessions
func (s *CalcServer) Sessions() tools.Sessions {
	return s.sessions
}

// Serve speaks MCP over stdio until the input closes or ctx is cancelled
func (s *CalcServer) Serve(ctx context.Context) error {
	slog.Info("Starting calculator MCP server",
		"name", project.Name,
		"version", project.Version,
		"max_sessions", s.config.MaxSessions,
		"max_tape", s.config.MaxTape,
	)

	stdio := server.NewStdioServer(s.mcpServer)
	stdio.SetErrorLogger(log.New(os.Stderr, "", log.LstdFlags))

	err := stdio.Listen(ctx, s.stdin, s.stdout)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("failed to serve MCP server: %w", err)
	}

	slog.Info("Calculator MCP server stopped", "sessions", len(s.sessions.List()))
	return nil
}
