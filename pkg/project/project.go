package project

// Name and Version identify the server to MCP clients
const (
	Name    = "calc-mcp"
	Version = "0.1.0"
)
