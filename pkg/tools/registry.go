// Package tools provides the cab booking MCP tool implementations.
package tools

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jaiwanth-mmt/MCP-POC/pkg/cabs"
	"github.com/jaiwanth-mmt/MCP-POC/pkg/config"
	"github.com/jaiwanth-mmt/MCP-POC/pkg/location"
)

// Registry holds the MCP tool registrations for the cab booking service
// along with the upstream clients the handlers share.
type Registry struct {
	logger *slog.Logger
	engine *location.Engine
	cabs   *cabs.Client
}

// NewRegistry creates a tool registry with upstream clients built from
// the given settings.
func NewRegistry(cfg *config.Settings, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		logger: logger,
		engine: location.NewEngine(cfg, logger),
		cabs:   cabs.NewClient(cfg, logger),
	}
}

// ToolDefinition represents a cab booking MCP tool definition.
type ToolDefinition struct {
	Name        string
	Description string
	Tool        mcp.Tool
	Handler     func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

// GetToolDefinitions returns all cab booking MCP tool definitions.
func (r *Registry) GetToolDefinitions() []ToolDefinition {
	return []ToolDefinition{
		{
			Name:        "search_cabs",
			Description: "Search available cabs between source and destination",
			Tool:        SearchCabsTool(),
			Handler:     r.HandleSearchCabs,
		},
		{
			Name:        "hold_cab",
			Description: "Reserve a selected cab with passenger and contact details",
			Tool:        HoldCabTool(),
			Handler:     r.HandleHoldCab,
		},
	}
}

// RegisterTools registers all tools with the MCP server.
func (r *Registry) RegisterTools(mcpServer *server.MCPServer) {
	for _, def := range r.GetToolDefinitions() {
		r.logger.Info("registering tool", "name", def.Name)
		mcpServer.AddTool(def.Tool, def.Handler)
	}
}
