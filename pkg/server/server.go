// Package server provides the MCP server implementation for the cab
// booking integration.
package server

import (
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/jaiwanth-mmt/MCP-POC/pkg/config"
	"github.com/jaiwanth-mmt/MCP-POC/pkg/tools"
	"github.com/jaiwanth-mmt/MCP-POC/pkg/tools/prompts"
)

const (
	// ServerName is the name of the MCP server
	ServerName = "cab-mcp-server"

	// ServerVersion is the version of the MCP server
	ServerVersion = "0.1.0"
)

// Server encapsulates the MCP server with the cab booking tools.
type Server struct {
	srv *server.MCPServer
}

// NewServer creates a new cab booking MCP server with all tools and
// prompts registered.
func NewServer(cfg *config.Settings) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil settings")
	}

	logger := slog.Default()
	logger.Info("initializing cab booking MCP server",
		"name", ServerName,
		"version", ServerVersion)

	// Create MCP server with options
	srv := server.NewMCPServer(
		ServerName,
		ServerVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	// Create tool registry and register all tools
	registry := tools.NewRegistry(cfg, logger)
	registry.RegisterTools(srv)

	// Register the booking guidance prompts
	prompts.RegisterBookingPrompts(srv)

	return &Server{srv: srv}, nil
}

// Run starts the MCP server using stdin/stdout for communication.
func (s *Server) Run() error {
	return server.ServeStdio(s.srv)
}
