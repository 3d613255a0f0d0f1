// Package server provides the MCP server implementation for the Google Maps
// integration.
package server

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/mapgrid/gmapsmcp/pkg/config"
	"github.com/mapgrid/gmapsmcp/pkg/gmaps"
	"github.com/mapgrid/gmapsmcp/pkg/tools"
	"github.com/mapgrid/gmapsmcp/pkg/version"
)

// ServerName is the name of the MCP server
const ServerName = "gmaps-mcp-server"

// Server encapsulates the MCP server with the Google Maps tools.
type Server struct {
	srv *server.MCPServer
}

// New creates a Google Maps MCP server with all tools registered. The
// configuration must carry a valid credential.
func New(cfg config.Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := slog.Default()
	logger.Info("initializing Google Maps MCP server",
		"name", ServerName,
		"version", version.BuildVersion)

	srv := server.NewMCPServer(
		ServerName,
		version.BuildVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	client := gmaps.NewClient(cfg.APIKey, gmaps.WithLogger(logger))
	registry := tools.NewRegistry(client, logger)
	registry.RegisterTools(srv)

	return &Server{srv: srv}, nil
}

// Run starts the MCP server using stdin/stdout for communication.
func (s *Server) Run() error {
	return server.ServeStdio(s.srv)
}
