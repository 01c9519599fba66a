// Package mcp exposes the transform pipeline as Model Context Protocol
// tools over stdio.
package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/gnana997/react2ts/pkg/format"
	"github.com/gnana997/react2ts/pkg/mcplog"
	"github.com/gnana997/react2ts/pkg/parser"
	"github.com/gnana997/react2ts/pkg/proptypes"
)

const serverName = "react2ts"

// Config holds the optional collaborators of a Server.
type Config struct {
	Vocabulary proptypes.Vocabulary
	// Runner formats output when a call asks for it; nil disables formatting.
	Runner *format.Runner
	// CallLog records every tool call; nil disables it.
	CallLog *mcplog.Logger
	Logger  *slog.Logger
	Version string
}

// Server implements the MCP server, exposing the conversion passes as tools.
type Server struct {
	mcpServer *server.MCPServer
	pm        *parser.ParserManager
	vocab     proptypes.Vocabulary
	runner    *format.Runner
	callLog   *mcplog.Logger
	logger    *slog.Logger
}

// NewServer creates a new MCP server that parses with pm.
func NewServer(pm *parser.ParserManager, cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}

	s := &Server{
		pm:      pm,
		vocab:   cfg.Vocabulary.WithDefaults(),
		runner:  cfg.Runner,
		callLog: cfg.CallLog,
		logger:  cfg.Logger,
	}

	opts := []server.ServerOption{
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	}
	if s.callLog != nil {
		opts = append(opts, server.WithToolHandlerMiddleware(s.loggingMiddleware()))
	}

	s.mcpServer = server.NewMCPServer(serverName, cfg.Version, opts...)
	s.mcpServer.AddTools(s.tools()...)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	s.logger.Info("MCP server listening on stdio", "tools", len(s.tools()))
	return server.ServeStdio(s.mcpServer)
}
