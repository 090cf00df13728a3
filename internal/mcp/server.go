package mcp

import (
	"context"
	"errors"
	"fmt"

	"bagcalc/internal/config"
	"bagcalc/internal/engine"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

// Server holds the state for the MCP server.
type Server struct {
	cfg       *config.AppConfig
	engine    *engine.Engine
	mcpServer *mcp.Server
}

// NewServer creates a new MCP server with the bag tools registered.
func NewServer(cfg *config.AppConfig, eng *engine.Engine, version string) *Server {
	s := &Server{cfg: cfg, engine: eng}
	s.mcpServer = mcp.NewServer(&mcp.Implementation{Name: "bagcalc", Version: version}, nil)
	s.registerTools()
	return s
}

// Serve runs the MCP protocol over stdio until ctx is cancelled or the client disconnects.
func (s *Server) Serve(ctx context.Context) error {
	return s.serveWithTransport(ctx, &mcp.StdioTransport{})
}

func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	log.Info().Msg("MCP server listening")
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, ProbabilityTool(), s.probabilityHandler())
	mcp.AddTool(s.mcpServer, BagInfoTool(), s.bagInfoHandler())
}
