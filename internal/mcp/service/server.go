// Package service exposes kingdom management to AI assistants over the
// Model Context Protocol. Tools run against the same services as the
// HTTP API, so everything they do lands in the kingdom's event journal.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/demesne/internal/harness"
	kingdomservice "github.com/louisbranch/demesne/internal/kingdom/service"
	resolutionservice "github.com/louisbranch/demesne/internal/resolution/service"
	"github.com/louisbranch/demesne/internal/storage"
	turnservice "github.com/louisbranch/demesne/internal/turn/service"
)

const (
	serverName    = "demesne"
	serverVersion = "0.1.0"
)

// Server adapts the kingdom services to MCP.
type Server struct {
	mcpServer *mcp.Server
}

// New wires the kingdom services over the given store and registers the
// tool set.
func New(store storage.Store) *Server {
	kingdoms := kingdomservice.New(store)
	turns := turnservice.New(store)
	resolutions := resolutionservice.New(store)
	runner := harness.NewRunner(resolutions, turns, store)

	server := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)

	mcp.AddTool(server, KingdomStateTool(), KingdomStateHandler(kingdoms))
	mcp.AddTool(server, AdvancePhaseTool(), AdvancePhaseHandler(turns))
	mcp.AddTool(server, ExecuteCheckTool(), ExecuteCheckHandler(resolutions))
	mcp.AddTool(server, RerollCheckTool(), RerollCheckHandler(resolutions))
	mcp.AddTool(server, ApplyOutcomeTool(), ApplyOutcomeHandler(resolutions))
	mcp.AddTool(server, CancelOutcomeTool(), CancelOutcomeHandler(resolutions))
	mcp.AddTool(server, ListPendingTool(), ListPendingHandler(resolutions))
	mcp.AddTool(server, InjectIncidentTool(), InjectIncidentHandler(runner))

	return &Server{mcpServer: server}
}

// Serve runs the MCP server on stdio and blocks until it stops or the
// context ends.
func (s *Server) Serve(ctx context.Context) error {
	return s.serveWithTransport(ctx, &mcp.StdioTransport{})
}

func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}
