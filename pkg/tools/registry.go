package tools

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mapgrid/gmapsmcp/pkg/gmaps"
)

// MapsAPI is the upstream client surface the tools depend on. *gmaps.Client
// implements it; tests substitute a recording fake.
type MapsAPI interface {
	Geocode(ctx context.Context, address string) gmaps.Outcome[[]gmaps.GeocodeResult]
	PlaceByID(ctx context.Context, placeID string) gmaps.Outcome[gmaps.PlaceDetails]
	PlaceByText(ctx context.Context, query string) gmaps.Outcome[gmaps.PlaceDetails]
	DistanceMatrix(ctx context.Context, origins, destinations []string, mode gmaps.TravelMode) gmaps.Outcome[gmaps.DistanceMatrix]
}

var _ MapsAPI = (*gmaps.Client)(nil)

// ToolDefinition binds a tool's catalog entry to its argument schema and
// handler.
type ToolDefinition struct {
	Name        string
	Description string
	Tool        mcp.Tool
	Schema      Schema
	Handler     func(ctx context.Context, args Args) *mcp.CallToolResult
}

// Registry holds the Google Maps MCP tool catalog and dispatches invocations.
// It carries no mutable state, so concurrent invocations are safe.
type Registry struct {
	api    MapsAPI
	logger *slog.Logger
	defs   []ToolDefinition
}

// NewRegistry creates a registry dispatching to the given upstream client.
func NewRegistry(api MapsAPI, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Registry{api: api, logger: logger}
	r.defs = []ToolDefinition{
		{
			Name:        ToolGeocode,
			Description: "Convert an address or place name to geographic coordinates",
			Tool:        GeocodeTool(),
			Schema:      geocodeSchema(),
			Handler:     r.handleGeocode,
		},
		{
			Name:        ToolPlaceDetails,
			Description: "Look up details for a place by ID or text query",
			Tool:        PlaceDetailsTool(),
			Schema:      placeDetailsSchema(),
			Handler:     r.handlePlaceDetails,
		},
		{
			Name:        ToolDistanceMatrix,
			Description: "Compute travel distance and time between origins and destinations",
			Tool:        DistanceMatrixTool(),
			Schema:      distanceMatrixSchema(),
			Handler:     r.handleDistanceMatrix,
		},
	}
	return r
}

// Definitions returns the tool catalog in registration order.
func (r *Registry) Definitions() []ToolDefinition {
	return r.defs
}

// Invoke dispatches one tool call: catalog lookup, argument validation,
// upstream call and rendering. Every path, including a panic in a handler,
// terminates in a well-formed result; nothing escapes to the transport.
func (r *Registry) Invoke(ctx context.Context, name string, rawArgs map[string]any) (res *mcp.CallToolResult) {
	logger := r.logger.With("tool", name)
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("tool invocation panicked", "panic", rec)
			res = errorResult(fmt.Sprintf("internal error while handling tool %q", name))
		}
	}()

	var def *ToolDefinition
	for i := range r.defs {
		if r.defs[i].Name == name {
			def = &r.defs[i]
			break
		}
	}
	if def == nil {
		logger.Warn("unknown tool requested")
		return errorResult(fmt.Sprintf("unknown tool %q", name))
	}

	args, err := def.Schema.Validate(rawArgs)
	if err != nil {
		logger.Warn("argument validation failed", "error", err)
		return errorResult(err.Error())
	}

	return def.Handler(ctx, args)
}

// RegisterTools registers the catalog with the MCP server, routing every
// call through Invoke.
func (r *Registry) RegisterTools(mcpServer *server.MCPServer) {
	for _, def := range r.defs {
		name := def.Name
		r.logger.Info("registering tool", "name", name)
		mcpServer.AddTool(def.Tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return r.Invoke(ctx, name, req.Params.Arguments), nil
		})
	}
}
