package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("gymtracker", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("Gym tracker. List exercises, read set history with the best set marked, log new sets and compare two sets. "+
			"Weights may be in kg or lbs; assisted exercises rank lower assistance as better."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolListExercises, Handler: h.listExercises},
		server.ServerTool{Tool: toolGetExerciseHistory, Handler: h.getExerciseHistory},
		server.ServerTool{Tool: toolGetBestSet, Handler: h.getBestSet},
		server.ServerTool{Tool: toolLogSet, Handler: h.logSet},
		server.ServerTool{Tool: toolAddExercise, Handler: h.addExercise},
		server.ServerTool{Tool: toolCompareSets, Handler: h.compareSets},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resExercises, Handler: h.exerciseCatalog},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

var resExercises = mcp.NewResource(
	"gymtracker://exercises",
	"Exercises",
	mcp.WithResourceDescription("All exercises with their kind and ranking rule"),
	mcp.WithMIMEType("application/json"),
)
