// Package mcp exposes the workout document to AI assistants over the Model
// Context Protocol: profile, plan, history, and derived progress stats.
package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("GymTracker", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("Home gym tracker data server. Query the training profile, current weekly plan, completed workout history, and progression stats. All data is scoped to the authenticated user."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetProfile, Handler: h.getProfile},
		server.ServerTool{Tool: toolGetCurrentPlan, Handler: h.getCurrentPlan},
		server.ServerTool{Tool: toolGetHistory, Handler: h.getHistory},
		server.ServerTool{Tool: toolGetWeeklyStats, Handler: h.getWeeklyStats},
		server.ServerTool{Tool: toolGetExerciseBest, Handler: h.getExerciseBest},
		server.ServerTool{Tool: toolGetTodayWorkout, Handler: h.getTodayWorkout},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resCurrentPlan, Handler: h.currentPlanResource},
		server.ServerResource{Resource: resProfile, Handler: h.profileResource},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resCurrentPlan = mcp.NewResource(
	"gymtracker://current_plan",
	"Current Plan",
	mcp.WithResourceDescription("The active weekly workout plan with exercises, sets, and run targets"),
	mcp.WithMIMEType("application/json"),
)

var resProfile = mcp.NewResource(
	"gymtracker://profile",
	"Training Profile",
	mcp.WithResourceDescription("The user's training profile: goal, equipment, units, and run target"),
	mcp.WithMIMEType("application/json"),
)
