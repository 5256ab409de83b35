package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolListWorkouts = mcp.NewTool("list_workouts",
	mcp.WithDescription("List all workout templates, most recently created first."),
)

var toolGetWorkout = mcp.NewTool("get_workout",
	mcp.WithDescription("Get one workout template with its exercises and their target reps/loads."),
	mcp.WithNumber("id", mcp.Required(), mcp.Description("Workout id")),
)

var toolListSessions = mcp.NewTool("list_sessions",
	mcp.WithDescription("List completed sessions, most recent first. Optionally filter by workout."),
	mcp.WithNumber("workout_id", mcp.Description("Restrict to sessions of this workout")),
)

var toolGetSession = mcp.NewTool("get_session",
	mcp.WithDescription("Get one session with its recorded exercises (name snapshot, actual reps, actual load)."),
	mcp.WithNumber("id", mcp.Required(), mcp.Description("Session id")),
)

var toolGetStats = mcp.NewTool("get_stats",
	mcp.WithDescription("Get aggregate statistics: totals per collection, first/last session dates, and session counts per workout."),
)

// --- Tool handlers ---

func (h *handlers) listWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workouts, err := h.ds.ListWorkouts(ctx)
	if err != nil {
		h.log.Error("mcp list_workouts", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(workouts)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireInt("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}

	workout, err := h.ds.GetWorkout(ctx, int64(id))
	if err != nil {
		h.log.Error("mcp get_workout", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	if workout == nil {
		return mcp.NewToolResultError("workout not found"), nil
	}

	exercises, err := h.ds.ListWorkoutExercises(ctx, int64(id))
	if err != nil {
		h.log.Error("mcp get_workout exercises", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"workout":   workout,
		"exercises": exercises,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listSessions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workoutID := req.GetInt("workout_id", 0)

	var err error
	var sessions any
	if workoutID > 0 {
		sessions, err = h.ds.ListWorkoutSessions(ctx, int64(workoutID))
	} else {
		sessions, err = h.ds.ListSessions(ctx)
	}
	if err != nil {
		h.log.Error("mcp list_sessions", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(sessions)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getStats(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := h.ds.GetStats(ctx)
	if err != nil {
		h.log.Error("mcp get_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(stats)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getSession(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireInt("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}

	session, err := h.ds.GetSession(ctx, int64(id))
	if err != nil {
		h.log.Error("mcp get_session", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	if session == nil {
		return mcp.NewToolResultError("session not found"), nil
	}

	items, err := h.ds.ListSessionExercises(ctx, int64(id))
	if err != nil {
		h.log.Error("mcp get_session exercises", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"session":   session,
		"exercises": items,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
