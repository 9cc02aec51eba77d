package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolGetWorkouts = mcp.NewTool("get_workouts",
	mcp.WithDescription("Query logged workouts with their exercises. Each exercise includes sets, reps, weight, total volume, and whether it set a personal record."),
	mcp.WithNumber("days", mcp.Description("Only return workouts from the last N days. Omit for full history.")),
)

var toolGetPersonalRecords = mcp.NewTool("get_personal_records",
	mcp.WithDescription("List personal record entries for one exercise, heaviest first."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise name (e.g. 'Bench Press')")),
)

var toolGetLastExercise = mcp.NewTool("get_last_exercise",
	mcp.WithDescription("Fetch the most recent logged entry for one exercise, by workout date."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise name (e.g. 'Squat')")),
)

// --- Tool handlers ---

func (h *handlers) getWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	days := req.GetInt("days", 0)
	if days < 0 {
		return mcp.NewToolResultError("days must be non-negative"), nil
	}

	var (
		workouts any
		err      error
	)
	if days > 0 {
		workouts, err = h.ds.FetchRecentWorkouts(ctx, days)
	} else {
		workouts, err = h.ds.FetchAllWorkouts(ctx)
	}
	if err != nil {
		h.log.Error("mcp get_workouts", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(workouts)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getPersonalRecords(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}

	records, err := h.ds.FetchPersonalRecords(ctx, name)
	if err != nil {
		h.log.Error("mcp get_personal_records", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(records)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getLastExercise(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}

	ex, err := h.ds.FetchLastExercise(ctx, name)
	if err != nil {
		h.log.Error("mcp get_last_exercise", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	if ex == nil {
		return mcp.NewToolResultError(fmt.Sprintf("no logged entries for %q", name)), nil
	}

	result, err := mcp.NewToolResultJSON(ex)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
