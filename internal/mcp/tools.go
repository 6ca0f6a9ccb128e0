package mcp

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/asisr38/home-gym-tracker-app/internal/models"
	"github.com/asisr38/home-gym-tracker-app/internal/progress"
)

func parseFlexTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse("2006-01-02", s)
	if err == nil {
		return t, nil
	}
	return time.Time{}, err
}

// --- Tool definitions ---

var toolGetProfile = mcp.NewTool("get_profile",
	mcp.WithDescription("Get the user's training profile: name, goal, goal type, equipment, units, daily run target, and week start day."),
)

var toolGetCurrentPlan = mcp.NewTool("get_current_plan",
	mcp.WithDescription("Get the active weekly workout plan. Each day carries its exercises with sets and alternatives, or a run target for run days."),
	mcp.WithString("day", mcp.Description("Filter to a single day id (e.g. 'day-1', 'run-tempo')")),
)

var toolGetHistory = mcp.NewTool("get_history",
	mcp.WithDescription("Get completed workout snapshots. History covers the last 30 days; older entries are pruned."),
	mcp.WithString("start", mcp.Description("Only entries completed on or after this date (ISO 8601 or YYYY-MM-DD)")),
	mcp.WithString("end", mcp.Description("Only entries completed before this date")),
)

var toolGetWeeklyStats = mcp.NewTool("get_weekly_stats",
	mcp.WithDescription("Summarize the current plan: planned vs completed sets plus an estimated duration per day."),
)

var toolGetExerciseBest = mcp.NewTool("get_exercise_best",
	mcp.WithDescription("Get the heaviest successful set for an exercise during the previous calendar week, honoring the profile's week start. Used for progression suggestions."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise name (exact match, e.g. 'Barbell Bench Press')")),
)

var toolGetTodayWorkout = mcp.NewTool("get_today_workout",
	mcp.WithDescription("Get the plan day scheduled for a calendar date, with an estimated duration."),
	mcp.WithString("date", mcp.Description("Date (YYYY-MM-DD). Defaults to today.")),
)

// --- Tool handlers ---

func (h *handlers) getProfile(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data, err := h.ds.UserData(ctx)
	if err != nil {
		h.log.Error("mcp get_profile", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(data.Profile)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getCurrentPlan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data, err := h.ds.UserData(ctx)
	if err != nil {
		h.log.Error("mcp get_current_plan", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	if dayID := req.GetString("day", ""); dayID != "" {
		for _, day := range data.CurrentPlan {
			if day.ID == dayID {
				result, err := mcp.NewToolResultJSON(day)
				if err != nil {
					return mcp.NewToolResultError("serialization failed"), nil
				}
				return result, nil
			}
		}
		return mcp.NewToolResultError("no plan day with id " + dayID), nil
	}

	result, err := mcp.NewToolResultJSON(data.CurrentPlan)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data, err := h.ds.UserData(ctx)
	if err != nil {
		h.log.Error("mcp get_history", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	history := data.History
	startStr := req.GetString("start", "")
	endStr := req.GetString("end", "")
	if startStr != "" || endStr != "" {
		var start, end time.Time
		if startStr != "" {
			if start, err = parseFlexTime(startStr); err != nil {
				return mcp.NewToolResultError("invalid start date: " + err.Error()), nil
			}
		}
		if endStr != "" {
			if end, err = parseFlexTime(endStr); err != nil {
				return mcp.NewToolResultError("invalid end date: " + err.Error()), nil
			}
		}
		filtered := make([]models.WorkoutDay, 0, len(history))
		for _, day := range history {
			completed, err := time.Parse(time.RFC3339, day.DateCompleted)
			if err != nil {
				continue
			}
			if !start.IsZero() && completed.Before(start) {
				continue
			}
			if !end.IsZero() && !completed.Before(end) {
				continue
			}
			filtered = append(filtered, day)
		}
		history = filtered
	}

	result, err := mcp.NewToolResultJSON(history)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWeeklyStats(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data, err := h.ds.UserData(ctx)
	if err != nil {
		h.log.Error("mcp get_weekly_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	type dayEstimate struct {
		ID               string `json:"id"`
		Title            string `json:"title"`
		EstimatedMinutes int    `json:"estimatedMinutes"`
		Completed        bool   `json:"completed"`
	}
	estimates := make([]dayEstimate, 0, len(data.CurrentPlan))
	for _, day := range data.CurrentPlan {
		estimates = append(estimates, dayEstimate{
			ID:               day.ID,
			Title:            day.Title,
			EstimatedMinutes: progress.EstimateDayMinutes(day),
			Completed:        day.Completed,
		})
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"stats": progress.Weekly(data.CurrentPlan),
		"days":  estimates,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getExerciseBest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercise, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}

	data, err := h.ds.UserData(ctx)
	if err != nil {
		h.log.Error("mcp get_exercise_best", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	best := progress.LastWeekBest(data.History, exercise, data.Profile.StartOfWeek, time.Now())
	if best == nil {
		return mcp.NewToolResultText("no completed sets for " + exercise + " last week"), nil
	}

	result, err := mcp.NewToolResultJSON(best)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getTodayWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date := time.Now()
	if dateStr := req.GetString("date", ""); dateStr != "" {
		var err error
		if date, err = parseFlexTime(dateStr); err != nil {
			return mcp.NewToolResultError("invalid date: " + err.Error()), nil
		}
	}

	data, err := h.ds.UserData(ctx)
	if err != nil {
		h.log.Error("mcp get_today_workout", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	day := progress.ScheduledForDate(data.CurrentPlan, data.Profile.StartOfWeek, date)
	if day == nil {
		return mcp.NewToolResultText("nothing scheduled for " + date.Format("2006-01-02")), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"day":              day,
		"estimatedMinutes": progress.EstimateDayMinutes(*day),
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
