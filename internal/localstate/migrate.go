package localstate

import (
	"time"

	"github.com/asisr38/home-gym-tracker-app/internal/models"
	"github.com/asisr38/home-gym-tracker-app/internal/plan"
)

// CurrentVersion is the version stamped on freshly saved blobs. Loads of
// older blobs run every migration step with a higher version, in order.
const CurrentVersion = 4

type migration struct {
	ToVersion int
	Name      string
	Apply     func(state models.AppState) models.AppState
}

// migrations are ordered by ToVersion. A blob at version N runs every step
// with ToVersion > N.
var migrations = []migration{
	{
		ToVersion: 2,
		Name:      "backfill day focus",
		Apply: func(state models.AppState) models.AppState {
			state.CurrentPlan = backfillFocus(state.CurrentPlan)
			state.History = backfillFocus(state.History)
			return state
		},
	},
	{
		ToVersion: 3,
		Name:      "backfill logged set exercise names",
		Apply: func(state models.AppState) models.AppState {
			names := make(map[string]string)
			for _, day := range state.CurrentPlan {
				for _, ex := range day.Exercises {
					names[ex.ID] = ex.Name
				}
			}
			for i := range state.SetLogs {
				if state.SetLogs[i].ExerciseName != "" {
					continue
				}
				if name, ok := names[state.SetLogs[i].ExerciseID]; ok {
					state.SetLogs[i].ExerciseName = name
				} else {
					state.SetLogs[i].ExerciseName = "Exercise"
				}
			}
			return state
		},
	},
	{
		ToVersion: 4,
		Name:      "replace legacy default plan",
		Apply: func(state models.AppState) models.AppState {
			if plan.IsLegacyDefaultPlan(state.CurrentPlan) {
				state.CurrentPlan = plan.Build(models.NormalizeProfile(state.Profile))
			}
			return state
		},
	},
}

func backfillFocus(days []models.WorkoutDay) []models.WorkoutDay {
	for i := range days {
		if days[i].DayType == "" {
			days[i].DayType = models.InferDayFocus(days[i].Title, days[i].Type)
		}
	}
	return days
}

// Migrate brings a loaded state from its stored version up to CurrentVersion,
// then applies the idempotent finalization every load gets: profile
// normalization, day normalization, history pruning, and plan generation for
// states that have none.
func Migrate(fromVersion int, state models.AppState, now time.Time) models.AppState {
	for _, m := range migrations {
		if m.ToVersion > fromVersion {
			state = m.Apply(state)
		}
	}

	state.Profile = models.NormalizeProfile(state.Profile)
	state.CurrentPlan = models.NormalizeDays(state.CurrentPlan)
	state.History = models.NormalizeDays(state.History)
	state.History = models.PruneHistory(state.History, now)
	if len(state.CurrentPlan) == 0 {
		state.CurrentPlan = plan.Build(state.Profile)
	}
	return state
}
