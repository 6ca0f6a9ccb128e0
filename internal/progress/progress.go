// Package progress derives read-only training statistics from the plan and
// history: weekly set counts, session length estimates, and previous-week
// bests used for progression hints.
package progress

import (
	"regexp"
	"strconv"
	"time"

	"github.com/asisr38/home-gym-tracker-app/internal/models"
)

// WeeklyStats summarizes set volume across a plan.
type WeeklyStats struct {
	PlannedSets   int `json:"plannedSets"`
	CompletedSets int `json:"completedSets"`
}

// PlannedSets counts every planned set in a day.
func PlannedSets(day models.WorkoutDay) int {
	total := 0
	for _, ex := range day.Exercises {
		total += len(ex.Sets)
	}
	return total
}

// CompletedSets counts the sets already logged as done.
func CompletedSets(day models.WorkoutDay) int {
	total := 0
	for _, ex := range day.Exercises {
		for _, set := range ex.Sets {
			if set.Completed {
				total++
			}
		}
	}
	return total
}

// Weekly sums planned and completed sets across the whole plan.
func Weekly(plan []models.WorkoutDay) WeeklyStats {
	var stats WeeklyStats
	for _, day := range plan {
		stats.PlannedSets += PlannedSets(day)
		stats.CompletedSets += CompletedSets(day)
	}
	return stats
}

// EstimateDayMinutes approximates session length. Lift days assume about 2.5
// minutes per set including rest, runs about 10 minutes per unit distance.
func EstimateDayMinutes(day models.WorkoutDay) int {
	if day.Type == models.DayLift {
		minutes := int(float64(PlannedSets(day))*2.5 + 0.5)
		if minutes < 20 {
			minutes = 20
		}
		return minutes
	}
	if day.RunTarget != nil && day.RunTarget.Distance > 0 {
		minutes := int(day.RunTarget.Distance*10 + 0.5)
		if minutes < 15 {
			minutes = 15
		}
		return minutes
	}
	return 15
}

// ScheduledForDate maps a calendar date onto the weekly plan, honoring the
// profile's start-of-week day. The plan day whose number matches the offset
// from the week start wins; a plan shorter than the offset yields nil.
func ScheduledForDate(plan []models.WorkoutDay, startOfWeek int, date time.Time) *models.WorkoutDay {
	if len(plan) == 0 {
		return nil
	}
	offset := (int(date.Weekday()) - clampWeekStart(startOfWeek) + 7) % 7
	dayNumber := offset + 1
	for i := range plan {
		if plan[i].DayNumber == dayNumber {
			return &plan[i]
		}
	}
	if dayNumber <= len(plan) {
		return &plan[dayNumber-1]
	}
	return nil
}

// WeekBest is the heaviest successful set for an exercise within a window.
// Ties on weight break toward more reps.
type WeekBest struct {
	Weight float64 `json:"weight"`
	Reps   *int    `json:"reps"`
	Date   string  `json:"date"`
}

var firstNumber = regexp.MustCompile(`\d+`)

func parseTargetReps(value string) *int {
	match := firstNumber.FindString(value)
	if match == "" {
		return nil
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return nil
	}
	return &n
}

func clampWeekStart(weekStartsOn int) int {
	if weekStartsOn < 0 {
		return 0
	}
	if weekStartsOn > 6 {
		return 6
	}
	return weekStartsOn
}

func weekStart(now time.Time, weekStartsOn int) time.Time {
	y, m, d := now.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	back := (int(midnight.Weekday()) - clampWeekStart(weekStartsOn) + 7) % 7
	return midnight.AddDate(0, 0, -back)
}

// LastWeekBest finds the best completed set for an exercise during the
// previous calendar week. Sets without a logged weight are ignored; reps fall
// back to the first number of the target range when not logged.
func LastWeekBest(history []models.WorkoutDay, exerciseName string, weekStartsOn int, now time.Time) *WeekBest {
	if exerciseName == "" {
		return nil
	}

	end := weekStart(now, weekStartsOn)
	start := end.AddDate(0, 0, -7)

	var best *WeekBest
	for _, day := range history {
		if day.DateCompleted == "" {
			continue
		}
		completed, err := time.Parse(time.RFC3339, day.DateCompleted)
		if err != nil || completed.Before(start) || !completed.Before(end) {
			continue
		}
		for _, ex := range day.Exercises {
			if ex.Name != exerciseName {
				continue
			}
			for _, set := range ex.Sets {
				if !set.Completed || set.Weight == nil {
					continue
				}
				reps := set.ActualReps
				if reps == nil {
					reps = parseTargetReps(set.TargetReps)
				}
				if best == nil || *set.Weight > best.Weight ||
					(*set.Weight == best.Weight && repsValue(reps) > repsValue(best.Reps)) {
					best = &WeekBest{Weight: *set.Weight, Reps: reps, Date: day.DateCompleted}
				}
			}
		}
	}
	return best
}

func repsValue(reps *int) int {
	if reps == nil {
		return -1
	}
	return *reps
}
