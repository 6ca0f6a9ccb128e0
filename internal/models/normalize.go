package models

import "strings"

// EnsureEquipment guarantees a non-empty equipment list containing bodyweight.
func EnsureEquipment(equipment []Equipment) []Equipment {
	if len(equipment) == 0 {
		return []Equipment{EquipBodyweight}
	}
	list := make([]Equipment, 0, len(equipment)+1)
	hasBodyweight := false
	for _, e := range equipment {
		if e == EquipBodyweight {
			hasBodyweight = true
		}
		list = append(list, e)
	}
	if !hasBodyweight {
		list = append(list, EquipBodyweight)
	}
	return list
}

// InferGoalType derives a goal type from free-text goal wording.
func InferGoalType(goal string) GoalType {
	normalized := strings.ToLower(goal)
	switch {
	case strings.Contains(normalized, "strength"):
		return GoalStrength
	case strings.Contains(normalized, "endurance"):
		return GoalEndurance
	case strings.Contains(normalized, "fat"), strings.Contains(normalized, "cut"):
		return GoalFatLoss
	case strings.Contains(normalized, "muscle"), strings.Contains(normalized, "hypertrophy"):
		return GoalHypertrophy
	}
	return GoalBalanced
}

// NormalizeProfile fills derived fields: goal type inferred from the goal text
// when absent, equipment guaranteed to include bodyweight.
func NormalizeProfile(p UserProfile) UserProfile {
	if p.GoalType == "" {
		p.GoalType = InferGoalType(p.Goal)
	}
	p.Equipment = EnsureEquipment(p.Equipment)
	return p
}

// InferDayFocus classifies a day from its title and kind. Used to backfill
// the dayType field on documents that predate it.
func InferDayFocus(title string, kind DayKind) DayFocus {
	normalized := strings.ToLower(title)
	switch {
	case strings.Contains(normalized, "push"):
		return FocusPush
	case strings.Contains(normalized, "pull"):
		return FocusPull
	case strings.Contains(normalized, "leg"):
		return FocusLegs
	}
	if kind != DayLift {
		return FocusCardio
	}
	return FocusFull
}

// NormalizeDay backfills DayType and strips fields that are meaningless for
// the day's kind: lift days never carry a run target, run and recovery days
// never carry exercises. A completion timestamp on a day that is not
// completed is stale and dropped.
func NormalizeDay(day WorkoutDay) WorkoutDay {
	if day.DayType == "" {
		day.DayType = InferDayFocus(day.Title, day.Type)
	}
	if day.Type == DayLift {
		day.RunTarget = nil
	} else {
		day.Exercises = []Exercise{}
	}
	if !day.Completed {
		day.DateCompleted = ""
	}
	return day
}

// NormalizeDays applies NormalizeDay to every entry.
func NormalizeDays(days []WorkoutDay) []WorkoutDay {
	out := make([]WorkoutDay, len(days))
	for i, day := range days {
		out[i] = NormalizeDay(day)
	}
	return out
}
