// Package plan builds the weekly workout template from a user profile. The
// generator is pure and deterministic: the same profile always yields the
// same days, ids, selections, and set counts, so regenerated plans stay
// comparable with persisted ones.
package plan

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/asisr38/home-gym-tracker-app/internal/models"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(value string) string {
	slug := nonAlnum.ReplaceAllString(strings.ToLower(value), "-")
	return strings.Trim(slug, "-")
}

func toExerciseID(name string) string {
	return "ex-" + slugify(name)
}

// equipmentReason maps a missing equipment tag to the human-readable reason
// an alternative is offered.
var equipmentReason = map[models.Equipment]string{
	models.EquipBodyweight: "No equipment",
	models.EquipDumbbell:   "No dumbbells",
	models.EquipBarbell:    "No barbell",
	models.EquipBench:      "No bench",
	models.EquipRack:       "No rack",
	models.EquipBands:      "No bands",
	models.EquipKettlebell: "No kettlebell",
}

func hasAll(requires, available []models.Equipment) bool {
	for _, need := range requires {
		found := false
		for _, have := range available {
			if need == have {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// pickExercise selects the first candidate the available equipment satisfies.
// If none qualifies the last candidate wins; template slots always end with a
// bodyweight-only option.
func pickExercise(slot exerciseSlot, equipment []models.Equipment) candidate {
	for _, option := range slot.Options {
		if hasAll(option.Requires, equipment) {
			return option
		}
	}
	return slot.Options[len(slot.Options)-1]
}

// alternativeReason explains why a non-selected candidate might be chosen
// instead: the first equipment tag the primary needs and the alternative does
// not. Incomparable equipment sets get a generic reason.
func alternativeReason(primary, alternative candidate) string {
	for _, need := range primary.Requires {
		if !hasAll([]models.Equipment{need}, alternative.Requires) {
			return equipmentReason[need]
		}
	}
	return "Busy gym"
}

func buildAlternatives(slot exerciseSlot, primary candidate) []models.ExerciseAlternative {
	var alts []models.ExerciseAlternative
	for _, option := range slot.Options {
		if option.Name == primary.Name {
			continue
		}
		alts = append(alts, models.ExerciseAlternative{
			ID:          toExerciseID(option.Name),
			Name:        option.Name,
			Reason:      alternativeReason(primary, option),
			MuscleGroup: slot.MuscleGroup,
		})
	}
	return alts
}

func buildSets(count int, targetReps string) []models.ExerciseSet {
	sets := make([]models.ExerciseSet, count)
	for i := range sets {
		sets[i] = models.ExerciseSet{
			ID:         fmt.Sprintf("s-%d", i+1),
			TargetReps: targetReps,
		}
	}
	return sets
}

func roundDistance(value float64) float64 {
	return math.Round(value*10) / 10
}

func buildLiftDay(dayNumber int, slot daySlot, goal models.GoalType, equipment []models.Equipment) models.WorkoutDay {
	exercises := make([]models.Exercise, len(slot.slots))
	for i, exSlot := range slot.slots {
		option := pickExercise(exSlot, equipment)
		scheme := SchemeFor(goal, exSlot.Tier)
		exercises[i] = models.Exercise{
			ID:           fmt.Sprintf("d%d-e%d", dayNumber, i+1),
			Name:         option.Name,
			MuscleGroup:  exSlot.MuscleGroup,
			Alternatives: buildAlternatives(exSlot, option),
			Sets:         buildSets(scheme.Sets, scheme.Reps),
		}
	}
	return models.WorkoutDay{
		ID:        fmt.Sprintf("day-%d", dayNumber),
		DayNumber: dayNumber,
		Title:     slot.title,
		Type:      models.DayLift,
		DayType:   slot.focus,
		Exercises: exercises,
	}
}

func buildRunDay(dayNumber int, slot daySlot, goal models.GoalType, runTarget float64) models.WorkoutDay {
	distance := roundDistance(runTarget * runMultiplierFor(goal) * slot.runFactor)
	return models.WorkoutDay{
		ID:        slot.id,
		DayNumber: dayNumber,
		Title:     slot.title,
		Type:      models.DayRun,
		DayType:   slot.focus,
		Exercises: []models.Exercise{},
		RunTarget: &models.RunTarget{Distance: distance, Description: slot.runDesc},
	}
}

func buildRecoveryDay(dayNumber int, slot daySlot) models.WorkoutDay {
	return models.WorkoutDay{
		ID:        slot.id,
		DayNumber: dayNumber,
		Title:     slot.title,
		Type:      models.DayRecovery,
		DayType:   slot.focus,
		Exercises: []models.Exercise{},
	}
}

// Build generates the weekly plan for a profile. The profile's goal type and
// equipment are the only inputs that affect output; callers should pass a
// normalized profile.
func Build(profile models.UserProfile) []models.WorkoutDay {
	equipment := models.EnsureEquipment(profile.Equipment)
	goal := profile.GoalType
	if goal == "" {
		goal = models.InferGoalType(profile.Goal)
	}

	days := make([]models.WorkoutDay, 0, len(weeklyTemplate))
	for i, slot := range weeklyTemplate {
		dayNumber := i + 1
		switch slot.kind {
		case models.DayLift:
			days = append(days, buildLiftDay(dayNumber, slot, goal, equipment))
		case models.DayRun:
			days = append(days, buildRunDay(dayNumber, slot, goal, profile.DailyRunTarget))
		default:
			days = append(days, buildRecoveryDay(dayNumber, slot))
		}
	}
	return days
}

// legacyDefaultDayTitles is the original hardcoded 7-day template. Plans
// matching these titles under an old schema version are regenerated during
// migration so users are not trapped on the obsolete plan.
var legacyDefaultDayTitles = map[string]bool{
	"Push Day":            true,
	"Leg Day":             true,
	"Pull Day":            true,
	"Shoulders & Abs":     true,
	"Full Body Metabolic": true,
	"Active Recovery Run": true,
	"Long Run / Rest":     true,
}

// IsLegacyDefaultPlan reports whether any day title matches the legacy
// auto-generated template.
func IsLegacyDefaultPlan(days []models.WorkoutDay) bool {
	for _, day := range days {
		if legacyDefaultDayTitles[day.Title] {
			return true
		}
	}
	return false
}
