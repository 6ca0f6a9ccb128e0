package plan

import "github.com/asisr38/home-gym-tracker-app/internal/models"

// Tier classifies an exercise slot and drives set/rep scheme lookup.
type Tier string

const (
	TierCompound  Tier = "compound"
	TierAccessory Tier = "accessory"
	TierCore      Tier = "core"
)

// SetScheme is a set count and a target-rep prescription.
type SetScheme struct {
	Sets int
	Reps string
}

// schemeTable maps (goal, tier) to a fixed prescription. Pure lookup, never
// computed.
var schemeTable = map[models.GoalType]map[Tier]SetScheme{
	models.GoalStrength: {
		TierCompound:  {Sets: 4, Reps: "4-6"},
		TierAccessory: {Sets: 3, Reps: "6-8"},
		TierCore:      {Sets: 3, Reps: "30-45s"},
	},
	models.GoalHypertrophy: {
		TierCompound:  {Sets: 4, Reps: "8-12"},
		TierAccessory: {Sets: 3, Reps: "10-15"},
		TierCore:      {Sets: 3, Reps: "40-60s"},
	},
	models.GoalEndurance: {
		TierCompound:  {Sets: 3, Reps: "12-15"},
		TierAccessory: {Sets: 3, Reps: "15-20"},
		TierCore:      {Sets: 3, Reps: "45-60s"},
	},
	models.GoalFatLoss: {
		TierCompound:  {Sets: 3, Reps: "10-12"},
		TierAccessory: {Sets: 3, Reps: "12-15"},
		TierCore:      {Sets: 3, Reps: "45s"},
	},
	models.GoalBalanced: {
		TierCompound:  {Sets: 4, Reps: "6-10"},
		TierAccessory: {Sets: 3, Reps: "10-12"},
		TierCore:      {Sets: 3, Reps: "45s"},
	},
}

// SchemeFor returns the prescription for a goal/tier pair. Unknown goals fall
// back to balanced.
func SchemeFor(goal models.GoalType, tier Tier) SetScheme {
	byTier, ok := schemeTable[goal]
	if !ok {
		byTier = schemeTable[models.GoalBalanced]
	}
	return byTier[tier]
}

// runMultiplier scales the profile's daily run baseline by goal: endurance
// goals run longer, strength goals shorter.
var runMultiplier = map[models.GoalType]float64{
	models.GoalStrength:    0.7,
	models.GoalHypertrophy: 0.9,
	models.GoalEndurance:   1.5,
	models.GoalFatLoss:     1.2,
	models.GoalBalanced:    1.0,
}

func runMultiplierFor(goal models.GoalType) float64 {
	if m, ok := runMultiplier[goal]; ok {
		return m
	}
	return 1.0
}
