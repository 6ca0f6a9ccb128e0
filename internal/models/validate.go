package models

import "fmt"

func validUnits(u UnitSystem) bool {
	return u == UnitsImperial || u == UnitsMetric
}

func validGoalType(g GoalType) bool {
	switch g {
	case GoalStrength, GoalHypertrophy, GoalEndurance, GoalFatLoss, GoalBalanced:
		return true
	}
	return false
}

func validDayKind(k DayKind) bool {
	return k == DayLift || k == DayRun || k == DayRecovery
}

func validDayFocus(f DayFocus) bool {
	switch f {
	case FocusPush, FocusPull, FocusLegs, FocusCardio, FocusFull:
		return true
	}
	return false
}

func validEquipment(e Equipment) bool {
	switch e {
	case EquipBodyweight, EquipDumbbell, EquipBarbell, EquipBench, EquipRack, EquipBands, EquipKettlebell:
		return true
	}
	return false
}

func validateProfile(p *UserProfile) error {
	if !validUnits(p.Units) {
		return fmt.Errorf("profile: invalid units %q", p.Units)
	}
	// Empty goal type is legal on the wire; normalization infers it.
	if p.GoalType != "" && !validGoalType(p.GoalType) {
		return fmt.Errorf("profile: invalid goalType %q", p.GoalType)
	}
	if p.StartOfWeek < 0 || p.StartOfWeek > 6 {
		return fmt.Errorf("profile: startOfWeek %d out of range", p.StartOfWeek)
	}
	for _, e := range p.Equipment {
		if !validEquipment(e) {
			return fmt.Errorf("profile: unknown equipment %q", e)
		}
	}
	return nil
}

func validateDay(day *WorkoutDay, context string, index int) error {
	if day.ID == "" {
		return fmt.Errorf("%s[%d]: missing day id", context, index)
	}
	if !validDayKind(day.Type) {
		return fmt.Errorf("%s[%d]: invalid day type %q", context, index, day.Type)
	}
	if day.DayType != "" && !validDayFocus(day.DayType) {
		return fmt.Errorf("%s[%d]: invalid dayType %q", context, index, day.DayType)
	}
	for j, ex := range day.Exercises {
		if ex.ID == "" {
			return fmt.Errorf("%s[%d].exercises[%d]: missing exercise id", context, index, j)
		}
		if ex.Name == "" {
			return fmt.Errorf("%s[%d].exercises[%d]: missing exercise name", context, index, j)
		}
		for k, set := range ex.Sets {
			if set.ID == "" {
				return fmt.Errorf("%s[%d].exercises[%d].sets[%d]: missing set id", context, index, j, k)
			}
		}
	}
	return nil
}

// ValidateUserData checks a decoded document against the schema. A failing
// document must never be partially applied by callers.
func ValidateUserData(d *UserData) error {
	if d == nil {
		return fmt.Errorf("user data: nil document")
	}
	if err := validateProfile(&d.Profile); err != nil {
		return err
	}
	for i := range d.History {
		if err := validateDay(&d.History[i], "history", i); err != nil {
			return err
		}
	}
	for i := range d.CurrentPlan {
		if err := validateDay(&d.CurrentPlan[i], "currentPlan", i); err != nil {
			return err
		}
	}
	return nil
}
