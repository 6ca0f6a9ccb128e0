package models

// Deep copies. The store hands snapshots to persistence and sync listeners,
// and stores completed-day snapshots in history; without copies a later plan
// edit would alias into those snapshots through the shared slices.

func cloneIntPtr(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneFloatPtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// CloneProfile returns a copy with its own equipment slice.
func CloneProfile(p UserProfile) UserProfile {
	p.Equipment = append([]Equipment(nil), p.Equipment...)
	return p
}

// CloneSet returns a copy with its own pointer fields.
func CloneSet(s ExerciseSet) ExerciseSet {
	s.ActualReps = cloneIntPtr(s.ActualReps)
	s.Weight = cloneFloatPtr(s.Weight)
	return s
}

// CloneExercise returns a copy with its own sets and alternatives.
func CloneExercise(ex Exercise) Exercise {
	sets := make([]ExerciseSet, len(ex.Sets))
	for i, s := range ex.Sets {
		sets[i] = CloneSet(s)
	}
	ex.Sets = sets
	if ex.Alternatives != nil {
		ex.Alternatives = append([]ExerciseAlternative(nil), ex.Alternatives...)
	}
	if ex.Primary != nil {
		p := *ex.Primary
		ex.Primary = &p
	}
	return ex
}

// CloneDay returns a fully independent copy of a workout day.
func CloneDay(day WorkoutDay) WorkoutDay {
	exercises := make([]Exercise, len(day.Exercises))
	for i, ex := range day.Exercises {
		exercises[i] = CloneExercise(ex)
	}
	day.Exercises = exercises
	if day.RunTarget != nil {
		rt := *day.RunTarget
		day.RunTarget = &rt
	}
	if day.RunActual != nil {
		ra := *day.RunActual
		day.RunActual = &ra
	}
	return day
}

// CloneDays deep-copies a day list.
func CloneDays(days []WorkoutDay) []WorkoutDay {
	out := make([]WorkoutDay, len(days))
	for i, day := range days {
		out[i] = CloneDay(day)
	}
	return out
}

// CloneLoggedSets deep-copies the audit log.
func CloneLoggedSets(logs []LoggedSet) []LoggedSet {
	out := make([]LoggedSet, len(logs))
	for i, l := range logs {
		l.Weight = cloneFloatPtr(l.Weight)
		l.Reps = cloneIntPtr(l.Reps)
		out[i] = l
	}
	return out
}

// CloneUserData deep-copies a syncable snapshot.
func CloneUserData(d UserData) UserData {
	d.Profile = CloneProfile(d.Profile)
	d.History = CloneDays(d.History)
	d.CurrentPlan = CloneDays(d.CurrentPlan)
	return d
}

// CloneAppState deep-copies the aggregate root.
func CloneAppState(s AppState) AppState {
	s.Profile = CloneProfile(s.Profile)
	s.History = CloneDays(s.History)
	s.CurrentPlan = CloneDays(s.CurrentPlan)
	s.SetLogs = CloneLoggedSets(s.SetLogs)
	return s
}
