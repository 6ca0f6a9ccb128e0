// Package store implements the workout-state engine. A Store exclusively
// owns the AppState aggregate; every state transition goes through one of its
// methods, which apply atomically and then notify subscribed listeners.
// Operations referencing unknown day/exercise/set ids are no-ops: the engine
// never fails the caller mid-session.
package store

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/asisr38/home-gym-tracker-app/internal/models"
	"github.com/asisr38/home-gym-tracker-app/internal/plan"
)

// Change describes which parts of the state a mutation touched. Sync
// listeners ignore changes that only touch the local-only set log.
type Change struct {
	Profile bool
	History bool
	Plan    bool
	SetLogs bool
}

// Syncable reports whether the change affects the remotely synced snapshot.
func (c Change) Syncable() bool {
	return c.Profile || c.History || c.Plan
}

// Listener observes committed mutations. Listeners run outside the store's
// lock and may call back into accessors.
type Listener func(Change)

// Store owns the in-memory AppState.
type Store struct {
	mu    sync.Mutex
	state models.AppState
	now   func() time.Time

	listenerMu   sync.Mutex
	listeners    map[int]Listener
	nextListener int
}

// New creates a store seeded with the default profile and a plan generated
// from it.
func New() *Store {
	profile := models.DefaultProfile()
	return &Store{
		state: models.AppState{
			Profile:     profile,
			History:     []models.WorkoutDay{},
			CurrentPlan: plan.Build(profile),
			SetLogs:     []models.LoggedSet{},
		},
		now:       time.Now,
		listeners: map[int]Listener{},
	}
}

// Subscribe registers a listener and returns its removal function.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.listenerMu.Lock()
	defer s.listenerMu.Unlock()
	id := s.nextListener
	s.nextListener++
	s.listeners[id] = l
	return func() {
		s.listenerMu.Lock()
		defer s.listenerMu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *Store) notify(c Change) {
	s.listenerMu.Lock()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.listenerMu.Unlock()
	for _, l := range listeners {
		l(c)
	}
}

// --- Accessors ---

// Profile returns a copy of the current profile.
func (s *Store) Profile() models.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.CloneProfile(s.state.Profile)
}

// CurrentPlan returns a copy of the live weekly plan.
func (s *Store) CurrentPlan() []models.WorkoutDay {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.CloneDays(s.state.CurrentPlan)
}

// History returns a copy of the completed-day history.
func (s *Store) History() []models.WorkoutDay {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.CloneDays(s.state.History)
}

// SetLogs returns a copy of the quick-log audit records.
func (s *Store) SetLogs() []models.LoggedSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.CloneLoggedSets(s.state.SetLogs)
}

// State returns a copy of the full aggregate, set logs included. This is what
// gets persisted locally after every mutation.
func (s *Store) State() models.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.CloneAppState(s.state)
}

// GetUserData produces the canonical syncable/exportable snapshot: current
// schema version, normalized profile, pruned history, current plan. Set logs
// are local-only and excluded.
func (s *Store) GetUserData() models.UserData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.UserData{
		SchemaVersion: models.SchemaVersion,
		Profile:       models.CloneProfile(s.state.Profile),
		History:       models.CloneDays(models.PruneHistory(s.state.History, s.now())),
		CurrentPlan:   models.CloneDays(s.state.CurrentPlan),
	}
}

// Replace swaps in a rehydrated state without notifying listeners: loading
// persisted state is not a mutation, and echoing it back into the persistence
// and sync listeners would start a write loop during bootstrap.
func (s *Store) Replace(state models.AppState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = models.CloneAppState(state)
}

// --- Profile operations ---

// ProfileUpdate is a partial profile change; nil fields are left untouched.
type ProfileUpdate struct {
	Name            *string
	Height          *float64
	Weight          *float64
	Goal            *string
	GoalType        *models.GoalType
	Units           *models.UnitSystem
	DailyRunTarget  *float64
	NutritionTarget *string
	StartOfWeek     *int
	Equipment       []models.Equipment
}

// UpdateProfile merges the given fields into the profile and re-normalizes.
// The plan is not regenerated.
func (s *Store) UpdateProfile(update ProfileUpdate) {
	s.mu.Lock()
	p := s.state.Profile
	if update.Name != nil {
		p.Name = *update.Name
	}
	if update.Height != nil {
		p.Height = *update.Height
	}
	if update.Weight != nil {
		p.Weight = *update.Weight
	}
	if update.Goal != nil {
		p.Goal = *update.Goal
	}
	if update.GoalType != nil {
		p.GoalType = *update.GoalType
	}
	if update.Units != nil {
		p.Units = *update.Units
	}
	if update.DailyRunTarget != nil {
		p.DailyRunTarget = *update.DailyRunTarget
	}
	if update.NutritionTarget != nil {
		p.NutritionTarget = *update.NutritionTarget
	}
	if update.StartOfWeek != nil {
		p.StartOfWeek = *update.StartOfWeek
	}
	if update.Equipment != nil {
		p.Equipment = append([]models.Equipment(nil), update.Equipment...)
	}
	s.state.Profile = models.NormalizeProfile(p)
	s.mu.Unlock()
	s.notify(Change{Profile: true})
}

// CompleteOnboarding stores the full profile with onboarding marked done and
// regenerates the plan from it. This is the only normal-flow trigger of plan
// generation.
func (s *Store) CompleteOnboarding(profile models.UserProfile) {
	profile.OnboardingCompleted = true
	normalized := models.NormalizeProfile(profile)
	s.mu.Lock()
	s.state.Profile = normalized
	s.state.CurrentPlan = plan.Build(normalized)
	s.mu.Unlock()
	s.notify(Change{Profile: true, Plan: true})
}

// --- Set logging ---

// SetPatch is a partial update to a single set; nil fields are untouched.
type SetPatch struct {
	TargetReps  *string
	ActualReps  *int
	Weight      *float64
	Completed   *bool
	PerfectForm *bool
}

func applySetPatch(set *models.ExerciseSet, patch SetPatch) {
	if patch.TargetReps != nil {
		set.TargetReps = *patch.TargetReps
	}
	if patch.ActualReps != nil {
		v := *patch.ActualReps
		set.ActualReps = &v
	}
	if patch.Weight != nil {
		v := *patch.Weight
		set.Weight = &v
	}
	if patch.Completed != nil {
		set.Completed = *patch.Completed
	}
	if patch.PerfectForm != nil {
		set.PerfectForm = *patch.PerfectForm
	}
}

func findDay(days []models.WorkoutDay, dayID string) *models.WorkoutDay {
	for i := range days {
		if days[i].ID == dayID {
			return &days[i]
		}
	}
	return nil
}

func findExercise(day *models.WorkoutDay, exerciseID string) *models.Exercise {
	if day == nil {
		return nil
	}
	for i := range day.Exercises {
		if day.Exercises[i].ID == exerciseID {
			return &day.Exercises[i]
		}
	}
	return nil
}

// mirrorIntoHistory keeps a completed day's history entry in lockstep with
// live edits: the entry sharing the day's (id, dateCompleted) identity is
// replaced with a snapshot of the day. Must be called with the lock held.
func (s *Store) mirrorIntoHistory(day *models.WorkoutDay) bool {
	if day == nil || !day.Completed {
		return false
	}
	mirrored := false
	for i := range s.state.History {
		if s.state.History[i].ID == day.ID && s.state.History[i].DateCompleted == day.DateCompleted {
			s.state.History[i] = models.CloneDay(*day)
			mirrored = true
		}
	}
	return mirrored
}

// LogSet merges the patch into the identified (day, exercise, set) triple.
// If the day is already completed the matching history entry is updated in
// lockstep.
func (s *Store) LogSet(dayID, exerciseID, setID string, patch SetPatch) {
	s.mu.Lock()
	day := findDay(s.state.CurrentPlan, dayID)
	exercise := findExercise(day, exerciseID)
	if exercise == nil {
		s.mu.Unlock()
		return
	}
	applied := false
	for i := range exercise.Sets {
		if exercise.Sets[i].ID == setID {
			applySetPatch(&exercise.Sets[i], patch)
			applied = true
		}
	}
	if !applied {
		s.mu.Unlock()
		return
	}
	mirrored := s.mirrorIntoHistory(day)
	s.mu.Unlock()
	s.notify(Change{Plan: true, History: mirrored})
}

// LogWorkoutSet appends a quick-log audit record, then marks the first
// not-yet-completed set of the exercise as completed with the given weight
// and reps. When every set is already done the plan is untouched but the
// audit record is still appended.
func (s *Store) LogWorkoutSet(dayID, exerciseID string, weight *float64, reps *int) {
	s.mu.Lock()
	timestamp := s.now().UnixMilli()
	day := findDay(s.state.CurrentPlan, dayID)
	exercise := findExercise(day, exerciseID)

	exerciseName := "Exercise"
	if exercise != nil {
		exerciseName = exercise.Name
	}
	log := models.LoggedSet{
		ID:           fmt.Sprintf("%s-%s-%d", dayID, exerciseID, timestamp),
		DayID:        dayID,
		ExerciseID:   exerciseID,
		ExerciseName: exerciseName,
		Timestamp:    timestamp,
	}
	if weight != nil {
		v := *weight
		log.Weight = &v
	}
	if reps != nil {
		v := *reps
		log.Reps = &v
	}
	s.state.SetLogs = append(s.state.SetLogs, log)

	planChanged := false
	if exercise != nil {
		for i := range exercise.Sets {
			if exercise.Sets[i].Completed {
				continue
			}
			if weight != nil {
				v := *weight
				exercise.Sets[i].Weight = &v
			}
			if reps != nil {
				v := *reps
				exercise.Sets[i].ActualReps = &v
			}
			exercise.Sets[i].Completed = true
			planChanged = true
			break
		}
	}
	mirrored := false
	if planChanged {
		mirrored = s.mirrorIntoHistory(day)
	}
	s.mu.Unlock()
	s.notify(Change{SetLogs: true, Plan: planChanged, History: mirrored})
}

// --- Workout completion ---

// CompleteWorkout marks the day completed and upserts it into history by its
// (id, dateCompleted) identity. Re-completing an already-completed day keeps
// the original timestamp and edits the existing entry in place instead of
// creating a duplicate. History is pruned afterwards.
func (s *Store) CompleteWorkout(dayID string, notes *string, runData *models.RunActual, calvesStretched *bool) {
	s.mu.Lock()
	day := findDay(s.state.CurrentPlan, dayID)
	if day == nil {
		s.mu.Unlock()
		return
	}
	if day.DateCompleted == "" {
		day.DateCompleted = s.now().UTC().Format(time.RFC3339)
	}
	day.Completed = true
	if notes != nil {
		day.Notes = *notes
	}
	if runData != nil {
		rd := *runData
		day.RunActual = &rd
	}
	if calvesStretched != nil {
		day.CalvesStretched = *calvesStretched
	}

	upserted := false
	for i := range s.state.History {
		if s.state.History[i].ID == day.ID && s.state.History[i].DateCompleted == day.DateCompleted {
			s.state.History[i] = models.CloneDay(*day)
			upserted = true
			break
		}
	}
	if !upserted {
		s.state.History = append(s.state.History, models.CloneDay(*day))
	}
	s.state.History = models.PruneHistory(s.state.History, s.now())
	s.mu.Unlock()
	s.notify(Change{Plan: true, History: true})
}

// UndoCompleteWorkout clears completion state on the plan day (including the
// run log and stretch flag, which only exist for completed days). With a
// timestamp it removes exactly that history entry; without one it removes
// only the last entry in list order matching the day id.
func (s *Store) UndoCompleteWorkout(dayID, dateCompleted string) {
	s.mu.Lock()
	if dateCompleted != "" {
		next := s.state.History[:0]
		for _, entry := range s.state.History {
			if entry.ID == dayID && entry.DateCompleted == dateCompleted {
				continue
			}
			next = append(next, entry)
		}
		s.state.History = next
	} else {
		lastMatch := -1
		for i, entry := range s.state.History {
			if entry.ID == dayID {
				lastMatch = i
			}
		}
		if lastMatch >= 0 {
			s.state.History = append(s.state.History[:lastMatch], s.state.History[lastMatch+1:]...)
		}
	}

	if day := findDay(s.state.CurrentPlan, dayID); day != nil {
		day.Completed = false
		day.DateCompleted = ""
		day.RunActual = nil
		day.CalvesStretched = false
	}
	s.mu.Unlock()
	s.notify(Change{Plan: true, History: true})
}

// --- Targeted plan edits (live plan only) ---

// UpdateWorkoutNotes sets session notes on a plan day.
func (s *Store) UpdateWorkoutNotes(dayID, notes string) {
	s.mu.Lock()
	day := findDay(s.state.CurrentPlan, dayID)
	if day == nil {
		s.mu.Unlock()
		return
	}
	day.Notes = notes
	s.mu.Unlock()
	s.notify(Change{Plan: true})
}

// UpdateRunDraft merges a distance/time pair into the day's run log. A pair
// that resolves to zero on both axes means "no run logged" and clears the
// draft instead of storing zeros.
func (s *Store) UpdateRunDraft(dayID string, distance *float64, timeSeconds *int) {
	s.mu.Lock()
	day := findDay(s.state.CurrentPlan, dayID)
	if day == nil {
		s.mu.Unlock()
		return
	}
	var nextDistance float64
	var nextTime int
	if day.RunActual != nil {
		nextDistance = day.RunActual.Distance
		nextTime = day.RunActual.TimeSeconds
	}
	if distance != nil {
		nextDistance = *distance
	}
	if timeSeconds != nil {
		nextTime = *timeSeconds
	}
	if nextDistance > 0 || nextTime > 0 {
		day.RunActual = &models.RunActual{Distance: nextDistance, TimeSeconds: nextTime}
	} else {
		day.RunActual = nil
	}
	s.mu.Unlock()
	s.notify(Change{Plan: true})
}

// UpdateExerciseNotes sets notes on a plan exercise.
func (s *Store) UpdateExerciseNotes(dayID, exerciseID, notes string) {
	s.mu.Lock()
	exercise := findExercise(findDay(s.state.CurrentPlan, dayID), exerciseID)
	if exercise == nil {
		s.mu.Unlock()
		return
	}
	exercise.Notes = notes
	s.mu.Unlock()
	s.notify(Change{Plan: true})
}

// SwapExercise replaces the displayed identity of an exercise with the given
// candidate. Picking the recorded primary again reverts the swap. The first
// swap records the current identity as primary; later swaps keep it, so the
// true original survives any number of alternate picks.
func (s *Store) SwapExercise(dayID, exerciseID string, next models.ExerciseAlternative) {
	s.mu.Lock()
	exercise := findExercise(findDay(s.state.CurrentPlan, dayID), exerciseID)
	if exercise == nil {
		s.mu.Unlock()
		return
	}

	if exercise.Primary != nil && (next.ID == exercise.Primary.ID || next.Name == exercise.Primary.Name) {
		exercise.Name = exercise.Primary.Name
		exercise.MuscleGroup = exercise.Primary.MuscleGroup
		exercise.Primary = nil
		exercise.SwapReason = ""
		s.mu.Unlock()
		s.notify(Change{Plan: true})
		return
	}

	if exercise.Primary == nil {
		exercise.Primary = &models.ExerciseIdentity{
			ID:          exercise.ID,
			Name:        exercise.Name,
			MuscleGroup: exercise.MuscleGroup,
		}
	}
	exercise.Name = next.Name
	if next.MuscleGroup != "" {
		exercise.MuscleGroup = next.MuscleGroup
	}
	exercise.SwapReason = next.Reason
	s.mu.Unlock()
	s.notify(Change{Plan: true})
}

// AddExerciseToDay appends a user-defined exercise to a plan day.
func (s *Store) AddExerciseToDay(dayID string, exercise models.Exercise) {
	s.mu.Lock()
	day := findDay(s.state.CurrentPlan, dayID)
	if day == nil {
		s.mu.Unlock()
		return
	}
	day.Exercises = append(day.Exercises, models.CloneExercise(exercise))
	s.mu.Unlock()
	s.notify(Change{Plan: true})
}

// RemoveExerciseFromDay drops an exercise from a plan day.
func (s *Store) RemoveExerciseFromDay(dayID, exerciseID string) {
	s.mu.Lock()
	day := findDay(s.state.CurrentPlan, dayID)
	if day == nil {
		s.mu.Unlock()
		return
	}
	removed := false
	next := day.Exercises[:0]
	for _, ex := range day.Exercises {
		if ex.ID == exerciseID {
			removed = true
			continue
		}
		next = append(next, ex)
	}
	day.Exercises = next
	s.mu.Unlock()
	if removed {
		s.notify(Change{Plan: true})
	}
}

// UpdateExerciseTargets applies target changes to every set of an exercise.
func (s *Store) UpdateExerciseTargets(dayID, exerciseID string, targets SetPatch) {
	s.mu.Lock()
	exercise := findExercise(findDay(s.state.CurrentPlan, dayID), exerciseID)
	if exercise == nil {
		s.mu.Unlock()
		return
	}
	for i := range exercise.Sets {
		if targets.TargetReps != nil {
			exercise.Sets[i].TargetReps = *targets.TargetReps
		}
	}
	s.mu.Unlock()
	s.notify(Change{Plan: true})
}

// --- Plan lifecycle ---

// ResetPlan regenerates the plan from the current profile, discarding the
// week's in-progress completion state. History is untouched.
func (s *Store) ResetPlan() {
	s.mu.Lock()
	s.state.Profile = models.NormalizeProfile(s.state.Profile)
	s.state.CurrentPlan = plan.Build(s.state.Profile)
	s.mu.Unlock()
	s.notify(Change{Plan: true})
}

// RestorePlan replaces the plan wholesale. Used by undo-style flows.
func (s *Store) RestorePlan(days []models.WorkoutDay) {
	s.mu.Lock()
	s.state.CurrentPlan = models.CloneDays(days)
	s.mu.Unlock()
	s.notify(Change{Plan: true})
}

// --- Import / export / sync adoption ---

// ExportData serializes the syncable snapshot as JSON.
func (s *Store) ExportData() (string, error) {
	raw, err := json.Marshal(s.GetUserData())
	if err != nil {
		return "", fmt.Errorf("exporting user data: %w", err)
	}
	return string(raw), nil
}

// ImportData replaces profile, history, and plan from an exported JSON
// document. Fails closed: any parse or validation error leaves the store
// untouched and returns false.
func (s *Store) ImportData(jsonData string) bool {
	var data models.UserData
	if err := json.Unmarshal([]byte(jsonData), &data); err != nil {
		return false
	}
	if err := models.ValidateUserData(&data); err != nil {
		return false
	}
	s.adoptUserData(data)
	return true
}

// ApplyUserData adopts an already-validated document (the remote copy during
// sync bootstrap) through the same normalization pipeline as import.
func (s *Store) ApplyUserData(data models.UserData) {
	s.adoptUserData(data)
}

func (s *Store) adoptUserData(data models.UserData) {
	profile := models.NormalizeProfile(data.Profile)
	history := models.NormalizeDays(data.History)
	incomingPlan := models.NormalizeDays(data.CurrentPlan)

	// Documents predating the data-driven generator that still carry the
	// legacy hardcoded plan get a fresh one; customized plans are kept.
	var nextPlan []models.WorkoutDay
	switch {
	case data.SchemaVersion < models.SchemaVersion && plan.IsLegacyDefaultPlan(incomingPlan):
		nextPlan = plan.Build(profile)
	case len(incomingPlan) > 0:
		nextPlan = incomingPlan
	default:
		nextPlan = plan.Build(profile)
	}

	s.mu.Lock()
	s.state.Profile = profile
	s.state.History = models.PruneHistory(history, s.now())
	s.state.CurrentPlan = nextPlan
	s.mu.Unlock()
	s.notify(Change{Profile: true, History: true, Plan: true})
}

// ResetUserData restores factory state: default profile, empty history and
// logs, freshly generated plan.
func (s *Store) ResetUserData() {
	profile := models.DefaultProfile()
	s.mu.Lock()
	s.state = models.AppState{
		Profile:     profile,
		History:     []models.WorkoutDay{},
		CurrentPlan: plan.Build(profile),
		SetLogs:     []models.LoggedSet{},
	}
	s.mu.Unlock()
	s.notify(Change{Profile: true, History: true, Plan: true, SetLogs: true})
}
