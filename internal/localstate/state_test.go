package localstate

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/asisr38/home-gym-tracker-app/internal/models"
	"github.com/asisr38/home-gym-tracker-app/internal/plan"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	db.now = func() time.Time {
		return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	}
	return db
}

// TestSaveLoadRoundTrip verifies a saved state comes back intact.
func TestSaveLoadRoundTrip(t *testing.T) {
	db := newTestDB(t)

	profile := models.NormalizeProfile(models.UserProfile{
		Name:           "Asis",
		Goal:           "strength",
		Units:          models.UnitsImperial,
		DailyRunTarget: 2,
		Equipment:      []models.Equipment{models.EquipBodyweight, models.EquipDumbbell},
	})
	state := models.AppState{
		Profile:     profile,
		CurrentPlan: plan.Build(profile),
		History:     []models.WorkoutDay{},
		SetLogs:     []models.LoggedSet{},
	}
	if err := db.Save("user-1", state); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, found, err := db.Load("user-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !found {
		t.Fatal("Load: saved state not found")
	}
	if loaded.Profile.Name != "Asis" || loaded.Profile.GoalType != models.GoalStrength {
		t.Errorf("profile did not round-trip: %+v", loaded.Profile)
	}
	if len(loaded.CurrentPlan) != len(state.CurrentPlan) {
		t.Errorf("plan length = %d, want %d", len(loaded.CurrentPlan), len(state.CurrentPlan))
	}
}

// TestLoadMissingIdentity verifies an unknown identity reports not found
// without an error.
func TestLoadMissingIdentity(t *testing.T) {
	db := newTestDB(t)
	_, found, err := db.Load("nobody")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if found {
		t.Fatal("Load reported state for an identity that never saved")
	}
}

// TestIdentitiesAreIsolated verifies one identity's save never leaks into
// another's load.
func TestIdentitiesAreIsolated(t *testing.T) {
	db := newTestDB(t)

	a := models.AppState{Profile: models.DefaultProfile()}
	a.Profile.Name = "A"
	b := models.AppState{Profile: models.DefaultProfile()}
	b.Profile.Name = "B"

	if err := db.Save("a", a); err != nil {
		t.Fatalf("Save a: %v", err)
	}
	if err := db.Save(AnonymousIdentity, b); err != nil {
		t.Fatalf("Save anonymous: %v", err)
	}

	got, _, err := db.Load("a")
	if err != nil {
		t.Fatalf("Load a: %v", err)
	}
	if got.Profile.Name != "A" {
		t.Errorf("identity a loaded profile %q", got.Profile.Name)
	}
	got, _, err = db.Load(AnonymousIdentity)
	if err != nil {
		t.Fatalf("Load anonymous: %v", err)
	}
	if got.Profile.Name != "B" {
		t.Errorf("anonymous loaded profile %q", got.Profile.Name)
	}
}

// TestDeleteRemovesState verifies Delete clears a single identity only.
func TestDeleteRemovesState(t *testing.T) {
	db := newTestDB(t)

	if err := db.Save("a", models.AppState{Profile: models.DefaultProfile()}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := db.Save("b", models.AppState{Profile: models.DefaultProfile()}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := db.Delete("a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, found, _ := db.Load("a"); found {
		t.Error("deleted identity still loads")
	}
	if _, found, _ := db.Load("b"); !found {
		t.Error("untouched identity lost its state")
	}
}

// TestLoadFillsProfileDefaults verifies fields absent from an old blob take
// their default values instead of zero values.
func TestLoadFillsProfileDefaults(t *testing.T) {
	db := newTestDB(t)

	// An old blob that only ever knew about a name.
	raw := []byte(`{"profile":{"name":"Old Timer"}}`)
	if err := db.save("old", 1, raw); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, found, err := db.Load("old")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !found {
		t.Fatal("state not found")
	}
	if got.Profile.Name != "Old Timer" {
		t.Errorf("name = %q", got.Profile.Name)
	}
	if got.Profile.Units != models.UnitsImperial || got.Profile.DailyRunTarget != 2 {
		t.Errorf("defaults not applied: %+v", got.Profile)
	}
	if len(got.CurrentPlan) == 0 {
		t.Error("load did not generate a plan for a planless blob")
	}
}

// TestMigrateLegacyPlanRegenerated verifies a version-1 blob carrying the
// legacy hardcoded plan gets a freshly generated plan on load.
func TestMigrateLegacyPlanRegenerated(t *testing.T) {
	db := newTestDB(t)

	legacy := models.AppState{
		Profile: models.DefaultProfile(),
		CurrentPlan: []models.WorkoutDay{
			{ID: "day-1", DayNumber: 1, Title: "Push Day", Type: models.DayLift},
			{ID: "day-2", DayNumber: 2, Title: "Leg Day", Type: models.DayLift},
		},
	}
	raw, err := json.Marshal(legacy)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := db.save("legacy", 1, raw); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, _, err := db.Load("legacy")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if plan.IsLegacyDefaultPlan(got.CurrentPlan) {
		t.Fatal("legacy plan survived migration")
	}
	if len(got.CurrentPlan) != 7 {
		t.Errorf("regenerated plan has %d days, want 7", len(got.CurrentPlan))
	}
}

// TestMigrateBackfillsDayFocus verifies pre-version-2 days without a dayType
// get one inferred from the title.
func TestMigrateBackfillsDayFocus(t *testing.T) {
	state := models.AppState{
		Profile: models.DefaultProfile(),
		CurrentPlan: []models.WorkoutDay{
			{ID: "day-1", DayNumber: 1, Title: "Heavy Pull Work", Type: models.DayLift,
				Exercises: []models.Exercise{{ID: "d1-e1", Name: "Row", Sets: []models.ExerciseSet{{ID: "s-1", TargetReps: "5"}}}}},
		},
	}
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	got := Migrate(1, state, now)
	if got.CurrentPlan[0].DayType != models.FocusPull {
		t.Errorf("dayType = %q, want pull", got.CurrentPlan[0].DayType)
	}
}

// TestMigrateBackfillsLoggedSetNames verifies pre-version-3 set logs pick up
// the exercise name from the plan, falling back to a generic label.
func TestMigrateBackfillsLoggedSetNames(t *testing.T) {
	state := models.AppState{
		Profile: models.DefaultProfile(),
		CurrentPlan: []models.WorkoutDay{
			{ID: "day-1", DayNumber: 1, Title: "Push", Type: models.DayLift,
				Exercises: []models.Exercise{{ID: "d1-e1", Name: "Bench Press"}}},
		},
		SetLogs: []models.LoggedSet{
			{ID: "l1", DayID: "day-1", ExerciseID: "d1-e1"},
			{ID: "l2", DayID: "day-1", ExerciseID: "gone"},
			{ID: "l3", DayID: "day-1", ExerciseID: "d1-e1", ExerciseName: "Renamed"},
		},
	}
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	got := Migrate(2, state, now)
	if got.SetLogs[0].ExerciseName != "Bench Press" {
		t.Errorf("log l1 name = %q, want Bench Press", got.SetLogs[0].ExerciseName)
	}
	if got.SetLogs[1].ExerciseName != "Exercise" {
		t.Errorf("log l2 name = %q, want Exercise fallback", got.SetLogs[1].ExerciseName)
	}
	if got.SetLogs[2].ExerciseName != "Renamed" {
		t.Errorf("log l3 name overwritten to %q", got.SetLogs[2].ExerciseName)
	}
}

// TestMigratePrunesHistory verifies the finalization pass drops history older
// than the retention window regardless of blob version.
func TestMigratePrunesHistory(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	state := models.AppState{
		Profile: models.DefaultProfile(),
		History: []models.WorkoutDay{
			{ID: "day-1", Title: "Old", Type: models.DayRecovery, Completed: true,
				DateCompleted: now.Add(-31 * 24 * time.Hour).Format(time.RFC3339)},
			{ID: "day-2", Title: "Recent", Type: models.DayRecovery, Completed: true,
				DateCompleted: now.Add(-24 * time.Hour).Format(time.RFC3339)},
		},
	}
	got := Migrate(CurrentVersion, state, now)
	if len(got.History) != 1 || got.History[0].ID != "day-2" {
		t.Errorf("history after prune = %+v", got.History)
	}
}

// TestMigrateCurrentVersionIdempotent verifies migrating an already-current,
// already-normalized state changes nothing.
func TestMigrateCurrentVersionIdempotent(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	profile := models.NormalizeProfile(models.DefaultProfile())
	state := models.AppState{
		Profile:     profile,
		CurrentPlan: models.NormalizeDays(plan.Build(profile)),
		History:     []models.WorkoutDay{},
		SetLogs:     []models.LoggedSet{},
	}

	once := Migrate(CurrentVersion, state, now)
	twice := Migrate(CurrentVersion, once, now)

	a, _ := json.Marshal(once)
	b, _ := json.Marshal(twice)
	if string(a) != string(b) {
		t.Error("migration of a current state is not idempotent")
	}
}
