// Package models defines the domain types shared by the state engine, the
// local persistence layer, the sync client, and the remote document server.
// JSON field names match the document schema stored remotely, so a payload
// produced by any component round-trips through all of them.
package models

// UnitSystem selects how heights, weights, and distances are displayed.
type UnitSystem string

const (
	UnitsImperial UnitSystem = "imperial"
	UnitsMetric   UnitSystem = "metric"
)

// DayKind is the structural kind of a workout day. Lift days carry exercises,
// run days carry a run target, recovery days carry neither.
type DayKind string

const (
	DayLift     DayKind = "lift"
	DayRun      DayKind = "run"
	DayRecovery DayKind = "recovery"
)

// DayFocus is a display-only classification of a day (push/pull/legs/...).
type DayFocus string

const (
	FocusPush   DayFocus = "push"
	FocusPull   DayFocus = "pull"
	FocusLegs   DayFocus = "legs"
	FocusCardio DayFocus = "cardio"
	FocusFull   DayFocus = "full"
)

// GoalType drives set/rep scheme selection and run-distance scaling.
type GoalType string

const (
	GoalStrength    GoalType = "strength"
	GoalHypertrophy GoalType = "hypertrophy"
	GoalEndurance   GoalType = "endurance"
	GoalFatLoss     GoalType = "fat_loss"
	GoalBalanced    GoalType = "balanced"
)

// Equipment is a capability tag describing what gear the user has access to.
type Equipment string

const (
	EquipBodyweight Equipment = "bodyweight"
	EquipDumbbell   Equipment = "dumbbell"
	EquipBarbell    Equipment = "barbell"
	EquipBench      Equipment = "bench"
	EquipRack       Equipment = "rack"
	EquipBands      Equipment = "bands"
	EquipKettlebell Equipment = "kettlebell"
)

// UserProfile describes the user and their training preferences.
// Equipment always contains at least EquipBodyweight after normalization.
type UserProfile struct {
	Name                string      `json:"name"`
	Height              float64     `json:"height"`
	Weight              float64     `json:"weight"`
	Goal                string      `json:"goal"`
	GoalType            GoalType    `json:"goalType"`
	Units               UnitSystem  `json:"units"`
	DailyRunTarget      float64     `json:"dailyRunTarget"`
	NutritionTarget     string      `json:"nutritionTarget"`
	OnboardingCompleted bool        `json:"onboardingCompleted"`
	StartOfWeek         int         `json:"startOfWeek"`
	Equipment           []Equipment `json:"equipment"`
}

// ExerciseSet is one planned set. ActualReps and Weight stay nil until the
// set is logged.
type ExerciseSet struct {
	ID          string   `json:"id"`
	TargetReps  string   `json:"targetReps"`
	ActualReps  *int     `json:"actualReps"`
	Weight      *float64 `json:"weight"`
	Completed   bool     `json:"completed"`
	PerfectForm bool     `json:"perfectForm"`
}

// ExerciseAlternative is a swap candidate for a planned exercise.
type ExerciseAlternative struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Reason      string `json:"reason,omitempty"`
	MuscleGroup string `json:"muscleGroup,omitempty"`
}

// ExerciseIdentity is the pre-swap identity of an exercise. While set, the
// exercise is displaying a swapped-in alternative.
type ExerciseIdentity struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MuscleGroup string `json:"muscleGroup,omitempty"`
}

// Exercise is a planned exercise within a lift day.
type Exercise struct {
	ID               string                `json:"id"`
	Name             string                `json:"name"`
	MuscleGroup      string                `json:"muscleGroup,omitempty"`
	Sets             []ExerciseSet         `json:"sets"`
	Alternatives     []ExerciseAlternative `json:"alternatives,omitempty"`
	Primary          *ExerciseIdentity     `json:"primary,omitempty"`
	SwapReason       string                `json:"swapReason,omitempty"`
	Notes            string                `json:"notes,omitempty"`
	RestTimerSeconds int                   `json:"restTimerSeconds,omitempty"`
	VideoURL         string                `json:"videoUrl,omitempty"`
}

// RunTarget is the planned distance for a run day.
type RunTarget struct {
	Distance    float64 `json:"distance"`
	Description string  `json:"description"`
}

// RunActual is the distance and duration the user actually performed.
type RunActual struct {
	Distance    float64 `json:"distance"`
	TimeSeconds int     `json:"timeSeconds"`
}

// WorkoutDay is one day of the weekly template. The (ID, DateCompleted) pair
// identifies a history entry. DateCompleted, RunActual, and CalvesStretched
// are only carried while Completed is true.
type WorkoutDay struct {
	ID              string     `json:"id"`
	DayNumber       int        `json:"dayNumber"`
	Title           string     `json:"title"`
	Type            DayKind    `json:"type"`
	DayType         DayFocus   `json:"dayType,omitempty"`
	Exercises       []Exercise `json:"exercises"`
	RunTarget       *RunTarget `json:"runTarget,omitempty"`
	Completed       bool       `json:"completed"`
	DateCompleted   string     `json:"dateCompleted,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	RunActual       *RunActual `json:"runActual,omitempty"`
	CalvesStretched bool       `json:"calvesStretched,omitempty"`
}

// LoggedSet is an append-only audit record written by quick set logging.
// Timestamp is unix milliseconds.
type LoggedSet struct {
	ID           string   `json:"id"`
	DayID        string   `json:"dayId"`
	ExerciseID   string   `json:"exerciseId"`
	ExerciseName string   `json:"exerciseName"`
	Weight       *float64 `json:"weight"`
	Reps         *int     `json:"reps"`
	Timestamp    int64    `json:"timestamp"`
}

// SchemaVersion is the current UserData document version. Version 2
// introduced the data-driven plan generator; older documents carrying the
// legacy hardcoded plan are regenerated on load.
const SchemaVersion = 2

// DefaultProfile is the profile a fresh installation starts with.
func DefaultProfile() UserProfile {
	return UserProfile{
		Goal:           "Build Muscle & Endurance",
		GoalType:       GoalBalanced,
		Units:          UnitsImperial,
		DailyRunTarget: 2,
		StartOfWeek:    1,
		Equipment:      []Equipment{EquipBodyweight},
	}
}

// UserData is the syncable/exportable snapshot of a user's state. SetLogs are
// deliberately absent: they are local-only audit data.
type UserData struct {
	SchemaVersion int          `json:"schemaVersion,omitempty"`
	Profile       UserProfile  `json:"profile"`
	History       []WorkoutDay `json:"history"`
	CurrentPlan   []WorkoutDay `json:"currentPlan"`
	UpdatedAt     int64        `json:"updatedAt,omitempty"`
}

// AppState is the aggregate root owned by the store.
type AppState struct {
	Profile     UserProfile  `json:"profile"`
	History     []WorkoutDay `json:"history"`
	CurrentPlan []WorkoutDay `json:"currentPlan"`
	SetLogs     []LoggedSet  `json:"setLogs"`
}
