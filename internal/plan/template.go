package plan

import "github.com/asisr38/home-gym-tracker-app/internal/models"

// candidate is one selectable exercise within a slot, annotated with the
// equipment it needs. Options are authored in preference order (free weights
// first) and the last option of every slot must be bodyweight-only so a plan
// is always producible.
type candidate struct {
	Name     string
	Requires []models.Equipment
}

// exerciseSlot is a generator-defined position within a lift day.
type exerciseSlot struct {
	Tier        Tier
	MuscleGroup string
	Options     []candidate
}

// daySlot is one entry of the weekly template. Exactly one of slots (lift)
// or runFactor (run) is meaningful; recovery days carry neither.
type daySlot struct {
	id        string // fixed literal for run/recovery days; lift days derive day-N
	title     string
	kind      models.DayKind
	focus     models.DayFocus
	slots     []exerciseSlot
	runFactor float64
	runDesc   string
}

func liftDay(title string, focus models.DayFocus, slots ...exerciseSlot) daySlot {
	return daySlot{title: title, kind: models.DayLift, focus: focus, slots: slots}
}

func runDay(id, title string, factor float64, desc string) daySlot {
	return daySlot{id: id, title: title, kind: models.DayRun, focus: models.FocusCardio, runFactor: factor, runDesc: desc}
}

func recoveryDay(id, title string) daySlot {
	return daySlot{id: id, title: title, kind: models.DayRecovery, focus: models.FocusCardio}
}

var (
	bw = models.EquipBodyweight
	db = models.EquipDumbbell
	bb = models.EquipBarbell
	bn = models.EquipBench
	rk = models.EquipRack
	bd = models.EquipBands
	kb = models.EquipKettlebell
)

func req(items ...models.Equipment) []models.Equipment { return items }

// weeklyTemplate is the fixed push/pull/legs rotation with two run days and a
// recovery day. List order within a slot is the preference ranking; the first
// candidate the user's equipment satisfies wins.
var weeklyTemplate = []daySlot{
	liftDay("Push Strength", models.FocusPush,
		exerciseSlot{TierCompound, "Chest", []candidate{
			{"Barbell Bench Press", req(bb, bn, rk)},
			{"Dumbbell Bench Press", req(db, bn)},
			{"Banded Push-up", req(bd)},
			{"Push-up", req(bw)},
		}},
		exerciseSlot{TierAccessory, "Shoulders", []candidate{
			{"Dumbbell Shoulder Press", req(db)},
			{"Banded Overhead Press", req(bd)},
			{"Pike Push-up", req(bw)},
		}},
		exerciseSlot{TierAccessory, "Triceps", []candidate{
			{"Dumbbell Overhead Extension", req(db)},
			{"Banded Pushdown", req(bd)},
			{"Bench Dip", req(bw)},
		}},
		exerciseSlot{TierCore, "Core", []candidate{
			{"Weighted Plank", req(db)},
			{"Plank", req(bw)},
		}},
	),
	liftDay("Pull Strength", models.FocusPull,
		exerciseSlot{TierCompound, "Back", []candidate{
			{"Barbell Row", req(bb)},
			{"Dumbbell Row", req(db)},
			{"Banded Row", req(bd)},
			{"Inverted Row", req(bw)},
		}},
		exerciseSlot{TierAccessory, "Rear Delts", []candidate{
			{"Dumbbell Reverse Fly", req(db, bn)},
			{"Banded Pull-apart", req(bd)},
			{"Prone Y Raise", req(bw)},
		}},
		exerciseSlot{TierAccessory, "Biceps", []candidate{
			{"Barbell Curl", req(bb)},
			{"Dumbbell Curl", req(db)},
			{"Banded Curl", req(bd)},
			{"Towel Curl", req(bw)},
		}},
		exerciseSlot{TierCore, "Core", []candidate{
			{"Hanging Knee Raise", req(rk)},
			{"Dead Bug", req(bw)},
		}},
	),
	runDay("run-tempo", "Tempo Run", 1.0, "Steady tempo effort, controlled breathing"),
	liftDay("Leg Power", models.FocusLegs,
		exerciseSlot{TierCompound, "Quads", []candidate{
			{"Barbell Back Squat", req(bb, rk)},
			{"Goblet Squat", req(db)},
			{"Kettlebell Front Squat", req(kb)},
			{"Bodyweight Squat", req(bw)},
		}},
		exerciseSlot{TierAccessory, "Hamstrings", []candidate{
			{"Romanian Deadlift", req(bb)},
			{"Dumbbell RDL", req(db)},
			{"Kettlebell Swing", req(kb)},
			{"Single-leg Hip Hinge", req(bw)},
		}},
		exerciseSlot{TierAccessory, "Glutes", []candidate{
			{"Barbell Hip Thrust", req(bb, bn)},
			{"Dumbbell Hip Thrust", req(db, bn)},
			{"Glute Bridge", req(bw)},
		}},
		exerciseSlot{TierAccessory, "Calves", []candidate{
			{"Dumbbell Calf Raise", req(db)},
			{"Single-leg Calf Raise", req(bw)},
		}},
		exerciseSlot{TierCore, "Core", []candidate{
			{"Pallof Press", req(bd)},
			{"Side Plank", req(bw)},
		}},
	),
	liftDay("Full Body Conditioning", models.FocusFull,
		exerciseSlot{TierCompound, "Full Body", []candidate{
			{"Barbell Deadlift", req(bb)},
			{"Kettlebell Clean & Press", req(kb)},
			{"Dumbbell Thruster", req(db)},
			{"Burpee", req(bw)},
		}},
		exerciseSlot{TierAccessory, "Upper Back", []candidate{
			{"Kettlebell High Pull", req(kb)},
			{"Banded Face Pull", req(bd)},
			{"Superman Pull", req(bw)},
		}},
		exerciseSlot{TierAccessory, "Quads", []candidate{
			{"Dumbbell Walking Lunge", req(db)},
			{"Reverse Lunge", req(bw)},
		}},
		exerciseSlot{TierCore, "Core", []candidate{
			{"Kettlebell Suitcase Carry", req(kb)},
			{"Mountain Climber", req(bw)},
		}},
	),
	runDay("run-long", "Long Run", 1.5, "Comfortable pace, conversational effort"),
	recoveryDay("recovery-1", "Mobility & Rest"),
}
