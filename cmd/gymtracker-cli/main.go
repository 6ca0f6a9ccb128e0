// Command gymtracker-cli drives the workout engine from the terminal against
// the same local state database the app uses, with an optional one-shot sync
// against the server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/asisr38/home-gym-tracker-app/internal/localstate"
	"github.com/asisr38/home-gym-tracker-app/internal/models"
	"github.com/asisr38/home-gym-tracker-app/internal/progress"
	"github.com/asisr38/home-gym-tracker-app/internal/store"
	gymsync "github.com/asisr38/home-gym-tracker-app/internal/sync"
)

// Version is set at build time via -ldflags.
var Version = "dev"

const usage = `Usage: gymtracker-cli [flags] <command> [args]

Commands:
  onboard                       set up the profile and generate a plan
  plan                          print the current weekly plan
  today                         print the workout scheduled for today
  stats                         weekly planned/completed set counts
  history                       print completed workout snapshots
  best <exercise>               last week's heaviest set for an exercise
  log <day> <exercise>          log a set (-weight, -reps)
  complete <day>                mark a day complete (-notes, -distance, -seconds)
  undo <day>                    undo the latest completion of a day
  swap <day> <exercise> <alt>   swap an exercise for one of its alternatives
  add-exercise <day> <name>     append a custom exercise to a lift day
  export [file]                 write the document as JSON (stdout by default)
  import <file>                 replace state from an exported document
  reset-plan                    regenerate the plan, keeping history
  reset                         wipe profile, plan, and history
  sync                          adopt the remote document or seed the server
`

func main() {
	dataDir := flag.String("data-dir", "", "state directory (default ~/.gymtracker)")
	user := flag.String("user", "", "account identity (default anonymous)")
	serverURL := flag.String("server", "", "gym tracker server URL (sync only)")
	token := flag.String("token", "", "bearer token (sync only)")

	name := flag.String("name", "", "profile name (onboard)")
	goal := flag.String("goal", "Build Muscle & Endurance", "training goal text (onboard)")
	equipment := flag.String("equipment", "bodyweight", "comma-separated equipment list (onboard)")
	runTarget := flag.Float64("run-target", 2, "daily run distance target (onboard)")

	weight := flag.Float64("weight", 0, "set weight (log)")
	reps := flag.Int("reps", 0, "set reps (log)")
	notes := flag.String("notes", "", "workout notes (complete)")
	distance := flag.Float64("distance", 0, "run distance performed (complete)")
	seconds := flag.Int("seconds", 0, "run duration in seconds (complete)")
	muscle := flag.String("muscle", "", "muscle group (add-exercise)")

	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("gymtracker-cli", Version)
		return
	}
	if flag.NArg() == 0 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	dir := *dataDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Error("resolving home directory", "error", err)
			os.Exit(1)
		}
		dir = filepath.Join(home, ".gymtracker")
	}

	db, err := localstate.Open(dir)
	if err != nil {
		log.Error("opening state database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	identity := *user
	if identity == "" {
		identity = localstate.AnonymousIdentity
	}

	engine := store.New()
	state, found, err := db.Load(identity)
	if err != nil {
		log.Error("loading state", "identity", identity, "error", err)
		os.Exit(1)
	}
	if found {
		engine.Replace(state)
	}

	code := run(engine, log, opts{
		serverURL: *serverURL, token: *token,
		name: *name, goal: *goal, equipment: *equipment, runTarget: *runTarget,
		weight: *weight, reps: *reps, notes: *notes,
		distance: *distance, seconds: *seconds, muscle: *muscle,
	})

	if err := db.Save(identity, engine.State()); err != nil {
		log.Error("saving state", "identity", identity, "error", err)
		os.Exit(1)
	}
	os.Exit(code)
}

type opts struct {
	serverURL string
	token     string
	name      string
	goal      string
	equipment string
	runTarget float64
	weight    float64
	reps      int
	notes     string
	distance  float64
	seconds   int
	muscle    string
}

func run(engine *store.Store, log *slog.Logger, o opts) int {
	args := flag.Args()
	switch args[0] {
	case "onboard":
		return cmdOnboard(engine, o)
	case "plan":
		return cmdPlan(engine)
	case "today":
		return cmdToday(engine)
	case "stats":
		return cmdStats(engine)
	case "history":
		return cmdHistory(engine)
	case "best":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "best: exercise name required")
			return 1
		}
		return cmdBest(engine, strings.Join(args[1:], " "))
	case "log":
		if len(args) < 3 {
			fmt.Fprintln(os.Stderr, "log: day and exercise ids required")
			return 1
		}
		return cmdLog(engine, args[1], args[2], o)
	case "complete":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "complete: day id required")
			return 1
		}
		return cmdComplete(engine, args[1], o)
	case "undo":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "undo: day id required")
			return 1
		}
		engine.UndoCompleteWorkout(args[1], "")
		return 0
	case "swap":
		if len(args) < 4 {
			fmt.Fprintln(os.Stderr, "swap: day, exercise, and alternative ids required")
			return 1
		}
		return cmdSwap(engine, args[1], args[2], args[3])
	case "add-exercise":
		if len(args) < 3 {
			fmt.Fprintln(os.Stderr, "add-exercise: day id and exercise name required")
			return 1
		}
		return cmdAddExercise(engine, args[1], strings.Join(args[2:], " "), o.muscle)
	case "export":
		target := ""
		if len(args) > 1 {
			target = args[1]
		}
		return cmdExport(engine, target)
	case "import":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "import: file required")
			return 1
		}
		return cmdImport(engine, args[1])
	case "reset-plan":
		engine.ResetPlan()
		return 0
	case "reset":
		engine.ResetUserData()
		return 0
	case "sync":
		return cmdSync(engine, log, o)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", args[0], usage)
		return 1
	}
}

func cmdOnboard(engine *store.Store, o opts) int {
	var equipment []models.Equipment
	for _, item := range strings.Split(o.equipment, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			equipment = append(equipment, models.Equipment(item))
		}
	}
	profile := models.DefaultProfile()
	profile.Name = o.name
	profile.Goal = o.goal
	profile.GoalType = models.InferGoalType(o.goal)
	profile.DailyRunTarget = o.runTarget
	profile.Equipment = equipment
	profile.OnboardingCompleted = true

	engine.CompleteOnboarding(profile)
	fmt.Printf("plan generated for %q (%s)\n", profile.Goal, profile.GoalType)
	return 0
}

func cmdPlan(engine *store.Store) int {
	for _, day := range engine.CurrentPlan() {
		printDay(day)
	}
	return 0
}

func cmdToday(engine *store.Store) int {
	profile := engine.Profile()
	plan := engine.CurrentPlan()
	day := progress.ScheduledForDate(plan, profile.StartOfWeek, time.Now())
	if day == nil {
		fmt.Println("nothing scheduled today")
		return 0
	}
	fmt.Printf("~%d min\n", progress.EstimateDayMinutes(*day))
	printDay(*day)
	return 0
}

func cmdStats(engine *store.Store) int {
	stats := progress.Weekly(engine.CurrentPlan())
	fmt.Printf("sets: %d/%d completed this week\n", stats.CompletedSets, stats.PlannedSets)
	return 0
}

func cmdHistory(engine *store.Store) int {
	history := engine.History()
	if len(history) == 0 {
		fmt.Println("no completed workouts in the last 30 days")
		return 0
	}
	for _, day := range history {
		fmt.Printf("%s  %s (%s)\n", day.DateCompleted, day.Title, day.ID)
	}
	return 0
}

func cmdBest(engine *store.Store, exercise string) int {
	profile := engine.Profile()
	best := progress.LastWeekBest(engine.History(), exercise, profile.StartOfWeek, time.Now())
	if best == nil {
		fmt.Printf("no completed sets for %q last week\n", exercise)
		return 0
	}
	if best.Reps != nil {
		fmt.Printf("%s: %.1f x %d (%s)\n", exercise, best.Weight, *best.Reps, best.Date)
	} else {
		fmt.Printf("%s: %.1f (%s)\n", exercise, best.Weight, best.Date)
	}
	return 0
}

func cmdLog(engine *store.Store, dayID, exerciseID string, o opts) int {
	var weight *float64
	var reps *int
	if o.weight > 0 {
		weight = &o.weight
	}
	if o.reps > 0 {
		reps = &o.reps
	}
	engine.LogWorkoutSet(dayID, exerciseID, weight, reps)
	return 0
}

func cmdComplete(engine *store.Store, dayID string, o opts) int {
	var notes *string
	if o.notes != "" {
		notes = &o.notes
	}
	var runData *models.RunActual
	if o.distance > 0 || o.seconds > 0 {
		runData = &models.RunActual{Distance: o.distance, TimeSeconds: o.seconds}
	}
	engine.CompleteWorkout(dayID, notes, runData, nil)
	return 0
}

func cmdSwap(engine *store.Store, dayID, exerciseID, altID string) int {
	for _, day := range engine.CurrentPlan() {
		if day.ID != dayID {
			continue
		}
		for _, ex := range day.Exercises {
			if ex.ID != exerciseID {
				continue
			}
			for _, alt := range ex.Alternatives {
				if alt.ID == altID {
					engine.SwapExercise(dayID, exerciseID, alt)
					fmt.Printf("swapped %s for %s\n", ex.Name, alt.Name)
					return 0
				}
			}
			fmt.Fprintf(os.Stderr, "no alternative %q on %s\n", altID, ex.Name)
			return 1
		}
	}
	fmt.Fprintf(os.Stderr, "exercise %s/%s not found\n", dayID, exerciseID)
	return 1
}

func cmdAddExercise(engine *store.Store, dayID, name, muscle string) int {
	id := "custom-" + uuid.NewString()
	engine.AddExerciseToDay(dayID, models.Exercise{
		ID:          id,
		Name:        name,
		MuscleGroup: muscle,
		Sets: []models.ExerciseSet{
			{ID: "s-1", TargetReps: "8-12"},
			{ID: "s-2", TargetReps: "8-12"},
			{ID: "s-3", TargetReps: "8-12"},
		},
	})
	fmt.Printf("added %s (%s)\n", name, id)
	return 0
}

func cmdExport(engine *store.Store, target string) int {
	data, err := engine.ExportData()
	if err != nil {
		fmt.Fprintf(os.Stderr, "export failed: %v\n", err)
		return 1
	}
	if target == "" {
		fmt.Println(data)
		return 0
	}
	if err := os.WriteFile(target, []byte(data), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "writing %s: %v\n", target, err)
		return 1
	}
	return 0
}

func cmdImport(engine *store.Store, path string) int {
	raw, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading %s: %v\n", path, err)
		return 1
	}
	if !engine.ImportData(string(raw)) {
		fmt.Fprintln(os.Stderr, "import rejected: document failed validation")
		return 1
	}
	fmt.Println("import complete")
	return 0
}

// cmdSync performs the one-shot bootstrap: adopt the remote document when one
// exists, otherwise seed the server with the local state.
func cmdSync(engine *store.Store, log *slog.Logger, o opts) int {
	if o.serverURL == "" || o.token == "" {
		fmt.Fprintln(os.Stderr, "sync: -server and -token are required")
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client := gymsync.NewHTTPClient(o.serverURL, o.token)
	remote, err := client.Fetch(ctx)
	if err != nil {
		log.Error("fetching remote document", "error", err)
		return 1
	}
	if remote == nil {
		if err := client.Save(ctx, engine.GetUserData()); err != nil {
			log.Error("seeding remote document", "error", err)
			return 1
		}
		fmt.Println("seeded server with local state")
		return 0
	}
	if err := models.ValidateUserData(remote); err != nil {
		log.Error("remote document failed validation", "error", err)
		return 1
	}
	engine.ApplyUserData(*remote)
	fmt.Println("adopted remote state")
	return 0
}

func printDay(day models.WorkoutDay) {
	status := " "
	if day.Completed {
		status = "x"
	}
	fmt.Printf("[%s] %-12s %s (%s)\n", status, day.ID, day.Title, day.Type)
	for _, ex := range day.Exercises {
		fmt.Printf("      %-10s %s  %d sets\n", ex.ID, ex.Name, len(ex.Sets))
	}
	if day.RunTarget != nil {
		fmt.Printf("      run %.1f  %s\n", day.RunTarget.Distance, day.RunTarget.Description)
	}
}
