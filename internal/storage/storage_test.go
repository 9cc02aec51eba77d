package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/claude/spotme/internal/models"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "spotme.db")
	if err := RunMigrations(path); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	db, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestAddExerciseComputesTotalWeight verifies the volume invariant is applied
// at insert time and survives a read back.
func TestAddExerciseComputesTotalWeight(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	w, err := db.CreateWorkout(ctx, time.Now(), "Push", "")
	if err != nil {
		t.Fatalf("create workout: %v", err)
	}

	ex, err := db.AddExercise(ctx, w.ID, "Bench Press", 3, 8, 135.0)
	if err != nil {
		t.Fatalf("add exercise: %v", err)
	}
	if ex.TotalWeight != 3240.0 {
		t.Errorf("total weight = %v, want 3240", ex.TotalWeight)
	}

	got, err := db.FetchLastExercise(ctx, "Bench Press")
	if err != nil {
		t.Fatalf("fetch last: %v", err)
	}
	if got == nil || got.TotalWeight != 3240.0 {
		t.Errorf("stored total weight = %+v, want 3240", got)
	}
}

// TestPRSequence verifies the PR rule over the insertion sequence
// [100, 120, 110]: only the 120 entry is a PR. The first entry has no prior
// history, and 110 does not beat the standing max.
func TestPRSequence(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	w, err := db.CreateWorkout(ctx, time.Now(), "Push", "")
	if err != nil {
		t.Fatalf("create workout: %v", err)
	}

	weights := []float64{100, 120, 110}
	wantPR := []bool{false, true, false}
	for i, weight := range weights {
		ex, err := db.AddExercise(ctx, w.ID, "Overhead Press", 3, 5, weight)
		if err != nil {
			t.Fatalf("add exercise %d: %v", i, err)
		}
		if ex.IsPR != wantPR[i] {
			t.Errorf("weight %v: is_pr = %v, want %v", weight, ex.IsPR, wantPR[i])
		}
	}

	prs, err := db.FetchPersonalRecords(ctx, "Overhead Press")
	if err != nil {
		t.Fatalf("fetch PRs: %v", err)
	}
	if len(prs) != 1 || prs[0].Weight != 120 {
		t.Errorf("PRs = %+v, want single entry at 120", prs)
	}
}

// TestFetchRecentWorkoutsWindow verifies the 7-day window: a workout 8 days
// old is excluded, one 6 days old is included, and results are newest first.
func TestFetchRecentWorkoutsWindow(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	now := time.Now()
	if _, err := db.CreateWorkout(ctx, now.AddDate(0, 0, -8), "Legs", "too old"); err != nil {
		t.Fatal(err)
	}
	if _, err := db.CreateWorkout(ctx, now.AddDate(0, 0, -6), "Pull", "in window"); err != nil {
		t.Fatal(err)
	}
	if _, err := db.CreateWorkout(ctx, now.AddDate(0, 0, -1), "Push", "recent"); err != nil {
		t.Fatal(err)
	}

	recent, err := db.FetchRecentWorkouts(ctx, 7)
	if err != nil {
		t.Fatalf("fetch recent: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("recent = %d workouts, want 2", len(recent))
	}
	if recent[0].DayType != "Push" || recent[1].DayType != "Pull" {
		t.Errorf("order = [%s, %s], want [Push, Pull]", recent[0].DayType, recent[1].DayType)
	}

	all, err := db.FetchAllWorkouts(ctx)
	if err != nil {
		t.Fatalf("fetch all: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("all = %d workouts, want 3", len(all))
	}
}

// TestLogWorkoutTransaction verifies that one extracted payload commits as a
// workout plus its exercises in array order, with PR flags evaluated inside
// the same transaction.
func TestLogWorkoutTransaction(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	data := models.WorkoutData{
		DayType: "Push",
		Notes:   "solid session",
		Exercises: []models.ExerciseData{
			{Name: "Bench Press", Sets: 3, Reps: 8, Weight: 135},
			{Name: "Bench Press", Sets: 1, Reps: 1, Weight: 155},
			{Name: "Dips", Sets: 3, Reps: 12, Weight: 0},
		},
	}

	w, err := db.LogWorkout(ctx, data, time.Now())
	if err != nil {
		t.Fatalf("log workout: %v", err)
	}
	if len(w.Exercises) != 3 {
		t.Fatalf("exercises = %d, want 3", len(w.Exercises))
	}
	if w.Exercises[0].Name != "Bench Press" || w.Exercises[2].Name != "Dips" {
		t.Errorf("exercise order not preserved: %+v", w.Exercises)
	}
	// The 155 single sees the 135 entry from the same payload.
	if w.Exercises[0].IsPR || !w.Exercises[1].IsPR {
		t.Errorf("PR flags = [%v, %v], want [false, true]",
			w.Exercises[0].IsPR, w.Exercises[1].IsPR)
	}

	stored, err := db.FetchAllWorkouts(ctx)
	if err != nil {
		t.Fatalf("fetch all: %v", err)
	}
	if len(stored) != 1 || len(stored[0].Exercises) != 3 {
		t.Fatalf("stored = %+v, want 1 workout with 3 exercises", stored)
	}
	if stored[0].Notes != "solid session" || stored[0].DayType != "Push" {
		t.Errorf("workout fields = %q/%q", stored[0].DayType, stored[0].Notes)
	}
}

// TestFetchLastExerciseByWorkoutDate verifies recency is the owning workout's
// date, not anything name-based: an older workout inserted later must not win.
func TestFetchLastExerciseByWorkoutDate(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	now := time.Now()
	newer, err := db.CreateWorkout(ctx, now.AddDate(0, 0, -1), "Push", "")
	if err != nil {
		t.Fatal(err)
	}
	older, err := db.CreateWorkout(ctx, now.AddDate(0, 0, -5), "Push", "")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := db.AddExercise(ctx, newer.ID, "Squat", 5, 5, 225); err != nil {
		t.Fatal(err)
	}
	// Inserted after, but belongs to the older workout.
	if _, err := db.AddExercise(ctx, older.ID, "Squat", 3, 8, 185); err != nil {
		t.Fatal(err)
	}

	last, err := db.FetchLastExercise(ctx, "Squat")
	if err != nil {
		t.Fatalf("fetch last: %v", err)
	}
	if last == nil || last.Weight != 225 {
		t.Errorf("last = %+v, want the 225 entry from the newer workout", last)
	}

	missing, err := db.FetchLastExercise(ctx, "Deadlift")
	if err != nil {
		t.Fatalf("fetch missing: %v", err)
	}
	if missing != nil {
		t.Errorf("missing = %+v, want nil", missing)
	}
}

// TestDeleteWorkoutCascades verifies exclusive ownership: deleting a workout
// removes its exercises.
func TestDeleteWorkoutCascades(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	w, err := db.CreateWorkout(ctx, time.Now(), "Arms", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.AddExercise(ctx, w.ID, "Curl", 3, 12, 30); err != nil {
		t.Fatal(err)
	}

	if err := db.DeleteWorkout(ctx, w.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	last, err := db.FetchLastExercise(ctx, "Curl")
	if err != nil {
		t.Fatalf("fetch last: %v", err)
	}
	if last != nil {
		t.Errorf("exercise survived workout deletion: %+v", last)
	}
}
