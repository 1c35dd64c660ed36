package store

import (
	"errors"
	"testing"
)

func newTestRecords(t *testing.T) *Records {
	t.Helper()
	return NewRecords(newTestStore(t))
}

// ============================================================
// Validation
// ============================================================

func TestEmptyUserRejected(t *testing.T) {
	r := newTestRecords(t)

	if err := r.SaveWorkouts("", nil); !errors.Is(err, ErrInvalidUser) {
		t.Fatalf("save: expected ErrInvalidUser, got %v", err)
	}
	if _, err := r.LoadWorkouts(""); !errors.Is(err, ErrInvalidUser) {
		t.Fatalf("load: expected ErrInvalidUser, got %v", err)
	}
	if err := r.ClearUser(""); !errors.Is(err, ErrInvalidUser) {
		t.Fatalf("clear: expected ErrInvalidUser, got %v", err)
	}
}

// ============================================================
// Profile
// ============================================================

func TestProfileRoundTrip(t *testing.T) {
	r := newTestRecords(t)

	p := Profile{Age: 30, Gender: "female", Height: 170, Weight: 65, FitnessGoal: "muscle_gain", ActivityLevel: "very_active"}
	if err := r.SaveProfile("u1", p); err != nil {
		t.Fatal(err)
	}
	got, found, err := r.LoadProfile("u1")
	if err != nil {
		t.Fatal(err)
	}
	if !found {
		t.Fatal("expected profile to be found")
	}
	if got != p {
		t.Fatalf("profile mismatch: %+v", got)
	}
}

func TestProfileAbsent(t *testing.T) {
	r := newTestRecords(t)
	_, found, err := r.LoadProfile("u1")
	if err != nil {
		t.Fatal(err)
	}
	if found {
		t.Fatal("no profile was saved")
	}
}

func TestHasProfileFlag(t *testing.T) {
	r := newTestRecords(t)

	has, err := r.HasProfile("u1")
	if err != nil {
		t.Fatal(err)
	}
	if has {
		t.Fatal("fresh user should have no profile flag")
	}

	r.SetHasProfile("u1", true)
	has, _ = r.HasProfile("u1")
	if !has {
		t.Fatal("expected flag to be set")
	}
}

// ============================================================
// Workouts
// ============================================================

func TestWorkoutsAppendAndDelete(t *testing.T) {
	r := newTestRecords(t)

	r.AppendWorkout("u1", Workout{ID: 1, Name: "Squats", Category: "strength"})
	r.AppendWorkout("u1", Workout{ID: 2, Name: "Running", Category: "cardio"})

	workouts, err := r.LoadWorkouts("u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(workouts) != 2 {
		t.Fatalf("expected 2 workouts, got %d", len(workouts))
	}

	if err := r.DeleteWorkout("u1", 1); err != nil {
		t.Fatal(err)
	}
	workouts, _ = r.LoadWorkouts("u1")
	if len(workouts) != 1 || workouts[0].ID != 2 {
		t.Fatalf("expected only workout 2, got %+v", workouts)
	}
}

func TestDeleteWorkoutUnknownID(t *testing.T) {
	r := newTestRecords(t)

	r.AppendWorkout("u1", Workout{ID: 1, Name: "Squats"})
	if err := r.DeleteWorkout("u1", 999); err != nil {
		t.Fatal(err)
	}
	workouts, _ := r.LoadWorkouts("u1")
	if len(workouts) != 1 {
		t.Fatal("deleting an unknown id should leave the set intact")
	}
}

func TestSaveWorkoutsNilStoresEmptyList(t *testing.T) {
	r := newTestRecords(t)

	r.SaveWorkouts("u1", nil)
	raw, err := r.kv.Get(userKey(CategoryWorkouts, "u1"))
	if err != nil {
		t.Fatal(err)
	}
	if raw != "[]" {
		t.Fatalf("expected empty JSON array, got %q", raw)
	}
}

func TestLoadWorkoutsMalformed(t *testing.T) {
	r := newTestRecords(t)

	r.kv.Put(userKey(CategoryWorkouts, "u1"), "{not json")
	workouts, err := r.LoadWorkouts("u1")
	if err != nil {
		t.Fatalf("malformed value should not error: %v", err)
	}
	if len(workouts) != 0 {
		t.Fatalf("malformed value should read as empty, got %+v", workouts)
	}
}

// ============================================================
// Meals
// ============================================================

func TestMealsAppendAndDelete(t *testing.T) {
	r := newTestRecords(t)

	r.AppendMeal("u1", Meal{ID: 1, Name: "Oatmeal", Type: MealBreakfast, Calories: 350})
	r.AppendMeal("u1", Meal{ID: 2, Name: "Salad", Type: MealLunch, Calories: 420})

	meals, err := r.LoadMeals("u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(meals) != 2 {
		t.Fatalf("expected 2 meals, got %d", len(meals))
	}
	if meals[0].Type != MealBreakfast {
		t.Fatalf("expected breakfast, got %s", meals[0].Type)
	}

	r.DeleteMeal("u1", 2)
	meals, _ = r.LoadMeals("u1")
	if len(meals) != 1 || meals[0].ID != 1 {
		t.Fatalf("expected only meal 1, got %+v", meals)
	}
}

// ============================================================
// Progress
// ============================================================

func TestProgressRoundTrip(t *testing.T) {
	r := newTestRecords(t)

	r.AppendProgress("u1", ProgressEntry{ID: 1, Weight: 72.5, Date: "2024-01-01"})
	entries, err := r.LoadProgress("u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Weight != 72.5 {
		t.Fatalf("unexpected entries: %+v", entries)
	}

	r.DeleteProgress("u1", 1)
	entries, _ = r.LoadProgress("u1")
	if len(entries) != 0 {
		t.Fatal("expected empty progress after delete")
	}
}

// ============================================================
// Goals
// ============================================================

func TestLoadGoalsDefault(t *testing.T) {
	r := newTestRecords(t)

	g, err := r.LoadGoals("u1")
	if err != nil {
		t.Fatal(err)
	}
	if g != DefaultGoals {
		t.Fatalf("expected defaults, got %+v", g)
	}
}

func TestGoalsRoundTrip(t *testing.T) {
	r := newTestRecords(t)

	want := Goals{WeeklyWorkouts: 3, DailyCalories: 1800, DailyActivityMinutes: 45, WeightGoal: 62}
	r.SaveGoals("u1", want)
	got, err := r.LoadGoals("u1")
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Fatalf("goals mismatch: %+v", got)
	}
}

// ============================================================
// User isolation
// ============================================================

func TestUsersAreIsolated(t *testing.T) {
	r := newTestRecords(t)

	r.AppendWorkout("u1", Workout{ID: 1, Name: "Squats"})
	r.AppendWorkout("u2", Workout{ID: 2, Name: "Deadlift"})

	w1, _ := r.LoadWorkouts("u1")
	w2, _ := r.LoadWorkouts("u2")
	if len(w1) != 1 || w1[0].Name != "Squats" {
		t.Fatalf("u1 sees wrong data: %+v", w1)
	}
	if len(w2) != 1 || w2[0].Name != "Deadlift" {
		t.Fatalf("u2 sees wrong data: %+v", w2)
	}
}

func TestClearUser(t *testing.T) {
	r := newTestRecords(t)

	r.SaveProfile("u1", Profile{Age: 30})
	r.AppendWorkout("u1", Workout{ID: 1, Name: "Squats"})
	r.SaveGoals("u1", Goals{WeeklyWorkouts: 3})
	r.kv.Put(archiveUserKey("2024-01-01", CategoryWorkouts, "u1"), "[]")

	// Another user's data must survive
	r.AppendWorkout("u2", Workout{ID: 2, Name: "Deadlift"})
	r.kv.Put(archiveUserKey("2024-01-01", CategoryWorkouts, "u2"), "[]")

	if err := r.ClearUser("u1"); err != nil {
		t.Fatal(err)
	}

	if _, found, _ := r.LoadProfile("u1"); found {
		t.Fatal("profile should be gone")
	}
	workouts, _ := r.LoadWorkouts("u1")
	if len(workouts) != 0 {
		t.Fatal("workouts should be gone")
	}
	if _, found, _ := r.ArchivedWorkouts("u1", "2024-01-01"); found {
		t.Fatal("archive should be gone")
	}

	w2, _ := r.LoadWorkouts("u2")
	if len(w2) != 1 {
		t.Fatal("u2 live data should survive")
	}
	if _, found, _ := r.ArchivedWorkouts("u2", "2024-01-01"); !found {
		t.Fatal("u2 archive should survive")
	}
}
