package stats

import (
	"testing"

	"github.com/claude/liftlog/internal/models"
)

func weight(w float64) *float64 { return &w }

func exercise(name string, sets ...models.Set) models.Exercise {
	for i := range sets {
		sets[i].SetNumber = i + 1
	}
	return models.Exercise{Name: name, Sets: sets}
}

// TestTotalVolume verifies reps*weight summing, with a zero-weight set
// contributing nothing: 10*80 + 8*0 = 800.
func TestTotalVolume(t *testing.T) {
	w := models.Workout{Exercises: []models.Exercise{
		exercise("Bench Press",
			models.Set{Reps: 10, Weight: weight(80)},
			models.Set{Reps: 8, Weight: weight(0)},
		),
	}}
	if got := TotalVolume(w); got != 800 {
		t.Errorf("TotalVolume = %v, want 800", got)
	}
}

// TestTotalVolumeAbsentWeight verifies that a nil weight counts as 0.
func TestTotalVolumeAbsentWeight(t *testing.T) {
	w := models.Workout{Exercises: []models.Exercise{
		exercise("Push-ups", models.Set{Reps: 20}),
		exercise("Dips", models.Set{Reps: 5, Weight: weight(10)}),
	}}
	if got := TotalVolume(w); got != 50 {
		t.Errorf("TotalVolume = %v, want 50", got)
	}
}

// TestEstimatedDurationHalfUp pins the rounding rule: 5 sets and 2 exercises
// give 16.5 minutes, which rounds up to 17.
func TestEstimatedDurationHalfUp(t *testing.T) {
	w := models.Workout{Exercises: []models.Exercise{
		exercise("Squats", models.Set{Reps: 5}, models.Set{Reps: 5}, models.Set{Reps: 5}),
		exercise("Lunges", models.Set{Reps: 10}, models.Set{Reps: 10}),
	}}
	if got := EstimatedDurationMinutes(w, DefaultPolicy); got != 17 {
		t.Errorf("EstimatedDurationMinutes = %d, want 17", got)
	}
}

// TestEstimatedDurationNotBankers verifies 4.5 rounds to 5. Round-half-to-even
// would give 4.
func TestEstimatedDurationNotBankers(t *testing.T) {
	w := models.Workout{Exercises: []models.Exercise{
		exercise("Planks", models.Set{Reps: 1}),
	}}
	if got := EstimatedDurationMinutes(w, DefaultPolicy); got != 5 {
		t.Errorf("EstimatedDurationMinutes = %d, want 5", got)
	}
}

// TestEstimatedDurationCustomPolicy verifies the constants come from the policy.
func TestEstimatedDurationCustomPolicy(t *testing.T) {
	w := models.Workout{Exercises: []models.Exercise{
		exercise("Deadlifts", models.Set{Reps: 5}, models.Set{Reps: 5}),
	}}
	p := Policy{PerSetMinutes: 4, PerExerciseMinutes: 3}
	if got := EstimatedDurationMinutes(w, p); got != 11 {
		t.Errorf("EstimatedDurationMinutes = %d, want 11", got)
	}
}

// TestEmptyInputs verifies every calculator totals to zero on empty data.
func TestEmptyInputs(t *testing.T) {
	var w models.Workout
	var ex models.Exercise
	if got := TotalReps(ex); got != 0 {
		t.Errorf("TotalReps = %d, want 0", got)
	}
	if got := MaxWeight(ex); got != 0 {
		t.Errorf("MaxWeight = %v, want 0", got)
	}
	if got := TotalSets(w); got != 0 {
		t.Errorf("TotalSets = %d, want 0", got)
	}
	if got := TotalVolume(w); got != 0 {
		t.Errorf("TotalVolume = %v, want 0", got)
	}
	if got := EstimatedDurationMinutes(w, DefaultPolicy); got != 0 {
		t.Errorf("EstimatedDurationMinutes = %d, want 0", got)
	}
}

// TestMaxWeightAndTotalReps verifies per-exercise figures.
func TestMaxWeightAndTotalReps(t *testing.T) {
	ex := exercise("Bench Press",
		models.Set{Reps: 10, Weight: weight(80)},
		models.Set{Reps: 8, Weight: weight(85)},
		models.Set{Reps: 6},
	)
	if got := TotalReps(ex); got != 24 {
		t.Errorf("TotalReps = %d, want 24", got)
	}
	if got := MaxWeight(ex); got != 85 {
		t.Errorf("MaxWeight = %v, want 85", got)
	}
}

// TestSummarize verifies the bundled summary matches the individual calculators.
func TestSummarize(t *testing.T) {
	w := models.Workout{Exercises: []models.Exercise{
		exercise("Bench Press", models.Set{Reps: 10, Weight: weight(80)}, models.Set{Reps: 8, Weight: weight(85)}),
		exercise("Overhead Press", models.Set{Reps: 12, Weight: weight(50)}),
	}}
	w.Exercises[0].Order = 1
	w.Exercises[1].Order = 2

	sum := Summarize(w, DefaultPolicy)
	if sum.TotalSets != 3 {
		t.Errorf("TotalSets = %d, want 3", sum.TotalSets)
	}
	if sum.TotalReps != 30 {
		t.Errorf("TotalReps = %d, want 30", sum.TotalReps)
	}
	if sum.TotalVolume != 2080 {
		t.Errorf("TotalVolume = %v, want 2080", sum.TotalVolume)
	}
	// 3*2.5 + 2*2 = 11.5 -> 12
	if sum.EstimatedMinutes != 12 {
		t.Errorf("EstimatedMinutes = %d, want 12", sum.EstimatedMinutes)
	}
	if len(sum.Exercises) != 2 || sum.Exercises[1].MaxWeight != 50 {
		t.Errorf("Exercises = %+v", sum.Exercises)
	}
}
