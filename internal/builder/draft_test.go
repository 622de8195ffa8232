package builder

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"
)

func intp(v int) *int           { return &v }
func floatp(v float64) *float64 { return &v }

func mustAdd(t *testing.T, d Draft, names ...string) Draft {
	t.Helper()
	for _, n := range names {
		var err error
		d, err = d.AddExercise(n)
		if err != nil {
			t.Fatalf("AddExercise(%q): %v", n, err)
		}
	}
	return d
}

func assertContiguous(t *testing.T, sets []DraftSet) {
	t.Helper()
	for i, s := range sets {
		if s.SetNumber != i+1 {
			t.Fatalf("set %d has SetNumber %d, want %d (sets=%+v)", i, s.SetNumber, i+1, sets)
		}
	}
}

// TestAddExerciseDuplicateIgnoresCase verifies "Squats" then "squats" is
// rejected and the draft keeps exactly one exercise.
func TestAddExerciseDuplicateIgnoresCase(t *testing.T) {
	d := mustAdd(t, Draft{}, "Squats")

	got, err := d.AddExercise("squats")
	var dup *DuplicateExerciseError
	if !errors.As(err, &dup) {
		t.Fatalf("err = %v, want DuplicateExerciseError", err)
	}
	if len(got.Exercises) != 1 {
		t.Errorf("exercises = %d, want 1", len(got.Exercises))
	}
}

// TestAddExerciseTrimsAndRejectsBlank verifies names are trimmed and blank
// names are a validation error.
func TestAddExerciseTrimsAndRejectsBlank(t *testing.T) {
	d := mustAdd(t, Draft{}, "  Bench Press  ")
	if d.Exercises[0].Name != "Bench Press" {
		t.Errorf("name = %q, want %q", d.Exercises[0].Name, "Bench Press")
	}
	if len(d.Exercises[0].Sets) != 0 {
		t.Errorf("new exercise has %d sets, want 0", len(d.Exercises[0].Sets))
	}

	_, err := d.AddExercise("   ")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

// TestAddExerciseDuplicateAfterTrim verifies whitespace does not defeat the
// duplicate check.
func TestAddExerciseDuplicateAfterTrim(t *testing.T) {
	d := mustAdd(t, Draft{}, "Deadlifts")
	if _, err := d.AddExercise(" DEADLIFTS "); err == nil {
		t.Fatal("expected duplicate error")
	}
}

// TestStageSetRequiresPositiveReps verifies that zero or negative reps leave
// the draft unchanged.
func TestStageSetRequiresPositiveReps(t *testing.T) {
	d := mustAdd(t, Draft{}, "Squats")
	for _, reps := range []int{0, -3} {
		got, err := d.StageSet(0, reps, floatp(100))
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("reps=%d: err = %v, want ValidationError", reps, err)
		}
		if len(got.Exercises[0].Sets) != 0 {
			t.Errorf("reps=%d: sets = %d, want 0", reps, len(got.Exercises[0].Sets))
		}
	}
}

// TestStageSetUpperBounds verifies reps beyond a 32-bit column and weights
// that would overflow volume totals are rejected.
func TestStageSetUpperBounds(t *testing.T) {
	d := mustAdd(t, Draft{}, "Squats")
	tests := []struct {
		name   string
		reps   int
		weight *float64
	}{
		{"reps", MaxReps + 1, floatp(100)},
		{"weight", 5, floatp(1e308)},
		{"nan", 5, floatp(math.NaN())},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := d.StageSet(0, tt.reps, tt.weight)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("err = %v, want ValidationError", err)
			}
		})
	}
	if _, err := d.StageSet(0, MaxReps, floatp(MaxWeight)); err != nil {
		t.Errorf("set at the bounds: %v", err)
	}
}

// TestStageSetDefaultsWeightAndClearsScratch verifies weight defaults to 0,
// set numbers follow the count and scratch fields are cleared.
func TestStageSetDefaultsWeightAndClearsScratch(t *testing.T) {
	d := mustAdd(t, Draft{}, "Pull-ups")
	d, err := d.SetScratch(0, intp(8), nil)
	if err != nil {
		t.Fatal(err)
	}
	d, err = d.CommitScratch(0)
	if err != nil {
		t.Fatal(err)
	}
	ex := d.Exercises[0]
	if len(ex.Sets) != 1 {
		t.Fatalf("sets = %d, want 1", len(ex.Sets))
	}
	if ex.Sets[0].Weight == nil || *ex.Sets[0].Weight != 0 {
		t.Errorf("weight = %v, want 0", ex.Sets[0].Weight)
	}
	if ex.Sets[0].SetNumber != 1 {
		t.Errorf("setNumber = %d, want 1", ex.Sets[0].SetNumber)
	}
	if ex.PendingReps != nil || ex.PendingWeight != nil {
		t.Errorf("scratch not cleared: reps=%v weight=%v", ex.PendingReps, ex.PendingWeight)
	}

	d, err = d.StageSet(0, 6, floatp(10))
	if err != nil {
		t.Fatal(err)
	}
	if got := d.Exercises[0].Sets[1].SetNumber; got != 2 {
		t.Errorf("second setNumber = %d, want 2", got)
	}
}

// TestCommitScratchWithoutReps verifies missing reps is treated as invalid.
func TestCommitScratchWithoutReps(t *testing.T) {
	d := mustAdd(t, Draft{}, "Dips")
	d, _ = d.SetScratch(0, nil, floatp(20))
	got, err := d.CommitScratch(0)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if got.Exercises[0].PendingWeight == nil {
		t.Error("scratch weight should survive a failed commit")
	}
}

// TestStageSetNegativeWeight verifies weights must not be negative.
func TestStageSetNegativeWeight(t *testing.T) {
	d := mustAdd(t, Draft{}, "Lunges")
	if _, err := d.StageSet(0, 10, floatp(-5)); err == nil {
		t.Fatal("expected validation error for negative weight")
	}
}

// TestRemoveSetRenumbers verifies removal from the middle renumbers the
// remaining sets to 1..n.
func TestRemoveSetRenumbers(t *testing.T) {
	d := mustAdd(t, Draft{}, "Bench Press")
	for _, reps := range []int{10, 8, 6, 4} {
		d, _ = d.StageSet(0, reps, floatp(80))
	}

	d, err := d.RemoveSet(0, 1)
	if err != nil {
		t.Fatal(err)
	}
	sets := d.Exercises[0].Sets
	if len(sets) != 3 {
		t.Fatalf("sets = %d, want 3", len(sets))
	}
	assertContiguous(t, sets)
	wantReps := []int{10, 6, 4}
	for i, s := range sets {
		if s.Reps != wantReps[i] {
			t.Errorf("set %d reps = %d, want %d", i, s.Reps, wantReps[i])
		}
	}
}

// TestRemoveSetOutOfRange verifies bad indices are rejected without changes.
func TestRemoveSetOutOfRange(t *testing.T) {
	d := mustAdd(t, Draft{}, "Squats")
	d, _ = d.StageSet(0, 5, nil)
	if _, err := d.RemoveSet(0, 1); err == nil {
		t.Error("expected error for set index 1")
	}
	if _, err := d.RemoveSet(3, 0); err == nil {
		t.Error("expected error for exercise index 3")
	}
}

// TestSetNumbersStayContiguous drives random StageSet/RemoveSet sequences and
// checks set numbers are exactly 1..n after every step.
func TestSetNumbersStayContiguous(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 42))
	for run := 0; run < 200; run++ {
		d := mustAdd(t, Draft{}, "Squats")
		for step := 0; step < 40; step++ {
			sets := d.Exercises[0].Sets
			if len(sets) > 0 && rng.IntN(3) == 0 {
				var err error
				d, err = d.RemoveSet(0, rng.IntN(len(sets)))
				if err != nil {
					t.Fatal(err)
				}
			} else {
				// reps in [-1, 12] so some stages are rejected
				d, _ = d.StageSet(0, rng.IntN(14)-1, floatp(float64(rng.IntN(200))))
			}
			assertContiguous(t, d.Exercises[0].Sets)
		}
	}
}

// TestEditsDoNotAlias verifies an edit leaves the earlier draft value intact.
func TestEditsDoNotAlias(t *testing.T) {
	before := mustAdd(t, Draft{}, "Squats")
	before, _ = before.StageSet(0, 5, floatp(100))
	before, _ = before.StageSet(0, 5, floatp(100))

	after, err := before.RemoveSet(0, 0)
	if err != nil {
		t.Fatal(err)
	}
	after, _ = after.StageSet(0, 3, floatp(120))

	if len(before.Exercises[0].Sets) != 2 {
		t.Errorf("before sets = %d, want 2", len(before.Exercises[0].Sets))
	}
	assertContiguous(t, before.Exercises[0].Sets)
	if *before.Exercises[0].Sets[0].Weight != 100 {
		t.Errorf("before weight changed to %v", *before.Exercises[0].Sets[0].Weight)
	}
	if len(after.Exercises[0].Sets) != 2 {
		t.Errorf("after sets = %d, want 2", len(after.Exercises[0].Sets))
	}
}

// TestRemoveExerciseNeedsConfirmation verifies a declined prompt keeps the
// exercise and an approved one removes it.
func TestRemoveExerciseNeedsConfirmation(t *testing.T) {
	d := mustAdd(t, Draft{}, "Squats", "Lunges", "Calf Raises")

	var prompted string
	deny := ConfirmFunc(func(p string) bool { prompted = p; return false })
	got, removed, err := d.RemoveExercise(1, deny)
	if err != nil {
		t.Fatal(err)
	}
	if removed || len(got.Exercises) != 3 {
		t.Errorf("declined removal changed draft: removed=%v exercises=%d", removed, len(got.Exercises))
	}
	if prompted == "" {
		t.Error("confirmer was not asked")
	}

	got, removed, err = d.RemoveExercise(1, AlwaysConfirm)
	if err != nil {
		t.Fatal(err)
	}
	if !removed || len(got.Exercises) != 2 {
		t.Fatalf("removed=%v exercises=%d, want true/2", removed, len(got.Exercises))
	}
	if got.Exercises[1].Name != "Calf Raises" {
		t.Errorf("exercise[1] = %q, want Calf Raises", got.Exercises[1].Name)
	}
}

// TestIndexOf verifies lookups ignore case and surrounding whitespace.
func TestIndexOf(t *testing.T) {
	d := mustAdd(t, Draft{}, "Bench Press", "Squats")
	tests := []struct {
		name string
		want int
	}{
		{"bench press", 0},
		{"  SQUATS ", 1},
		{"Deadlift", -1},
	}
	for _, tt := range tests {
		if got := d.IndexOf(tt.name); got != tt.want {
			t.Errorf("IndexOf(%q) = %d, want %d", tt.name, got, tt.want)
		}
	}
}
