package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/stats"
	"github.com/xuri/excelize/v2"
)

func weight(v float64) *float64 { return &v }

func sampleWorkouts() []models.Workout {
	return []models.Workout{
		{
			Name:      "Upper",
			CreatedAt: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
			Exercises: []models.Exercise{
				{Name: "Bench Press", Order: 1, Sets: []models.Set{
					{Reps: 10, Weight: weight(80), SetNumber: 1},
					{Reps: 8, SetNumber: 2},
				}},
				{Name: "Dips", Order: 2, Notes: "bodyweight", Sets: []models.Set{
					{Reps: 12, Weight: weight(0), SetNumber: 1, Completed: true},
				}},
			},
		},
		{Name: "Rest Day", CreatedAt: time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC), Exercises: []models.Exercise{}},
	}
}

// TestWorkbookSheets verifies the summary and set sheets are written with
// one row per workout and one row per set, and survive a save/reopen.
func TestWorkbookSheets(t *testing.T) {
	f, err := Workbook(sampleWorkouts(), stats.DefaultPolicy)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("writing workbook: %v", err)
	}
	g, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("reopening workbook: %v", err)
	}
	defer g.Close()

	workouts, err := g.GetRows(SheetWorkouts)
	if err != nil {
		t.Fatal(err)
	}
	if len(workouts) != 3 {
		t.Fatalf("workout rows = %d, want 3 (header + 2)", len(workouts))
	}
	if workouts[1][1] != "Upper" || workouts[1][4] != "3" || workouts[1][6] != "800" {
		t.Errorf("summary row = %v, want Upper with 3 sets and volume 800", workouts[1])
	}
	// 3 sets * 2.5 + 2 exercises * 2 = 11.5 -> 12
	if workouts[1][7] != "12" {
		t.Errorf("estimate = %s, want 12", workouts[1][7])
	}

	sets, err := g.GetRows(SheetSets)
	if err != nil {
		t.Fatal(err)
	}
	if len(sets) != 4 {
		t.Fatalf("set rows = %d, want 4 (header + 3)", len(sets))
	}
	if sets[2][3] != "Bench Press" || sets[2][6] != "0" {
		t.Errorf("absent weight row = %v, want weight 0", sets[2])
	}
	if sets[3][8] != "TRUE" || sets[3][9] != "bodyweight" {
		t.Errorf("dips row = %v", sets[3])
	}
}

// TestWorkbookEmpty verifies an empty history still produces both headers.
func TestWorkbookEmpty(t *testing.T) {
	f, err := Workbook(nil, stats.DefaultPolicy)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	for _, sheet := range []string{SheetWorkouts, SheetSets} {
		rows, err := f.GetRows(sheet)
		if err != nil {
			t.Fatalf("%s: %v", sheet, err)
		}
		if len(rows) != 1 {
			t.Errorf("%s rows = %d, want 1", sheet, len(rows))
		}
	}
}
