// Package export renders workouts as an xlsx workbook.
package export

import (
	"fmt"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/stats"
	"github.com/xuri/excelize/v2"
)

const (
	SheetWorkouts = "Workouts"
	SheetSets     = "Sets"
)

var (
	workoutHeader = []any{"Date", "Workout", "Description", "Exercises", "Sets", "Reps", "Volume", "Est. Minutes"}
	setHeader     = []any{"Date", "Workout", "Order", "Exercise", "Set", "Reps", "Weight", "Volume", "Completed", "Notes"}
)

// Workbook builds a workbook with one summary row per workout on the
// Workouts sheet and one row per set on the Sets sheet. The caller must
// Close the returned file.
func Workbook(workouts []models.Workout, policy stats.Policy) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetWorkouts); err != nil {
		f.Close()
		return nil, fmt.Errorf("renaming sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetSets); err != nil {
		f.Close()
		return nil, fmt.Errorf("creating sets sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("creating header style: %w", err)
	}
	dateStyle, err := f.NewStyle(&excelize.Style{NumFmt: 14})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("creating date style: %w", err)
	}

	if err := writeRows(f, SheetWorkouts, headerStyle, dateStyle, workoutHeader, workoutRows(workouts, policy)); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeRows(f, SheetSets, headerStyle, dateStyle, setHeader, setRows(workouts)); err != nil {
		f.Close()
		return nil, err
	}

	_ = f.SetColWidth(SheetWorkouts, "A", "A", 12)
	_ = f.SetColWidth(SheetWorkouts, "B", "C", 28)
	_ = f.SetColWidth(SheetSets, "A", "A", 12)
	_ = f.SetColWidth(SheetSets, "B", "B", 24)
	_ = f.SetColWidth(SheetSets, "D", "D", 22)
	_ = f.SetColWidth(SheetSets, "J", "J", 30)
	return f, nil
}

func workoutRows(workouts []models.Workout, policy stats.Policy) [][]any {
	rows := make([][]any, 0, len(workouts))
	for _, w := range workouts {
		s := stats.Summarize(w, policy)
		rows = append(rows, []any{
			w.CreatedAt, w.Name, w.Description, len(w.Exercises),
			s.TotalSets, s.TotalReps, s.TotalVolume, s.EstimatedMinutes,
		})
	}
	return rows
}

func setRows(workouts []models.Workout) [][]any {
	var rows [][]any
	for _, w := range workouts {
		for _, ex := range w.Exercises {
			for _, set := range ex.Sets {
				weight := set.WeightOrZero()
				rows = append(rows, []any{
					w.CreatedAt, w.Name, ex.Order, ex.Name, set.SetNumber,
					set.Reps, weight, float64(set.Reps) * weight, set.Completed, ex.Notes,
				})
			}
		}
	}
	return rows
}

// writeRows writes a styled header on row 1 and data from row 2. Column A
// always holds a date.
func writeRows(f *excelize.File, sheet string, headerStyle, dateStyle int, header []any, rows [][]any) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("writing %s header: %w", sheet, err)
	}
	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("styling %s header: %w", sheet, err)
	}

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing %s row %d: %w", sheet, i+2, err)
		}
	}
	if len(rows) > 0 {
		end, _ := excelize.CoordinatesToCellName(1, len(rows)+1)
		if err := f.SetCellStyle(sheet, "A2", end, dateStyle); err != nil {
			return fmt.Errorf("styling %s dates: %w", sheet, err)
		}
	}
	return nil
}
