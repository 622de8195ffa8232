package models

import (
	"cmp"
	"math"
	"slices"
)

// WorkoutPayload is the request body for creating or updating a workout.
type WorkoutPayload struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Exercises   []ExercisePayload `json:"exercises"`
}

// ExercisePayload is one exercise within a WorkoutPayload.
type ExercisePayload struct {
	Name  string       `json:"name"`
	Sets  []SetPayload `json:"sets"`
	Order int          `json:"order"`
	Notes string       `json:"notes,omitempty"`
}

// SetPayload is one set within an ExercisePayload.
type SetPayload struct {
	Reps      int      `json:"reps"`
	Weight    *float64 `json:"weight,omitempty"`
	SetNumber int      `json:"setNumber"`
	Completed bool     `json:"completed"`
}

// Normalized returns a copy with exercises sorted by Order and sets by
// SetNumber, then renumbered 1..n. Absent weights become 0. Entries with a
// zero ordinal keep their list position relative to each other.
func (p WorkoutPayload) Normalized() WorkoutPayload {
	out := WorkoutPayload{
		Name:        p.Name,
		Description: p.Description,
		Exercises:   make([]ExercisePayload, len(p.Exercises)),
	}
	copy(out.Exercises, p.Exercises)
	slices.SortStableFunc(out.Exercises, func(a, b ExercisePayload) int {
		return cmp.Compare(ordinal(a.Order), ordinal(b.Order))
	})

	for i := range out.Exercises {
		ex := &out.Exercises[i]
		ex.Order = i + 1

		sets := make([]SetPayload, len(ex.Sets))
		copy(sets, ex.Sets)
		slices.SortStableFunc(sets, func(a, b SetPayload) int {
			return cmp.Compare(ordinal(a.SetNumber), ordinal(b.SetNumber))
		})
		for j := range sets {
			sets[j].SetNumber = j + 1
			if sets[j].Weight == nil {
				zero := 0.0
				sets[j].Weight = &zero
			}
		}
		ex.Sets = sets
	}
	return out
}

// ordinal keeps unnumbered entries behind numbered ones without reordering them.
func ordinal(n int) int {
	if n <= 0 {
		return math.MaxInt
	}
	return n
}
