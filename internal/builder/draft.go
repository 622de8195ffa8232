// Package builder holds the workout builder: the transient draft model,
// its editing operations, the submission mapper and the builder lifecycle.
package builder

import (
	"math"
	"slices"
	"strings"
)

// DraftSet is a committed set inside a draft exercise.
type DraftSet struct {
	Reps      int
	Weight    *float64
	SetNumber int
}

// DraftExercise is an exercise being assembled. PendingReps and PendingWeight
// hold input that has not been committed as a set yet.
type DraftExercise struct {
	Name          string
	Sets          []DraftSet
	PendingReps   *int
	PendingWeight *float64
	Notes         string
}

// Draft is an in-progress workout. Every edit returns a new Draft and leaves
// the receiver untouched.
type Draft struct {
	Name        string
	Description string
	Exercises   []DraftExercise
}

// Confirmer asks the user to approve a destructive edit.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// AlwaysConfirm approves every prompt. Used by non-interactive callers.
var AlwaysConfirm = ConfirmFunc(func(string) bool { return true })

// WithDetails returns a copy with the workout name and description replaced.
func (d Draft) WithDetails(name, description string) Draft {
	out := d.clone()
	out.Name = name
	out.Description = description
	return out
}

// HasExercise reports whether name is already in the draft, ignoring case.
func (d Draft) HasExercise(name string) bool {
	return d.IndexOf(name) >= 0
}

// IndexOf returns the position of the exercise called name, ignoring case and
// surrounding whitespace, or -1.
func (d Draft) IndexOf(name string) int {
	name = strings.ToLower(strings.TrimSpace(name))
	return slices.IndexFunc(d.Exercises, func(ex DraftExercise) bool {
		return strings.ToLower(ex.Name) == name
	})
}

// AddExercise appends an exercise with no sets.
func (d Draft) AddExercise(name string) (Draft, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return d, invalid("exercise", "name is required")
	}
	if d.HasExercise(name) {
		return d, &DuplicateExerciseError{Name: name}
	}
	out := d.clone()
	out.Exercises = append(out.Exercises, DraftExercise{Name: name, Sets: []DraftSet{}})
	return out, nil
}

// SetExerciseNotes replaces the notes on one exercise.
func (d Draft) SetExerciseNotes(exerciseIndex int, notes string) (Draft, error) {
	if err := d.checkExercise(exerciseIndex); err != nil {
		return d, err
	}
	out := d.clone()
	out.Exercises[exerciseIndex].Notes = notes
	return out, nil
}

// RemoveExercise drops the exercise at index once c approves. The bool
// reports whether anything was removed.
func (d Draft) RemoveExercise(index int, c Confirmer) (Draft, bool, error) {
	if err := d.checkExercise(index); err != nil {
		return d, false, err
	}
	if c != nil && !c.Confirm("Are you sure you want to remove this exercise?") {
		return d, false, nil
	}
	out := d.clone()
	out.Exercises = slices.Delete(out.Exercises, index, index+1)
	return out, true, nil
}

// SetScratch records uncommitted reps and weight for an exercise.
func (d Draft) SetScratch(exerciseIndex int, reps *int, weight *float64) (Draft, error) {
	if err := d.checkExercise(exerciseIndex); err != nil {
		return d, err
	}
	out := d.clone()
	ex := &out.Exercises[exerciseIndex]
	ex.PendingReps = cloneInt(reps)
	ex.PendingWeight = cloneFloat(weight)
	return out, nil
}

// StageSet commits a set to an exercise. Reps must be positive; weight
// defaults to 0. The exercise's scratch fields are cleared on success.
func (d Draft) StageSet(exerciseIndex, reps int, weight *float64) (Draft, error) {
	if err := d.checkExercise(exerciseIndex); err != nil {
		return d, err
	}
	if reps <= 0 {
		return d, invalid("reps", "must be a positive whole number")
	}
	if reps > MaxReps {
		return d, invalid("reps", "must be at most %d", MaxReps)
	}
	w := 0.0
	if weight != nil {
		if *weight < 0 {
			return d, invalid("weight", "must not be negative")
		}
		if math.IsNaN(*weight) || *weight > MaxWeight {
			return d, invalid("weight", "must be at most %g", MaxWeight)
		}
		w = *weight
	}

	out := d.clone()
	ex := &out.Exercises[exerciseIndex]
	ex.Sets = appendSet(ex.Sets, DraftSet{Reps: reps, Weight: &w})
	ex.PendingReps = nil
	ex.PendingWeight = nil
	return out, nil
}

// CommitScratch stages the exercise's scratch values as a new set.
func (d Draft) CommitScratch(exerciseIndex int) (Draft, error) {
	if err := d.checkExercise(exerciseIndex); err != nil {
		return d, err
	}
	ex := d.Exercises[exerciseIndex]
	if ex.PendingReps == nil {
		return d, invalid("reps", "must be a positive whole number")
	}
	return d.StageSet(exerciseIndex, *ex.PendingReps, ex.PendingWeight)
}

// RemoveSet drops a set and renumbers the rest 1..n.
func (d Draft) RemoveSet(exerciseIndex, setIndex int) (Draft, error) {
	if err := d.checkExercise(exerciseIndex); err != nil {
		return d, err
	}
	if setIndex < 0 || setIndex >= len(d.Exercises[exerciseIndex].Sets) {
		return d, invalid("set", "index %d out of range", setIndex)
	}
	out := d.clone()
	ex := &out.Exercises[exerciseIndex]
	ex.Sets = withoutSet(ex.Sets, setIndex)
	return out, nil
}

// SetCount returns the number of committed sets across all exercises.
func (d Draft) SetCount() int {
	n := 0
	for _, ex := range d.Exercises {
		n += len(ex.Sets)
	}
	return n
}

func (d Draft) checkExercise(index int) error {
	if index < 0 || index >= len(d.Exercises) {
		return invalid("exercise", "index %d out of range", index)
	}
	return nil
}

// appendSet returns a new slice with s appended and numbered after the last set.
func appendSet(sets []DraftSet, s DraftSet) []DraftSet {
	out := make([]DraftSet, len(sets), len(sets)+1)
	copy(out, sets)
	s.SetNumber = len(out) + 1
	return append(out, s)
}

// withoutSet returns a new slice without sets[i], renumbered 1..n.
func withoutSet(sets []DraftSet, i int) []DraftSet {
	out := make([]DraftSet, 0, len(sets)-1)
	out = append(out, sets[:i]...)
	out = append(out, sets[i+1:]...)
	for j := range out {
		out[j].SetNumber = j + 1
	}
	return out
}

// clone deep-copies the draft so edits never alias an earlier value.
func (d Draft) clone() Draft {
	out := Draft{Name: d.Name, Description: d.Description}
	if d.Exercises == nil {
		return out
	}
	out.Exercises = make([]DraftExercise, len(d.Exercises))
	for i, ex := range d.Exercises {
		sets := make([]DraftSet, len(ex.Sets))
		for j, s := range ex.Sets {
			s.Weight = cloneFloat(s.Weight)
			sets[j] = s
		}
		out.Exercises[i] = DraftExercise{
			Name:          ex.Name,
			Sets:          sets,
			PendingReps:   cloneInt(ex.PendingReps),
			PendingWeight: cloneFloat(ex.PendingWeight),
			Notes:         ex.Notes,
		}
	}
	return out
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
