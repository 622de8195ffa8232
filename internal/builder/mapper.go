package builder

import (
	"cmp"
	"slices"

	"github.com/claude/liftlog/internal/models"
)

// ToPayload converts a draft into the request body sent to the persistence
// collaborator. Exercise order is the 1-based list position and every set
// goes out with completed=false. Scratch fields are never included.
func ToPayload(d Draft) (models.WorkoutPayload, error) {
	if len(d.Exercises) == 0 {
		return models.WorkoutPayload{}, ErrEmptyWorkout
	}

	p := models.WorkoutPayload{
		Name:        d.Name,
		Description: d.Description,
		Exercises:   make([]models.ExercisePayload, 0, len(d.Exercises)),
	}
	for i, ex := range d.Exercises {
		sets := make([]models.SetPayload, 0, len(ex.Sets))
		for _, s := range ex.Sets {
			sets = append(sets, models.SetPayload{
				Reps:      s.Reps,
				Weight:    cloneFloat(s.Weight),
				SetNumber: s.SetNumber,
				Completed: false,
			})
		}
		p.Exercises = append(p.Exercises, models.ExercisePayload{
			Name:  ex.Name,
			Sets:  sets,
			Order: i + 1,
			Notes: ex.Notes,
		})
	}
	return p, nil
}

// FromWorkout builds a draft from a persisted workout so it can be edited.
// Exercises follow their stored order; completed flags are dropped.
func FromWorkout(w models.Workout) Draft {
	exercises := slices.Clone(w.Exercises)
	slices.SortStableFunc(exercises, func(a, b models.Exercise) int {
		return cmp.Compare(a.Order, b.Order)
	})

	d := Draft{
		Name:        w.Name,
		Description: w.Description,
		Exercises:   make([]DraftExercise, 0, len(exercises)),
	}
	for _, ex := range exercises {
		sets := slices.Clone(ex.Sets)
		slices.SortStableFunc(sets, func(a, b models.Set) int {
			return cmp.Compare(a.SetNumber, b.SetNumber)
		})
		de := DraftExercise{Name: ex.Name, Sets: make([]DraftSet, 0, len(sets)), Notes: ex.Notes}
		for _, s := range sets {
			de.Sets = appendSet(de.Sets, DraftSet{Reps: s.Reps, Weight: cloneFloat(s.Weight)})
		}
		d.Exercises = append(d.Exercises, de)
	}
	return d
}

// Preview returns an unsaved workout view of the draft so aggregate
// calculators can run on work in progress.
func (d Draft) Preview() models.Workout {
	w := models.Workout{
		Name:        d.Name,
		Description: d.Description,
		Exercises:   make([]models.Exercise, 0, len(d.Exercises)),
	}
	for i, ex := range d.Exercises {
		me := models.Exercise{Name: ex.Name, Order: i + 1, Notes: ex.Notes, Sets: make([]models.Set, 0, len(ex.Sets))}
		for _, s := range ex.Sets {
			me.Sets = append(me.Sets, models.Set{Reps: s.Reps, Weight: cloneFloat(s.Weight), SetNumber: s.SetNumber})
		}
		w.Exercises = append(w.Exercises, me)
	}
	return w
}
