package alpha

import (
	"fmt"
	"strings"

	"github.com/claude/liftlog/internal/builder"
)

// Draft builds a workout draft from a session using only working sets.
// Warmups, equipment and the rep target are kept in the exercise notes.
// An exercise that appears twice in a session has its sets merged.
func (s Session) Draft() (builder.Draft, error) {
	d := builder.Draft{}.WithDetails(s.Name,
		fmt.Sprintf("Alpha Progression, %s, %s", s.Date.Format("2006-01-02 15:04"), s.Duration))

	for _, ex := range s.Exercises {
		i := d.IndexOf(ex.Name)
		var err error
		if i < 0 {
			if d, err = d.AddExercise(ex.Name); err != nil {
				return d, fmt.Errorf("exercise %d: %w", ex.Number, err)
			}
			i = len(d.Exercises) - 1
			if d, err = d.SetExerciseNotes(i, ex.notes()); err != nil {
				return d, err
			}
		}
		for _, set := range ex.Sets {
			if set.Reps <= 0 {
				continue
			}
			w := set.WeightKg
			if d, err = d.StageSet(i, set.Reps, &w); err != nil {
				return d, fmt.Errorf("exercise %d set %d: %w", ex.Number, set.Number, err)
			}
		}
	}
	return d, nil
}

func (ex Exercise) notes() string {
	var parts []string
	if ex.Equipment != "" {
		parts = append(parts, ex.Equipment)
	}
	if ex.TargetReps > 0 {
		parts = append(parts, fmt.Sprintf("target %d reps", ex.TargetReps))
	}
	for _, s := range ex.Sets {
		if s.BodyweightPlus {
			parts = append(parts, "weights are bodyweight plus")
			break
		}
	}
	if len(ex.Warmups) > 0 {
		wu := make([]string, len(ex.Warmups))
		for i, s := range ex.Warmups {
			wu[i] = fmt.Sprintf("%gkg×%d", s.WeightKg, s.Reps)
		}
		parts = append(parts, "warmup "+strings.Join(wu, ", "))
	}
	return strings.Join(parts, "; ")
}
