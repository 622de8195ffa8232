package server

import (
	"fmt"
	"math"
	"strings"

	"github.com/claude/liftlog/internal/builder"
	"github.com/claude/liftlog/internal/models"
)

// validatePayload checks a create/update body. Ordinals are not checked
// because storage renumbers them.
func validatePayload(p models.WorkoutPayload) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("name is required")
	}
	seen := make(map[string]bool, len(p.Exercises))
	for i, ex := range p.Exercises {
		name := strings.ToLower(strings.TrimSpace(ex.Name))
		if name == "" {
			return fmt.Errorf("exercise %d: name is required", i+1)
		}
		if seen[name] {
			return fmt.Errorf("exercise %q appears more than once", ex.Name)
		}
		seen[name] = true
		for j, set := range ex.Sets {
			if set.Reps <= 0 {
				return fmt.Errorf("exercise %q set %d: reps must be greater than 0", ex.Name, j+1)
			}
			if set.Reps > builder.MaxReps {
				return fmt.Errorf("exercise %q set %d: reps must be at most %d", ex.Name, j+1, builder.MaxReps)
			}
			if set.Weight == nil {
				continue
			}
			w := *set.Weight
			if w < 0 {
				return fmt.Errorf("exercise %q set %d: weight must not be negative", ex.Name, j+1)
			}
			if math.IsNaN(w) || w > builder.MaxWeight {
				return fmt.Errorf("exercise %q set %d: weight must be at most %g", ex.Name, j+1, builder.MaxWeight)
			}
		}
	}
	return nil
}

// trimPayload strips surrounding whitespace from user-entered names.
func trimPayload(p models.WorkoutPayload) models.WorkoutPayload {
	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)
	exercises := make([]models.ExercisePayload, len(p.Exercises))
	for i, ex := range p.Exercises {
		ex.Name = strings.TrimSpace(ex.Name)
		exercises[i] = ex
	}
	p.Exercises = exercises
	return p
}
