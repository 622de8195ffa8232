// Package stats derives summary figures from committed workout data.
package stats

import (
	"math"

	"github.com/claude/liftlog/internal/models"
)

// Policy holds the tunable constants behind EstimatedDurationMinutes.
type Policy struct {
	PerSetMinutes      float64 `yaml:"per_set_minutes" json:"perSetMinutes"`
	PerExerciseMinutes float64 `yaml:"per_exercise_minutes" json:"perExerciseMinutes"`
}

// DefaultPolicy models 2.5 minutes of work per set plus 2 minutes of setup per exercise.
var DefaultPolicy = Policy{PerSetMinutes: 2.5, PerExerciseMinutes: 2}

// TotalReps sums reps across the exercise's sets.
func TotalReps(ex models.Exercise) int {
	total := 0
	for _, s := range ex.Sets {
		total += s.Reps
	}
	return total
}

// MaxWeight returns the heaviest set weight, or 0 when there are no sets.
func MaxWeight(ex models.Exercise) float64 {
	heaviest := 0.0
	for _, s := range ex.Sets {
		if w := s.WeightOrZero(); w > heaviest {
			heaviest = w
		}
	}
	return heaviest
}

// TotalSets counts sets across all exercises.
func TotalSets(w models.Workout) int {
	total := 0
	for _, ex := range w.Exercises {
		total += len(ex.Sets)
	}
	return total
}

// TotalVolume sums reps * weight over every set.
func TotalVolume(w models.Workout) float64 {
	total := 0.0
	for _, ex := range w.Exercises {
		for _, s := range ex.Sets {
			total += float64(s.Reps) * s.WeightOrZero()
		}
	}
	return total
}

// EstimatedDurationMinutes is sets*PerSetMinutes + exercises*PerExerciseMinutes,
// rounded half up.
func EstimatedDurationMinutes(w models.Workout, p Policy) int {
	raw := float64(TotalSets(w))*p.PerSetMinutes + float64(len(w.Exercises))*p.PerExerciseMinutes
	return roundHalfUp(raw)
}

func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

// ExerciseSummary holds per-exercise figures.
type ExerciseSummary struct {
	Name      string  `json:"name"`
	Order     int     `json:"order"`
	Sets      int     `json:"sets"`
	TotalReps int     `json:"totalReps"`
	MaxWeight float64 `json:"maxWeight"`
}

// Summary holds every aggregate for one workout.
type Summary struct {
	Exercises        []ExerciseSummary `json:"exercises"`
	TotalSets        int               `json:"totalSets"`
	TotalReps        int               `json:"totalReps"`
	TotalVolume      float64           `json:"totalVolume"`
	EstimatedMinutes int               `json:"estimatedMinutes"`
}

// Summarize computes all aggregates for a workout.
func Summarize(w models.Workout, p Policy) Summary {
	sum := Summary{
		Exercises:        make([]ExerciseSummary, 0, len(w.Exercises)),
		TotalSets:        TotalSets(w),
		TotalVolume:      TotalVolume(w),
		EstimatedMinutes: EstimatedDurationMinutes(w, p),
	}
	for _, ex := range w.Exercises {
		reps := TotalReps(ex)
		sum.TotalReps += reps
		sum.Exercises = append(sum.Exercises, ExerciseSummary{
			Name:      ex.Name,
			Order:     ex.Order,
			Sets:      len(ex.Sets),
			TotalReps: reps,
			MaxWeight: MaxWeight(ex),
		})
	}
	return sum
}
