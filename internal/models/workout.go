package models

import (
	"time"

	"github.com/google/uuid"
)

// Workout is a persisted workout with its exercises in order.
type Workout struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Exercises   []Exercise `json:"exercises"`
	UserID      int        `json:"userId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Exercise is a persisted exercise. Order is its 1-based position in the workout.
type Exercise struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Sets      []Set     `json:"sets"`
	WorkoutID uuid.UUID `json:"workoutId"`
	Order     int       `json:"order"`
	Notes     string    `json:"notes,omitempty"`
}

// Set is a persisted set. SetNumber is its 1-based position in the exercise.
type Set struct {
	ID         uuid.UUID `json:"id"`
	Reps       int       `json:"reps"`
	Weight     *float64  `json:"weight,omitempty"`
	ExerciseID uuid.UUID `json:"exerciseId"`
	SetNumber  int       `json:"setNumber"`
	Completed  bool      `json:"completed"`
}

// WeightOrZero returns the set weight, treating an absent weight as 0.
func (s Set) WeightOrZero() float64 {
	if s.Weight == nil {
		return 0
	}
	return *s.Weight
}
