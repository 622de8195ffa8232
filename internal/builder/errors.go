package builder

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyWorkout is returned when a draft with no exercises is submitted.
	ErrEmptyWorkout = errors.New("please add at least one exercise to your workout")

	// ErrNotEditing is returned when an edit or submit arrives while the builder is closed.
	ErrNotEditing = errors.New("workout builder is not open")

	// ErrSubmissionPending is returned while a submission is in flight.
	ErrSubmissionPending = errors.New("a submission is already in progress")

	// ErrWorkoutNotFound is reported by sources for a workout that does not
	// exist or belongs to someone else.
	ErrWorkoutNotFound = errors.New("workout not found")
)

// ValidationError reports invalid user input. It is always recoverable.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// DuplicateExerciseError reports an exercise name already present in the draft.
type DuplicateExerciseError struct {
	Name string
}

func (e *DuplicateExerciseError) Error() string {
	return fmt.Sprintf("exercise %q already added to this workout", e.Name)
}

// PersistenceError wraps a failure from the persistence collaborator.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to %s workout: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
