package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the Postgres SQLSTATE for a unique index conflict.
const uniqueViolation = "23505"

// duplicate maps a unique violation on the exercise name index to
// ErrDuplicateExercise and wraps everything else.
func duplicate(err error, action string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == "idx_exercises_workout_name" {
		return ErrDuplicateExercise
	}
	return fmt.Errorf("%s: %w", action, err)
}

// exerciseRow is one exercise joined with at most one of its sets. The set
// columns are nil for exercises without sets.
type exerciseRow struct {
	WorkoutID  uuid.UUID
	ExerciseID uuid.UUID
	Name       string
	Position   int
	Notes      string
	SetID      *uuid.UUID
	SetNumber  *int
	Reps       *int
	Weight     *float64
	Completed  *bool
}

// insertExercises writes exercises and their sets in one batch. The payload
// must already be normalized.
func insertExercises(ctx context.Context, tx pgx.Tx, workoutID uuid.UUID, exercises []models.ExercisePayload) ([]models.Exercise, error) {
	out := make([]models.Exercise, 0, len(exercises))
	batch := &pgx.Batch{}

	for _, ep := range exercises {
		ex := models.Exercise{
			ID:        uuid.New(),
			Name:      ep.Name,
			WorkoutID: workoutID,
			Order:     ep.Order,
			Notes:     ep.Notes,
			Sets:      make([]models.Set, 0, len(ep.Sets)),
		}
		batch.Queue(
			`INSERT INTO exercises (id, workout_id, name, position, notes) VALUES ($1, $2, $3, $4, $5)`,
			ex.ID, workoutID, ex.Name, ex.Order, ex.Notes)

		for _, sp := range ep.Sets {
			s := models.Set{
				ID:         uuid.New(),
				Reps:       sp.Reps,
				Weight:     sp.Weight,
				ExerciseID: ex.ID,
				SetNumber:  sp.SetNumber,
				Completed:  sp.Completed,
			}
			batch.Queue(
				`INSERT INTO sets (id, exercise_id, set_number, reps, weight, completed) VALUES ($1, $2, $3, $4, $5, $6)`,
				s.ID, ex.ID, s.SetNumber, s.Reps, s.WeightOrZero(), s.Completed)
			ex.Sets = append(ex.Sets, s)
		}
		out = append(out, ex)
	}

	if batch.Len() == 0 {
		return out, nil
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return nil, duplicate(err, "inserting exercises")
	}
	return out, nil
}

// queryExerciseRows loads exercises and sets for a user's workouts, or for a
// single workout when workoutID is non-nil.
func (db *DB) queryExerciseRows(ctx context.Context, userID int, workoutID *uuid.UUID) ([]exerciseRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT e.workout_id, e.id, e.name, e.position, e.notes,
		        s.id, s.set_number, s.reps, s.weight, s.completed
		 FROM exercises e
		 JOIN workouts w ON w.id = e.workout_id
		 LEFT JOIN sets s ON s.exercise_id = e.id
		 WHERE w.user_id = $1 AND ($2::uuid IS NULL OR w.id = $2)
		 ORDER BY e.workout_id, e.position, s.set_number`,
		userID, workoutID)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	var result []exerciseRow
	for rows.Next() {
		var r exerciseRow
		if err := rows.Scan(&r.WorkoutID, &r.ExerciseID, &r.Name, &r.Position, &r.Notes,
			&r.SetID, &r.SetNumber, &r.Reps, &r.Weight, &r.Completed); err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating exercises: %w", err)
	}
	return result, nil
}

// assemble attaches joined exercise rows to their workouts. Rows must be
// ordered by workout, position and set number. Workouts keep their order and
// always end up with a non-nil Exercises slice.
func assemble(workouts []models.Workout, rows []exerciseRow) []models.Workout {
	index := make(map[uuid.UUID]int, len(workouts))
	for i := range workouts {
		workouts[i].Exercises = []models.Exercise{}
		index[workouts[i].ID] = i
	}

	for _, r := range rows {
		wi, ok := index[r.WorkoutID]
		if !ok {
			continue
		}
		w := &workouts[wi]
		n := len(w.Exercises)
		if n == 0 || w.Exercises[n-1].ID != r.ExerciseID {
			w.Exercises = append(w.Exercises, models.Exercise{
				ID:        r.ExerciseID,
				Name:      r.Name,
				WorkoutID: r.WorkoutID,
				Order:     r.Position,
				Notes:     r.Notes,
				Sets:      []models.Set{},
			})
			n++
		}
		if r.SetID == nil {
			continue
		}
		ex := &w.Exercises[n-1]
		ex.Sets = append(ex.Sets, models.Set{
			ID:         *r.SetID,
			Reps:       deref(r.Reps),
			Weight:     r.Weight,
			ExerciseID: r.ExerciseID,
			SetNumber:  deref(r.SetNumber),
			Completed:  deref(r.Completed),
		})
	}
	return workouts
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
