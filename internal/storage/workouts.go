package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// notFound maps pgx.ErrNoRows to ErrNotFound and wraps everything else.
func notFound(err error, action string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", action, err)
}

// CreateWorkout stores a new workout with its exercises and sets. Positions
// and set numbers are renumbered 1..n before writing.
func (db *DB) CreateWorkout(ctx context.Context, userID int, p models.WorkoutPayload) (*models.Workout, error) {
	p = p.Normalized()
	w := &models.Workout{
		ID:          uuid.New(),
		Name:        p.Name,
		Description: p.Description,
		UserID:      userID,
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx,
		`INSERT INTO workouts (id, user_id, name, description)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at, updated_at`,
		w.ID, userID, w.Name, w.Description,
	).Scan(&w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("inserting workout: %w", err)
	}

	if w.Exercises, err = insertExercises(ctx, tx, w.ID, p.Exercises); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing workout: %w", err)
	}
	return w, nil
}

// UpdateWorkout replaces a workout's details and its whole exercise list.
func (db *DB) UpdateWorkout(ctx context.Context, userID int, id uuid.UUID, p models.WorkoutPayload) (*models.Workout, error) {
	p = p.Normalized()
	w := &models.Workout{
		ID:          id,
		Name:        p.Name,
		Description: p.Description,
		UserID:      userID,
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx,
		`UPDATE workouts SET name = $3, description = $4, updated_at = NOW()
		 WHERE id = $1 AND user_id = $2
		 RETURNING created_at, updated_at`,
		id, userID, w.Name, w.Description,
	).Scan(&w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, notFound(err, "updating workout")
	}

	if _, err := tx.Exec(ctx, `DELETE FROM exercises WHERE workout_id = $1`, id); err != nil {
		return nil, fmt.Errorf("clearing exercises: %w", err)
	}
	if w.Exercises, err = insertExercises(ctx, tx, id, p.Exercises); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing workout: %w", err)
	}
	return w, nil
}

// DeleteWorkout removes a workout; exercises and sets cascade.
func (db *DB) DeleteWorkout(ctx context.Context, userID int, id uuid.UUID) error {
	tag, err := db.Pool.Exec(ctx,
		`DELETE FROM workouts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("deleting workout: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// GetWorkout retrieves a single workout with its exercises and sets.
func (db *DB) GetWorkout(ctx context.Context, userID int, id uuid.UUID) (*models.Workout, error) {
	w := models.Workout{}
	err := db.Pool.QueryRow(ctx,
		`SELECT id, user_id, name, description, created_at, updated_at
		 FROM workouts
		 WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(&w.ID, &w.UserID, &w.Name, &w.Description, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, notFound(err, "querying workout")
	}

	rows, err := db.queryExerciseRows(ctx, userID, &id)
	if err != nil {
		return nil, err
	}
	out := assemble([]models.Workout{w}, rows)
	return &out[0], nil
}

// ListWorkouts returns all of a user's workouts, newest first.
func (db *DB) ListWorkouts(ctx context.Context, userID int) ([]models.Workout, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, user_id, name, description, created_at, updated_at
		 FROM workouts
		 WHERE user_id = $1
		 ORDER BY created_at DESC, id`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying workouts: %w", err)
	}
	defer rows.Close()

	var workouts []models.Workout
	for rows.Next() {
		var w models.Workout
		if err := rows.Scan(&w.ID, &w.UserID, &w.Name, &w.Description, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning workout: %w", err)
		}
		workouts = append(workouts, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating workouts: %w", err)
	}
	if len(workouts) == 0 {
		return []models.Workout{}, nil
	}

	exRows, err := db.queryExerciseRows(ctx, userID, nil)
	if err != nil {
		return nil, err
	}
	return assemble(workouts, exRows), nil
}

// ExerciseNames returns the distinct exercise names a user has logged, most
// recently used first.
func (db *DB) ExerciseNames(ctx context.Context, userID int) ([]string, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT MIN(e.name)
		 FROM exercises e
		 JOIN workouts w ON w.id = e.workout_id
		 WHERE w.user_id = $1
		 GROUP BY lower(e.name)
		 ORDER BY MAX(w.created_at) DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying exercise names: %w", err)
	}
	defer rows.Close()

	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scanning exercise names: %w", err)
	}
	return names, nil
}
