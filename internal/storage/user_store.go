package storage

import (
	"context"

	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
)

// UserStore is a DB scoped to one user. It satisfies the builder's Persister
// and Source, so server-side callers can drive a Builder against Postgres.
type UserStore struct {
	db     *DB
	userID int
}

// ForUser returns a view of db limited to userID's workouts.
func (db *DB) ForUser(userID int) *UserStore {
	return &UserStore{db: db, userID: userID}
}

// UserID returns the user the store is scoped to.
func (s *UserStore) UserID() int { return s.userID }

func (s *UserStore) CreateWorkout(ctx context.Context, p models.WorkoutPayload) (*models.Workout, error) {
	return s.db.CreateWorkout(ctx, s.userID, p)
}

func (s *UserStore) UpdateWorkout(ctx context.Context, id uuid.UUID, p models.WorkoutPayload) (*models.Workout, error) {
	return s.db.UpdateWorkout(ctx, s.userID, id, p)
}

func (s *UserStore) DeleteWorkout(ctx context.Context, id uuid.UUID) error {
	return s.db.DeleteWorkout(ctx, s.userID, id)
}

func (s *UserStore) GetWorkout(ctx context.Context, id uuid.UUID) (*models.Workout, error) {
	return s.db.GetWorkout(ctx, s.userID, id)
}

func (s *UserStore) ListWorkouts(ctx context.Context) ([]models.Workout, error) {
	return s.db.ListWorkouts(ctx, s.userID)
}

func (s *UserStore) ExerciseNames(ctx context.Context) ([]string, error) {
	return s.db.ExerciseNames(ctx, s.userID)
}
