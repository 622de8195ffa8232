package builder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
)

// Source reads and deletes persisted workouts.
type Source interface {
	ListWorkouts(ctx context.Context) ([]models.Workout, error)
	DeleteWorkout(ctx context.Context, id uuid.UUID) error
}

// FallbackStrategy decides what History does when its Source fails.
type FallbackStrategy interface {
	// OnListError returns a replacement list, or an error to surface.
	OnListError(err error) ([]models.Workout, error)
	// OnDeleteError returns nil to remove the workout locally anyway.
	OnDeleteError(id uuid.UUID, err error) error
}

// NoFallback surfaces every Source error.
type NoFallback struct{}

func (NoFallback) OnListError(err error) ([]models.Workout, error) { return nil, err }

func (NoFallback) OnDeleteError(_ uuid.UUID, err error) error { return err }

// MockFallback serves MockWorkouts when listing fails and removes workouts
// locally when deleting fails. The local state then diverges from the
// server, so it is for development and demo builds only.
type MockFallback struct {
	Log *slog.Logger
}

func (f MockFallback) OnListError(err error) ([]models.Workout, error) {
	if f.Log != nil {
		f.Log.Warn("listing workouts failed, serving mock data", "error", err)
	}
	return MockWorkouts(), nil
}

// OnDeleteError removes the workout locally unless the source reported it
// missing.
func (f MockFallback) OnDeleteError(id uuid.UUID, err error) error {
	if errors.Is(err, ErrWorkoutNotFound) {
		return err
	}
	if f.Log != nil {
		f.Log.Warn("deleting workout failed, removing locally only", "id", id, "error", err)
	}
	return nil
}

// FallbackByName resolves a configured fallback policy name.
func FallbackByName(name string, log *slog.Logger) (FallbackStrategy, error) {
	switch name {
	case "", "none":
		return NoFallback{}, nil
	case "mock":
		return MockFallback{Log: log}, nil
	default:
		return nil, fmt.Errorf("unknown fallback policy %q", name)
	}
}

// History is the list of a user's workouts as last loaded from a Source.
type History struct {
	mu       sync.Mutex
	src      Source
	fallback FallbackStrategy
	workouts []models.Workout
	degraded bool
}

// NewHistory creates an empty History. A nil fallback means NoFallback.
func NewHistory(src Source, fallback FallbackStrategy) *History {
	if fallback == nil {
		fallback = NoFallback{}
	}
	return &History{src: src, fallback: fallback}
}

// Load replaces the list with the Source's contents.
func (h *History) Load(ctx context.Context) error {
	workouts, err := h.src.ListWorkouts(ctx)
	degraded := false
	if err != nil {
		workouts, err = h.fallback.OnListError(err)
		if err != nil {
			return fmt.Errorf("loading workouts: %w", err)
		}
		degraded = true
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.workouts = workouts
	h.degraded = degraded
	return nil
}

// Workouts returns a copy of the current list, newest first.
func (h *History) Workouts() []models.Workout {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.workouts)
}

// Degraded reports whether the list no longer matches the server because a
// fallback was used.
func (h *History) Degraded() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.degraded
}

// Find returns the workout with the given id.
func (h *History) Find(id uuid.UUID) (models.Workout, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	i := slices.IndexFunc(h.workouts, func(w models.Workout) bool { return w.ID == id })
	if i < 0 {
		return models.Workout{}, false
	}
	return h.workouts[i], true
}

// Put replaces the workout with the same id, or prepends it when new.
func (h *History) Put(w models.Workout) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if i := slices.IndexFunc(h.workouts, func(x models.Workout) bool { return x.ID == w.ID }); i >= 0 {
		h.workouts[i] = w
		return
	}
	h.workouts = slices.Insert(h.workouts, 0, w)
}

// Delete removes a workout once c approves. The bool reports whether the
// workout was removed from the list.
func (h *History) Delete(ctx context.Context, id uuid.UUID, c Confirmer) (bool, error) {
	if c != nil && !c.Confirm("Are you sure you want to delete this workout? This action cannot be undone.") {
		return false, nil
	}
	if err := h.src.DeleteWorkout(ctx, id); err != nil {
		if ferr := h.fallback.OnDeleteError(id, err); ferr != nil {
			return false, &PersistenceError{Op: "delete", Err: ferr}
		}
		h.mu.Lock()
		h.degraded = true
		h.mu.Unlock()
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.workouts = slices.DeleteFunc(h.workouts, func(w models.Workout) bool { return w.ID == id })
	return true, nil
}

// MockWorkouts returns the fixed demo dataset.
func MockWorkouts() []models.Workout {
	w := func(v float64) *float64 { return &v }
	upper := uuid.MustParse("6f1c7d1e-0000-4000-8000-000000000001")
	legs := uuid.MustParse("6f1c7d1e-0000-4000-8000-000000000002")
	bench := uuid.MustParse("6f1c7d1e-0000-4000-8000-000000000011")
	ohp := uuid.MustParse("6f1c7d1e-0000-4000-8000-000000000012")
	squat := uuid.MustParse("6f1c7d1e-0000-4000-8000-000000000013")
	set := func(n int, ex uuid.UUID, num, reps int, weight float64) models.Set {
		return models.Set{
			ID:         uuid.MustParse(fmt.Sprintf("6f1c7d1e-0000-4000-8000-0000000001%02d", n)),
			Reps:       reps,
			Weight:     w(weight),
			ExerciseID: ex,
			SetNumber:  num,
			Completed:  true,
		}
	}

	return []models.Workout{
		{
			ID:          upper,
			Name:        "Upper Body Strength",
			Description: "Focus on chest, shoulders, and arms",
			Exercises: []models.Exercise{
				{ID: bench, Name: "Bench Press", WorkoutID: upper, Order: 1, Sets: []models.Set{
					set(1, bench, 1, 10, 80), set(2, bench, 2, 8, 85), set(3, bench, 3, 6, 90),
				}},
				{ID: ohp, Name: "Overhead Press", WorkoutID: upper, Order: 2, Sets: []models.Set{
					set(4, ohp, 1, 12, 50), set(5, ohp, 2, 10, 55),
				}},
			},
			UserID:    1,
			CreatedAt: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
			UpdatedAt: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:          legs,
			Name:        "Leg Day",
			Description: "Lower body focus",
			Exercises: []models.Exercise{
				{ID: squat, Name: "Squats", WorkoutID: legs, Order: 1, Sets: []models.Set{
					set(6, squat, 1, 15, 100), set(7, squat, 2, 12, 110),
				}},
			},
			UserID:    1,
			CreatedAt: time.Date(2024, 1, 14, 10, 0, 0, 0, time.UTC),
			UpdatedAt: time.Date(2024, 1, 14, 10, 0, 0, 0, time.UTC),
		},
	}
}
