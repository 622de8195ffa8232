package mcp

import (
	"context"

	"github.com/claude/liftlog/internal/apiclient"
	"github.com/claude/liftlog/internal/builder"
	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/storage"
	"github.com/google/uuid"
)

// DataSource abstracts the data layer for MCP tools. Both *storage.UserStore
// (local) and *apiclient.Client (remote via REST API) satisfy this interface.
type DataSource interface {
	builder.Persister
	builder.Source
	GetWorkout(ctx context.Context, id uuid.UUID) (*models.Workout, error)
	ExerciseNames(ctx context.Context) ([]string, error)
}

// Resolver picks the DataSource for the caller of a tool invocation.
type Resolver func(ctx context.Context) DataSource

// Fixed serves every caller from the same DataSource. Used for stdio mode
// where the session already identifies the user.
func Fixed(ds DataSource) Resolver {
	return func(context.Context) DataSource { return ds }
}

// PerUser scopes a database to the user ID injected by the transport layer.
func PerUser(db *storage.DB) Resolver {
	return func(ctx context.Context) DataSource { return db.ForUser(UserIDFromContext(ctx)) }
}

// WithFallback routes list and delete calls through a builder.History so the
// given policy decides what happens when the source fails. NoFallback (or nil)
// returns ds unchanged.
func WithFallback(ds DataSource, f builder.FallbackStrategy) DataSource {
	if f == nil {
		return ds
	}
	if _, ok := f.(builder.NoFallback); ok {
		return ds
	}
	return &historySource{DataSource: ds, history: builder.NewHistory(ds, f)}
}

type historySource struct {
	DataSource
	history *builder.History
}

func (s *historySource) ListWorkouts(ctx context.Context) ([]models.Workout, error) {
	if err := s.history.Load(ctx); err != nil {
		return nil, err
	}
	return s.history.Workouts(), nil
}

func (s *historySource) DeleteWorkout(ctx context.Context, id uuid.UUID) error {
	_, err := s.history.Delete(ctx, id, builder.AlwaysConfirm)
	return err
}

// Compile-time checks.
var (
	_ DataSource = (*storage.UserStore)(nil)
	_ DataSource = (*apiclient.Client)(nil)
)
